package postgres

import (
	"errors"
	"fmt"

	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/invoicerepo"
	"ordering/internal/adapters/out/postgres/loyaltyrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/adapters/out/postgres/notificationrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/packingrepo"
	"ordering/internal/adapters/out/postgres/paymentrepo"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects the dialect and connection. DSN, when set, replaces the
// host/port/user fields; it is required for mysql and defaults to a shared in-memory
// database for sqlite.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// PostgresDSN renders the key/value connection string understood by both pgx and
// lib/pq.
func (c DatabaseConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects with gorm. Driver errors are translated so that unique violations
// surface as gorm.ErrDuplicatedKey on every dialect.
func Open(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = gorm_postgres.Open(cfg.PostgresDSN())
	case DriverMySQL:
		if cfg.DSN == "" {
			return nil, errors.New("DB_DSN is required for mysql")
		}
		dialector = mysql.Open(cfg.DSN)
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}

	if dialector.Name() == DriverSQLite {
		sqlDB, sqlErr := db.DB()
		if sqlErr != nil {
			return nil, sqlErr
		}
		// one writer; also keeps an in-memory database alive
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&memberrepo.MemberDTO{},
		&catalogrepo.ItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&packingrepo.EntryDTO{},
		&loyaltyrepo.AccountDTO{},
		&loyaltyrepo.TransactionDTO{},
		&loyaltyrepo.GiftDTO{},
		&notificationrepo.NotificationDTO{},
		&notificationrepo.ReadDTO{},
		&paymentrepo.RecordDTO{},
		&invoicerepo.InvoiceDTO{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// MySQL has no partial indexes; there the handlers' outstanding-order count is
	// the only guard.
	if db.Dialector.Name() == DriverMySQL {
		return nil
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_outstanding
		ON orders (member_id) WHERE status IN ('confirmed', 'payment_pending')`).Error
}
