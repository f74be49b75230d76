package changefeed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	listenerPingInterval = 90 * time.Second
)

// PostgresFeed publishes with pg_notify and receives through a LISTEN connection, so
// every service instance attached to the database observes every commit.
type PostgresFeed struct {
	dsn      string
	channel  string
	db       *sql.DB
	registry *Registry
	logger   *slog.Logger
}

// NewPostgresFeed opens a lib/pq connection pool used for NOTIFY. dsn must be a
// lib/pq connection string.
func NewPostgresFeed(dsn, channel string, logger *slog.Logger) (*PostgresFeed, error) {
	if channel == "" {
		return nil, errors.New("change feed channel is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open notify connection: %w", err)
	}
	db.SetMaxOpenConns(2)

	return &PostgresFeed{
		dsn:      dsn,
		channel:  channel,
		db:       db,
		registry: NewRegistry(logger),
		logger:   logger.With("component", "changefeed_postgres"),
	}, nil
}

func (f *PostgresFeed) Publish(ctx context.Context, events ...Event) error {
	var errList []error
	for _, e := range events {
		payload, err := encode(e)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if _, err = f.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", f.channel, string(payload)); err != nil {
			errList = append(errList, fmt.Errorf("notify %s %s: %w", e.Topic.Entity, e.ID, err))
		}
	}
	return errors.Join(errList...)
}

func (f *PostgresFeed) Registry() *Registry { return f.registry }

// Run listens on the channel until ctx is cancelled. Notifications lost while the
// listener reconnects are not replayed.
func (f *PostgresFeed) Run(ctx context.Context) error {
	listener := pq.NewListener(f.dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				f.logger.Warn("change feed listener event", "event", ev, "error", err)
			}
		})
	defer listener.Close()

	if err := listener.Listen(f.channel); err != nil {
		return fmt.Errorf("listen %s: %w", f.channel, err)
	}
	f.logger.Info("change feed listening", "channel", f.channel)

	ping := time.NewTicker(listenerPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect
			if n == nil {
				continue
			}
			e, err := decode([]byte(n.Extra))
			if err != nil {
				f.logger.Warn("malformed change event", "error", err)
				continue
			}
			f.registry.Dispatch(e)
		case <-ping.C:
			if err := listener.Ping(); err != nil {
				f.logger.Warn("change feed listener ping failed", "error", err)
			}
		}
	}
}

func (f *PostgresFeed) Close() error {
	return f.db.Close()
}
