package cmd

import (
	"fmt"
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/adapters/out/gateway"
	"ordering/internal/adapters/out/invoicerender"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

const invoiceCurrency = "INR"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	feed       changefeed.Feed
	uowFactory *postgres.GormUnitOfWorkFactory
	router     services.NotificationRouter
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, feed changefeed.Feed, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		feed:       feed,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, feed, logger),
		router:     services.NewNotificationRouter(),
		logger:     logger,
	}
}

// OpenFeed builds the change-feed transport selected by FEED_DRIVER.
func OpenFeed(cfg Config, logger *slog.Logger) (changefeed.Feed, error) {
	switch cfg.FeedDriver {
	case FeedMemory, "":
		return changefeed.NewMemoryFeed(logger), nil
	case FeedPostgres:
		return changefeed.NewPostgresFeed(cfg.Database().PostgresDSN(), cfg.FeedChannel, logger)
	case FeedRedis:
		return changefeed.NewRedisFeed(cfg.RedisURL, cfg.FeedChannel, logger)
	default:
		return nil, fmt.Errorf("unsupported feed driver %q", cfg.FeedDriver)
	}
}

func (c *CompositionRoot) DB() *gorm.DB                        { return c.gormDB }
func (c *CompositionRoot) Feed() changefeed.Feed               { return c.feed }
func (c *CompositionRoot) Router() services.NotificationRouter { return c.router }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateInitiateCheckoutCommandHandler() (commands.InitiateCheckoutCommandHandler, error) {
	client, err := gateway.NewClient(
		c.cfg.PaymentGatewayURL,
		c.cfg.PaymentGatewayKeyID,
		c.cfg.PaymentGatewaySecret,
		gateway.WithLogger(c.logger),
	)
	if err != nil {
		return commands.InitiateCheckoutCommandHandler{}, fmt.Errorf("payment gateway: %w", err)
	}
	return commands.NewInitiateCheckoutCommandHandler(c.orderUoWFactory(), client)
}

func (c *CompositionRoot) CreateVerifyPaymentCommandHandler() (commands.VerifyPaymentCommandHandler, error) {
	verifier, err := services.NewSignatureVerifier(c.cfg.PaymentGatewaySecret)
	if err != nil {
		return commands.VerifyPaymentCommandHandler{}, err
	}
	return commands.NewVerifyPaymentCommandHandler(c.orderUoWFactory(), verifier), nil
}

func (c *CompositionRoot) CreateExpirePendingPaymentsCommandHandler() commands.ExpirePendingPaymentsCommandHandler {
	return commands.NewExpirePendingPaymentsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreatePackingChecklistCommandHandler() commands.CreatePackingChecklistCommandHandler {
	return commands.NewCreatePackingChecklistCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateStartPackingCommandHandler() commands.StartPackingCommandHandler {
	return commands.NewStartPackingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTogglePackedItemCommandHandler() commands.TogglePackedItemCommandHandler {
	return commands.NewTogglePackedItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), services.NewAccrualPolicy())
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() (commands.GenerateInvoiceCommandHandler, error) {
	renderer, err := invoicerender.NewHTMLRenderer(invoiceCurrency)
	if err != nil {
		return commands.GenerateInvoiceCommandHandler{}, err
	}
	return commands.NewGenerateInvoiceCommandHandler(c.invoiceUoWFactory(), renderer)
}

func (c *CompositionRoot) CreatePurgeExpiredInvoicesCommandHandler() commands.PurgeExpiredInvoicesCommandHandler {
	return commands.NewPurgeExpiredInvoicesCommandHandler(c.invoiceUoWFactory())
}

func (c *CompositionRoot) CreateClaimGiftCommandHandler() commands.ClaimGiftCommandHandler {
	var f commands.LoyaltyUoWFactory = FuncLoyaltyUoWFactory(func() commands.LoyaltyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimGiftCommandHandler(f)
}

func (c *CompositionRoot) memberUoWFactory() commands.MemberUoWFactory {
	return FuncMemberUoWFactory(func() commands.MemberUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterMemberCommandHandler() commands.RegisterMemberCommandHandler {
	return commands.NewRegisterMemberCommandHandler(c.memberUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMemberStatusCommandHandler() commands.UpdateMemberStatusCommandHandler {
	return commands.NewUpdateMemberStatusCommandHandler(c.memberUoWFactory())
}

func (c *CompositionRoot) CreateAddCatalogItemCommandHandler() commands.AddCatalogItemCommandHandler {
	return commands.NewAddCatalogItemCommandHandler(c.memberUoWFactory())
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.router)
}

func (c *CompositionRoot) CreatePublishAnnouncementCommandHandler() commands.PublishAnnouncementCommandHandler {
	return commands.NewPublishAnnouncementCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackingChecklistQueryHandler() queries.GetPackingChecklistQueryHandler {
	return queries.NewGetPackingChecklistQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLoyaltyAccountQueryHandler() queries.GetLoyaltyAccountQueryHandler {
	return queries.NewGetLoyaltyAccountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB, c.router)
}

func (c *CompositionRoot) CreateGetStuckPaymentsQueryHandler() queries.GetStuckPaymentsQueryHandler {
	return queries.NewGetStuckPaymentsQueryHandler(c.gormDB)
}

// CreateHTTPHandlers wires every handler the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() (httpin.Handlers, error) {
	checkout, err := c.CreateInitiateCheckoutCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}
	verify, err := c.CreateVerifyPaymentCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}
	invoices, err := c.CreateGenerateInvoiceCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}

	return httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ConfirmOrder:           c.CreateConfirmOrderCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		InitiateCheckout:       checkout,
		VerifyPayment:          verify,
		CreatePackingChecklist: c.CreateCreatePackingChecklistCommandHandler(),
		StartPacking:           c.CreateStartPackingCommandHandler(),
		TogglePackedItem:       c.CreateTogglePackedItemCommandHandler(),
		ShipOrder:              c.CreateShipOrderCommandHandler(),
		DeliverOrder:           c.CreateDeliverOrderCommandHandler(),
		GenerateInvoice:        invoices,
		ClaimGift:              c.CreateClaimGiftCommandHandler(),
		UpdateMemberStatus:     c.CreateUpdateMemberStatusCommandHandler(),
		MarkNotificationRead:   c.CreateMarkNotificationReadCommandHandler(),
		PublishAnnouncement:    c.CreatePublishAnnouncementCommandHandler(),

		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		GetPackingChecklist: c.CreateGetPackingChecklistQueryHandler(),
		GetInvoice:          c.CreateGetInvoiceQueryHandler(),
		GetLoyaltyAccount:   c.CreateGetLoyaltyAccountQueryHandler(),
		GetNotifications:    c.CreateGetNotificationsQueryHandler(),
	}, nil
}

// CreateHTTPServer builds the API server together with its websocket hub.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	if c.cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	h, err := c.CreateHTTPHandlers()
	if err != nil {
		return nil, err
	}
	hub := httpin.NewHub(c.feed.Registry(), c.router, c.logger)
	return httpin.NewServer(h, hub, []byte(c.cfg.JWTSecret), c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpirePendingPaymentsCommandHandler(),
		c.cfg.PendingPaymentTTL,
		c.CreatePurgeExpiredInvoicesCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLoyaltyUoWFactory func() commands.LoyaltyUoW

func (f FuncLoyaltyUoWFactory) Create() commands.LoyaltyUoW {
	return f()
}

type FuncMemberUoWFactory func() commands.MemberUoW

func (f FuncMemberUoWFactory) Create() commands.MemberUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}
