// Package http is the REST and websocket interface of the ordering service.
package http

import (
	"log/slog"
	"net/http"

	"ordering/internal/adapters/in/http/api"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder            commands.CreateOrderCommandHandler
	ConfirmOrder           commands.ConfirmOrderCommandHandler
	CancelOrder            commands.CancelOrderCommandHandler
	InitiateCheckout       commands.InitiateCheckoutCommandHandler
	VerifyPayment          commands.VerifyPaymentCommandHandler
	CreatePackingChecklist commands.CreatePackingChecklistCommandHandler
	StartPacking           commands.StartPackingCommandHandler
	TogglePackedItem       commands.TogglePackedItemCommandHandler
	ShipOrder              commands.ShipOrderCommandHandler
	DeliverOrder           commands.DeliverOrderCommandHandler
	GenerateInvoice        commands.GenerateInvoiceCommandHandler
	ClaimGift              commands.ClaimGiftCommandHandler
	UpdateMemberStatus     commands.UpdateMemberStatusCommandHandler
	MarkNotificationRead   commands.MarkNotificationReadCommandHandler
	PublishAnnouncement    commands.PublishAnnouncementCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
	GetPackingChecklist queries.GetPackingChecklistQueryHandler
	GetInvoice          queries.GetInvoiceQueryHandler
	GetLoyaltyAccount   queries.GetLoyaltyAccountQueryHandler
	GetNotifications    queries.GetNotificationsQueryHandler
}

// Server translates HTTP requests into commands and queries and their results into
// JSON responses.
type Server struct {
	h      Handlers
	hub    *Hub
	secret []byte
	logger *slog.Logger
}

func NewServer(h Handlers, hub *Hub, jwtSecret []byte, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		hub:    hub,
		secret: jwtSecret,
		logger: logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := api.Load()
	if err != nil {
		return err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return err
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if s.hub != nil {
		e.GET("/ws", s.hub.Serve, Authenticate(s.secret))
	}

	g := e.Group("/api/v1", Authenticate(s.secret), validate)

	g.GET("/orders", s.ListOrders)
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	g.POST("/orders/:orderId/cancel", s.CancelOrder)
	g.POST("/orders/:orderId/checkout", s.InitiateCheckout)
	g.GET("/orders/:orderId/packing", s.GetPackingChecklist)
	g.POST("/orders/:orderId/packing", s.CreatePackingChecklist)
	g.POST("/orders/:orderId/start-packing", s.StartPacking)
	g.PUT("/orders/:orderId/packing/items/:itemId", s.TogglePackedItem)
	g.POST("/orders/:orderId/ship", s.ShipOrder)
	g.POST("/orders/:orderId/deliver", s.DeliverOrder)
	g.POST("/orders/:orderId/invoices", s.GenerateInvoice)
	g.GET("/invoices/:invoiceId", s.GetInvoice)

	g.POST("/payments/callback", s.VerifyPayment)

	g.PUT("/members/:memberId/status", s.UpdateMemberStatus)
	g.GET("/members/:memberId/loyalty", s.GetLoyaltyAccount)
	g.POST("/members/:memberId/loyalty/gifts", s.ClaimGift)

	g.GET("/notifications", s.GetNotifications)
	g.POST("/notifications/:notificationId/read", s.MarkNotificationRead)
	g.POST("/announcements", s.PublishAnnouncement)
	return nil
}
