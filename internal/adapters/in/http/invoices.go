package http

import (
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GenerateInvoice handles POST /api/v1/orders/{orderId}/invoices.
func (s *Server) GenerateInvoice(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req generateInvoiceRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	cmd, err := commands.NewGenerateInvoiceCommand(kernel.NewUUID(), orderID, actorFrom(c), req.GenerateForAdmin)
	if err != nil {
		return s.fail(c, err)
	}
	inv, err := s.h.GenerateInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, invoiceRefJSON{ID: inv.ID().String(), ExpiresAt: inv.ExpiresAt()})
}

// GetInvoice handles GET /api/v1/invoices/{invoiceId} and returns the document itself.
func (s *Server) GetInvoice(c echo.Context) error {
	invoiceID, err := pathUUID(c, "invoiceId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	query, err := queries.NewGetInvoiceQuery(invoiceID, actorFrom(c), time.Now())
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetInvoice.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `inline; filename="invoice-`+view.ID.String()+`.html"`)
	return c.Blob(http.StatusOK, view.ContentType, view.Content)
}
