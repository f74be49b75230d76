package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. Franchise callers order for themselves;
// staff must name the member.
func (s *Server) CreateOrder(c echo.Context) error {
	var req newOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	actor := actorFrom(c)

	memberID := actor.ID
	if req.MemberID != nil {
		id, err := kernel.UUIDFromString(*req.MemberID)
		if err != nil {
			return s.fail(c, err)
		}
		memberID = id
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := kernel.UUIDFromString(item.ItemID)
		if err != nil {
			return s.fail(c, err)
		}
		lines = append(lines, commands.OrderLine{ItemID: itemID, Quantity: item.Quantity})
	}
	a := req.ShippingAddress
	address, err := kernel.NewAddress(a.Line1, a.Line2, a.City, a.PostalCode, a.Phone)
	if err != nil {
		return s.fail(c, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor, memberID, lines, address,
		req.LoyaltyPointsToUse, req.ApplyFreeDeliveryGift)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	memberID, err := queryUUID(c, "member_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	status := order.Unknown
	if raw := c.QueryParam("status"); raw != "" {
		if status, err = order.ParseStatus(raw); err != nil {
			return s.fail(c, err)
		}
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return badRequest(c, "limit must be an integer")
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return badRequest(c, "offset must be an integer")
	}

	viewer := actorFrom(c)
	query, err := queries.NewListOrdersQuery(viewer, memberID, status, limit, offset)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	out := make([]orderJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toOrderJSON(v, viewer))
	}
	return c.JSON(http.StatusOK, out)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	viewer := actorFrom(c)
	query, err := queries.NewGetOrderQuery(orderID, viewer)
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderDetailsJSON(res, viewer))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req confirmOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	fee, err := kernel.MoneyFromString(req.DeliveryFee)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, actorFrom(c), fee, req.AdminNotes)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req cancelOrderRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorFrom(c), req.Override, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ShipOrder handles POST /api/v1/orders/{orderId}/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req shipOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewShipOrderCommand(orderID, actorFrom(c), req.TrackingNumber)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ShipOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewDeliverOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeliverOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
