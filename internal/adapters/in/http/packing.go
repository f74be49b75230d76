package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// CreatePackingChecklist handles POST /api/v1/orders/{orderId}/packing. Repeating the
// call creates nothing new.
func (s *Server) CreatePackingChecklist(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewCreatePackingChecklistCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	created, err := s.h.CreatePackingChecklist.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"created": created})
}

// GetPackingChecklist handles GET /api/v1/orders/{orderId}/packing.
func (s *Server) GetPackingChecklist(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	query, err := queries.NewGetPackingChecklistQuery(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetPackingChecklist.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPackingChecklistJSON(view))
}

// StartPacking handles POST /api/v1/orders/{orderId}/start-packing.
func (s *Server) StartPacking(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewStartPackingCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.StartPacking.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TogglePackedItem handles PUT /api/v1/orders/{orderId}/packing/items/{itemId}.
func (s *Server) TogglePackedItem(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req togglePackedRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewTogglePackedItemCommand(orderID, itemID, actorFrom(c), req.Packed)
	if err != nil {
		return s.fail(c, err)
	}
	progress, err := s.h.TogglePackedItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, packingProgressJSON{
		Packed:    progress.Packed,
		Total:     progress.Total,
		AllPacked: progress.AllPacked,
	})
}
