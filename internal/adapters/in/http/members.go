package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/member"

	"github.com/labstack/echo/v4"
)

// UpdateMemberStatus handles PUT /api/v1/members/{memberId}/status.
func (s *Server) UpdateMemberStatus(c echo.Context) error {
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req memberStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	status, err := member.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateMemberStatusCommand(memberID, actorFrom(c), status, req.DashboardAccessEnabled)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.UpdateMemberStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLoyaltyAccount handles GET /api/v1/members/{memberId}/loyalty.
func (s *Server) GetLoyaltyAccount(c echo.Context) error {
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return badRequest(c, "limit must be an integer")
	}
	query, err := queries.NewGetLoyaltyAccountQuery(memberID, actorFrom(c), limit)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetLoyaltyAccount.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toLoyaltyAccountJSON(view))
}

// ClaimGift handles POST /api/v1/members/{memberId}/loyalty/gifts.
func (s *Server) ClaimGift(c echo.Context) error {
	memberID, err := pathUUID(c, "memberId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req claimGiftRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	giftType, err := loyalty.ParseGiftType(req.GiftType)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewClaimGiftCommand(memberID, actorFrom(c), giftType)
	if err != nil {
		return s.fail(c, err)
	}
	claimed, err := s.h.ClaimGift.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"gift_id": claimed.GiftID.String(),
		"balance": claimed.Balance,
	})
}
