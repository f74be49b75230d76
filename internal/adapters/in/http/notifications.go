package http

import (
	"net/http"
	"strconv"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(c echo.Context) error {
	unreadOnly := false
	if raw := c.QueryParam("unread_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "unread_only must be a boolean")
		}
		unreadOnly = v
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return badRequest(c, "limit must be an integer")
	}

	query, err := queries.NewGetNotificationsQuery(actorFrom(c), unreadOnly, limit)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.h.GetNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]notificationJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toNotificationJSON(v))
	}
	return c.JSON(http.StatusOK, out)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	notificationID, err := pathUUID(c, "notificationId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PublishAnnouncement handles POST /api/v1/announcements.
func (s *Server) PublishAnnouncement(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cmd, err := commands.NewPublishAnnouncementCommand(actorFrom(c), req.Headline, req.Body, req.Location)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := s.h.PublishAnnouncement.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}
