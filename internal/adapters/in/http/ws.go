package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// Hub pushes committed changes to connected viewers. Each connection observes the
// notification stream and the order stream it is entitled to; notifications are
// checked against the router again before they are written.
type Hub struct {
	registry *changefeed.Registry
	router   services.NotificationRouter
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(registry *changefeed.Registry, router services.NotificationRouter, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		router:   router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_hub"),
	}
}

type wsMessage struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

// Serve upgrades GET /ws for the authenticated viewer and blocks until the client
// goes away.
func (h *Hub) Serve(c echo.Context) error {
	viewer := actorFrom(c)
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	notifications := h.registry.Subscribe(changefeed.All(changefeed.EntityNotification), 0)
	defer notifications.Close()
	orders := h.registry.Subscribe(orderTopic(viewer), 0)
	defer orders.Close()

	h.logger.Debug("observer connected", "viewer", viewer.ID.String(), "role", viewer.Role.String())
	done := make(chan struct{})
	go readUntilClosed(conn, done)

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		var (
			e  changefeed.Event
			ok bool
		)
		select {
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
			continue
		case e, ok = <-notifications.Events():
		case e, ok = <-orders.Events():
		}
		if !ok {
			return nil
		}

		msg, admitted := h.message(viewer, e)
		if !admitted {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err = conn.WriteJSON(msg); err != nil {
			h.logger.Debug("observer write failed", "viewer", viewer.ID.String(), "error", err)
			return nil
		}
	}
}

// message renders e for viewer, or reports false when viewer may not see it.
func (h *Hub) message(viewer kernel.Actor, e changefeed.Event) (wsMessage, bool) {
	switch e.Topic.Entity {
	case changefeed.EntityNotification:
		n, err := e.Notification()
		if err != nil {
			h.logger.Warn("undecodable notification event", "id", e.ID, "error", err)
			return wsMessage{}, false
		}
		if !h.router.Visible(viewer, n) {
			return wsMessage{}, false
		}
		view, err := queries.NewNotificationView(n)
		if err != nil {
			return wsMessage{}, false
		}
		return wsMessage{Type: "notification", ID: e.ID, Data: toNotificationJSON(view), At: e.At}, true
	case changefeed.EntityOrder:
		if viewer.Role == kernel.RoleFranchise && e.Topic.Scope != viewer.ID.String() {
			return wsMessage{}, false
		}
		return wsMessage{Type: "order", ID: e.ID, Data: json.RawMessage(e.Data), At: e.At}, true
	default:
		return wsMessage{}, false
	}
}

func orderTopic(viewer kernel.Actor) changefeed.Topic {
	if viewer.Role == kernel.RoleFranchise {
		return changefeed.Topic{Entity: changefeed.EntityOrder, Scope: viewer.ID.String()}
	}
	return changefeed.All(changefeed.EntityOrder)
}

// readUntilClosed drains client frames so pongs and close frames are processed.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
