package rest

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/barkeep/shaker/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler streams catalog mutation events published on the
// signal channel to websocket clients.
type EventsHandler struct {
	rdb *redis.Client
}

func NewEventsHandler(redisClient *redis.Client) *EventsHandler {
	return &EventsHandler{rdb: redisClient}
}

func (h *EventsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/events", h.handleEvents)
}

func (h *EventsHandler) handleEvents(c echo.Context) error {
	if h.rdb == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "event stream is not configured"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	pubsub := h.rdb.Subscribe(ctx, service.EventChannel)
	defer pubsub.Close()

	// Drain client frames so close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				pubsub.Close()
				return
			}
		}
	}()

	for message := range pubsub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(message.Payload)); err != nil {
			return nil
		}
	}
	return nil
}
