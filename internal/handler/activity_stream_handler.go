package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/service"
)

// ActivityStreamHandler serves the live dashboard feed over websocket.
type ActivityStreamHandler struct {
	stream service.ActivityStream
	logger zerolog.Logger
}

// NewActivityStreamHandler constructs the handler.
func NewActivityStreamHandler(stream service.ActivityStream, logger zerolog.Logger) *ActivityStreamHandler {
	return &ActivityStreamHandler{
		stream: stream,
		logger: logger.With().Str("component", "activity_stream_handler").Logger(),
	}
}

// Register wires the websocket upgrade route.
func (h *ActivityStreamHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *ActivityStreamHandler) handleConnection(conn *websocket.Conn) {
	records, cancel := h.stream.Subscribe()
	defer cancel()

	h.logger.Info().Msg("activity stream connected")
	defer h.logger.Info().Msg("activity stream disconnected")

	// Drain client frames so closes are noticed promptly.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case record, ok := <-records:
			if !ok {
				return
			}
			if err := conn.WriteJSON(record); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
