package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/mgit-app/mgit/internal/events"
	"github.com/mgit-app/mgit/internal/panel"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type Handler struct {
	hub        *events.Hub
	controller *panel.Controller
	keepAlive  time.Duration

	logger *zap.Logger
}

func NewHandler(hub *events.Hub, controller *panel.Controller, config events.Config, logger *zap.Logger) handler.Handler {
	return &Handler{
		hub:        hub,
		controller: controller,
		keepAlive:  config.KeepAliveInterval(),

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/events", h.stream)
}

//	@Summary		Subscribe to panel events
//	@Description	Server-sent events stream. The first event is the current panel state, followed by job lifecycle, notification and state events.
//	@Tags			events
//	@Produce		text/event-stream
//	@Success		200
//	@Router			/events [get]
//
// Subscribe to panel events.
func (h *Handler) stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ch, release := h.hub.Subscribe()
	initial := events.Event{
		Type:      events.TypeState,
		Timestamp: time.Now(),
		Data:      h.controller.State(),
	}

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer release()

		h.logger.Debug("event stream opened", zap.Int("subscribers", h.hub.Subscribers()))

		if err := writeEvent(w, initial); err != nil {
			return
		}

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		for {
			select {
			case e, ok := <-ch:
				if !ok {
					return
				}
				if err := writeEvent(w, e); err != nil {
					h.logger.Debug("event stream closed", zap.Error(err))
					return
				}
			case <-ticker.C:
				if err := writeComment(w, "ping"); err != nil {
					h.logger.Debug("event stream closed", zap.Error(err))
					return
				}
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if e.ID > 0 {
		fmt.Fprintf(w, "id: %d\n", e.ID)
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)

	return w.Flush() //nolint:wrapcheck //disconnect is reported as is
}

func writeComment(w *bufio.Writer, text string) error {
	fmt.Fprintf(w, ": %s\n\n", text)
	return w.Flush() //nolint:wrapcheck //disconnect is reported as is
}
