package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/frahmantamala/timetracker/internal/core/events"
)

// Sender is the outbound mail dependency of the event handler.
type Sender interface {
	Send(msg Message) error
	Configured() bool
}

// EventHandler delivers magic-link emails off the event bus. Delivery is
// fire-and-forget: failures are logged and never propagated back to the
// request that issued the link.
type EventHandler struct {
	sender      Sender
	frontendURL string
	logger      *slog.Logger
}

func NewEventHandler(sender Sender, frontendURL string, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		sender:      sender,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register subscribes the handler on the bus.
func (h *EventHandler) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeMagicLinkRequested, h.HandleMagicLinkRequested)
}

func (h *EventHandler) HandleMagicLinkRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.MagicLinkRequestedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	if !h.sender.Configured() {
		h.logger.Warn("email delivery skipped: client not configured",
			"property_code", e.PropertyCode)
		return nil
	}

	link := fmt.Sprintf("%s?token=%s", h.frontendURL, url.QueryEscape(e.Token))
	msg := BuildMagicLinkEmail(e.Recipient, e.PropertyName, e.PropertyCode, link)

	if err := h.sender.Send(msg); err != nil {
		h.logger.Error("magic link email delivery failed",
			"error", err,
			"property_code", e.PropertyCode)
		return nil
	}

	h.logger.Info("magic link email sent", "property_code", e.PropertyCode)
	return nil
}
