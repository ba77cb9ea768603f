package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeMagicLinkRequested = "auth.magic_link_requested"
)

// MagicLinkRequestedEvent asks the email handler to deliver a kiosk login
// link. The link URL itself is built at delivery time from config.
type MagicLinkRequestedEvent struct {
	BaseEvent
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	PropertyCode string `json:"property_code"`
	Recipient    string `json:"recipient"`
	Token        string `json:"token"`
}

func NewMagicLinkRequestedEvent(propertyID int64, propertyName, propertyCode, recipient, token string) *MagicLinkRequestedEvent {
	return &MagicLinkRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMagicLinkRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"property_id":   propertyID,
				"property_code": propertyCode,
				"recipient":     recipient,
			},
		},
		PropertyID:   propertyID,
		PropertyName: propertyName,
		PropertyCode: propertyCode,
		Recipient:    recipient,
		Token:        token,
	}
}
