// internal/domain/alert/alert.go
package alert

import (
	"time"

	"lunar_tracker_bot/internal/domain/moon"
)

// Alert records that subscribers were told about one quarter-phase event.
// Corresponds to the 'phase_alerts' table; (Phase, EventDate) is unique.
type Alert struct {
	ID         int64
	Phase      moon.Phase
	EventDate  time.Time // calendar day of the event
	Recipients int       // how many chats received the message
	SentAt     time.Time
}
