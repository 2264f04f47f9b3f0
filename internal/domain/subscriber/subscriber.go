package subscriber

import (
	"database/sql"
	"time"
)

// Subscriber is a Telegram chat that asked to receive quarter-phase alerts.
type Subscriber struct {
	ID        int64
	ChatID    int64
	FirstName string
	Username  sql.NullString // optional @handle
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
