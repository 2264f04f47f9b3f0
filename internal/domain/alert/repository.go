// internal/domain/alert/repository.go
package alert

import (
	"context"
	"time"

	"lunar_tracker_bot/internal/domain/moon"
)

// Repository defines operations on the sent alert ledger.
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	UpdateRecipients(ctx context.Context, id int64, recipients int) error
	GetByPhaseAndDate(ctx context.Context, phase moon.Phase, eventDate time.Time) (*Alert, error)
	// ListByPhases returns alerts for any of phases sent at or after since, newest first.
	ListByPhases(ctx context.Context, phases []moon.Phase, since time.Time) ([]*Alert, error)
}
