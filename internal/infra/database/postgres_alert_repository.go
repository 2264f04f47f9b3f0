// internal/infra/database/postgres_alert_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lunar_tracker_bot/internal/domain/alert"
	"lunar_tracker_bot/internal/domain/moon"

	"github.com/lib/pq" // For pq.Array
)

// Custom errors specific to the alert ledger
var ErrAlertNotFound = errors.New("phase alert not found")
var ErrDuplicateAlert = errors.New("duplicate phase alert (phase, event_date)")

const alertColumns = `id, phase, event_date, recipients, sent_at`

type PostgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	a := &alert.Alert{}
	err := row.Scan(&a.ID, &a.Phase, &a.EventDate, &a.Recipients, &a.SentAt)
	return a, err
}

func (r *PostgresAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	query := `INSERT INTO phase_alerts (phase, event_date, recipients)
               VALUES ($1, $2, $3)
               RETURNING id, sent_at`
	err := r.db.QueryRowContext(ctx, query, a.Phase, dateOnly(a.EventDate), a.Recipients).Scan(&a.ID, &a.SentAt)
	if err != nil {
		if isUniqueViolation(err, "phase_alerts_phase_date_key") {
			return ErrDuplicateAlert
		}
		return fmt.Errorf("error creating phase alert: %w", err)
	}
	return nil
}

func (r *PostgresAlertRepository) UpdateRecipients(ctx context.Context, id int64, recipients int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE phase_alerts SET recipients = $1 WHERE id = $2`, recipients, id)
	if err != nil {
		return fmt.Errorf("error updating phase alert recipients: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *PostgresAlertRepository) GetByPhaseAndDate(ctx context.Context, phase moon.Phase, eventDate time.Time) (*alert.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM phase_alerts WHERE phase = $1 AND event_date = $2`
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, phase, dateOnly(eventDate)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("error getting phase alert: %w", err)
	}
	return a, nil
}

func (r *PostgresAlertRepository) ListByPhases(ctx context.Context, phases []moon.Phase, since time.Time) ([]*alert.Alert, error) {
	if len(phases) == 0 {
		return []*alert.Alert{}, nil
	}

	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = string(p)
	}

	query := `SELECT ` + alertColumns + `
               FROM phase_alerts
               WHERE phase = ANY($1::varchar[]) AND sent_at >= $2
               ORDER BY sent_at DESC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names), since)
	if err != nil {
		return nil, fmt.Errorf("error querying phase alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning phase alert row: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phase alert rows: %w", err)
	}
	return alerts, nil
}

// dateOnly drops the clock so the value binds cleanly to a DATE column.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
