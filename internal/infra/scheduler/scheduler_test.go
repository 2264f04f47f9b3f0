package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"lunar_tracker_bot/internal/domain/moon"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlertService struct {
	calls []time.Time
	err   error
}

func (r *recordingAlertService) DispatchDailyAlerts(_ context.Context, now time.Time) (int, error) {
	r.calls = append(r.calls, now)
	return len(r.calls), r.err
}

func (r *recordingAlertService) DueEvents(time.Time) []moon.Event { return nil }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestAlertScheduler_RejectsInvalidSpec(t *testing.T) {
	s := NewAlertScheduler(&recordingAlertService{}, quietLogger(), time.UTC, "every full moon")
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every full moon")
}

func TestAlertScheduler_StartStop(t *testing.T) {
	s := NewAlertScheduler(&recordingAlertService{}, quietLogger(), time.UTC, "0 9 * * *")
	require.NoError(t, s.Start())
	assert.Len(t, s.cronEngine.Entries(), 1)
	s.Stop()
}

func TestAlertScheduler_RunDailyAlertsUsesClock(t *testing.T) {
	svc := &recordingAlertService{}
	s := NewAlertScheduler(svc, quietLogger(), time.UTC, "0 9 * * *")
	fixed := time.Date(2024, time.January, 26, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.runDailyAlerts()
	svc.err = errors.New("db down")
	s.runDailyAlerts()

	require.Len(t, svc.calls, 2)
	assert.Equal(t, fixed, svc.calls[0])
}

func TestAlertScheduler_KeepsCallerComponent(t *testing.T) {
	l, hook := logtest.NewNullLogger()
	s := NewAlertScheduler(&recordingAlertService{}, l.WithField("component", "cron"), time.UTC, "0 9 * * *")
	require.NoError(t, s.Start())
	s.Stop()

	require.NotEmpty(t, hook.AllEntries())
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "cron", e.Data["component"], e.Message)
	}
}
