package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lunar_tracker_bot/internal/domain/alert"
	"lunar_tracker_bot/internal/domain/moon"
	"lunar_tracker_bot/internal/domain/subscriber"
	idb "lunar_tracker_bot/internal/infra/database"

	"gopkg.in/telebot.v3"
)

type fakeSubscriberRepo struct {
	byChat  map[int64]*subscriber.Subscriber
	nextID  int64
	failGet error
}

func newFakeSubscriberRepo(subs ...*subscriber.Subscriber) *fakeSubscriberRepo {
	r := &fakeSubscriberRepo{byChat: map[int64]*subscriber.Subscriber{}}
	for _, s := range subs {
		r.nextID++
		s.ID = r.nextID
		r.byChat[s.ChatID] = s
	}
	return r
}

func (r *fakeSubscriberRepo) Create(_ context.Context, s *subscriber.Subscriber) error {
	if _, ok := r.byChat[s.ChatID]; ok {
		return idb.ErrDuplicateChatID
	}
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	r.byChat[s.ChatID] = s
	return nil
}

func (r *fakeSubscriberRepo) GetByChatID(_ context.Context, chatID int64) (*subscriber.Subscriber, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	s, ok := r.byChat[chatID]
	if !ok {
		return nil, idb.ErrSubscriberNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubscriberRepo) Update(_ context.Context, s *subscriber.Subscriber) error {
	if _, ok := r.byChat[s.ChatID]; !ok {
		return idb.ErrSubscriberNotFound
	}
	cp := *s
	r.byChat[s.ChatID] = &cp
	return nil
}

func (r *fakeSubscriberRepo) ListActive(ctx context.Context) ([]*subscriber.Subscriber, error) {
	all, _ := r.ListAll(ctx)
	out := make([]*subscriber.Subscriber, 0, len(all))
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubscriberRepo) ListAll(_ context.Context) ([]*subscriber.Subscriber, error) {
	out := make([]*subscriber.Subscriber, 0, len(r.byChat))
	for _, s := range r.byChat {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAlertRepo struct {
	alerts    []*alert.Alert
	failCheck error
}

func (r *fakeAlertRepo) Create(_ context.Context, a *alert.Alert) error {
	for _, existing := range r.alerts {
		if existing.Phase == a.Phase && existing.EventDate.Equal(a.EventDate) {
			return idb.ErrDuplicateAlert
		}
	}
	a.ID = int64(len(r.alerts) + 1)
	a.SentAt = time.Now()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *fakeAlertRepo) UpdateRecipients(_ context.Context, id int64, recipients int) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.Recipients = recipients
			return nil
		}
	}
	return idb.ErrAlertNotFound
}

func (r *fakeAlertRepo) GetByPhaseAndDate(_ context.Context, phase moon.Phase, eventDate time.Time) (*alert.Alert, error) {
	if r.failCheck != nil {
		return nil, r.failCheck
	}
	for _, a := range r.alerts {
		if a.Phase == phase && a.EventDate.Equal(eventDate) {
			return a, nil
		}
	}
	return nil, idb.ErrAlertNotFound
}

func (r *fakeAlertRepo) ListByPhases(_ context.Context, phases []moon.Phase, since time.Time) ([]*alert.Alert, error) {
	out := make([]*alert.Alert, 0)
	for _, a := range r.alerts {
		for _, p := range phases {
			if a.Phase == p && !a.SentAt.Before(since) {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent   []sentMessage
	failTo map[int64]bool
}

func (f *fakeSender) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	if f.failTo[chatID] {
		return fmt.Errorf("chat %d blocked the bot", chatID)
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}
