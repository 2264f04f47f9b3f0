package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lunar_tracker_bot/internal/domain/subscriber"
	idb "lunar_tracker_bot/internal/infra/database"
)

// Custom application-level errors for subscription management
var ErrAdminNotAuthorized = errors.New("performing user is not authorized as an admin")
var ErrAlreadySubscribed = errors.New("chat is already subscribed")
var ErrNotSubscribed = errors.New("chat is not subscribed")

type SubscriptionService struct {
	subscriberRepo  subscriber.Repository
	adminTelegramID int64
}

func NewSubscriptionService(sr subscriber.Repository, adminID int64) *SubscriptionService {
	return &SubscriptionService{
		subscriberRepo:  sr,
		adminTelegramID: adminID,
	}
}

// Subscribe registers chatID for phase alerts, reactivating a previous subscription if one exists.
func (s *SubscriptionService) Subscribe(ctx context.Context, chatID int64, firstName, username string) (*subscriber.Subscriber, error) {
	existing, err := s.subscriberRepo.GetByChatID(ctx, chatID)
	if err == nil {
		if existing.IsActive {
			return existing, ErrAlreadySubscribed
		}
		existing.IsActive = true
		existing.FirstName = firstName
		existing.Username = nullString(username)
		if err := s.subscriberRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, idb.ErrSubscriberNotFound) {
		return nil, fmt.Errorf("failed to check existing subscriber: %w", err)
	}

	newSubscriber := &subscriber.Subscriber{
		ChatID:    chatID,
		FirstName: firstName,
		Username:  nullString(username),
		IsActive:  true,
	}
	if err := s.subscriberRepo.Create(ctx, newSubscriber); err != nil {
		if errors.Is(err, idb.ErrDuplicateChatID) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to create subscriber in repository: %w", err)
	}
	return newSubscriber, nil
}

// Unsubscribe stops alerts for chatID. The row is kept so a later Subscribe reactivates it.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, chatID int64) (*subscriber.Subscriber, error) {
	existing, err := s.subscriberRepo.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			return nil, ErrNotSubscribed
		}
		return nil, fmt.Errorf("failed to get subscriber for removal: %w", err)
	}
	if !existing.IsActive {
		return existing, ErrNotSubscribed
	}

	existing.IsActive = false
	if err := s.subscriberRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to deactivate subscriber: %w", err)
	}
	return existing, nil
}

// IsSubscribed reports whether chatID currently receives alerts.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	existing, err := s.subscriberRepo.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, idb.ErrSubscriberNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return existing.IsActive, nil
}

// ListSubscribers returns active subscribers, or every known chat when includeInactive is set.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, performingAdminID int64, includeInactive bool) ([]*subscriber.Subscriber, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}

	var (
		list []*subscriber.Subscriber
		err  error
	)
	if includeInactive {
		list, err = s.subscriberRepo.ListAll(ctx)
	} else {
		list, err = s.subscriberRepo.ListActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return list, nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
