package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Publisher pushes a stored notification to live listeners
type Publisher interface {
	Publish(userID int64, n model.Notification)
}

// Service delivers notifications to users
type Service struct {
	storage   storage.Storage
	clock     clock.Clock
	logger    *zap.Logger
	publisher Publisher
}

// New creates a new notify Service
func New(storage storage.Storage, clock clock.Clock, logger *zap.Logger) *Service {
	return &Service{storage: storage, clock: clock, logger: logger}
}

// SetPublisher attaches a live delivery channel. Call before serving requests.
func (s *Service) SetPublisher(p Publisher) {
	s.publisher = p
}

// Notify stores one notification for one user and publishes it
func (s *Service) Notify(ctx context.Context, userID int64, title, body string) error {
	n := &model.Notification{Title: title, Body: body, CreatedAt: s.clock.Now()}
	if err := s.storage.CreateNotification(ctx, userID, n); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.Publish(userID, *n)
	}
	return nil
}

// Broadcast sends a notification to every account
func (s *Service) Broadcast(ctx context.Context, title, body string) error {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if err := s.Notify(ctx, a.User.ID, title, body); err != nil {
			return err
		}
	}
	s.logger.Debug("notification broadcast", zap.String("title", title), zap.Int("recipients", len(accounts)))
	return nil
}

// List returns a user's notifications newest first
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.storage.ListNotifications(ctx, userID)
}

// MarkRead flags one of the user's notifications as read
func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	list, err := s.storage.ListNotifications(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range list {
		if n.ID == id {
			n.Read = true
			return s.storage.SaveNotification(ctx, userID, n)
		}
	}
	return model.ErrNotificationNotFound
}

// MarkAllRead flags every notification of the user as read
func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	list, err := s.storage.ListNotifications(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range list {
		if n.Read {
			continue
		}
		n.Read = true
		if err := s.storage.SaveNotification(ctx, userID, n); err != nil {
			return err
		}
	}
	return nil
}

// Unread counts a user's unread notifications
func (s *Service) Unread(ctx context.Context, userID int64) (int, error) {
	list, err := s.storage.ListNotifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n, nil
}
