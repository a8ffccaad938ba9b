package store

import (
	"context"

	"timely/internal/models"
)

// NotificationStore holds notification records for one audience key
type NotificationStore struct {
	kv  KV
	key string
}

// NewNotificationStore creates a notification store writing to key
func NewNotificationStore(kv KV, key string) *NotificationStore {
	return &NotificationStore{kv: kv, key: key}
}

// List returns the stored notifications, oldest first
func (s *NotificationStore) List(ctx context.Context) ([]models.Notification, error) {
	return loadList[models.Notification](ctx, s.kv, s.key)
}

// Append stores one more notification
func (s *NotificationStore) Append(ctx context.Context, n models.Notification) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	return saveJSON(ctx, s.kv, s.key, append(items, n))
}
