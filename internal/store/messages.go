package store

import (
	"context"

	"timely/internal/models"
)

// MessageStore holds each client's message collection
type MessageStore struct {
	kv KV
}

// NewMessageStore creates a message store on kv
func NewMessageStore(kv KV) *MessageStore {
	return &MessageStore{kv: kv}
}

// List returns every message of the client in stored order
func (s *MessageStore) List(ctx context.Context, clientID string) ([]models.Message, error) {
	return loadList[models.Message](ctx, s.kv, ClientMessagesKey(clientID))
}

// Save replaces the client's message collection
func (s *MessageStore) Save(ctx context.Context, clientID string, messages []models.Message) error {
	return saveJSON(ctx, s.kv, ClientMessagesKey(clientID), messages)
}

// Append adds a message to the end of the client's collection
func (s *MessageStore) Append(ctx context.Context, clientID string, msg models.Message) error {
	messages, err := s.List(ctx, clientID)
	if err != nil {
		return err
	}
	return s.Save(ctx, clientID, append(messages, msg))
}

// Get returns a single message of the client
func (s *MessageStore) Get(ctx context.Context, clientID, messageID string) (*models.Message, error) {
	messages, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ID == messageID {
			return &messages[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update applies fn to every message matching match and saves the collection when fn
// reported a change. It returns how many messages changed.
func (s *MessageStore) Update(ctx context.Context, clientID string, match func(*models.Message) bool, fn func(*models.Message) bool) (int, error) {
	messages, err := s.List(ctx, clientID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range messages {
		if match(&messages[i]) && fn(&messages[i]) {
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.Save(ctx, clientID, messages)
}

// Remove physically deletes the matching messages and returns how many were removed
func (s *MessageStore) Remove(ctx context.Context, clientID string, match func(*models.Message) bool) (int, error) {
	messages, err := s.List(ctx, clientID)
	if err != nil {
		return 0, err
	}

	kept := messages[:0]
	for _, m := range messages {
		if !match(&m) {
			kept = append(kept, m)
		}
	}
	removed := len(messages) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.Save(ctx, clientID, kept)
}

// InboxStore holds the message projections kept for the admin, consultant and global views
type InboxStore struct {
	kv KV
}

// NewInboxStore creates an inbox projection store on kv
func NewInboxStore(kv KV) *InboxStore {
	return &InboxStore{kv: kv}
}

// List returns the messages in the projection stored at key
func (s *InboxStore) List(ctx context.Context, key string) ([]models.Message, error) {
	return loadList[models.Message](ctx, s.kv, key)
}

// Append adds msg to the projection stored at key
func (s *InboxStore) Append(ctx context.Context, key string, msg models.Message) error {
	messages, err := s.List(ctx, key)
	if err != nil {
		return err
	}
	return saveJSON(ctx, s.kv, key, append(messages, msg))
}
