package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups of a single record that does not exist
var ErrNotFound = errors.New("not found")

// KV is the key-value backend every typed collection is stored in.
// Values are JSON documents; writes are last-writer-wins.
type KV interface {
	// Get returns the value stored at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Collection keys. Per-client collections append the client id.
const (
	keyClientMessages     = "timely_client_messages_"
	keyProjectState       = "timely_project_state_"
	keyConsultantMessages = "timely_consultant_messages_"
	KeyDocumentRequests   = "timely_document_requests"
	KeyAdminNotifications = "timely_admin_notifications"
	KeyAdminMessages      = "timely_admin_messages"
	KeyGlobalMessages     = "timely_global_messages"
)

// ClientMessagesKey is the key of a client's message collection
func ClientMessagesKey(clientID string) string { return keyClientMessages + clientID }

// ProjectStateKey is the key of a client's project view flags
func ProjectStateKey(clientID string) string { return keyProjectState + clientID }

// ConsultantMessagesKey is the key of a consultant's inbox projection
func ConsultantMessagesKey(email string) string { return keyConsultantMessages + email }

// loadJSON decodes the document at key into dest. A missing key leaves dest untouched.
func loadJSON(ctx context.Context, kv KV, key string, dest any) error {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// saveJSON encodes value and writes it at key
func saveJSON(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// loadList is loadJSON for array documents and never returns a nil slice
func loadList[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	var items []T
	if err := loadJSON(ctx, kv, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
