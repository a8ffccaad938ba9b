package store

import (
	"context"

	"timely/internal/models"
)

// RequestStore holds the document requests of every client in one shared collection
type RequestStore struct {
	kv KV
}

// NewRequestStore creates a request store on kv
func NewRequestStore(kv KV) *RequestStore {
	return &RequestStore{kv: kv}
}

// All returns the whole shared collection
func (s *RequestStore) All(ctx context.Context) ([]models.DocumentRequest, error) {
	return loadList[models.DocumentRequest](ctx, s.kv, KeyDocumentRequests)
}

// ListForClient returns the requests addressed to clientID
func (s *RequestStore) ListForClient(ctx context.Context, clientID string) ([]models.DocumentRequest, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.DocumentRequest, 0, len(all))
	for _, r := range all {
		if r.ClientID == clientID {
			result = append(result, r)
		}
	}
	return result, nil
}

// Save replaces the shared collection
func (s *RequestStore) Save(ctx context.Context, requests []models.DocumentRequest) error {
	return saveJSON(ctx, s.kv, KeyDocumentRequests, requests)
}
