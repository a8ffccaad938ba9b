package store

import (
	"context"

	"timely/internal/models"
)

// ProjectStateStore holds the per-client project view flags
type ProjectStateStore struct {
	kv KV
}

// NewProjectStateStore creates a project state store on kv
func NewProjectStateStore(kv KV) *ProjectStateStore {
	return &ProjectStateStore{kv: kv}
}

// Get returns the flags of every project the client has touched
func (s *ProjectStateStore) Get(ctx context.Context, clientID string) (map[string]models.ProjectFlags, error) {
	state := map[string]models.ProjectFlags{}
	if err := loadJSON(ctx, s.kv, ProjectStateKey(clientID), &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = map[string]models.ProjectFlags{}
	}
	return state, nil
}

// SetFlags applies patch to one project's flags and returns the result
func (s *ProjectStateStore) SetFlags(ctx context.Context, clientID, projectID string, patch models.ProjectFlagPatch) (models.ProjectFlags, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return models.ProjectFlags{}, err
	}

	flags := patch.Apply(state[projectID])
	state[projectID] = flags
	if err := saveJSON(ctx, s.kv, ProjectStateKey(clientID), state); err != nil {
		return models.ProjectFlags{}, err
	}
	return flags, nil
}
