package timeline

import (
	"context"
	"errors"
	"time"

	"timely/internal/backend"
	"timely/internal/cache"
	"timely/internal/models"

	"github.com/rs/zerolog"
)

// ProfileAPI serves canonical client profiles
type ProfileAPI interface {
	ClientProfile(ctx context.Context, clientID string) (models.ClientProfile, error)
}

// Resolver builds the Scope of a client from its backend profile, caching profiles
// for a fixed TTL. A non-positive TTL disables caching.
type Resolver struct {
	api    ProfileAPI
	cache  *cache.Cache[models.ClientProfile]
	ttl    time.Duration
	logger zerolog.Logger
}

// NewResolver creates a scope resolver
func NewResolver(api ProfileAPI, profiles *cache.Cache[models.ClientProfile], ttl time.Duration, logger zerolog.Logger) *Resolver {
	if profiles == nil {
		profiles = cache.New[models.ClientProfile]()
	}
	return &Resolver{api: api, cache: profiles, ttl: ttl, logger: logger}
}

// Resolve returns the scope of clientID. When the profile cannot be fetched the scope
// falls back to the given email with no projects, which still matches audit records
// the client performed.
func (r *Resolver) Resolve(ctx context.Context, clientID, email string) Scope {
	scope := Scope{ClientID: clientID, Email: email}

	profile, ok := r.cache.Get(clientID)
	if !ok {
		var err error
		profile, err = r.api.ClientProfile(ctx, clientID)
		if err != nil {
			level := zerolog.WarnLevel
			if errors.Is(err, backend.ErrUnavailable) {
				level = zerolog.DebugLevel
			}
			r.logger.WithLevel(level).
				Err(err).
				Str("client_id", clientID).
				Msg("Failed to load client profile, using request scope")
			return scope
		}
		if r.ttl > 0 {
			r.cache.Set(clientID, profile, r.ttl)
		}
	}

	if profile.Email != "" {
		scope.Email = profile.Email
	}
	scope.ProjectIDs = append([]string(nil), profile.ProjectIDs...)
	return scope
}

// Invalidate drops the cached profile of a client
func (r *Resolver) Invalidate(clientID string) {
	r.cache.Delete(clientID)
}
