package timeline

import (
	"context"
	"errors"
	"fmt"

	"timely/internal/models"

	"github.com/rs/zerolog"
)

// Feed is one independently fetchable source of timeline entries
type Feed interface {
	Source() models.Source
	Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error)
}

// AuditAPI serves the backend audit log
type AuditAPI interface {
	AuditLogs(ctx context.Context) ([]models.AuditRecord, error)
}

// HoursAPI serves hours logged against projects
type HoursAPI interface {
	HoursLogs(ctx context.Context, projectIDs []string) ([]models.HoursLog, error)
}

// CommentAPI serves project comments
type CommentAPI interface {
	ProjectComments(ctx context.Context, projectID string) ([]models.ProjectComment, error)
}

// AttachmentAPI serves project attachments
type AttachmentAPI interface {
	ProjectAttachments(ctx context.Context, projectID string) ([]models.ProjectAttachment, error)
}

// RequestLister lists the document requests of a client
type RequestLister interface {
	ListForClient(ctx context.Context, clientID string) ([]models.DocumentRequest, error)
}

// AuditFeed reads the audit log
type AuditFeed struct {
	API AuditAPI
}

func (f AuditFeed) Source() models.Source { return models.SourceAudit }

func (f AuditFeed) Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error) {
	records, err := f.API.AuditLogs(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAudit(records, scope), nil
}

// HoursFeed reads hours logged on the client's projects
type HoursFeed struct {
	API HoursAPI
}

func (f HoursFeed) Source() models.Source { return models.SourceHours }

func (f HoursFeed) Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error) {
	if len(scope.ProjectIDs) == 0 {
		return []models.TimelineEntry{}, nil
	}
	logs, err := f.API.HoursLogs(ctx, scope.ProjectIDs)
	if err != nil {
		return nil, err
	}
	return NormalizeHours(logs, scope), nil
}

// CommentFeed reads comments on each of the client's projects. A project that fails
// is skipped with a warning; the feed fails only when every project does.
type CommentFeed struct {
	API    CommentAPI
	Logger zerolog.Logger
}

func (f CommentFeed) Source() models.Source { return models.SourceComment }

func (f CommentFeed) Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error) {
	all, err := fetchPerProject(ctx, scope.ProjectIDs, f.API.ProjectComments, f.Logger.With().Str("source", string(models.SourceComment)).Logger())
	if err != nil {
		return nil, err
	}
	return NormalizeComments(all, scope), nil
}

// AttachmentFeed reads files attached to each of the client's projects, degrading per
// project like CommentFeed
type AttachmentFeed struct {
	API    AttachmentAPI
	Logger zerolog.Logger
}

func (f AttachmentFeed) Source() models.Source { return models.SourceAttachment }

func (f AttachmentFeed) Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error) {
	all, err := fetchPerProject(ctx, scope.ProjectIDs, f.API.ProjectAttachments, f.Logger.With().Str("source", string(models.SourceAttachment)).Logger())
	if err != nil {
		return nil, err
	}
	return NormalizeAttachments(all, scope), nil
}

// fetchPerProject calls fetch for every project and concatenates what succeeded. The
// joined errors are returned only when no project could be read.
func fetchPerProject[T any](ctx context.Context, projectIDs []string, fetch func(context.Context, string) ([]T, error), logger zerolog.Logger) ([]T, error) {
	var (
		all  []T
		errs []error
	)
	for _, projectID := range projectIDs {
		items, err := fetch(ctx, projectID)
		if err != nil {
			logger.Warn().Err(err).Str("project_id", projectID).Msg("Skipping project in timeline feed")
			errs = append(errs, fmt.Errorf("project %s: %w", projectID, err))
			continue
		}
		all = append(all, items...)
	}
	if len(errs) > 0 && len(errs) == len(projectIDs) {
		return nil, errors.Join(errs...)
	}
	return all, nil
}

// RequestFeed derives entries from the locally stored document requests
type RequestFeed struct {
	Store RequestLister
}

func (f RequestFeed) Source() models.Source { return models.SourceRequest }

func (f RequestFeed) Fetch(ctx context.Context, scope Scope) ([]models.TimelineEntry, error) {
	requests, err := f.Store.ListForClient(ctx, scope.ClientID)
	if err != nil {
		return nil, err
	}
	return NormalizeRequests(requests, scope), nil
}

// BackendAPI is everything the backend-backed feeds need
type BackendAPI interface {
	AuditAPI
	HoursAPI
	CommentAPI
	AttachmentAPI
}

// DefaultFeeds returns the feeds in their merge order. Dedicated feeds come before the
// audit log, so when both report the same event the dedicated entry is kept.
func DefaultFeeds(api BackendAPI, requests RequestLister, logger zerolog.Logger) []Feed {
	return []Feed{
		HoursFeed{API: api},
		CommentFeed{API: api, Logger: logger},
		AttachmentFeed{API: api, Logger: logger},
		RequestFeed{Store: requests},
		AuditFeed{API: api},
	}
}
