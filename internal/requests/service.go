package requests

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"timely/internal/clock"
	"timely/internal/models"
	"timely/internal/store"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
)

// Store is the shared document request collection
type Store interface {
	All(ctx context.Context) ([]models.DocumentRequest, error)
	Save(ctx context.Context, requests []models.DocumentRequest) error
}

// Notifier delivers admin notifications
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Service manages the client side of document requests
type Service struct {
	store    Store
	notifier Notifier
	clock    clock.Clock
	ids      clock.IDGenerator
	logger   zerolog.Logger
}

// NewService creates a document request service. notifier may be nil.
func NewService(s Store, notifier Notifier, clk clock.Clock, ids clock.IDGenerator, logger zerolog.Logger) *Service {
	return &Service{store: s, notifier: notifier, clock: clk, ids: ids, logger: logger}
}

// Fulfill records the client's upload against requestID and marks it uploaded. Any
// current status may be fulfilled again; a previous upload and its review move into
// History so the timeline keeps them. An unknown id returns (nil, false, nil) and
// leaves the collection untouched.
func (s *Service) Fulfill(ctx context.Context, requestID string, upload models.Upload) (*models.DocumentRequest, bool, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load document requests: %w", err)
	}

	idx := slices.IndexFunc(all, func(r models.DocumentRequest) bool { return r.ID == requestID })
	if idx < 0 {
		s.logger.Warn().Str("request_id", requestID).Msg("Fulfill for unknown document request")
		return nil, false, nil
	}

	now := timestamp.Format(s.clock.Now())
	r := &all[idx]
	previous := r.Status
	archiveRound(r)
	r.Status = models.RequestUploaded
	r.UploadedDocumentID = upload.DocumentID
	r.UploadedDocumentName = upload.DocumentName
	r.UploadedBy = upload.UploadedBy
	r.UploadedAt = now
	r.UpdatedAt = now

	if err := s.store.Save(ctx, all); err != nil {
		return nil, false, fmt.Errorf("failed to save document requests: %w", err)
	}

	updated := *r
	s.logger.Info().
		Str("request_id", requestID).
		Str("client_id", updated.ClientID).
		Str("previous_status", previous).
		Str("document_id", upload.DocumentID).
		Msg("Document request fulfilled")

	s.notifyUploaded(ctx, updated)
	return &updated, true, nil
}

// archiveRound moves the current upload and review of r into its history and clears
// them. Requests without an upload are left alone.
func archiveRound(r *models.DocumentRequest) {
	if r.UploadedAt == "" && r.ReviewedAt == "" {
		return
	}
	r.History = append(r.History, models.RequestRound{
		Status:               r.Status,
		UploadedDocumentID:   r.UploadedDocumentID,
		UploadedDocumentName: r.UploadedDocumentName,
		UploadedAt:           r.UploadedAt,
		UploadedBy:           r.UploadedBy,
		ReviewedAt:           r.ReviewedAt,
		ReviewedBy:           r.ReviewedBy,
		ReviewNotes:          r.ReviewNotes,
	})
	r.ReviewedAt = ""
	r.ReviewedBy = ""
	r.ReviewNotes = ""
}

func (s *Service) notifyUploaded(ctx context.Context, r models.DocumentRequest) {
	if s.notifier == nil {
		return
	}
	n := models.Notification{
		Type:      models.NotificationDocumentUploaded,
		Title:     "Document uploaded",
		Message:   fmt.Sprintf("%s was uploaded for %s", r.UploadedDocumentName, r.DocumentName),
		ClientID:  r.ClientID,
		RequestID: r.ID,
		CreatedAt: r.UploadedAt,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("request_id", r.ID).Msg("Failed to notify admin of upload")
	}
}

// List returns the requests of clientID, newest first, optionally restricted to one status
func (s *Service) List(ctx context.Context, clientID, status string) ([]models.DocumentRequest, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document requests: %w", err)
	}

	result := make([]models.DocumentRequest, 0, len(all))
	for _, r := range all {
		if r.ClientID != clientID {
			continue
		}
		if status != "" && !strings.EqualFold(r.Status, status) {
			continue
		}
		result = append(result, r)
	}

	slices.SortStableFunc(result, func(a, b models.DocumentRequest) int {
		at, _ := timestamp.Parse(a.CreatedAt)
		bt, _ := timestamp.Parse(b.CreatedAt)
		return bt.Compare(at)
	})
	return result, nil
}

// Get returns one request by id
func (s *Service) Get(ctx context.Context, requestID string) (*models.DocumentRequest, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document requests: %w", err)
	}
	for _, r := range all {
		if r.ID == requestID {
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

// Summary counts the requests of clientID per status. A pending request whose due date
// has passed counts as overdue.
func (s *Service) Summary(ctx context.Context, clientID string) (models.RequestSummary, error) {
	mine, err := s.List(ctx, clientID, "")
	if err != nil {
		return models.RequestSummary{}, err
	}

	now := s.clock.Now()
	summary := models.RequestSummary{
		Total: len(mine),
		ByStatus: map[string]int{
			models.RequestPending:  0,
			models.RequestUploaded: 0,
			models.RequestApproved: 0,
			models.RequestRejected: 0,
		},
	}
	for _, r := range mine {
		summary.ByStatus[r.Status]++
		if r.Status != models.RequestPending || r.DueDate == "" {
			continue
		}
		due, err := timestamp.Parse(r.DueDate)
		if err != nil {
			continue
		}
		if due.Before(now) {
			summary.OverduePending++
		}
	}
	return summary, nil
}

// ErrInvalidRequest is returned by Import for records missing required fields
var ErrInvalidRequest = errors.New("invalid document request")

// Import adds requests to the shared collection, replacing any with the same id.
// Missing ids, statuses, priorities and stamps are filled in.
func (s *Service) Import(ctx context.Context, incoming []models.DocumentRequest) (int, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load document requests: %w", err)
	}

	now := timestamp.Format(s.clock.Now())
	for i, r := range incoming {
		if r.ClientID == "" || r.DocumentName == "" {
			return 0, fmt.Errorf("%w: record %d needs clientId and documentName", ErrInvalidRequest, i)
		}
		if r.ID == "" {
			r.ID = s.ids.New()
		}
		if r.Status == "" {
			r.Status = models.RequestPending
		}
		if r.Priority == "" {
			r.Priority = models.PriorityMedium
		}
		if r.CreatedAt == "" {
			r.CreatedAt = now
		}
		if r.UpdatedAt == "" {
			r.UpdatedAt = r.CreatedAt
		}

		if idx := slices.IndexFunc(all, func(existing models.DocumentRequest) bool { return existing.ID == r.ID }); idx >= 0 {
			all[idx] = r
		} else {
			all = append(all, r)
		}
	}

	if err := s.store.Save(ctx, all); err != nil {
		return 0, fmt.Errorf("failed to save document requests: %w", err)
	}
	return len(incoming), nil
}
