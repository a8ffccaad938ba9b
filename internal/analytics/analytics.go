package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"timely/internal/clock"
	"timely/internal/events"
	"timely/internal/models"
	"timely/internal/store"

	"github.com/rs/zerolog"
)

// EventType constants for tracking different events
const (
	EventMessageSent      = "message_sent"
	EventClientMessage    = "client_message"
	EventDocumentUploaded = "document_uploaded"
	EventNotification     = "notification"
)

// Period constants for analytics queries
const (
	PeriodToday      = "today"
	PeriodYesterday  = "yesterday"
	PeriodLast7Days  = "last_7_days"
	PeriodLast30Days = "last_30_days"
)

// SubscriberAnalytics is the dispatcher subscription name of the message counter
const SubscriberAnalytics = "analytics"

const dateLayout = "2006-01-02"

// Notifier delivers admin notifications
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Service handles analytics tracking and retrieval
type Service struct {
	store  *store.AnalyticsStore
	clock  clock.Clock
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewService creates a new analytics service
func NewService(s *store.AnalyticsStore, clk clock.Clock, logger zerolog.Logger) *Service {
	return &Service{store: s, clock: clk, logger: logger}
}

// TrackEvent adds count to today's total of eventType
func (s *Service) TrackEvent(ctx context.Context, eventType string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Now().UTC().Format(dateLayout)
	if err := s.store.Add(ctx, today, eventType, count); err != nil {
		return fmt.Errorf("failed to track event: %w", err)
	}
	return nil
}

// Register subscribes the message counters to d
func (s *Service) Register(d *events.Dispatcher) {
	d.Subscribe(SubscriberAnalytics, func(ctx context.Context, evt events.MessageSent) error {
		if err := s.TrackEvent(ctx, EventMessageSent, 1); err != nil {
			return err
		}
		if evt.Message.From.Role == models.RoleClient {
			return s.TrackEvent(ctx, EventClientMessage, 1)
		}
		return nil
	})
}

// CountNotifications wraps next so every delivered notification is counted
func (s *Service) CountNotifications(next Notifier) Notifier {
	return &countingNotifier{next: next, service: s}
}

type countingNotifier struct {
	next    Notifier
	service *Service
}

func (c *countingNotifier) Notify(ctx context.Context, n models.Notification) error {
	if err := c.next.Notify(ctx, n); err != nil {
		return err
	}

	if err := c.service.TrackEvent(ctx, EventNotification, 1); err != nil {
		c.service.logger.Warn().Err(err).Str("event", EventNotification).Msg("Failed to track analytics event")
	}
	if n.Type == models.NotificationDocumentUploaded {
		if err := c.service.TrackEvent(ctx, EventDocumentUploaded, 1); err != nil {
			c.service.logger.Warn().Err(err).Str("event", EventDocumentUploaded).Msg("Failed to track analytics event")
		}
	}
	return nil
}

// ValidPeriod reports whether period is a known summary period
func ValidPeriod(period string) bool {
	switch period {
	case PeriodToday, PeriodYesterday, PeriodLast7Days, PeriodLast30Days:
		return true
	}
	return false
}

// GetSummary retrieves the analytics summary for a time period. Unknown periods
// fall back to today.
func (s *Service) GetSummary(ctx context.Context, period string) (*models.AnalyticsSummary, error) {
	now := s.clock.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var startDate, endDate time.Time
	switch period {
	case PeriodYesterday:
		startDate = midnight.AddDate(0, 0, -1)
		endDate = midnight.Add(-time.Nanosecond)
	case PeriodLast7Days:
		startDate = now.AddDate(0, 0, -7)
		endDate = now
	case PeriodLast30Days:
		startDate = now.AddDate(0, 0, -30)
		endDate = now
	default:
		period = PeriodToday
		startDate = midnight
		endDate = now
	}

	summary := &models.AnalyticsSummary{
		Period:    period,
		StartDate: startDate,
		EndDate:   endDate,
		Events:    map[string]int{},
	}

	last := endDate.Format(dateLayout)
	for day := startDate; day.Format(dateLayout) <= last; day = day.AddDate(0, 0, 1) {
		counts, err := s.store.Day(ctx, day.Format(dateLayout))
		if err != nil {
			return nil, fmt.Errorf("failed to get analytics summary: %w", err)
		}
		for event, total := range counts {
			summary.Events[event] += total
		}
	}

	summary.MessagesSent = summary.Events[EventMessageSent]
	summary.ClientMessages = summary.Events[EventClientMessage]
	summary.DocumentsUploaded = summary.Events[EventDocumentUploaded]
	summary.NotificationsSent = summary.Events[EventNotification]

	return summary, nil
}
