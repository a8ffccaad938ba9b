package notify

import (
	"context"
	"fmt"

	"timely/internal/clock"
	"timely/internal/models"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
)

// Store persists notification records
type Store interface {
	Append(ctx context.Context, n models.Notification) error
}

// Mailer optionally forwards notifications by email
type Mailer interface {
	Enabled() bool
	SendNotificationEmail(ctx context.Context, n models.Notification) error
}

// Notifier records admin notifications and mails them when email is configured.
// Delivery is best effort: email failures are logged, never returned.
type Notifier struct {
	store  Store
	mailer Mailer
	clock  clock.Clock
	ids    clock.IDGenerator
	logger zerolog.Logger
}

// New creates a notifier. mailer may be nil.
func New(store Store, mailer Mailer, clk clock.Clock, ids clock.IDGenerator, logger zerolog.Logger) *Notifier {
	return &Notifier{store: store, mailer: mailer, clock: clk, ids: ids, logger: logger}
}

// Notify stamps n with an id and creation time when missing, stores it and emails it
func (nt *Notifier) Notify(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = nt.ids.New()
	}
	if n.CreatedAt == "" {
		n.CreatedAt = timestamp.Format(nt.clock.Now())
	}

	if err := nt.store.Append(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification %s: %w", n.ID, err)
	}

	nt.logger.Info().
		Str("notification_id", n.ID).
		Str("type", n.Type).
		Str("client_id", n.ClientID).
		Msg("Notification recorded")

	if nt.mailer != nil && nt.mailer.Enabled() {
		if err := nt.mailer.SendNotificationEmail(ctx, n); err != nil {
			nt.logger.Warn().
				Err(err).
				Str("notification_id", n.ID).
				Msg("Failed to email notification")
		}
	}
	return nil
}
