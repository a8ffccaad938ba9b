package app

import (
	"context"
	"fmt"

	"timely/internal/analytics"
	"timely/internal/backend"
	"timely/internal/cache"
	"timely/internal/clock"
	"timely/internal/config"
	"timely/internal/database"
	"timely/internal/email"
	"timely/internal/events"
	"timely/internal/messaging"
	"timely/internal/models"
	"timely/internal/notify"
	"timely/internal/requests"
	"timely/internal/store"
	"timely/internal/threads"
	"timely/internal/timeline"
	"timely/internal/timestamp"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// Storage is the key-value backend the stores share
type Storage struct {
	KV     store.KV
	DB     *sqlx.DB // nil when running on the in-memory store
	Driver string
}

// Close releases the database connection, if any
func (s Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// OpenStorage connects to databaseURL and prepares the kv table
func OpenStorage(ctx context.Context, databaseURL string) (Storage, error) {
	driver, _, err := database.ParseURL(databaseURL)
	if err != nil {
		return Storage{}, err
	}

	db, err := database.New(databaseURL)
	if err != nil {
		return Storage{}, err
	}

	kv, err := database.NewKVStore(db, driver)
	if err != nil {
		_ = db.Close()
		return Storage{}, err
	}
	if err := kv.CreateTables(ctx); err != nil {
		_ = db.Close()
		return Storage{}, fmt.Errorf("failed to prepare storage: %w", err)
	}

	return Storage{KV: kv, DB: db, Driver: driver}, nil
}

// MemoryStorage returns a non-persistent storage
func MemoryStorage() Storage {
	return Storage{KV: store.NewMemoryKV(), Driver: "memory"}
}

// App wires the stores and services of the portal together
type App struct {
	Messages      *store.MessageStore
	Requests      *store.RequestStore
	ProjectStates *store.ProjectStateStore
	Notifications *store.NotificationStore
	Inboxes       *store.InboxStore

	Analytics  *analytics.Service
	Backend    *backend.Client
	Mailbox    *messaging.Service
	Documents  *requests.Service
	Notifier   *notify.Notifier
	Dispatcher *events.Dispatcher
	Resolver   *timeline.Resolver
	Aggregator *timeline.Aggregator

	// Policy decides how unparsable timestamps sort
	Policy timestamp.Policy
	// TimelineLogger reports entries dropped or demoted while sorting
	TimelineLogger zerolog.Logger
}

// New builds the application on kv
func New(cfg *config.Config, kv store.KV, logger zerolog.Logger) *App {
	clk := clock.Real{}
	ids := clock.UUIDGenerator{}

	a := &App{
		Messages:      store.NewMessageStore(kv),
		Requests:      store.NewRequestStore(kv),
		ProjectStates: store.NewProjectStateStore(kv),
		Notifications: store.NewNotificationStore(kv, store.KeyAdminNotifications),
		Inboxes:       store.NewInboxStore(kv),
		Policy:        cfg.TimestampPolicy(),
	}

	mailer := email.NewEmailService(cfg.SendGridAPIKey, cfg.NotificationEmail, cfg.NotificationFromEmail)
	a.Notifier = notify.New(a.Notifications, mailer, clk, ids, logger.With().Str("component", "notify").Logger())
	a.Analytics = analytics.NewService(store.NewAnalyticsStore(kv), clk, logger.With().Str("component", "analytics").Logger())
	notifier := a.Analytics.CountNotifications(a.Notifier)

	a.Dispatcher = events.NewDispatcher(logger.With().Str("component", "events").Logger())
	messaging.RegisterProjections(a.Dispatcher, a.Inboxes, notifier)
	a.Analytics.Register(a.Dispatcher)

	indexer := threads.NewIndexer(a.Policy, cfg.PreviewLength, logger.With().Str("component", "threads").Logger())
	a.Mailbox = messaging.NewService(a.Messages, indexer, a.Dispatcher, clk, ids, logger.With().Str("component", "messaging").Logger())
	a.Documents = requests.NewService(a.Requests, notifier, clk, ids, logger.With().Str("component", "requests").Logger())

	timelineLogger := logger.With().Str("component", "timeline").Logger()
	a.TimelineLogger = timelineLogger
	a.Backend = backend.NewClient(cfg.BackendURL, cfg.BackendTimeoutDuration(), logger.With().Str("component", "backend").Logger())
	a.Resolver = timeline.NewResolver(a.Backend, cache.New[models.ClientProfile](), cfg.ScopeCacheTTL(), timelineLogger)

	feeds := []timeline.Feed{timeline.RequestFeed{Store: a.Requests}}
	if a.Backend.Configured() {
		feeds = timeline.DefaultFeeds(a.Backend, a.Requests, timelineLogger)
	} else {
		logger.Info().Msg("No BACKEND_URL configured, timeline uses document requests only")
	}
	a.Aggregator = timeline.NewAggregator(timelineLogger, feeds...)

	return a
}
