package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"timely/internal/events"
	"timely/internal/messaging"
	"timely/internal/notify"
	"timely/internal/requests"
	"timely/internal/store"
	"timely/internal/testutil"
	"timely/internal/threads"
	"timely/internal/timestamp"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type deps struct {
	kv            *store.MemoryKV
	messages      *store.MessageStore
	requests      *store.RequestStore
	states        *store.ProjectStateStore
	notifications *store.NotificationStore
	mailbox       *messaging.Service
	documents     *requests.Service
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	kv := store.NewMemoryKV()
	d := &deps{
		kv:            kv,
		messages:      store.NewMessageStore(kv),
		requests:      store.NewRequestStore(kv),
		states:        store.NewProjectStateStore(kv),
		notifications: store.NewNotificationStore(kv, store.KeyAdminNotifications),
	}

	clk := testutil.FixedClock()
	notifier := notify.New(d.notifications, nil, clk, testutil.NewStubIDGenerator("ntf"), zerolog.Nop())
	dispatcher := events.NewDispatcher(zerolog.Nop())
	messaging.RegisterProjections(dispatcher, store.NewInboxStore(kv), notifier)

	indexer := threads.NewIndexer(timestamp.PolicyEpoch, 0, zerolog.Nop())
	d.mailbox = messaging.NewService(d.messages, indexer, dispatcher, clk, testutil.NewStubIDGenerator("msg"), zerolog.Nop())
	d.documents = requests.NewService(d.requests, notifier, clk, testutil.NewStubIDGenerator("req"), zerolog.Nop())
	return d
}

// newContext builds an echo context for method/target with path params given as name, value pairs
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
