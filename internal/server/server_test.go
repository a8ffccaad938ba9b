package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timely/internal/app"
	"timely/internal/config"
	"timely/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{Version: "test", InvalidTimestampPolicy: "epoch", PreviewLength: 100}
	a := app.New(cfg, app.MemoryStorage().KV, zerolog.Nop())
	s := New(cfg, nil, "memory", a, zerolog.Nop())
	s.Initialize()
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"db health without database", http.MethodGet, "/healthz/db", http.StatusServiceUnavailable},
		{"root", http.MethodGet, "/api/", http.StatusOK},
		{"threads", http.MethodGet, "/api/clients/c1/threads", http.StatusOK},
		{"counts", http.MethodGet, "/api/clients/c1/threads/counts", http.StatusOK},
		{"unknown thread", http.MethodGet, "/api/clients/c1/threads/t9", http.StatusNotFound},
		{"timeline", http.MethodGet, "/api/clients/c1/timeline", http.StatusOK},
		{"requests", http.MethodGet, "/api/clients/c1/requests", http.StatusOK},
		{"request summary", http.MethodGet, "/api/clients/c1/requests/summary", http.StatusOK},
		{"project state", http.MethodGet, "/api/clients/c1/project-state", http.StatusOK},
		{"notifications", http.MethodGet, "/api/admin/notifications", http.StatusOK},
		{"analytics", http.MethodGet, "/api/admin/analytics?period=last_7_days", http.StatusOK},
		{"analytics bad period", http.MethodGet, "/api/admin/analytics?period=forever", http.StatusBadRequest},
		{"swagger disabled", http.MethodGet, "/swagger/index.html", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, "")
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestSendThenListThroughRouter(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/clients/c1/messages",
		`{"from":{"name":"Cleo","email":"c@x.com","role":"client"},"to":{"name":"Ada","email":"a@x.com","role":"admin"},"subject":"Hello","body":"First message"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sent models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	require.NotNil(t, sent.Message)

	rec = do(t, s, http.MethodGet, "/api/clients/c1/threads", "")
	var list models.ThreadListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Threads, 1)
	assert.Equal(t, sent.Message.ThreadID, list.Threads[0].ID)

	rec = do(t, s, http.MethodGet, "/api/admin/notifications", "")
	var notifications models.NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	assert.Equal(t, 1, notifications.Unread)

	rec = do(t, s, http.MethodGet, "/api/admin/analytics?period=today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var usage models.AnalyticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usage))
	assert.Equal(t, 1, usage.Summary.MessagesSent)
	assert.Equal(t, 1, usage.Summary.ClientMessages)
	assert.Equal(t, 1, usage.Summary.NotificationsSent)

	rec = do(t, s, http.MethodPost, "/api/requests/missing/fulfill", `{"documentId":"d1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var fulfilled models.FulfillResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fulfilled))
	assert.False(t, fulfilled.Updated)
}
