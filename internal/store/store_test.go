package store

import (
	"context"
	"errors"
	"testing"

	"timely/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Put(context.Context, string, []byte) error        { return f.err }
func (f failingKV) Delete(context.Context, string) error             { return f.err }

func boolPtr(b bool) *bool { return &b }

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"a":1}`)
	require.NoError(t, kv.Put(ctx, "k", value))
	value[0] = 'X'

	got, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got), "stored value must not alias the caller's slice")
	assert.Equal(t, 1, kv.Len())

	require.NoError(t, kv.Delete(ctx, "k"))
	_, ok, _ = kv.Get(ctx, "k")
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "timely_client_messages_c1", ClientMessagesKey("c1"))
	assert.Equal(t, "timely_project_state_c1", ProjectStateKey("c1"))
	assert.Equal(t, "timely_consultant_messages_carl@x.com", ConsultantMessagesKey("carl@x.com"))
	assert.Equal(t, "timely_analytics_2024-03-10", AnalyticsDayKey("2024-03-10"))
}

func TestAnalyticsStore(t *testing.T) {
	ctx := context.Background()
	s := NewAnalyticsStore(NewMemoryKV())

	day, err := s.Day(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Empty(t, day)

	require.NoError(t, s.Add(ctx, "2024-03-10", "message_sent", 2))
	require.NoError(t, s.Add(ctx, "2024-03-10", "message_sent", 1))
	require.NoError(t, s.Add(ctx, "2024-03-11", "notification", 1))

	day, err = s.Day(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"message_sent": 3}, day)
}

func TestMessageStore(t *testing.T) {
	ctx := context.Background()
	s := NewMessageStore(NewMemoryKV())

	messages, err := s.List(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)

	require.NoError(t, s.Append(ctx, "c1", models.Message{ID: "m1", ThreadID: "t1"}))
	require.NoError(t, s.Append(ctx, "c1", models.Message{ID: "m2", ThreadID: "t1"}))
	require.NoError(t, s.Append(ctx, "c2", models.Message{ID: "m3", ThreadID: "t9"}))

	messages, err = s.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)

	got, err := s.Get(ctx, "c2", "m3")
	require.NoError(t, err)
	assert.Equal(t, "t9", got.ThreadID)

	_, err = s.Get(ctx, "c1", "m3")
	assert.True(t, errors.Is(err, ErrNotFound))

	changed, err := s.Update(ctx, "c1",
		func(m *models.Message) bool { return m.ThreadID == "t1" },
		func(m *models.Message) bool { return models.MessageFlagPatch{Read: boolPtr(true)}.Apply(m) })
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = s.Update(ctx, "c1",
		func(m *models.Message) bool { return m.ThreadID == "t1" },
		func(m *models.Message) bool { return models.MessageFlagPatch{Read: boolPtr(true)}.Apply(m) })
	require.NoError(t, err)
	assert.Equal(t, 0, changed, "re-applying the same flag changes nothing")

	removed, err := s.Remove(ctx, "c1", func(m *models.Message) bool { return m.ID == "m1" })
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	messages, err = s.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m2", messages[0].ID)
	assert.True(t, messages[0].Read)
}

func TestMessageStore_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := NewMessageStore(failingKV{err: boom})

	_, err := s.List(ctx, "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "timely_client_messages_c1")

	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, ClientMessagesKey("c1"), []byte("not json")))
	_, err = NewMessageStore(kv).List(ctx, "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestInboxStore(t *testing.T) {
	ctx := context.Background()
	s := NewInboxStore(NewMemoryKV())

	require.NoError(t, s.Append(ctx, KeyAdminMessages, models.Message{ID: "m1"}))
	require.NoError(t, s.Append(ctx, KeyAdminMessages, models.Message{ID: "m2"}))

	messages, err := s.List(ctx, KeyAdminMessages)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	messages, err = s.List(ctx, KeyGlobalMessages)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRequestStore(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore(NewMemoryKV())

	require.NoError(t, s.Save(ctx, []models.DocumentRequest{
		{ID: "r1", ClientID: "c1"},
		{ID: "r2", ClientID: "c2"},
		{ID: "r3", ClientID: "c1"},
	}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := s.ListForClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "r1", mine[0].ID)
	assert.Equal(t, "r3", mine[1].ID)

	none, err := s.ListForClient(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectStateStore(t *testing.T) {
	ctx := context.Background()
	s := NewProjectStateStore(NewMemoryKV())

	state, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, state)

	flags, err := s.SetFlags(ctx, "c1", "p1", models.ProjectFlagPatch{Starred: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectFlags{Starred: true}, flags)

	flags, err = s.SetFlags(ctx, "c1", "p1", models.ProjectFlagPatch{Read: boolPtr(true), Flagged: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectFlags{Read: true, Starred: true, Flagged: true}, flags)

	state, err = s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]models.ProjectFlags{"p1": {Read: true, Starred: true, Flagged: true}}, state)

	other, err := s.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other, "state is scoped per client")
}

func TestNotificationStore(t *testing.T) {
	ctx := context.Background()
	s := NewNotificationStore(NewMemoryKV(), KeyAdminNotifications)

	require.NoError(t, s.Append(ctx, models.Notification{ID: "n1", Type: models.NotificationDocumentUploaded}))
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].ID)
}
