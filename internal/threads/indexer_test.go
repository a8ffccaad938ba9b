package threads

import (
	"fmt"
	"strings"
	"testing"

	"timely/internal/models"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.Participant{Name: "Alice Client", Email: "alice@x.com", Role: models.RoleClient}
	admin = models.Participant{Name: "Timely Admin", Email: "admin@timely.io", Role: models.RoleAdmin}
	carl  = models.Participant{Name: "Carl Consultant", Email: "carl@timely.io", Role: models.RoleConsultant}
)

func newTestIndexer(policy timestamp.Policy) *Indexer {
	return NewIndexer(policy, 0, zerolog.Nop())
}

func msg(id, thread, ts string) models.Message {
	return models.Message{
		ID:        id,
		ThreadID:  thread,
		From:      alice,
		To:        admin,
		Subject:   "Subject " + id,
		Body:      "Body " + id,
		Timestamp: ts,
	}
}

func TestBuild_Scenario(t *testing.T) {
	m1 := msg("m1", "t1", "2024-01-01T10:00Z")
	m2 := msg("m2", "t1", "2024-01-02T10:00Z")
	m2.Read = true
	m2.Starred = true

	threads := newTestIndexer(timestamp.PolicyEpoch).Build([]models.Message{m1, m2}, ViewInbox)

	require.Len(t, threads, 1)
	th := threads[0]
	assert.Equal(t, "t1", th.ID)
	assert.Equal(t, 1, th.UnreadCount)
	assert.True(t, th.Starred)
	assert.Equal(t, "2024-01-02T10:00Z", th.LastMessageTime)
	assert.Equal(t, "Subject m2", th.Subject)
	assert.Equal(t, "Body m2", th.LastMessage)
	assert.Equal(t, 2, th.MessageCount)
	assert.False(t, th.Archived)
}

func TestBuild_EmptyInput(t *testing.T) {
	ix := newTestIndexer(timestamp.PolicyEpoch)

	threads := ix.Build(nil, ViewInbox)
	assert.NotNil(t, threads)
	assert.Empty(t, threads)

	threads = ix.Build([]models.Message{}, ViewTrash)
	assert.NotNil(t, threads)
	assert.Empty(t, threads)
}

func TestBuild_SingletonThread(t *testing.T) {
	threads := newTestIndexer(timestamp.PolicyEpoch).Build([]models.Message{
		msg("m1", "t1", "2024-01-01T10:00:00Z"),
		msg("m2", "lonely", "2024-01-01T11:00:00Z"),
		msg("m3", "t1", "2024-01-01T09:00:00Z"),
	}, ViewInbox)

	require.Len(t, threads, 2)
	assert.Equal(t, "lonely", threads[0].ID)
	assert.Equal(t, 1, threads[0].MessageCount)
	assert.Equal(t, "t1", threads[1].ID)
	assert.Equal(t, "Subject m1", threads[1].Subject)
}

func TestBuild_ViewFilters(t *testing.T) {
	inboxMsg := msg("m1", "t-inbox", "2024-01-01T10:00:00Z")
	archivedMsg := msg("m2", "t-archived", "2024-01-02T10:00:00Z")
	archivedMsg.Archived = true
	deletedMsg := msg("m3", "t-trash", "2024-01-03T10:00:00Z")
	deletedMsg.Deleted = true
	deletedArchived := msg("m4", "t-trash-archived", "2024-01-04T10:00:00Z")
	deletedArchived.Deleted = true
	deletedArchived.Archived = true
	starredMsg := msg("m5", "t-starred", "2024-01-05T10:00:00Z")
	starredMsg.Starred = true
	starredArchived := msg("m6", "t-starred-archived", "2024-01-06T10:00:00Z")
	starredArchived.Starred = true
	starredArchived.Archived = true

	messages := []models.Message{inboxMsg, archivedMsg, deletedMsg, deletedArchived, starredMsg, starredArchived}

	tests := []struct {
		name     string
		view     View
		expected []string
	}{
		{name: "inbox excludes archived and deleted", view: ViewInbox, expected: []string{"t-starred", "t-inbox"}},
		{name: "starred keeps starred non-archived", view: ViewStarred, expected: []string{"t-starred"}},
		{name: "archived keeps archived non-deleted", view: ViewArchived, expected: []string{"t-starred-archived", "t-archived"}},
		{name: "trash keeps deleted only", view: ViewTrash, expected: []string{"t-trash-archived", "t-trash"}},
	}

	ix := newTestIndexer(timestamp.PolicyEpoch)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			threads := ix.Build(messages, tt.view)
			ids := make([]string, 0, len(threads))
			for _, th := range threads {
				ids = append(ids, th.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestBuild_TiesKeepInputOrder(t *testing.T) {
	first := msg("m1", "t1", "2024-01-01T10:00:00Z")
	second := msg("m2", "t1", "2024-01-01T10:00:00Z")
	other := msg("m3", "t2", "2024-01-01T10:00:00Z")

	threads := newTestIndexer(timestamp.PolicyEpoch).Build([]models.Message{first, other, second}, ViewInbox)

	require.Len(t, threads, 2)
	assert.Equal(t, "t1", threads[0].ID, "equal thread times keep grouping order")
	assert.Equal(t, "t2", threads[1].ID)
	assert.Equal(t, "Subject m1", threads[0].Subject, "equal message times keep the first message")
}

func TestBuild_Participants(t *testing.T) {
	m1 := msg("m1", "t1", "2024-01-01T10:00:00Z")
	m2 := msg("m2", "t1", "2024-01-01T11:00:00Z")
	m2.From, m2.To = admin, alice
	m3 := msg("m3", "t1", "2024-01-01T12:00:00Z")
	m3.From, m3.To = carl, alice

	threads := newTestIndexer(timestamp.PolicyEpoch).Build([]models.Message{m1, m2, m3}, ViewInbox)

	require.Len(t, threads, 1)
	assert.Equal(t, []models.Participant{alice, admin, carl}, threads[0].Participants)
}

func TestBuild_InvalidTimestamps(t *testing.T) {
	bad := msg("m1", "t-bad", "not-a-date")
	good := msg("m2", "t-good", "2024-01-01T10:00:00Z")
	mixedOld := msg("m3", "t-mixed", "2024-02-01T10:00:00Z")
	mixedBad := msg("m4", "t-mixed", "???")

	messages := []models.Message{bad, good, mixedOld, mixedBad}

	t.Run("epoch policy sorts invalid last", func(t *testing.T) {
		threads := newTestIndexer(timestamp.PolicyEpoch).Build(messages, ViewInbox)
		require.Len(t, threads, 3)
		assert.Equal(t, "t-mixed", threads[0].ID)
		assert.Equal(t, "2024-02-01T10:00:00Z", threads[0].LastMessageTime)
		assert.Equal(t, 2, threads[0].MessageCount)
		assert.Equal(t, "t-good", threads[1].ID)
		assert.Equal(t, "t-bad", threads[2].ID)
		assert.Equal(t, "not-a-date", threads[2].LastMessageTime)
	})

	t.Run("exclude policy drops invalid", func(t *testing.T) {
		threads := newTestIndexer(timestamp.PolicyExclude).Build(messages, ViewInbox)
		require.Len(t, threads, 2)
		assert.Equal(t, "t-mixed", threads[0].ID)
		assert.Equal(t, 1, threads[0].MessageCount)
		assert.Equal(t, "t-good", threads[1].ID)
	})

	t.Run("warning is logged", func(t *testing.T) {
		var buf strings.Builder
		ix := NewIndexer(timestamp.PolicyEpoch, 0, zerolog.New(&buf))
		ix.Build([]models.Message{bad}, ViewInbox)
		assert.Contains(t, buf.String(), "Unparsable message timestamp")
		assert.Contains(t, buf.String(), `"message_id":"m1"`)
	})
}

func TestBuild_Properties(t *testing.T) {
	var messages []models.Message
	for i := 0; i < 60; i++ {
		m := msg(fmt.Sprintf("m%d", i), fmt.Sprintf("t%d", i%7), fmt.Sprintf("2024-01-%02dT%02d:00:00Z", 1+i%28, i%24))
		m.Read = i%3 == 0
		m.Starred = i%11 == 0
		messages = append(messages, m)
	}

	ix := newTestIndexer(timestamp.PolicyEpoch)
	threads := ix.Build(messages, ViewInbox)

	distinct := map[string]int{}
	unread := map[string]int{}
	for _, m := range messages {
		distinct[m.ThreadID]++
		if !m.Read {
			unread[m.ThreadID]++
		}
	}

	assert.Len(t, threads, len(distinct))

	total := 0
	for i, th := range threads {
		total += th.MessageCount
		assert.Equal(t, distinct[th.ID], th.MessageCount)
		assert.Equal(t, unread[th.ID], th.UnreadCount)
		if i > 0 {
			prev, err := timestamp.Parse(threads[i-1].LastMessageTime)
			require.NoError(t, err)
			cur, err := timestamp.Parse(th.LastMessageTime)
			require.NoError(t, err)
			assert.False(t, cur.After(prev), "thread order must be non-increasing")
		}
	}
	assert.Equal(t, len(messages), total, "every message belongs to exactly one thread")

	assert.Equal(t, threads, ix.Build(messages, ViewInbox), "building is idempotent")
}

func TestBuild_PreviewTruncation(t *testing.T) {
	m := msg("m1", "t1", "2024-01-01T10:00:00Z")
	m.Body = "héllo   wörld\n" + strings.Repeat("x", 50)

	threads := NewIndexer(timestamp.PolicyEpoch, 12, zerolog.Nop()).Build([]models.Message{m}, ViewInbox)
	require.Len(t, threads, 1)
	assert.Equal(t, "héllo wörld ...", threads[0].LastMessage)
}

func TestSearch(t *testing.T) {
	threads := []models.Thread{
		{ID: "t1", Subject: "Quarterly TAX filing", LastMessage: "numbers attached", Participants: []models.Participant{alice}},
		{ID: "t2", Subject: "Kickoff", LastMessage: "See the INVOICE below", Participants: []models.Participant{admin}},
		{ID: "t3", Subject: "Hello", LastMessage: "hi", Participants: []models.Participant{carl}},
		{ID: "t4", Subject: "Straße project", LastMessage: "", Participants: nil},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "empty query", query: "  ", expected: []string{"t1", "t2", "t3", "t4"}},
		{name: "subject case insensitive", query: "tax", expected: []string{"t1"}},
		{name: "preview", query: "invoice", expected: []string{"t2"}},
		{name: "participant name", query: "CONSULTANT", expected: []string{"t3"}},
		{name: "participant email is not searched", query: "carl@", expected: []string{}},
		{name: "unicode folding", query: "STRASSE", expected: []string{"t4"}},
		{name: "no match", query: "zzz", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Search(threads, tt.query)
			ids := make([]string, 0, len(result))
			for _, th := range result {
				ids = append(ids, th.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCounts(t *testing.T) {
	m1 := msg("m1", "t1", "2024-01-01T10:00:00Z")
	m2 := msg("m2", "t1", "2024-01-02T10:00:00Z")
	m2.Starred = true
	m3 := msg("m3", "t2", "2024-01-03T10:00:00Z")
	m3.Read = true
	m4 := msg("m4", "t3", "2024-01-04T10:00:00Z")
	m4.Archived = true
	m5 := msg("m5", "t4", "2024-01-05T10:00:00Z")
	m5.Deleted = true

	counts := newTestIndexer(timestamp.PolicyEpoch).Counts([]models.Message{m1, m2, m3, m4, m5})

	assert.Equal(t, models.ViewCounts{
		InboxUnread: 2,
		Inbox:       2,
		Starred:     1,
		Archived:    1,
		Trash:       1,
	}, counts)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		value    string
		expected View
		ok       bool
	}{
		{"", ViewInbox, true},
		{"INBOX", ViewInbox, true},
		{"starred", ViewStarred, true},
		{"archived", ViewArchived, true},
		{" trash ", ViewTrash, true},
		{"sent", ViewInbox, false},
	}
	for _, tt := range tests {
		view, ok := ParseView(tt.value)
		assert.Equal(t, tt.expected, view, tt.value)
		assert.Equal(t, tt.ok, ok, tt.value)
	}
}
