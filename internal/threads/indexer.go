package threads

import (
	"slices"
	"strings"
	"time"

	"timely/internal/models"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// View selects which messages a mailbox shows
type View string

const (
	ViewInbox    View = "inbox"
	ViewStarred  View = "starred"
	ViewArchived View = "archived"
	ViewTrash    View = "trash"
)

// DefaultPreviewLength is the number of runes kept in Thread.LastMessage
const DefaultPreviewLength = 100

// ParseView maps a query value onto a View. ok is false for unknown values.
func ParseView(value string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(value))) {
	case "", ViewInbox:
		return ViewInbox, true
	case ViewStarred:
		return ViewStarred, true
	case ViewArchived:
		return ViewArchived, true
	case ViewTrash:
		return ViewTrash, true
	default:
		return ViewInbox, false
	}
}

// Indexer turns a flat message list into mailbox threads
type Indexer struct {
	Policy        timestamp.Policy
	PreviewLength int
	Logger        zerolog.Logger
}

// NewIndexer creates an indexer with the given timestamp policy
func NewIndexer(policy timestamp.Policy, previewLength int, logger zerolog.Logger) *Indexer {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	return &Indexer{
		Policy:        policy,
		PreviewLength: previewLength,
		Logger:        logger,
	}
}

// group accumulates one thread while scanning
type group struct {
	thread   models.Thread
	latest   time.Time
	hasValue bool
	seen     map[models.Participant]struct{}
}

// Build groups the messages visible in view into threads, most recent first.
// The input is not modified and the result is never nil.
func (ix *Indexer) Build(messages []models.Message, view View) []models.Thread {
	groups := make(map[string]*group)
	var order []string

	for i := range messages {
		msg := &messages[i]
		if !visibleIn(msg, view) {
			continue
		}

		ts, keep, err := ix.Policy.Resolve(msg.Timestamp)
		if err != nil {
			ix.Logger.Warn().
				Err(err).
				Str("message_id", msg.ID).
				Str("thread_id", msg.ThreadID).
				Str("policy", string(ix.Policy)).
				Msg("Unparsable message timestamp")
		}
		if !keep {
			continue
		}

		g, ok := groups[msg.ThreadID]
		if !ok {
			g = &group{
				thread: models.Thread{
					ID:           msg.ThreadID,
					Participants: []models.Participant{},
					Archived:     true,
				},
				seen: make(map[models.Participant]struct{}),
			}
			groups[msg.ThreadID] = g
			order = append(order, msg.ThreadID)
		}

		g.add(msg, ts, ix.previewLength())
	}

	result := make([]models.Thread, 0, len(order))
	latest := make(map[string]time.Time, len(order))
	for _, id := range order {
		g := groups[id]
		if view == ViewStarred && !g.thread.Starred {
			continue
		}
		result = append(result, g.thread)
		latest[id] = g.latest
	}

	// Stable: equal times keep first-appearance order
	slices.SortStableFunc(result, func(a, b models.Thread) int {
		return latest[b.ID].Compare(latest[a.ID])
	})

	return result
}

func (g *group) add(msg *models.Message, ts time.Time, previewLength int) {
	t := &g.thread
	t.MessageCount++
	if !msg.Read {
		t.UnreadCount++
	}
	if msg.Starred {
		t.Starred = true
	}
	if !msg.Archived {
		t.Archived = false
	}

	for _, p := range []models.Participant{msg.From, msg.To} {
		if p == (models.Participant{}) {
			continue
		}
		if _, dup := g.seen[p]; dup {
			continue
		}
		g.seen[p] = struct{}{}
		t.Participants = append(t.Participants, p)
	}

	// Strictly later only, so ties keep the earliest message in input order
	if !g.hasValue || ts.After(g.latest) {
		g.hasValue = true
		g.latest = ts
		t.Subject = msg.Subject
		t.LastMessage = preview(msg.Body, previewLength)
		t.LastMessageTime = msg.Timestamp
	}
}

func (ix *Indexer) previewLength() int {
	if ix.PreviewLength <= 0 {
		return DefaultPreviewLength
	}
	return ix.PreviewLength
}

// visibleIn applies the view filter to a single message
func visibleIn(msg *models.Message, view View) bool {
	if view == ViewTrash {
		return msg.Deleted
	}
	if msg.Deleted {
		return false
	}
	if view == ViewArchived {
		return msg.Archived
	}
	return !msg.Archived
}

func preview(body string, limit int) string {
	text := strings.Join(strings.Fields(body), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// Search keeps the threads whose subject, preview or any participant name contains
// query, ignoring case. An empty query returns threads unchanged.
func Search(threads []models.Thread, query string) []models.Thread {
	query = strings.TrimSpace(query)
	if query == "" {
		return threads
	}

	folder := cases.Fold()
	needle := folder.String(query)
	contains := func(s string) bool {
		return s != "" && strings.Contains(folder.String(s), needle)
	}

	result := make([]models.Thread, 0, len(threads))
	for _, t := range threads {
		if contains(t.Subject) || contains(t.LastMessage) {
			result = append(result, t)
			continue
		}
		for _, p := range t.Participants {
			if contains(p.Name) {
				result = append(result, t)
				break
			}
		}
	}
	return result
}

// Counts computes the badge counts of every view from one message list
func (ix *Indexer) Counts(messages []models.Message) models.ViewCounts {
	quiet := &Indexer{Policy: ix.Policy, PreviewLength: ix.PreviewLength, Logger: zerolog.Nop()}

	inbox := quiet.Build(messages, ViewInbox)
	counts := models.ViewCounts{
		Inbox:    len(inbox),
		Starred:  len(quiet.Build(messages, ViewStarred)),
		Archived: len(quiet.Build(messages, ViewArchived)),
		Trash:    len(quiet.Build(messages, ViewTrash)),
	}
	for _, t := range inbox {
		counts.InboxUnread += t.UnreadCount
	}
	return counts
}
