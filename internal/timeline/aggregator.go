package timeline

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"timely/internal/models"
	"timely/internal/timestamp"

	"github.com/rs/zerolog"
)

// Order is the direction of a sorted timeline
type Order string

const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// ParseOrder maps a query value onto an Order, defaulting to newest first
func ParseOrder(value string) (Order, bool) {
	switch Order(strings.ToLower(strings.TrimSpace(value))) {
	case "", OrderDesc:
		return OrderDesc, true
	case OrderAsc:
		return OrderAsc, true
	default:
		return OrderDesc, false
	}
}

// Result is one aggregation run
type Result struct {
	Entries []models.TimelineEntry
	Failed  []models.Source
}

// Aggregator merges several feeds into one deduplicated timeline
type Aggregator struct {
	feeds  []Feed
	logger zerolog.Logger
}

// NewAggregator creates an aggregator. Feeds are merged in the order given.
func NewAggregator(logger zerolog.Logger, feeds ...Feed) *Aggregator {
	return &Aggregator{feeds: feeds, logger: logger}
}

type feedResult struct {
	entries []models.TimelineEntry
	err     error
	elapsed time.Duration
}

// Aggregate fetches every feed concurrently and merges the results in registration
// order. A failed feed contributes nothing and is reported in Result.Failed; the other
// feeds are unaffected. Entries are returned unsorted.
func (a *Aggregator) Aggregate(ctx context.Context, scope Scope) Result {
	results := make([]feedResult, len(a.feeds))

	var wg sync.WaitGroup
	for i, feed := range a.feeds {
		wg.Add(1)
		go func(i int, feed Feed) {
			defer wg.Done()
			start := time.Now()
			entries, err := fetch(ctx, feed, scope)
			results[i] = feedResult{entries: entries, err: err, elapsed: time.Since(start)}
		}(i, feed)
	}
	wg.Wait()

	merged := Result{Entries: []models.TimelineEntry{}, Failed: []models.Source{}}
	seen := make(map[models.EntryKey]struct{})
	for i, feed := range a.feeds {
		r := results[i]
		if r.err != nil {
			a.logger.Warn().
				Err(r.err).
				Str("source", string(feed.Source())).
				Str("client_id", scope.ClientID).
				Msg("Timeline feed failed")
			merged.Failed = append(merged.Failed, feed.Source())
			continue
		}
		before := len(merged.Entries)
		merged.Entries = insert(merged.Entries, seen, r.entries)
		a.logger.Debug().
			Str("source", string(feed.Source())).
			Int("fetched", len(r.entries)).
			Int("added", len(merged.Entries)-before).
			Int64("latency_ms", r.elapsed.Milliseconds()).
			Msg("Timeline feed merged")
	}
	return merged
}

// fetch runs one feed, turning a panic into an error
func fetch(ctx context.Context, feed Feed, scope Scope) (entries []models.TimelineEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("feed %s panicked: %v", feed.Source(), r)
		}
	}()
	return feed.Fetch(ctx, scope)
}

// insert appends the entries whose key has not been seen yet
func insert(dst []models.TimelineEntry, seen map[models.EntryKey]struct{}, entries []models.TimelineEntry) []models.TimelineEntry {
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		dst = append(dst, e)
	}
	return dst
}

// Merge concatenates batches keeping the first entry seen for each key
func Merge(batches ...[]models.TimelineEntry) []models.TimelineEntry {
	seen := make(map[models.EntryKey]struct{})
	merged := []models.TimelineEntry{}
	for _, batch := range batches {
		merged = insert(merged, seen, batch)
	}
	return merged
}

// Sort returns the entries ordered by timestamp. Entries with equal times keep their
// merge order. Under the epoch policy unparsable timestamps sort as the oldest; under
// the exclude policy those entries are dropped. Either way a warning is logged.
func Sort(entries []models.TimelineEntry, order Order, policy timestamp.Policy, logger zerolog.Logger) []models.TimelineEntry {
	type keyed struct {
		entry models.TimelineEntry
		at    time.Time
	}

	items := make([]keyed, 0, len(entries))
	for _, e := range entries {
		at, keep, err := policy.Resolve(e.Timestamp)
		if err != nil {
			logger.Warn().Err(err).Str("entry_id", e.ID.String()).Str("policy", string(policy)).Msg("Unparsable timeline timestamp")
		}
		if !keep {
			continue
		}
		items = append(items, keyed{entry: e, at: at})
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if order == OrderAsc {
			return a.at.Compare(b.at)
		}
		return b.at.Compare(a.at)
	})

	sorted := make([]models.TimelineEntry, len(items))
	for i, it := range items {
		sorted[i] = it.entry
	}
	return sorted
}

// FilterCategory keeps the entries of one category. An empty category keeps everything.
func FilterCategory(entries []models.TimelineEntry, category string) []models.TimelineEntry {
	if category == "" {
		return entries
	}
	filtered := make([]models.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
