package store

import (
	"context"
)

const keyAnalyticsDay = "timely_analytics_"

// AnalyticsDayKey is the key of one UTC day's event counters (date is YYYY-MM-DD)
func AnalyticsDayKey(date string) string { return keyAnalyticsDay + date }

// AnalyticsStore keeps per-day event counters
type AnalyticsStore struct {
	kv KV
}

// NewAnalyticsStore creates an analytics store on kv
func NewAnalyticsStore(kv KV) *AnalyticsStore {
	return &AnalyticsStore{kv: kv}
}

// Day returns the counters of date. A day without events yields an empty map.
func (s *AnalyticsStore) Day(ctx context.Context, date string) (map[string]int, error) {
	counts := map[string]int{}
	if err := loadJSON(ctx, s.kv, AnalyticsDayKey(date), &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Add increments event on date by count. Callers serialize concurrent adds.
func (s *AnalyticsStore) Add(ctx context.Context, date, event string, count int) error {
	counts, err := s.Day(ctx, date)
	if err != nil {
		return err
	}
	counts[event] += count
	return saveJSON(ctx, s.kv, AnalyticsDayKey(date), counts)
}
