package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is returned (wrapped) when a timestamp string cannot be parsed
var ErrInvalid = errors.New("invalid timestamp")

// Policy decides what derived views do with records whose timestamp is unparsable
type Policy string

const (
	// PolicyEpoch keeps the record and orders it as the zero time (lowest priority)
	PolicyEpoch Policy = "epoch"
	// PolicyExclude drops the record from the derived view
	PolicyExclude Policy = "exclude"
)

// layouts are tried in order. The SPA writes RFC 3339 with milliseconds, older records
// carry minute precision or no zone at all.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse is the single constructor for timestamps read from stored or fetched records
func Parse(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalid)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
}

// Format renders t the way the service writes every timestamp
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParsePolicy maps a configuration value onto a Policy, defaulting to PolicyEpoch
func ParsePolicy(value string) Policy {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicyExclude:
		return PolicyExclude
	default:
		return PolicyEpoch
	}
}

// Resolve applies the policy to a raw timestamp. keep is false when the record must be
// dropped. err is non-nil whenever the value was unparsable so callers can log it.
func (p Policy) Resolve(raw string) (t time.Time, keep bool, err error) {
	t, err = Parse(raw)
	if err == nil {
		return t, true, nil
	}
	if p == PolicyExclude {
		return time.Time{}, false, err
	}
	return time.Time{}, true, err
}
