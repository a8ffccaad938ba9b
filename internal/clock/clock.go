package clock

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so stamping is deterministic in tests
type Clock interface {
	Now() time.Time
}

// Real returns the actual current time in UTC
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// IDGenerator abstracts unique ID generation
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
