package querycache

import (
	"errors"
	"time"
)

// Status is the outcome state of an entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrSuperseded is returned to the waiters of a fetch whose result was
// discarded because a newer invalidation or value exists.
var ErrSuperseded = errors.New("querycache: fetch superseded")

// Snapshot is a point-in-time view of one entry.
type Snapshot struct {
	Identity QueryIdentity
	Value    interface{}
	HasValue bool
	Status   Status
	// Err is the error of the last failed fetch; a previous value is kept.
	Err       error
	UpdatedAt time.Time
	Stale     bool
	Fetching  bool
}

// IsLoading reports a fetch in flight with nothing to show yet.
func (s Snapshot) IsLoading() bool { return s.Fetching && !s.HasValue }

// Clock supplies the current time. Tests inject a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
