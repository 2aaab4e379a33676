// Package clock abstracts the wall clock so liveness timeouts can be tested.
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// System reads the process clock
type System struct{}

// New creates a System clock
func New() System {
	return System{}
}

// Now returns the current time in UTC. Timestamps leave the process in
// events and responses, so they are normalised here once.
func (System) Now() time.Time {
	return time.Now().UTC()
}

