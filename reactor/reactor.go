// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral callback dispatch interface over the readiness poller.

package reactor

import "time"

// FDEventType is a platform-neutral readiness flag set.
type FDEventType uint32

// Event type flags.
const (
	EventRead FDEventType = 1 << iota
	EventWrite
	EventError
	EventHangup
)

// FDCallback handles readiness for one registered descriptor.
type FDCallback func(fd int, events FDEventType)

// Reactor multiplexes descriptor readiness into callbacks. Poll refills an
// internal FIFO from one poller batch and dispatches from it under a budget,
// so readiness beyond the budget carries over to the next call.
type Reactor interface {
	// Register adds a descriptor with its interest set and callback.
	Register(fd int, events FDEventType, cb FDCallback) error

	// Modify replaces the interest set of a registered descriptor.
	Modify(fd int, events FDEventType) error

	// Unregister removes a descriptor; its callback stops firing.
	Unregister(fd int) error

	// Poll waits up to timeout for readiness when nothing is queued, then
	// dispatches at most budget callbacks (budget <= 0 drains the queue).
	// Returns the number of callbacks dispatched.
	Poll(timeout time.Duration, budget int) (n int, err error)

	// Close releases the underlying readiness table.
	Close() error
}
