// File: poller/poller.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral surface of the readiness poller.

package poller

// MaxEvents is the fixed capacity of one Wait batch. Readiness beyond it is
// reported by subsequent calls, never dropped.
const MaxEvents = 24

// EventSet is a bitmask of readiness flags for one descriptor. The flag
// values are the kernel's own ABI constants, re-exported unchanged by the
// platform file.
type EventSet uint32

// CtlOp selects the table transition performed by Ctl. Values are the
// kernel's control-operation constants, passed through unchanged.
type CtlOp int

// Event is one (descriptor, readiness) pair out of a Wait batch.
type Event struct {
	Fd     int32
	Events EventSet
}
