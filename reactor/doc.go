// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor dispatches poller readiness batches to per-descriptor
// callbacks with a bounded per-tick budget, deferring excess events to the
// next tick instead of dropping them.
package reactor
