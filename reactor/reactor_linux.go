//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll-backed reactor over the poller package.

package reactor

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/wscore/poller"
)

// epollReactor implements Reactor on top of *poller.Poller.
type epollReactor struct {
	p         *poller.Poller
	callbacks sync.Map     // map[int]FDCallback
	pending   *queue.Queue // poller.Event values awaiting dispatch
}

// NewReactor constructs the platform reactor.
func NewReactor() (Reactor, error) {
	p, err := poller.New()
	if err != nil {
		return nil, err
	}
	return &epollReactor{p: p, pending: queue.New()}, nil
}

// toKernel translates interest flags into the kernel bitmask. Error and
// hangup conditions are always reported by epoll and need no opt-in.
func toKernel(events FDEventType) poller.EventSet {
	var ev poller.EventSet
	if events&EventRead != 0 {
		ev |= poller.EventIn
	}
	if events&EventWrite != 0 {
		ev |= poller.EventOut
	}
	return ev
}

// fromKernel translates a kernel readiness bitmask into reactor flags.
func fromKernel(ev poller.EventSet) FDEventType {
	var t FDEventType
	if ev&poller.EventIn != 0 {
		t |= EventRead
	}
	if ev&poller.EventOut != 0 {
		t |= EventWrite
	}
	if ev&poller.EventErr != 0 {
		t |= EventError
	}
	if ev&(poller.EventHup|poller.EventRdHup) != 0 {
		t |= EventHangup
	}
	return t
}

func (r *epollReactor) Register(fd int, events FDEventType, cb FDCallback) error {
	if err := r.p.Register(fd, toKernel(events)); err != nil {
		return err
	}
	r.callbacks.Store(fd, cb)
	return nil
}

func (r *epollReactor) Modify(fd int, events FDEventType) error {
	return r.p.Modify(fd, toKernel(events))
}

func (r *epollReactor) Unregister(fd int) error {
	if err := r.p.Unregister(fd); err != nil {
		return err
	}
	r.callbacks.Delete(fd)
	return nil
}

// Poll refills the pending queue from one poller batch when it is empty,
// then dispatches queued events under the budget.
func (r *epollReactor) Poll(timeout time.Duration, budget int) (int, error) {
	if r.pending.Length() == 0 {
		batch, err := r.p.Wait(timeout)
		if err != nil {
			return 0, err
		}
		for _, ev := range batch {
			r.pending.Add(ev)
		}
	}
	if budget <= 0 {
		budget = r.pending.Length()
	}
	dispatched := 0
	for dispatched < budget && r.pending.Length() > 0 {
		ev := r.pending.Remove().(poller.Event)
		val, ok := r.callbacks.Load(int(ev.Fd))
		if !ok {
			continue // unregistered while queued
		}
		cb := val.(FDCallback)
		// Deferred recover keeps one panicking handler from killing the loop.
		func() {
			defer func() { _ = recover() }()
			cb(int(ev.Fd), fromKernel(ev.Events))
		}()
		dispatched++
	}
	return dispatched, nil
}

// Close releases the poller table. Double close surfaces the poller's
// closed-state error.
func (r *epollReactor) Close() error {
	return r.p.Close()
}
