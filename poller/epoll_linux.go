//go:build linux
// +build linux

// File: poller/epoll_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7) implementation of the readiness poller.

package poller

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/wscore/api"
)

// Control operations, the epoll_ctl op constants unchanged.
const (
	CtlAdd CtlOp = unix.EPOLL_CTL_ADD
	CtlMod CtlOp = unix.EPOLL_CTL_MOD
	CtlDel CtlOp = unix.EPOLL_CTL_DEL
)

// Readiness flags, the epoll event constants unchanged.
const (
	EventIn      EventSet = unix.EPOLLIN
	EventOut     EventSet = unix.EPOLLOUT
	EventPri     EventSet = unix.EPOLLPRI
	EventErr     EventSet = unix.EPOLLERR
	EventHup     EventSet = unix.EPOLLHUP
	EventRdHup   EventSet = unix.EPOLLRDHUP
	EventOneShot EventSet = unix.EPOLLONESHOT
	EventET      EventSet = unix.EPOLLET
)

// Poller owns one kernel event table. Obtain instances from New; the zero
// value is unusable. Concurrent use of one Poller from multiple goroutines
// is the caller's responsibility (single-writer discipline).
type Poller struct {
	epfd   int
	closed bool
	ready  [MaxEvents]unix.EpollEvent
}

// New acquires a kernel event table. Failure means the kernel refused the
// resource; it is reported, not retried.
func New() (*Poller, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &Poller{epfd: epfd}, nil
}

// Fd exposes the table's own descriptor, e.g. for nesting into another
// readiness mechanism.
func (p *Poller) Fd() int {
	return p.epfd
}

// Ctl applies one table transition for fd. Kernel rejections (duplicate add,
// modify or delete of a descriptor never registered, invalid descriptor)
// surface with the underlying errno attached, never coerced into another
// operation.
func (p *Poller) Ctl(op CtlOp, fd int, events EventSet) error {
	if p.closed {
		return fmt.Errorf("epoll ctl: %w", api.ErrPollerClosed)
	}
	ev := unix.EpollEvent{Events: uint32(events), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, int(op), fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl op=%d fd=%d: %w", op, fd, err)
	}
	return nil
}

// Register adds fd to the table with the given interest set.
func (p *Poller) Register(fd int, events EventSet) error {
	return p.Ctl(CtlAdd, fd, events)
}

// Modify replaces the interest set of an already registered fd.
func (p *Poller) Modify(fd int, events EventSet) error {
	return p.Ctl(CtlMod, fd, events)
}

// Unregister removes fd from the table.
func (p *Poller) Unregister(fd int) error {
	return p.Ctl(CtlDel, fd, 0)
}

// Wait blocks the calling thread until readiness, timeout, or error; the
// runtime keeps scheduling other goroutines around the parked thread. A
// negative timeout blocks indefinitely; zero polls without blocking. On
// timeout the batch is empty and the error nil; every kernel failure, EINTR
// included, is returned with its errno so callers can tell "nothing ready"
// from "the poll failed". At most MaxEvents pairs come back, in the order
// the kernel reported them.
func (p *Poller) Wait(timeout time.Duration) ([]Event, error) {
	if p.closed {
		return nil, fmt.Errorf("epoll wait: %w", api.ErrPollerClosed)
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	n, err := unix.EpollWait(p.epfd, p.ready[:], ms)
	if err != nil {
		return nil, fmt.Errorf("epoll wait: %w", err)
	}
	batch := make([]Event, n)
	for i := 0; i < n; i++ {
		batch[i] = Event{Fd: p.ready[i].Fd, Events: EventSet(p.ready[i].Events)}
	}
	return batch, nil
}

// Close releases the kernel table. The state is terminal: every later
// operation fails, and a second Close reports an error rather than being
// ignored.
func (p *Poller) Close() error {
	if p.closed {
		return fmt.Errorf("epoll close: %w", api.ErrPollerClosed)
	}
	p.closed = true
	if err := unix.Close(p.epfd); err != nil {
		return fmt.Errorf("epoll close: %w", err)
	}
	return nil
}
