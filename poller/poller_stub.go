//go:build !linux
// +build !linux

// File: poller/poller_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without a readiness backend.

package poller

import (
	"time"

	"github.com/momentics/wscore/api"
)

// Poller is unavailable on this platform.
type Poller struct{}

// New returns an error for unsupported platforms.
func New() (*Poller, error) {
	return nil, api.ErrNotSupported
}

func (p *Poller) Fd() int                             { return -1 }
func (p *Poller) Ctl(CtlOp, int, EventSet) error      { return api.ErrNotSupported }
func (p *Poller) Register(int, EventSet) error        { return api.ErrNotSupported }
func (p *Poller) Modify(int, EventSet) error          { return api.ErrNotSupported }
func (p *Poller) Unregister(int) error                { return api.ErrNotSupported }
func (p *Poller) Wait(time.Duration) ([]Event, error) { return nil, api.ErrNotSupported }
func (p *Poller) Close() error                        { return api.ErrNotSupported }
