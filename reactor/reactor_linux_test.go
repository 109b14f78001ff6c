//go:build linux
// +build linux

package reactor_test

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/wscore/api"
	"github.com/momentics/wscore/reactor"
)

func mustPipe(t *testing.T) (r, w int) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestReactorDispatchesCallbacks(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	pr, pw := mustPipe(t)
	var gotFd int
	var gotEv reactor.FDEventType
	err = r.Register(pr, reactor.EventRead, func(fd int, ev reactor.FDEventType) {
		gotFd = fd
		gotEv = ev
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := unix.Write(pw, []byte{1}); err != nil {
		t.Fatalf("write: %v", err)
	}

	n, err := r.Poll(time.Second, 0)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if n != 1 {
		t.Fatalf("dispatched %d callbacks, want 1", n)
	}
	if gotFd != pr {
		t.Errorf("callback fd %d, registered %d", gotFd, pr)
	}
	if gotEv&reactor.EventRead == 0 {
		t.Errorf("callback events %#x missing EventRead", gotEv)
	}
}

func TestReactorBudgetDefersDispatch(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	fired := make(map[int]bool)
	const total = 3
	for i := 0; i < total; i++ {
		pr, pw := mustPipe(t)
		err = r.Register(pr, reactor.EventRead, func(fd int, ev reactor.FDEventType) {
			fired[fd] = true
		})
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if _, err := unix.Write(pw, []byte{1}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	n, err := r.Poll(time.Second, 2)
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if n != 2 {
		t.Fatalf("first poll dispatched %d, want budget 2", n)
	}
	if len(fired) != 2 {
		t.Fatalf("%d callbacks fired after first poll", len(fired))
	}

	// The deferred event is served from the queue without another wait.
	n, err = r.Poll(0, 2)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if n != 1 {
		t.Fatalf("second poll dispatched %d, want 1", n)
	}
	if len(fired) != total {
		t.Fatalf("%d callbacks fired in total, want %d", len(fired), total)
	}
}

func TestReactorUnregisterStopsDelivery(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	pr, pw := mustPipe(t)
	fired := false
	err = r.Register(pr, reactor.EventRead, func(int, reactor.FDEventType) { fired = true })
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Unregister(pr); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if _, err := unix.Write(pw, []byte{1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := r.Poll(10*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if n != 0 || fired {
		t.Fatalf("callback fired after unregister (n=%d)", n)
	}
}

func TestReactorSurvivesCallbackPanic(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	pr, pw := mustPipe(t)
	err = r.Register(pr, reactor.EventRead, func(int, reactor.FDEventType) {
		panic("handler bug")
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := unix.Write(pw, []byte{1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := r.Poll(time.Second, 0)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if n != 1 {
		t.Fatalf("dispatched %d, want 1", n)
	}
}

func TestReactorCloseIsTerminal(t *testing.T) {
	r, err := reactor.NewReactor()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.Close(); !errors.Is(err, api.ErrPollerClosed) {
		t.Fatalf("double close: %v", err)
	}
}
