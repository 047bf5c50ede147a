package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kochabx/forkapi/log"
)

type fakeServer struct {
	runErr   error
	stop     chan struct{}
	shutdown atomic.Int32
}

func newFakeServer(runErr error) *fakeServer {
	return &fakeServer{runErr: runErr, stop: make(chan struct{})}
}

func (s *fakeServer) Run() error {
	if s.runErr != nil {
		return s.runErr
	}
	<-s.stop
	return http.ErrServerClosed
}

func (s *fakeServer) Shutdown(context.Context) error {
	if s.shutdown.Add(1) == 1 {
		close(s.stop)
	}
	return nil
}

func start(t *testing.T, app *Application) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Start() }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
		return nil
	}
}

func TestStop(t *testing.T) {
	s1, s2 := newFakeServer(nil), newFakeServer(nil)
	var closed atomic.Bool

	app := New(
		WithServer(s1, nil, s2),
		WithSignals(),
		WithLogger(log.Nop()),
		WithClose("flush", func(context.Context) error {
			closed.Store(true)
			return nil
		}),
	)
	done := start(t, app)
	app.Stop()

	if err := wait(t, done); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s1.shutdown.Load() != 1 || s2.shutdown.Load() != 1 {
		t.Fatal("expected every server to be shut down once")
	}
	if !closed.Load() {
		t.Fatal("expected close function to run")
	}
}

func TestContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newFakeServer(nil)
	done := start(t, New(WithContext(ctx), WithServer(s), WithSignals(), WithLogger(log.Nop())))

	cancel()
	if err := wait(t, done); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.shutdown.Load() != 1 {
		t.Fatal("expected server to be shut down")
	}
}

func TestServerError(t *testing.T) {
	boom := errors.New("listen failed")
	healthy := newFakeServer(nil)

	app := New(
		WithServer(newFakeServer(boom), healthy),
		WithSignals(),
		WithShutdownTimeout(time.Second),
		WithLogger(log.Nop()),
	)
	err := wait(t, start(t, app))
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if healthy.shutdown.Load() != 1 {
		t.Fatal("expected healthy server to be shut down")
	}
}

func TestAlreadyStarted(t *testing.T) {
	app := New(WithServer(newFakeServer(nil)), WithSignals(), WithLogger(log.Nop()))
	done := start(t, app)

	deadline := time.Now().Add(5 * time.Second)
	for {
		app.mu.Lock()
		started := app.started
		app.mu.Unlock()
		if started || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := app.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	app.Stop()
	wait(t, done)
}

func TestClosePanic(t *testing.T) {
	app := New(WithSignals(), WithLogger(log.Nop()))
	err := app.runCloser(context.Background(), closer{name: "bad", fn: func(context.Context) error {
		panic("boom")
	}})
	if !errors.Is(err, ErrClosePanic) {
		t.Fatalf("expected ErrClosePanic, got %v", err)
	}
}
