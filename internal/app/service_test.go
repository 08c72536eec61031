package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllOnFailure(t *testing.T) {
	failing := &fakeService{name: "http", startErr: errors.New("bind failed")}
	steady := &fakeService{name: "worker", block: true}
	closed := false

	runner := NewRunner(failing, steady).WithCloser(func() { closed = true })
	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "bind failed" {
		t.Fatalf("runner should surface start error, got %v", err)
	}
	if !failing.stopped.Load() || !steady.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
	if !closed {
		t.Fatalf("closers should run after stop")
	}
}

func TestRunnerCancelledContextIsClean(t *testing.T) {
	steady := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(steady).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled context should return nil, got %v", err)
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll {
		t.Fatalf("default mode want %s got %s", ModeAll, opts.Mode)
	}
	if opts.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout want 10s got %s", opts.ShutdownTimeout)
	}
	if opts.Logger == nil {
		t.Fatalf("default logger should be set")
	}
}

func TestHTTPServiceStopCancelsRequestContext(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", nil)
	if svc.Name() != "http" {
		t.Fatalf("unexpected name %s", svc.Name())
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop idle server: %v", err)
	}
	select {
	case <-svc.baseCtx.Done():
	default:
		t.Fatalf("base context should be cancelled after stop")
	}
}
