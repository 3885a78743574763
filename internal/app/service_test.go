package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
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
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeService) wasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	boom := errors.New("listen failed")
	httpSvc := &fakeService{name: "http", startErr: boom}
	sweeper := &fakeService{name: "order-sweeper", block: true}

	err := NewRunner(httpSvc, sweeper).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want start error, got %v", err)
	}
	if !httpSvc.wasStopped() || !sweeper.wasStopped() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelledContextIsCleanExit(t *testing.T) {
	sweeper := &fakeService{name: "order-sweeper", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(sweeper).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if !sweeper.wasStopped() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerRejectsEmptyAndNilServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("empty runner should fail")
	}
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("nil service should fail")
	}
}

func TestNewHTTPServiceUsesServerConfig(t *testing.T) {
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "9090", ReadTimeoutSeconds: 15}, nil)
	if svc.server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", svc.server.Addr)
	}
	if svc.server.ReadTimeout != 15*time.Second || svc.server.WriteTimeout != 0 {
		t.Fatalf("unexpected timeouts read=%s write=%s", svc.server.ReadTimeout, svc.server.WriteTimeout)
	}
	if svc.Name() != "http" {
		t.Fatalf("unexpected name %s", svc.Name())
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestNormalizeOptionsPrefersConfiguredShutdownTimeout(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{ShutdownTimeoutSeconds: 25}}
	opts, err := normalizeOptions(Options{Config: cfg})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if opts.ShutdownTimeout != 25*time.Second || opts.Mode != ModeAll || opts.Logger == nil {
		t.Fatalf("unexpected options: timeout=%s mode=%s", opts.ShutdownTimeout, opts.Mode)
	}

	opts, err = normalizeOptions(Options{ShutdownTimeout: 3 * time.Second, Mode: "worker"})
	if err != nil || opts.ShutdownTimeout != 3*time.Second || opts.Mode != ModeWorker {
		t.Fatalf("explicit options should win: %+v err=%v", opts, err)
	}
	if _, err := normalizeOptions(Options{Mode: "batch"}); err == nil {
		t.Fatalf("unknown mode should be rejected")
	}
	if err := RunWithOptions(NewRunner(&fakeService{name: "http"}), Options{Mode: "batch"}); err == nil {
		t.Fatalf("run with unknown mode should fail")
	}
}
