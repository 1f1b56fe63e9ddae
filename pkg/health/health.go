// Package health provides Kubernetes-style liveness and readiness probes.
// Registered checks run periodically in the background; the HTTP endpoints
// report the last observed state so probe requests stay cheap.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil means healthy.
type CheckFunc func(ctx context.Context) error

// check holds one registered check and its last observed result.
type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(ctx)
	c.lastErr.Store(&err)
	c.healthy.Store(err == nil)
}

// Service aggregates liveness and readiness checks and serves probe
// endpoints.
type Service struct {
	mu        sync.Mutex
	liveness  []*check
	readiness []*check

	ready  atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an empty health Service. Readiness starts false until SetReady
// is called.
func New() *Service {
	return &Service{}
}

// AddLivenessCheck registers a liveness check. Checks start healthy and are
// first evaluated when Start runs.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.add(&s.liveness, name, timeout, fn)
}

// AddReadinessCheck registers a readiness check.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.add(&s.readiness, name, timeout, fn)
}

func (s *Service) add(list *[]*check, name string, timeout time.Duration, fn CheckFunc) {
	c := &check{name: name, timeout: timeout, fn: fn}
	c.healthy.Store(true)

	s.mu.Lock()
	*list = append(*list, c)
	s.mu.Unlock()
}

// Start launches the background evaluation loop. All checks run once
// immediately and then every interval until Stop or context cancellation.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.runAll(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runAll(ctx)
			}
		}
	}()
}

// Stop halts the background loop and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *Service) runAll(ctx context.Context) {
	s.mu.Lock()
	checks := make([]*check, 0, len(s.liveness)+len(s.readiness))
	checks = append(checks, s.liveness...)
	checks = append(checks, s.readiness...)
	s.mu.Unlock()

	for _, c := range checks {
		c.run(ctx)
	}
}

// SetReady flips the manual readiness gate, typically false during shutdown
// drain.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// LiveEndpoint serves the liveness probe: 200 when every liveness check is
// healthy, 503 otherwise.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	checks := append([]*check(nil), s.liveness...)
	s.mu.Unlock()

	s.respond(w, true, checks)
}

// ReadyEndpoint serves the readiness probe: 200 when the manual gate is open
// and every readiness check is healthy.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	checks := append([]*check(nil), s.readiness...)
	s.mu.Unlock()

	s.respond(w, s.ready.Load(), checks)
}

func (s *Service) respond(w http.ResponseWriter, ok bool, checks []*check) {
	results := make(map[string]string, len(checks))
	for _, c := range checks {
		if c.healthy.Load() {
			results[c.name] = "ok"
			continue
		}
		ok = false
		msg := "unhealthy"
		if p := c.lastErr.Load(); p != nil && *p != nil {
			msg = (*p).Error()
		}
		results[c.name] = msg
	}

	status := http.StatusOK
	state := "up"
	if !ok {
		status = http.StatusServiceUnavailable
		state = "down"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": state,
		"checks": results,
	})
}
