// Package readiness probes the optional backing services. Liveness (/health)
// never goes through here.
package readiness

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Per-check values reported in Result.Checks.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Checker verifies that one dependency can serve traffic.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c checkFunc) Name() string                    { return c.name }
func (c checkFunc) Check(ctx context.Context) error { return c.fn(ctx) }

// Named adapts a ping-style function, such as (*sql.DB).PingContext, to a Checker.
func Named(name string, fn func(ctx context.Context) error) Checker {
	return checkFunc{name: name, fn: fn}
}

// Result is the outcome of one Probe.
type Result struct {
	Ready bool
	// Checks maps each dependency to "ok" or "unavailable" and is safe to expose.
	Checks map[string]string
	// Errors keeps the underlying failure per dependency for logging.
	Errors map[string]error
}

// Failed returns the names of failing dependencies, sorted.
func (r Result) Failed() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prober runs every checker concurrently under a shared timeout.
type Prober struct {
	checkers []Checker
	timeout  time.Duration
}

// NewProber returns a Prober. A non-positive timeout means 2s.
func NewProber(timeout time.Duration, checkers ...Checker) *Prober {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Prober{checkers: checkers, timeout: timeout}
}

// Add registers another checker. Not safe to call once the server is serving.
func (p *Prober) Add(c Checker) {
	p.checkers = append(p.checkers, c)
}

// Len is the number of registered checkers.
func (p *Prober) Len() int {
	return len(p.checkers)
}

// Probe runs all checks. A prober with no checkers is always ready.
func (p *Prober) Probe(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	errs := make([]error, len(p.checkers))
	var g errgroup.Group
	for i, c := range p.checkers {
		g.Go(func() error {
			errs[i] = c.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{
		Ready:  true,
		Checks: make(map[string]string, len(p.checkers)),
		Errors: map[string]error{},
	}
	for i, c := range p.checkers {
		if errs[i] != nil {
			res.Ready = false
			res.Checks[c.Name()] = StatusUnavailable
			res.Errors[c.Name()] = errs[i]
			continue
		}
		res.Checks[c.Name()] = StatusOK
	}
	return res
}
