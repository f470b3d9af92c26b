// Package breaker implements a per-dependency circuit breaker. Each named
// circuit is a three-state machine (closed, open, half-open) that stops
// calling a failing dependency for a cooldown period instead of piling
// retries onto it. Circuit state is process-local and lives for the process
// lifetime.
package breaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// ErrCircuitOpen is the cause carried by the service-unavailable error
// returned when a call is rejected without reaching the dependency.
var ErrCircuitOpen = errors.New("circuit open")

// State is the circuit's position in its lifecycle.
type State int

const (
	// Closed lets calls pass through while counting failures.
	Closed State = iota

	// Open rejects calls immediately until the reset timeout elapses.
	Open

	// HalfOpen lets probe calls through to test whether the dependency
	// recovered.
	HalfOpen
)

// String returns the conventional name of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config controls a single circuit. Every circuit carries its own
// configuration, supplied at first use.
type Config struct {
	// FailureThreshold is the consecutive-failure count that opens the circuit.
	FailureThreshold int

	// SuccessThreshold is the consecutive-success count that closes a
	// half-open circuit.
	SuccessThreshold int

	// ResetTimeout is how long an open circuit rejects calls before allowing
	// a half-open probe.
	ResetTimeout time.Duration

	// MonitoringWindow bounds a failure streak: if it elapses with no new
	// failures, the counter resets on the next call instead of accumulating
	// stale failures forever.
	MonitoringWindow time.Duration
}

// DefaultConfig returns the configuration used for external provider circuits.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		ResetTimeout:     30 * time.Second,
		MonitoringWindow: time.Minute,
	}
}

// Circuit is a single named circuit. All state is guarded by its own mutex;
// circuits never share state with each other.
type Circuit struct {
	name string
	cfg  Config

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
	nextAttempt time.Time

	now          func() time.Time
	onTransition func(name string, from, to State)
	onRejection  func(name string)
}

// Name returns the circuit's name.
func (c *Circuit) Name() string { return c.name }

// State returns the circuit's current state.
func (c *Circuit) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// beforeCall decides whether the call may proceed and applies the
// open -> half-open transition when the reset timeout has elapsed.
func (c *Circuit) beforeCall() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	switch c.state {
	case Closed:
		// Decay: a stale failure streak is forgotten once the monitoring
		// window passes without new failures.
		if c.failures > 0 && c.cfg.MonitoringWindow > 0 && now.Sub(c.lastFailure) > c.cfg.MonitoringWindow {
			c.failures = 0
		}
	case Open:
		if now.Before(c.nextAttempt) {
			if c.onRejection != nil {
				c.onRejection(c.name)
			}
			return errs.NewServiceUnavailableErrorWithCause(c.name, true, ErrCircuitOpen)
		}
		c.transition(HalfOpen)
		c.successes = 0
	case HalfOpen:
		// Probe calls pass through.
	}

	return nil
}

// afterCall records the outcome of an executed call.
func (c *Circuit) afterCall(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		c.onSuccess()
		return
	}
	c.onFailure()
}

func (c *Circuit) onSuccess() {
	switch c.state {
	case Closed:
		c.failures = 0
	case HalfOpen:
		c.successes++
		if c.successes >= c.cfg.SuccessThreshold {
			c.transition(Closed)
			c.failures = 0
			c.successes = 0
		}
	case Open:
		// Unreachable: open circuits reject before executing.
	}
}

func (c *Circuit) onFailure() {
	now := c.now()
	c.lastFailure = now

	switch c.state {
	case Closed:
		c.failures++
		if c.failures >= c.cfg.FailureThreshold {
			c.transition(Open)
			c.nextAttempt = now.Add(c.cfg.ResetTimeout)
		}
	case HalfOpen:
		c.transition(Open)
		c.nextAttempt = now.Add(c.cfg.ResetTimeout)
		c.successes = 0
	case Open:
	}
}

// transition must be called with the mutex held.
func (c *Circuit) transition(to State) {
	from := c.state
	c.state = to
	if c.onTransition != nil && from != to {
		c.onTransition(c.name, from, to)
	}
}

// Do runs op through the circuit. A rejected call returns a retryable
// service-unavailable error carrying ErrCircuitOpen without invoking op.
func Do[T any](ctx context.Context, c *Circuit, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := c.beforeCall(); err != nil {
		return zero, err
	}

	result, err := op(ctx)
	c.afterCall(err)
	if err != nil {
		return zero, err
	}

	return result, nil
}

// Option customizes a Registry.
type Option func(*Registry)

// WithTransitionHook registers a callback invoked on every state change.
func WithTransitionHook(hook func(name string, from, to State)) Option {
	return func(r *Registry) { r.onTransition = hook }
}

// WithRejectionHook registers a callback invoked on every fast-fail rejection.
func WithRejectionHook(hook func(name string)) Option {
	return func(r *Registry) { r.onRejection = hook }
}

// Registry holds the process's named circuits. Circuits are created lazily
// on first use and keep the configuration they were created with.
type Registry struct {
	mu       sync.Mutex
	circuits map[string]*Circuit

	onTransition func(name string, from, to State)
	onRejection  func(name string)
}

// NewRegistry creates an empty circuit registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{circuits: make(map[string]*Circuit)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Circuit returns the named circuit, creating it with cfg on first use. The
// configuration of an existing circuit is never replaced.
func (r *Registry) Circuit(name string, cfg Config) *Circuit {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.circuits[name]; ok {
		return c
	}

	c := &Circuit{
		name:         name,
		cfg:          cfg,
		state:        Closed,
		now:          time.Now,
		onTransition: r.onTransition,
		onRejection:  r.onRejection,
	}
	r.circuits[name] = c

	return c
}
