package resilience

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// ErrOpenCircuit is returned while the breaker refuses calls to its target.
var ErrOpenCircuit = errors.New("resilience: circuit breaker open")

// State is the breaker position. Its numeric value is exported as the
// breaker_state gauge.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

var stateNames = [...]string{Closed: "closed", Open: "open", HalfOpen: "half_open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// window counts outcomes observed while closed.
type window struct {
	ok, failed int
}

func (w *window) add(success bool) {
	if success {
		w.ok++
	} else {
		w.failed++
	}
}

func (w window) total() int { return w.ok + w.failed }

func (w window) failureRatio() float64 {
	if w.total() == 0 {
		return 0
	}
	return float64(w.failed) / float64(w.total())
}

// halve ages the window so old outcomes weigh less than recent ones.
func (w *window) halve() {
	w.ok = (w.ok + 1) / 2
	w.failed = (w.failed + 1) / 2
}

// Breaker guards one upstream dependency (the remote store, for instance).
// It trips when the failure ratio reaches a threshold over at least
// minRequests outcomes, rejects every call for openFor, then admits a single
// probe whose outcome decides between closing and re-opening. It never retries.
type Breaker struct {
	mu sync.Mutex

	state    State
	probing  bool
	counts   window
	openedAt time.Time

	minRequests int
	tripRatio   float64
	openFor     time.Duration

	target string
	logger zerolog.Logger
	now    func() time.Time
}

// NewBreaker builds a closed breaker. Out-of-range arguments fall back to
// one request, a 0.5 ratio and a 30s cool-off.
func NewBreaker(minRequests int, failureRatio float64, openFor time.Duration) *Breaker {
	b := &Breaker{
		minRequests: max(minRequests, 1),
		tripRatio:   failureRatio,
		openFor:     openFor,
		logger:      zerolog.Nop(),
		now:         time.Now,
	}
	switch {
	case b.tripRatio <= 0:
		b.tripRatio = 0.5
	case b.tripRatio > 1:
		b.tripRatio = 1
	}
	if b.openFor <= 0 {
		b.openFor = 30 * time.Second
	}
	return b
}

// WithClock swaps the time source, for tests.
func (b *Breaker) WithClock(now func() time.Time) *Breaker {
	if now != nil {
		b.mu.Lock()
		b.now = now
		b.mu.Unlock()
	}
	return b
}

// WithTarget names the guarded dependency in metrics and logs.
func (b *Breaker) WithTarget(target string) *Breaker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = strings.TrimSpace(target)
	b.publishState()
	return b
}

// WithLogger sets the fallback logger for transitions. A logger attached to
// the call context takes precedence.
func (b *Breaker) WithLogger(logger zerolog.Logger) *Breaker {
	b.mu.Lock()
	b.logger = logger
	b.mu.Unlock()
	return b
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Allow reports whether the caller may contact the target now. Every true
// result must be followed by exactly one Report.
func (b *Breaker) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return true
	case Open:
		if b.now().Sub(b.openedAt) < b.openFor {
			return false
		}
		b.moveTo(ctx, HalfOpen)
	}
	if b.probing {
		return false
	}
	b.probing = true
	return true
}

// Report feeds back the outcome of a call admitted by Allow.
func (b *Breaker) Report(ctx context.Context, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		return
	case HalfOpen:
		b.probing = false
		if success {
			b.moveTo(ctx, Closed)
		} else {
			b.moveTo(ctx, Open)
		}
		return
	}

	b.counts.add(success)
	if b.counts.total() < b.minRequests {
		return
	}
	if b.counts.failureRatio() >= b.tripRatio {
		b.moveTo(ctx, Open)
		return
	}
	if b.counts.total() > 2*b.minRequests {
		b.counts.halve()
	}
}

func (b *Breaker) moveTo(ctx context.Context, next State) {
	prev := b.state
	if prev == next {
		return
	}
	b.state = next
	b.counts = window{}
	if next == Open {
		b.openedAt = b.now()
	} else if next == Closed {
		b.openedAt = time.Time{}
	}
	b.publishState()

	label := b.label()
	if BreakerTransitions != nil {
		BreakerTransitions.WithLabelValues(label, prev.String(), next.String()).Inc()
	}
	if next == Open && BreakerOpenedTotal != nil {
		BreakerOpenedTotal.WithLabelValues(label).Inc()
	}

	logger := b.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = *l
	}
	evt := logger.Info().Str("target", label).Str("from_state", prev.String()).Str("to_state", next.String())
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		evt = evt.Str("trace_id", sc.TraceID().String())
	}
	evt.Msg("breaker_transition")
}

func (b *Breaker) publishState() {
	if BreakerState != nil {
		BreakerState.WithLabelValues(b.label()).Set(float64(b.state))
	}
}

func (b *Breaker) label() string {
	if b.target == "" {
		return "default"
	}
	return b.target
}
