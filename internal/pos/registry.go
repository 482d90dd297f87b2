package pos

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/obs"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// TTL is how long a session may sit idle before the janitor evicts it. Zero disables eviction.
	TTL               time.Duration
	DefaultTaxPercent decimal.Decimal
	Logger            zerolog.Logger
	Now               func() time.Time
}

// Registry holds the live POS sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl        time.Duration
	defaultTax decimal.Decimal
	log        zerolog.Logger
	now        func() time.Time
}

// NewRegistry constructs an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions:   make(map[string]*Session),
		ttl:        cfg.TTL,
		defaultTax: cfg.DefaultTaxPercent,
		log:        cfg.Logger,
		now:        now,
	}
}

// Create opens a new session with the default tax percentage.
func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.defaultTax, r.now)
	r.mu.Lock()
	r.sessions[s.id] = s
	n := len(r.sessions)
	r.mu.Unlock()
	obs.SetActiveSessions(n)
	return s
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session for id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	obs.SetActiveSessions(n)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
// Sessions with a checkout in flight are kept.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	candidates := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		candidates = append(candidates, s)
	}
	r.mu.Unlock()

	var expired []string
	for _, s := range candidates {
		if s.idleSince().Before(cutoff) && !s.submitting() {
			expired = append(expired, s.id)
		}
	}
	if len(expired) == 0 {
		return 0
	}

	r.mu.Lock()
	for _, id := range expired {
		delete(r.sessions, id)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	obs.SetActiveSessions(n)
	r.log.Debug().Int("evicted", len(expired)).Int("remaining", n).Msg("pos sessions swept")
	return len(expired)
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = r.ttl / 4
		if interval < time.Second {
			interval = time.Second
		}
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	r.log.Info().Dur("ttl", r.ttl).Dur("interval", interval).Msg("pos session janitor started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
