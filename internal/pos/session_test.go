package pos

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type blockingWriter struct {
	started chan SaleRequest
	release chan error
}

func (b *blockingWriter) CreateSale(_ context.Context, req SaleRequest) (Sale, error) {
	b.started <- req
	if err := <-b.release; err != nil {
		return Sale{}, err
	}
	return Sale{ID: "sale-1", Total: req.Total}, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(ttl time.Duration, clock *fakeClock) *Registry {
	return NewRegistry(RegistryConfig{TTL: ttl, DefaultTaxPercent: decimal.NewFromInt(11), Logger: zerolog.Nop(), Now: clock.Now})
}

func TestSessionCartStaysMutableDuringCheckout(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	sess := newTestRegistry(time.Hour, clock).Create()
	_, err := sess.AddItem(product("a", "10", 5))
	require.NoError(t, err)

	w := &blockingWriter{started: make(chan SaleRequest, 1), release: make(chan error)}
	done := make(chan error, 1)
	go func() {
		_, _, err := sess.Checkout(context.Background(), w, CheckoutInput{})
		done <- err
	}()

	req := <-w.started
	require.Equal(t, StateSubmitting, sess.View().State)

	view, err := sess.AddItem(product("b", "5", 2))
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	_, _, err = sess.Checkout(context.Background(), w, CheckoutInput{})
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	w.release <- nil
	require.NoError(t, <-done)
	require.Len(t, req.Items, 1)

	view = sess.View()
	require.Equal(t, StateIdle, view.State)
	require.Empty(t, view.Lines)
	require.Equal(t, "sale-1", view.LastSale.ID)
}

func TestSessionCheckoutFailureKeepsCart(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	sess := newTestRegistry(time.Hour, clock).Create()
	_, err := sess.AddItem(product("a", "10", 5))
	require.NoError(t, err)

	w := &fakeWriter{err: context.DeadlineExceeded}
	_, view, err := sess.Checkout(context.Background(), w, CheckoutInput{})
	require.ErrorIs(t, err, ErrSubmissionFailed)
	require.Equal(t, StateFailed, view.State)
	require.NotEmpty(t, view.LastError)
	require.Len(t, view.Lines, 1)
}

func TestSessionCheckoutUsesAttachedCustomer(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	sess := newTestRegistry(time.Hour, clock).Create()
	customer := "8d5c2a3e-2f7b-4a8e-9b55-0c3f3f0c9a11"
	sess.Adjust(Adjustments{CustomerID: &customer})
	_, err := sess.AddItem(product("a", "10", 5))
	require.NoError(t, err)

	w := &fakeWriter{}
	_, view, err := sess.Checkout(context.Background(), w, CheckoutInput{})
	require.NoError(t, err)
	require.Equal(t, customer, *w.requests[0].CustomerID)
	require.Nil(t, view.CustomerID)
}

func TestSessionDefaultsAndAdjustments(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	sess := newTestRegistry(time.Hour, clock).Create()
	view := sess.View()
	require.True(t, view.TaxPercent.Equal(decimal.NewFromInt(11)))
	require.Equal(t, StateIdle, view.State)

	discount := decimal.NewFromInt(5)
	view = sess.Adjust(Adjustments{DiscountPercent: &discount})
	require.True(t, view.DiscountPercent.Equal(discount))
	require.True(t, view.TaxPercent.Equal(decimal.NewFromInt(11)))

	_, err := sess.SetQuantity("missing", 2)
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	reg := newTestRegistry(30*time.Minute, clock)

	stale := reg.Create()
	clock.Advance(20 * time.Minute)
	fresh := reg.Create()
	clock.Advance(15 * time.Minute)

	require.Equal(t, 1, reg.Sweep())
	_, err := reg.Get(stale.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Get(fresh.ID())
	require.NoError(t, err)
}

func TestRegistrySweepKeepsSubmittingSessions(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	reg := newTestRegistry(time.Minute, clock)
	sess := reg.Create()
	_, err := sess.AddItem(product("a", "10", 5))
	require.NoError(t, err)

	sess.mu.Lock()
	_, err = sess.submitter.Begin(&sess.cart, CheckoutInput{})
	sess.mu.Unlock()
	require.NoError(t, err)

	clock.Advance(time.Hour)
	require.Zero(t, reg.Sweep())
	require.Equal(t, 1, reg.Len())
}

func TestRegistryDelete(t *testing.T) {
	reg := newTestRegistry(0, &fakeClock{now: time.Now()})
	sess := reg.Create()
	require.NoError(t, reg.Delete(sess.ID()))
	require.ErrorIs(t, reg.Delete(sess.ID()), ErrSessionNotFound)
	require.Zero(t, reg.Sweep())
}
