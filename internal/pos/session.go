package pos

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Session owns one till's cart and checkout state.
type Session struct {
	id        string
	createdAt time.Time

	mu         sync.Mutex
	cart       Cart
	submitter  Submitter
	customerID *string
	lastSeen   time.Time
	now        func() time.Time
}

// View is a point-in-time rendering of a session.
type View struct {
	ID              string          `json:"id"`
	Lines           []Line          `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	Summary         pricing.Summary `json:"summary"`
	CustomerID      *string         `json:"customerId"`
	State           State           `json:"state"`
	LastError       string          `json:"lastError,omitempty"`
	LastSale        *Sale           `json:"lastSale,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func newSession(id string, taxPercent decimal.Decimal, now func() time.Time) *Session {
	ts := now()
	return &Session{
		id:        id,
		createdAt: ts,
		cart:      NewCart(taxPercent),
		lastSeen:  ts,
		now:       now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// View renders the session under its lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// AddItem adds one unit of p.
func (s *Session) AddItem(p Product) (View, error) {
	return s.mutate(func(c *Cart) error { return c.AddItem(p) })
}

// ChangeQuantity applies delta to the line for productID.
func (s *Session) ChangeQuantity(productID string, delta int) (View, error) {
	return s.mutate(func(c *Cart) error { return c.ChangeQuantity(productID, delta) })
}

// SetQuantity moves the line for productID to an absolute quantity.
func (s *Session) SetQuantity(productID string, quantity int) (View, error) {
	return s.mutate(func(c *Cart) error {
		line, ok := c.Line(productID)
		if !ok {
			return ErrLineNotFound
		}
		if quantity <= 0 {
			c.RemoveItem(productID)
			return nil
		}
		return c.ChangeQuantity(productID, quantity-line.Quantity)
	})
}

// RemoveItem drops the line for productID.
func (s *Session) RemoveItem(productID string) View {
	v, _ := s.mutate(func(c *Cart) error {
		c.RemoveItem(productID)
		return nil
	})
	return v
}

// Clear empties the cart and resets the discount.
func (s *Session) Clear() View {
	v, _ := s.mutate(func(c *Cart) error {
		c.Clear()
		return nil
	})
	return v
}

// Adjustments updates the percentage inputs and the attached customer. Nil fields are left unchanged.
type Adjustments struct {
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	TaxPercent      *decimal.Decimal `json:"taxPercent"`
	CustomerID      *string          `json:"customerId" validate:"omitempty,uuid"`
}

// Adjust applies a.
func (s *Session) Adjust(a Adjustments) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.DiscountPercent != nil {
		s.cart.SetDiscountPercent(*a.DiscountPercent)
	}
	if a.TaxPercent != nil {
		s.cart.SetTaxPercent(*a.TaxPercent)
	}
	if a.CustomerID != nil {
		id := strings.TrimSpace(*a.CustomerID)
		if id == "" {
			s.customerID = nil
		} else {
			s.customerID = &id
		}
	}
	s.touch()
	return s.viewLocked()
}

// Checkout submits the cart through writer. The session lock is released while
// writer runs so the cart stays editable; a second checkout in that window
// fails with ErrSubmissionInFlight.
func (s *Session) Checkout(ctx context.Context, writer SaleWriter, in CheckoutInput) (Sale, View, error) {
	s.mu.Lock()
	if in.CustomerID == nil {
		in.CustomerID = s.customerID
	}
	req, err := s.submitter.Begin(&s.cart, in)
	s.touch()
	if err != nil {
		v := s.viewLocked()
		s.mu.Unlock()
		return Sale{}, v, err
	}
	s.mu.Unlock()

	sale, writeErr := writer.CreateSale(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.submitter.Finish(&s.cart, sale, writeErr)
	if err == nil {
		s.customerID = nil
	}
	s.touch()
	if err != nil {
		return Sale{}, s.viewLocked(), err
	}
	return sale, s.viewLocked(), nil
}

func (s *Session) mutate(fn func(c *Cart) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := fn(&s.cart); err != nil {
		return s.viewLocked(), err
	}
	return s.viewLocked(), nil
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitter.State() == StateSubmitting
}

func (s *Session) viewLocked() View {
	v := View{
		ID:              s.id,
		Lines:           s.cart.Lines(),
		DiscountPercent: s.cart.DiscountPercent(),
		TaxPercent:      s.cart.TaxPercent(),
		Summary:         s.cart.Summary().Rounded(),
		CustomerID:      s.customerID,
		State:           s.submitter.State(),
		LastSale:        s.submitter.LastSale(),
		CreatedAt:       s.createdAt,
		UpdatedAt:       s.lastSeen,
	}
	if err := s.submitter.LastError(); err != nil {
		v.LastError = err.Error()
	}
	return v
}
