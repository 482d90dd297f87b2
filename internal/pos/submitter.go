package pos

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// State is the checkout state of a session.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateFailed     State = "failed"
)

// DefaultPaymentMethod is used when a checkout does not name one.
const DefaultPaymentMethod = "cash"

// SaleItem is one line of a sale creation request.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleRequest is the body of POST /sales.
type SaleRequest struct {
	CustomerID    *string         `json:"customerId"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
}

// Sale is the created sale record returned by the store.
type Sale struct {
	ID            string          `json:"id"`
	InvoiceNo     string          `json:"invoiceNo"`
	CustomerID    *string         `json:"customerId"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SaleWriter persists a finished sale. It is called exactly once per checkout attempt.
type SaleWriter interface {
	CreateSale(ctx context.Context, req SaleRequest) (Sale, error)
}

// ProductLookup resolves products for the cart.
type ProductLookup interface {
	Product(ctx context.Context, id string) (Product, error)
}

// CheckoutInput carries the non-cart parts of a sale.
type CheckoutInput struct {
	CustomerID    *string `json:"customerId"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Submitter is the checkout state machine: Idle -> Submitting -> Idle on
// success, Submitting -> Failed on error. Failed accepts a new attempt.
// It is not safe for concurrent use; Session serialises access.
type Submitter struct {
	state    State
	lastErr  error
	lastSale *Sale
}

// State returns the current state.
func (s *Submitter) State() State {
	if s.state == "" {
		return StateIdle
	}
	return s.state
}

// LastError returns the error retained by the last failed attempt.
func (s *Submitter) LastError() error { return s.lastErr }

// LastSale returns the sale created by the last successful attempt.
func (s *Submitter) LastSale() *Sale { return s.lastSale }

// Begin validates the guards and moves to Submitting. The returned request is
// built from a snapshot of cart so later cart mutations do not affect it.
// On error the state is unchanged.
func (s *Submitter) Begin(cart *Cart, in CheckoutInput) (SaleRequest, error) {
	if s.State() == StateSubmitting {
		return SaleRequest{}, ErrSubmissionInFlight
	}
	if cart.IsEmpty() {
		return SaleRequest{}, ErrEmptyCart
	}
	snapshot := cart.Snapshot()
	req := BuildSaleRequest(&snapshot, in)
	s.state = StateSubmitting
	return req, nil
}

// Finish records the outcome of the attempt started by Begin. Success clears
// the cart; failure keeps it and retains err.
func (s *Submitter) Finish(cart *Cart, sale Sale, err error) error {
	if err != nil {
		wrapped := &SubmissionError{Err: err}
		s.state = StateFailed
		s.lastErr = wrapped
		return wrapped
	}
	s.state = StateIdle
	s.lastErr = nil
	s.lastSale = &sale
	cart.Clear()
	return nil
}

// Submit runs a full attempt against writer. Callers that need the cart to stay
// mutable during the call use Begin and Finish directly.
func (s *Submitter) Submit(ctx context.Context, writer SaleWriter, cart *Cart, in CheckoutInput) (Sale, error) {
	req, err := s.Begin(cart, in)
	if err != nil {
		return Sale{}, err
	}
	sale, err := writer.CreateSale(ctx, req)
	if err := s.Finish(cart, sale, err); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// BuildSaleRequest serialises cart into a sale creation request with amounts
// rounded to the currency minor unit.
func BuildSaleRequest(cart *Cart, in CheckoutInput) SaleRequest {
	summary := cart.Summary().Rounded()
	lines := cart.Lines()
	items := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SaleItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.UnitPrice})
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = DefaultPaymentMethod
	}
	var customerID *string
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) != "" {
		id := strings.TrimSpace(*in.CustomerID)
		customerID = &id
	}
	return SaleRequest{
		CustomerID:    customerID,
		Items:         items,
		Subtotal:      summary.Subtotal,
		Discount:      summary.Discount,
		Tax:           summary.Tax,
		Total:         summary.Total,
		PaymentMethod: method,
	}
}
