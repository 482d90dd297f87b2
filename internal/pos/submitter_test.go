package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	calls    int
	requests []SaleRequest
	err      error
}

func (f *fakeWriter) CreateSale(_ context.Context, req SaleRequest) (Sale, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return Sale{}, f.err
	}
	return Sale{
		ID:            "sale-1",
		InvoiceNo:     "INV-20250101-ABCDEF",
		CustomerID:    req.CustomerID,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}, nil
}

func TestSubmitEmptyCartIssuesNoCall(t *testing.T) {
	var (
		c   Cart
		sub Submitter
		w   fakeWriter
	)
	_, err := sub.Submit(context.Background(), &w, &c, CheckoutInput{})
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Zero(t, w.calls)
	require.Equal(t, StateIdle, sub.State())
	require.Nil(t, sub.LastError())
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	c := NewCart(decimal.NewFromInt(10))
	p := product("a", "100000", 5)
	require.NoError(t, c.AddItem(p))
	require.NoError(t, c.AddItem(p))
	c.SetDiscountPercent(decimal.NewFromInt(10))

	var (
		sub Submitter
		w   fakeWriter
	)
	customer := "8d5c2a3e-2f7b-4a8e-9b55-0c3f3f0c9a11"
	sale, err := sub.Submit(context.Background(), &w, &c, CheckoutInput{CustomerID: &customer})
	require.NoError(t, err)
	require.Equal(t, 1, w.calls)
	require.Equal(t, "sale-1", sale.ID)

	req := w.requests[0]
	require.Equal(t, customer, *req.CustomerID)
	require.Equal(t, DefaultPaymentMethod, req.PaymentMethod)
	require.Len(t, req.Items, 1)
	require.Equal(t, "a", req.Items[0].ProductID)
	require.Equal(t, 2, req.Items[0].Quantity)
	require.True(t, req.Items[0].Price.Equal(decimal.NewFromInt(100000)))
	require.True(t, req.Subtotal.Equal(decimal.NewFromInt(200000)))
	require.True(t, req.Discount.Equal(decimal.NewFromInt(20000)))
	require.True(t, req.Tax.Equal(decimal.NewFromInt(18000)))
	require.True(t, req.Total.Equal(decimal.NewFromInt(198000)))

	require.True(t, c.IsEmpty())
	require.True(t, c.DiscountPercent().IsZero())
	require.True(t, c.TaxPercent().Equal(decimal.NewFromInt(10)))
	require.Equal(t, StateIdle, sub.State())
	require.Equal(t, "sale-1", sub.LastSale().ID)
}

func TestSubmitFailurePreservesCartAndAllowsRetry(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 5)))
	before := c.Lines()

	var sub Submitter
	w := fakeWriter{err: errors.New("connection refused")}
	_, err := sub.Submit(context.Background(), &w, &c, CheckoutInput{PaymentMethod: "QRIS"})
	require.ErrorIs(t, err, ErrSubmissionFailed)
	require.ErrorContains(t, err, "connection refused")
	require.Equal(t, StateFailed, sub.State())
	require.Equal(t, before, c.Lines())
	require.Equal(t, 1, w.calls)
	require.Equal(t, "qris", w.requests[0].PaymentMethod)

	w.err = nil
	_, err = sub.Submit(context.Background(), &w, &c, CheckoutInput{})
	require.NoError(t, err)
	require.Equal(t, 2, w.calls)
	require.Equal(t, StateIdle, sub.State())
	require.Nil(t, sub.LastError())
	require.True(t, c.IsEmpty())
}

func TestBeginGuardsDoubleSubmission(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 5)))

	var sub Submitter
	req, err := sub.Begin(&c, CheckoutInput{})
	require.NoError(t, err)
	require.Equal(t, StateSubmitting, sub.State())

	_, err = sub.Begin(&c, CheckoutInput{})
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	require.NoError(t, c.ChangeQuantity("a", 2))
	require.Equal(t, 1, req.Items[0].Quantity)

	require.NoError(t, sub.Finish(&c, Sale{ID: "x"}, nil))
	require.Equal(t, StateIdle, sub.State())
}

func TestBuildSaleRequestTrimsBlankCustomer(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 5)))
	blank := "  "
	req := BuildSaleRequest(&c, CheckoutInput{CustomerID: &blank, PaymentMethod: " Card "})
	require.Nil(t, req.CustomerID)
	require.Equal(t, "card", req.PaymentMethod)
}
