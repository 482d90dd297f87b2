package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/obs"
)

// Service exposes session operations backed by a product lookup and a sale writer.
type Service struct {
	Sessions *Registry
	Products ProductLookup
	Sales    SaleWriter
	Logger   zerolog.Logger
}

// Open creates a new session.
func (s *Service) Open() View {
	return s.Sessions.Create().View()
}

// Get returns the current view of a session.
func (s *Service) Get(id string) (View, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

// Close removes a session.
func (s *Service) Close(id string) error {
	return s.Sessions.Delete(id)
}

// AddItem resolves productID and adds one unit of it to the session's cart.
// The lookup runs outside the session lock.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	product, err := s.Products.Product(ctx, productID)
	if err != nil {
		return View{}, fmt.Errorf("lookup product: %w", err)
	}
	v, err := sess.AddItem(product)
	return v, s.observe(err)
}

// ChangeQuantity applies delta to a cart line.
func (s *Service) ChangeQuantity(sessionID, productID string, delta int) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	v, err := sess.ChangeQuantity(productID, delta)
	return v, s.observe(err)
}

// SetQuantity moves a cart line to an absolute quantity.
func (s *Service) SetQuantity(sessionID, productID string, quantity int) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	v, err := sess.SetQuantity(productID, quantity)
	return v, s.observe(err)
}

// RemoveItem drops a cart line.
func (s *Service) RemoveItem(sessionID, productID string) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	return sess.RemoveItem(productID), nil
}

// Clear empties a session's cart.
func (s *Service) Clear(sessionID string) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	return sess.Clear(), nil
}

// Adjust updates discount, tax and customer.
func (s *Service) Adjust(sessionID string, a Adjustments) (View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return View{}, err
	}
	return sess.Adjust(a), nil
}

// Checkout submits the session's cart once.
func (s *Service) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (Sale, View, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return Sale{}, View{}, err
	}
	sale, v, err := sess.Checkout(ctx, s.Sales, in)
	switch {
	case err == nil:
		obs.IncCheckout("success")
		s.Logger.Info().Str("session", sessionID).Str("sale_id", sale.ID).Str("invoice_no", sale.InvoiceNo).Msg("pos checkout completed")
	case errors.Is(err, ErrEmptyCart):
		obs.IncCheckout("empty")
	case errors.Is(err, ErrSubmissionInFlight):
		obs.IncCheckout("busy")
	default:
		obs.IncCheckout("failed")
		s.Logger.Warn().Err(err).Str("session", sessionID).Msg("pos checkout failed")
	}
	return sale, v, err
}

func (s *Service) observe(err error) error {
	if errors.Is(err, ErrStockLimit) {
		obs.IncStockLimit()
	}
	return err
}
