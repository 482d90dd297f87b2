package pos

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Product is the slice of catalog data the cart needs.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Line is one product entry in the cart.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
}

// Subtotal returns UnitPrice × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered set of lines plus the discount and tax inputs.
// Every line satisfies 1 <= Quantity <= Stock. The zero value is an empty cart.
type Cart struct {
	lines           []Line
	discountPercent decimal.Decimal
	taxPercent      decimal.Decimal
}

// NewCart returns an empty cart with the given default tax percentage.
func NewCart(taxPercent decimal.Decimal) Cart {
	return Cart{taxPercent: taxPercent}
}

// AddItem puts one unit of p in the cart. A new line starts at quantity 1; an
// existing line is incremented. Exceeding p.Stock leaves the cart untouched and
// returns a *StockLimitError. The stock on an existing line is refreshed from p.
func (c *Cart) AddItem(p Product) error {
	if idx := c.index(p.ID); idx >= 0 {
		line := &c.lines[idx]
		if line.Quantity+1 > p.Stock {
			return &StockLimitError{ProductID: p.ID, Stock: p.Stock, Requested: line.Quantity + 1}
		}
		line.Quantity++
		line.Stock = p.Stock
		return nil
	}
	if p.Stock < 1 {
		return &StockLimitError{ProductID: p.ID, Stock: p.Stock, Requested: 1}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Stock:     p.Stock,
	})
	return nil
}

// ChangeQuantity applies delta to the line for productID. A result of zero or
// less removes the line; a result above the line's stock is rejected.
func (c *Cart) ChangeQuantity(productID string, delta int) error {
	idx := c.index(productID)
	if idx < 0 {
		return ErrLineNotFound
	}
	line := &c.lines[idx]
	switch {
	case delta <= -line.Quantity:
		c.lines = slices.Delete(c.lines, idx, idx+1)
	case delta > line.Stock-line.Quantity:
		requested := math.MaxInt
		if delta <= math.MaxInt-line.Quantity {
			requested = line.Quantity + delta
		}
		return &StockLimitError{ProductID: productID, Stock: line.Stock, Requested: requested}
	default:
		line.Quantity += delta
	}
	return nil
}

// RemoveItem drops the line for productID. Absent products are ignored.
func (c *Cart) RemoveItem(productID string) {
	if idx := c.index(productID); idx >= 0 {
		c.lines = slices.Delete(c.lines, idx, idx+1)
	}
}

// Clear empties the cart and resets the discount. The tax percentage is kept.
func (c *Cart) Clear() {
	c.lines = nil
	c.discountPercent = decimal.Zero
}

// SetDiscountPercent stores the discount input. Clamping happens in pricing.
func (c *Cart) SetDiscountPercent(p decimal.Decimal) {
	c.discountPercent = p
}

// SetTaxPercent stores the tax input. Clamping happens in pricing.
func (c *Cart) SetTaxPercent(p decimal.Decimal) {
	c.taxPercent = p
}

// DiscountPercent returns the stored discount input.
func (c *Cart) DiscountPercent() decimal.Decimal { return c.discountPercent }

// TaxPercent returns the stored tax input.
func (c *Cart) TaxPercent() decimal.Decimal { return c.taxPercent }

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

// Line returns the line for productID.
func (c *Cart) Line(productID string) (Line, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return Line{}, false
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Summary prices the cart without rounding.
func (c *Cart) Summary() pricing.Summary {
	items := make([]pricing.Item, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, pricing.Item{Qty: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return pricing.Compute(items, c.discountPercent, c.taxPercent)
}

// Snapshot returns an independent copy of the cart.
func (c *Cart) Snapshot() Cart {
	return Cart{
		lines:           slices.Clone(c.lines),
		discountPercent: c.discountPercent,
		taxPercent:      c.taxPercent,
	}
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ProductID == productID })
}
