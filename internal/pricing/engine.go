package pricing

import "github.com/shopspring/decimal"

// MinorUnitPlaces is the number of decimal places amounts are rounded to for presentation and persistence.
const MinorUnitPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	// Tolerance is the largest difference accepted between client supplied and recomputed totals.
	Tolerance = decimal.New(1, -MinorUnitPlaces)
)

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice decimal.Decimal
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Taxable  decimal.Decimal `json:"taxable"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ClampDiscount bounds a discount percentage to [0,100].
func ClampDiscount(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// ClampTax bounds a tax percentage to [0,∞). Rates above 100% are accepted.
func ClampTax(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

// Compute calculates cart totals given the provided inputs. Lines with a
// non-positive quantity contribute nothing. No rounding is applied.
func Compute(items []Item, discountPct, taxPct decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	discount := subtotal.Mul(ClampDiscount(discountPct)).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(ClampTax(taxPct)).Div(hundred)
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}

// Rounded rounds each component to the currency minor unit. Taxable and
// Total are derived from the rounded parts so Total == Subtotal - Discount + Tax
// holds exactly on the result.
func (s Summary) Rounded() Summary {
	subtotal := s.Subtotal.Round(MinorUnitPlaces)
	discount := s.Discount.Round(MinorUnitPlaces)
	tax := s.Tax.Round(MinorUnitPlaces)
	taxable := subtotal.Sub(discount)
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}

// Consistent reports whether total equals subtotal - discount + tax within Tolerance.
func Consistent(subtotal, discount, tax, total decimal.Decimal) bool {
	return WithinTolerance(subtotal.Sub(discount).Add(tax), total)
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
