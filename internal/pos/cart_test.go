package pos

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id string, price string, stock int) Product {
	return Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Stock: stock}
}

func TestAddItemRespectsStockScenario(t *testing.T) {
	var c Cart
	p := product("p1", "2500", 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddItem(p))
	}
	err := c.AddItem(p)
	require.ErrorIs(t, err, ErrStockLimit)

	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 3, stockErr.Stock)
	require.Equal(t, 4, stockErr.Requested)

	line, ok := c.Line("p1")
	require.True(t, ok)
	require.Equal(t, 3, line.Quantity)
	require.Equal(t, 1, c.Len())
}

func TestAddItemAtCapacityLeavesCartUnchanged(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 1)))
	require.NoError(t, c.AddItem(product("b", "20", 5)))
	before := c.Lines()

	require.ErrorIs(t, c.AddItem(product("a", "10", 1)), ErrStockLimit)
	require.Equal(t, before, c.Lines())
}

func TestAddItemRejectsOutOfStockProduct(t *testing.T) {
	var c Cart
	require.ErrorIs(t, c.AddItem(product("a", "10", 0)), ErrStockLimit)
	require.True(t, c.IsEmpty())
}

func TestChangeQuantityRemovesAtZeroAndBelow(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 10)))
	require.NoError(t, c.AddItem(product("b", "10", 10)))
	require.NoError(t, c.ChangeQuantity("a", 2))

	require.NoError(t, c.ChangeQuantity("a", -3))
	_, ok := c.Line("a")
	require.False(t, ok)

	require.NoError(t, c.ChangeQuantity("b", -50))
	require.True(t, c.IsEmpty())

	for _, l := range c.Lines() {
		require.Positive(t, l.Quantity)
	}
}

func TestChangeQuantityRejectsAboveStock(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 4)))

	require.ErrorIs(t, c.ChangeQuantity("a", 4), ErrStockLimit)
	line, _ := c.Line("a")
	require.Equal(t, 1, line.Quantity)

	require.NoError(t, c.ChangeQuantity("a", 3))
	line, _ = c.Line("a")
	require.Equal(t, 4, line.Quantity)
}

func TestChangeQuantityUnknownLine(t *testing.T) {
	var c Cart
	require.ErrorIs(t, c.ChangeQuantity("missing", 1), ErrLineNotFound)
}

func TestRemoveItemIsUnconditional(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 4)))
	require.NoError(t, c.AddItem(product("a", "10", 4)))
	c.RemoveItem("a")
	c.RemoveItem("never-added")
	require.True(t, c.IsEmpty())
}

func TestClearResetsDiscountButNotTax(t *testing.T) {
	c := NewCart(decimal.NewFromInt(11))
	require.NoError(t, c.AddItem(product("a", "10", 4)))
	c.SetDiscountPercent(decimal.NewFromInt(15))
	c.SetTaxPercent(decimal.NewFromInt(10))

	c.Clear()
	require.True(t, c.IsEmpty())
	require.True(t, c.DiscountPercent().IsZero())
	require.True(t, c.TaxPercent().Equal(decimal.NewFromInt(10)))

	var empty Cart
	empty.Clear()
	require.True(t, empty.IsEmpty())
	require.True(t, empty.DiscountPercent().IsZero())
}

func TestCartSummaryReferenceScenario(t *testing.T) {
	var c Cart
	p := product("a", "100000", 5)
	require.NoError(t, c.AddItem(p))
	require.NoError(t, c.AddItem(p))
	c.SetDiscountPercent(decimal.NewFromInt(10))
	c.SetTaxPercent(decimal.NewFromInt(10))

	s := c.Summary()
	require.True(t, s.Subtotal.Equal(decimal.NewFromInt(200000)))
	require.True(t, s.Discount.Equal(decimal.NewFromInt(20000)))
	require.True(t, s.Taxable.Equal(decimal.NewFromInt(180000)))
	require.True(t, s.Tax.Equal(decimal.NewFromInt(18000)))
	require.True(t, s.Total.Equal(decimal.NewFromInt(198000)))
}

func TestSnapshotIsIndependent(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("a", "10", 4)))
	snap := c.Snapshot()

	require.NoError(t, c.ChangeQuantity("a", 2))
	require.NoError(t, c.AddItem(product("b", "1", 1)))

	line, _ := snap.Line("a")
	require.Equal(t, 1, line.Quantity)
	require.Equal(t, 1, snap.Len())
}

func TestChangeQuantityExtremeDeltas(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(product("p", "100", 3)))

	err := c.ChangeQuantity("p", math.MaxInt)
	require.ErrorIs(t, err, ErrStockLimit)
	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, math.MaxInt, stockErr.Requested)
	line, ok := c.Line("p")
	require.True(t, ok, "line must survive a rejected increase")
	require.Equal(t, 1, line.Quantity)

	require.NoError(t, c.ChangeQuantity("p", 2))
	require.ErrorIs(t, c.ChangeQuantity("p", math.MaxInt-2), ErrStockLimit)
	line, _ = c.Line("p")
	require.Equal(t, 3, line.Quantity)

	require.NoError(t, c.ChangeQuantity("p", math.MinInt))
	require.True(t, c.IsEmpty())
}

func TestSessionSetQuantityBounds(t *testing.T) {
	s := newSession("s1", decimal.Zero, time.Now)
	_, err := s.AddItem(product("p", "100", 3))
	require.NoError(t, err)

	_, err = s.SetQuantity("p", math.MaxInt)
	require.ErrorIs(t, err, ErrStockLimit)

	v, err := s.SetQuantity("p", math.MinInt)
	require.NoError(t, err)
	require.Empty(t, v.Lines)
}
