package pos

import (
	"errors"
	"fmt"
)

var (
	// ErrStockLimit signals a cart mutation that would exceed on-hand stock.
	ErrStockLimit = errors.New("pos: stock limit exceeded")
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("pos: cart is empty")
	// ErrSubmissionInFlight is returned while a checkout for the same session is outstanding.
	ErrSubmissionInFlight = errors.New("pos: checkout already in progress")
	// ErrSubmissionFailed wraps any failure reported by the sale writer.
	ErrSubmissionFailed = errors.New("pos: submission failed")
	// ErrLineNotFound is returned when a quantity change targets a product not in the cart.
	ErrLineNotFound = errors.New("pos: line not found")
	// ErrSessionNotFound is returned for unknown or evicted sessions.
	ErrSessionNotFound = errors.New("pos: session not found")
	// ErrProductNotFound is returned by ProductLookup implementations for unknown products.
	ErrProductNotFound = errors.New("pos: product not found")
)

// StockLimitError carries the rejected request. It matches ErrStockLimit with errors.Is.
type StockLimitError struct {
	ProductID string
	Stock     int
	Requested int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("pos: stock limit exceeded for %s: requested %d, available %d", e.ProductID, e.Requested, e.Stock)
}

// Is reports ErrStockLimit equivalence.
func (e *StockLimitError) Is(target error) bool {
	return target == ErrStockLimit
}

// SubmissionError wraps the sale writer failure. It matches ErrSubmissionFailed with errors.Is
// and unwraps to the writer's error.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "pos: submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is reports ErrSubmissionFailed equivalence.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}
