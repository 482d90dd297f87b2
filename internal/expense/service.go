package expense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/common"
	db "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// ErrNotFound is wrapped when an expense does not exist.
var ErrNotFound = errors.New("expense: not found")

type queries interface {
	ListExpenses(ctx context.Context, arg db.ListExpensesParams) ([]db.Expense, error)
	CountExpenses(ctx context.Context, arg db.CountExpensesParams) (int64, error)
	GetExpense(ctx context.Context, id pgtype.UUID) (db.Expense, error)
	CreateExpense(ctx context.Context, arg db.CreateExpenseParams) (db.Expense, error)
	UpdateExpense(ctx context.Context, arg db.UpdateExpenseParams) (db.Expense, error)
	DeleteExpense(ctx context.Context, id pgtype.UUID) (int64, error)
}

// Expense is an operating cost such as rent or electricity.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     time.Time       `json:"spentAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Input is the writable part of an expense. SpentAt defaults to now.
type Input struct {
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     *time.Time      `json:"spentAt"`
}

// Service records operating expenses.
type Service struct {
	queries queries
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(q queries) *Service {
	return &Service{queries: q, now: time.Now}
}

// List returns expenses spent inside rng, newest first.
func (s *Service) List(ctx context.Context, rng common.TimeRange, page, perPage int) ([]Expense, int64, error) {
	start, end := rng.Bounds()
	rows, err := s.queries.ListExpenses(ctx, db.ListExpensesParams{
		StartAt:    start,
		EndAt:      end,
		LimitCount: int32(perPage),
		OffsetRows: int32(common.Offset(page, perPage)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	total, err := s.queries.CountExpenses(ctx, db.CountExpensesParams{StartAt: start, EndAt: end})
	if err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	out := make([]Expense, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}
	return out, total, nil
}

// Get returns one expense.
func (s *Service) Get(ctx context.Context, id string) (Expense, error) {
	uid, err := parseID(id)
	if err != nil {
		return Expense{}, err
	}
	row, err := s.queries.GetExpense(ctx, uid)
	if err != nil {
		return Expense{}, mapErr(err)
	}
	return convert(row), nil
}

// Create records a new expense.
func (s *Service) Create(ctx context.Context, in Input) (Expense, error) {
	amount, spentAt, err := s.normalise(in)
	if err != nil {
		return Expense{}, err
	}
	row, err := s.queries.CreateExpense(ctx, db.CreateExpenseParams{
		Category:    strings.TrimSpace(in.Category),
		Description: common.Text(in.Description),
		Amount:      amount,
		SpentAt:     spentAt,
	})
	if err != nil {
		return Expense{}, mapErr(err)
	}
	return convert(row), nil
}

// Update replaces an expense.
func (s *Service) Update(ctx context.Context, id string, in Input) (Expense, error) {
	uid, err := parseID(id)
	if err != nil {
		return Expense{}, err
	}
	amount, spentAt, err := s.normalise(in)
	if err != nil {
		return Expense{}, err
	}
	row, err := s.queries.UpdateExpense(ctx, db.UpdateExpenseParams{
		ID:          uid,
		Category:    strings.TrimSpace(in.Category),
		Description: common.Text(in.Description),
		Amount:      amount,
		SpentAt:     spentAt,
	})
	if err != nil {
		return Expense{}, mapErr(err)
	}
	return convert(row), nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteExpense(ctx, uid)
	if err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return common.NewAppError("NOT_FOUND", "expense not found", http.StatusNotFound, ErrNotFound)
	}
	return nil
}

func (s *Service) normalise(in Input) (pgtype.Numeric, pgtype.Timestamptz, error) {
	if !in.Amount.IsPositive() {
		return pgtype.Numeric{}, pgtype.Timestamptz{}, common.NewAppError("VALIDATION_FAILED", "validation failed", http.StatusUnprocessableEntity, nil).
			WithDetails(map[string]string{"amount": "must be greater than 0"})
	}
	spentAt := s.now()
	if in.SpentAt != nil && !in.SpentAt.IsZero() {
		spentAt = *in.SpentAt
	}
	return common.Numeric(common.Money(in.Amount)), pgtype.Timestamptz{Time: spentAt.UTC(), Valid: true}, nil
}

func convert(row db.Expense) Expense {
	return Expense{
		ID:          common.UUIDString(row.ID),
		Category:    row.Category,
		Description: common.NullableText(row.Description),
		Amount:      common.Decimal(row.Amount),
		SpentAt:     row.SpentAt.Time,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func parseID(id string) (pgtype.UUID, error) {
	uid, err := common.ParseUUID(id)
	if err != nil {
		return pgtype.UUID{}, common.NewAppError("BAD_REQUEST", "invalid id", http.StatusBadRequest, err)
	}
	return uid, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewAppError("NOT_FOUND", "expense not found", http.StatusNotFound, ErrNotFound)
	}
	return fmt.Errorf("expense query: %w", err)
}
