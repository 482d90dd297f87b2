package purchase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/db"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// ErrNotFound is wrapped when a purchase, supplier or product does not exist.
var ErrNotFound = errors.New("purchase: not found")

// TxQueries are the writes performed inside the purchase transaction.
type TxQueries interface {
	CreatePurchase(ctx context.Context, arg dbgen.CreatePurchaseParams) (dbgen.Purchase, error)
	CreatePurchaseItem(ctx context.Context, arg dbgen.CreatePurchaseItemParams) (dbgen.PurchaseItem, error)
	IncrementProductStock(ctx context.Context, arg dbgen.IncrementProductStockParams) (dbgen.IncrementProductStockRow, error)
}

// TxFunc runs fn inside one database transaction.
type TxFunc func(ctx context.Context, fn func(q TxQueries) error) error

// PoolTx returns a TxFunc backed by pool.
func PoolTx(pool *pgxpool.Pool) TxFunc {
	return func(ctx context.Context, fn func(q TxQueries) error) error {
		return db.InTx(ctx, pool, func(q *dbgen.Queries) error { return fn(q) })
	}
}

type readQueries interface {
	GetPurchase(ctx context.Context, id pgtype.UUID) (dbgen.Purchase, error)
	ListPurchaseItems(ctx context.Context, purchaseID pgtype.UUID) ([]dbgen.PurchaseItem, error)
	ListPurchases(ctx context.Context, arg dbgen.ListPurchasesParams) ([]dbgen.Purchase, error)
	CountPurchases(ctx context.Context) (int64, error)
}

// ItemInput is one received product line.
type ItemInput struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1,max=2147483647"`
	Cost      decimal.Decimal `json:"cost"`
}

// CreateInput is the body of POST /purchases.
type CreateInput struct {
	SupplierID  *string     `json:"supplierId" validate:"omitempty,uuid"`
	ReferenceNo string      `json:"referenceNo" validate:"max=64"`
	Note        string      `json:"note" validate:"max=500"`
	Items       []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// Line is a persisted purchase line.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Purchase is stock received from a supplier.
type Purchase struct {
	ID          string          `json:"id"`
	SupplierID  *string         `json:"supplierId"`
	ReferenceNo *string         `json:"referenceNo"`
	Total       decimal.Decimal `json:"total"`
	Note        *string         `json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []Line          `json:"items,omitempty"`
}

// Service records stock-in from suppliers.
type Service struct {
	Tx      TxFunc
	Queries readQueries
	Events  *events.Bus
	Logger  zerolog.Logger
}

// Create records the purchase, increments stock and sets each product's cost
// to the latest purchase cost, all in one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (Purchase, error) {
	if s == nil || s.Tx == nil {
		return Purchase{}, errors.New("purchase service not configured")
	}
	if err := common.ValidateStruct(in); err != nil {
		return Purchase{}, err
	}
	details := map[string]string{}
	total := decimal.Zero
	for i, item := range in.Items {
		if item.Cost.IsNegative() {
			details[fmt.Sprintf("items[%d].cost", i)] = "must not be negative"
		}
		total = total.Add(common.Money(item.Cost).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if len(details) > 0 {
		return Purchase{}, common.NewAppError("VALIDATION_FAILED", "validation failed", http.StatusUnprocessableEntity, nil).WithDetails(details)
	}
	supplierID, err := common.OptionalUUID(in.SupplierID)
	if err != nil {
		return Purchase{}, common.NewAppError("BAD_REQUEST", "invalid supplierId", http.StatusBadRequest, err)
	}

	var out Purchase
	err = s.Tx(ctx, func(q TxQueries) error {
		created, err := q.CreatePurchase(ctx, dbgen.CreatePurchaseParams{
			SupplierID:  supplierID,
			ReferenceNo: common.Text(in.ReferenceNo),
			Total:       common.Numeric(total),
			Note:        common.Text(in.Note),
		})
		if err != nil {
			if common.IsForeignKeyViolation(err) {
				return common.NewAppError("SUPPLIER_NOT_FOUND", "supplier not found", http.StatusUnprocessableEntity, ErrNotFound)
			}
			return fmt.Errorf("create purchase: %w", err)
		}
		out = convertPurchase(created)
		for i, item := range in.Items {
			pid, err := common.ParseUUID(item.ProductID)
			if err != nil {
				return common.NewAppError("BAD_REQUEST", "invalid productId", http.StatusBadRequest, err)
			}
			cost := common.Money(item.Cost)
			if _, err := q.IncrementProductStock(ctx, dbgen.IncrementProductStockParams{
				Quantity: int32(item.Quantity),
				Cost:     common.Numeric(cost),
				ID:       pid,
			}); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return common.NewAppError("PRODUCT_NOT_FOUND", "product not found", http.StatusUnprocessableEntity, ErrNotFound).
						WithDetails(map[string]any{"index": i, "productId": item.ProductID})
				}
				return fmt.Errorf("increment stock: %w", err)
			}
			line, err := q.CreatePurchaseItem(ctx, dbgen.CreatePurchaseItemParams{
				PurchaseID: created.ID,
				ProductID:  pid,
				Quantity:   int32(item.Quantity),
				Cost:       common.Numeric(cost),
				Subtotal:   common.Numeric(cost.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			})
			if err != nil {
				return fmt.Errorf("create purchase item: %w", err)
			}
			out.Items = append(out.Items, convertLine(line))
		}
		return nil
	})
	if err != nil {
		return Purchase{}, err
	}

	obs.IncPurchaseCreated()
	s.emit(ctx, out)
	return out, nil
}

// Get returns a purchase with its lines.
func (s *Service) Get(ctx context.Context, id string) (Purchase, error) {
	pid, err := common.ParseUUID(id)
	if err != nil {
		return Purchase{}, common.NewAppError("BAD_REQUEST", "invalid id", http.StatusBadRequest, err)
	}
	row, err := s.Queries.GetPurchase(ctx, pid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Purchase{}, common.NewAppError("NOT_FOUND", "purchase not found", http.StatusNotFound, ErrNotFound)
		}
		return Purchase{}, fmt.Errorf("get purchase: %w", err)
	}
	items, err := s.Queries.ListPurchaseItems(ctx, pid)
	if err != nil {
		return Purchase{}, fmt.Errorf("list purchase items: %w", err)
	}
	out := convertPurchase(row)
	out.Items = make([]Line, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, convertLine(it))
	}
	return out, nil
}

// List returns purchases newest first.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Purchase, int64, error) {
	rows, err := s.Queries.ListPurchases(ctx, dbgen.ListPurchasesParams{
		LimitCount: int32(perPage),
		OffsetRows: int32(common.Offset(page, perPage)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	total, err := s.Queries.CountPurchases(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}
	out := make([]Purchase, 0, len(rows))
	for _, row := range rows {
		out = append(out, convertPurchase(row))
	}
	return out, total, nil
}

func (s *Service) emit(ctx context.Context, out Purchase) {
	if s.Events == nil {
		return
	}
	id, err := common.ParseUUID(out.ID)
	if err != nil {
		return
	}
	productIDs := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	payload := events.PurchaseCreated{
		PurchaseID: out.ID,
		Total:      out.Total.StringFixed(2),
		ProductIDs: productIDs,
	}
	if out.SupplierID != nil {
		payload.SupplierID = *out.SupplierID
	}
	if _, err := s.Events.Emit(ctx, events.TopicPurchaseCreated, id, payload); err != nil {
		s.Logger.Warn().Err(err).Str("purchase_id", out.ID).Msg("emit purchase.created")
	}
}

func convertPurchase(row dbgen.Purchase) Purchase {
	return Purchase{
		ID:          common.UUIDString(row.ID),
		SupplierID:  common.NullableUUIDString(row.SupplierID),
		ReferenceNo: common.NullableText(row.ReferenceNo),
		Total:       common.Decimal(row.Total),
		Note:        common.NullableText(row.Note),
		CreatedAt:   row.CreatedAt.Time,
	}
}

func convertLine(row dbgen.PurchaseItem) Line {
	return Line{
		ProductID: common.UUIDString(row.ProductID),
		Quantity:  int(row.Quantity),
		Cost:      common.Decimal(row.Cost),
		Subtotal:  common.Decimal(row.Subtotal),
	}
}
