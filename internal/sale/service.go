package sale

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
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
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Payment methods accepted by the till.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentQRIS     = "qris"
)

var (
	// ErrInsufficientStock is wrapped when a line asks for more than is on hand.
	ErrInsufficientStock = errors.New("sale: insufficient stock")
	// ErrInconsistentTotals is wrapped when the submitted amounts do not add up.
	ErrInconsistentTotals = errors.New("sale: inconsistent totals")
	// ErrNotFound is wrapped when a sale or one of its products does not exist.
	ErrNotFound = errors.New("sale: not found")
)

// TxQueries are the writes performed inside the sale transaction.
type TxQueries interface {
	GetProduct(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	DecrementProductStock(ctx context.Context, arg dbgen.DecrementProductStockParams) (dbgen.DecrementProductStockRow, error)
	CreateSale(ctx context.Context, arg dbgen.CreateSaleParams) (dbgen.Sale, error)
	CreateSaleItem(ctx context.Context, arg dbgen.CreateSaleItemParams) (dbgen.SaleItem, error)
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
	GetSale(ctx context.Context, id pgtype.UUID) (dbgen.Sale, error)
	ListSaleItems(ctx context.Context, saleID pgtype.UUID) ([]dbgen.SaleItem, error)
	ListSales(ctx context.Context, arg dbgen.ListSalesParams) ([]dbgen.Sale, error)
	CountSales(ctx context.Context, arg dbgen.CountSalesParams) (int64, error)
}

// Item is one requested sale line.
type Item struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1,max=2147483647"`
	Price     decimal.Decimal `json:"price"`
}

// CreateInput is the body of POST /sales.
type CreateInput struct {
	CustomerID    *string         `json:"customerId" validate:"omitempty,uuid"`
	Items         []Item          `json:"items" validate:"required,min=1,dive"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer qris"`
}

// Line is a persisted sale line.
type Line struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Sale is a completed sale.
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
	Items         []Line          `json:"items,omitempty"`
}

// Service records sales and decrements stock atomically.
type Service struct {
	Tx      TxFunc
	Queries readQueries
	Events  *events.Bus
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Create validates in, then writes the sale, its lines and the stock
// decrements in a single transaction. Nothing is written when any line fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (Sale, error) {
	if s == nil || s.Tx == nil {
		return Sale{}, errors.New("sale service not configured")
	}
	if err := common.ValidateStruct(in); err != nil {
		return Sale{}, err
	}
	if err := checkAmounts(in); err != nil {
		return Sale{}, err
	}
	customerID, err := common.OptionalUUID(in.CustomerID)
	if err != nil {
		return Sale{}, common.NewAppError("BAD_REQUEST", "invalid customerId", http.StatusBadRequest, err)
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = PaymentCash
	}

	var out Sale
	err = s.Tx(ctx, func(q TxQueries) error {
		lines := make([]dbgen.CreateSaleItemParams, 0, len(in.Items))
		for i, item := range in.Items {
			pid, err := common.ParseUUID(item.ProductID)
			if err != nil {
				return common.NewAppError("BAD_REQUEST", "invalid productId", http.StatusBadRequest, err)
			}
			row, err := q.DecrementProductStock(ctx, dbgen.DecrementProductStockParams{Quantity: int32(item.Quantity), ID: pid})
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return stockError(ctx, q, i, item, pid)
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
			price := common.Money(item.Price)
			lines = append(lines, dbgen.CreateSaleItemParams{
				ProductID:   pid,
				ProductName: row.Name,
				Quantity:    int32(item.Quantity),
				Price:       common.Numeric(price),
				Cost:        row.Cost,
				Subtotal:    common.Numeric(price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			})
		}

		created, err := q.CreateSale(ctx, dbgen.CreateSaleParams{
			InvoiceNo:     s.invoiceNo(),
			CustomerID:    customerID,
			Subtotal:      common.Numeric(common.Money(in.Subtotal)),
			Discount:      common.Numeric(common.Money(in.Discount)),
			Tax:           common.Numeric(common.Money(in.Tax)),
			Total:         common.Numeric(common.Money(in.Total)),
			PaymentMethod: method,
		})
		if err != nil {
			if common.IsForeignKeyViolation(err) {
				return common.NewAppError("CUSTOMER_NOT_FOUND", "customer not found", http.StatusUnprocessableEntity, err)
			}
			return fmt.Errorf("create sale: %w", err)
		}
		out = convertSale(created)
		for _, args := range lines {
			args.SaleID = created.ID
			item, err := q.CreateSaleItem(ctx, args)
			if err != nil {
				return fmt.Errorf("create sale item: %w", err)
			}
			out.Items = append(out.Items, convertLine(item))
		}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}

	obs.IncSaleCreated(out.PaymentMethod)
	s.emit(ctx, out)
	return out, nil
}

// Get returns a sale with its lines.
func (s *Service) Get(ctx context.Context, id string) (Sale, error) {
	sid, err := common.ParseUUID(id)
	if err != nil {
		return Sale{}, common.NewAppError("BAD_REQUEST", "invalid id", http.StatusBadRequest, err)
	}
	row, err := s.Queries.GetSale(ctx, sid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, common.NewAppError("NOT_FOUND", "sale not found", http.StatusNotFound, ErrNotFound)
		}
		return Sale{}, fmt.Errorf("get sale: %w", err)
	}
	items, err := s.Queries.ListSaleItems(ctx, sid)
	if err != nil {
		return Sale{}, fmt.Errorf("list sale items: %w", err)
	}
	out := convertSale(row)
	out.Items = make([]Line, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, convertLine(it))
	}
	return out, nil
}

// List returns sales created inside rng, newest first.
func (s *Service) List(ctx context.Context, rng common.TimeRange, page, perPage int) ([]Sale, int64, error) {
	start, end := rng.Bounds()
	rows, err := s.Queries.ListSales(ctx, dbgen.ListSalesParams{
		StartAt:    start,
		EndAt:      end,
		LimitCount: int32(perPage),
		OffsetRows: int32(common.Offset(page, perPage)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	total, err := s.Queries.CountSales(ctx, dbgen.CountSalesParams{StartAt: start, EndAt: end})
	if err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}
	out := make([]Sale, 0, len(rows))
	for _, row := range rows {
		out = append(out, convertSale(row))
	}
	return out, total, nil
}

func (s *Service) emit(ctx context.Context, out Sale) {
	if s.Events == nil {
		return
	}
	sid, err := common.ParseUUID(out.ID)
	if err != nil {
		return
	}
	productIDs := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	payload := events.SaleCreated{
		SaleID:        out.ID,
		InvoiceNo:     out.InvoiceNo,
		Total:         out.Total.StringFixed(2),
		PaymentMethod: out.PaymentMethod,
		ProductIDs:    productIDs,
	}
	if _, err := s.Events.Emit(ctx, events.TopicSaleCreated, sid, payload); err != nil {
		s.Logger.Warn().Err(err).Str("sale_id", out.ID).Msg("emit sale.created")
	}
}

func (s *Service) invoiceNo() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "INV-" + now().UTC().Format("20060102") + "-" + suffix
}

func checkAmounts(in CreateInput) error {
	details := map[string]string{}
	for i, item := range in.Items {
		if item.Price.IsNegative() {
			details[fmt.Sprintf("items[%d].price", i)] = "must not be negative"
		}
	}
	for field, v := range map[string]decimal.Decimal{"subtotal": in.Subtotal, "discount": in.Discount, "tax": in.Tax, "total": in.Total} {
		if v.IsNegative() {
			details[field] = "must not be negative"
		}
	}
	if in.Discount.GreaterThan(in.Subtotal) {
		details["discount"] = "must not exceed subtotal"
	}
	if len(details) > 0 {
		return common.NewAppError("VALIDATION_FAILED", "validation failed", http.StatusUnprocessableEntity, nil).WithDetails(details)
	}

	sum := decimal.Zero
	for _, item := range in.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !pricing.WithinTolerance(sum, in.Subtotal) {
		return common.NewAppError("INCONSISTENT_TOTALS", "subtotal does not match items", http.StatusUnprocessableEntity, ErrInconsistentTotals).
			WithDetails(map[string]string{"expected": sum.StringFixed(2), "subtotal": in.Subtotal.StringFixed(2)})
	}
	if !pricing.Consistent(in.Subtotal, in.Discount, in.Tax, in.Total) {
		expected := in.Subtotal.Sub(in.Discount).Add(in.Tax)
		return common.NewAppError("INCONSISTENT_TOTALS", "total does not equal subtotal - discount + tax", http.StatusUnprocessableEntity, ErrInconsistentTotals).
			WithDetails(map[string]string{"expected": expected.StringFixed(2), "total": in.Total.StringFixed(2)})
	}
	return nil
}

func stockError(ctx context.Context, q TxQueries, index int, item Item, pid pgtype.UUID) error {
	product, err := q.GetProduct(ctx, pid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewAppError("PRODUCT_NOT_FOUND", "product not found", http.StatusUnprocessableEntity, ErrNotFound).
				WithDetails(map[string]any{"index": index, "productId": item.ProductID})
		}
		return fmt.Errorf("get product: %w", err)
	}
	return common.NewAppError("INSUFFICIENT_STOCK", "insufficient stock for "+product.Name, http.StatusConflict, ErrInsufficientStock).
		WithDetails(map[string]any{
			"index":     index,
			"productId": item.ProductID,
			"available": product.Stock,
			"requested": item.Quantity,
		})
}

func convertSale(row dbgen.Sale) Sale {
	return Sale{
		ID:            common.UUIDString(row.ID),
		InvoiceNo:     row.InvoiceNo,
		CustomerID:    common.NullableUUIDString(row.CustomerID),
		Subtotal:      common.Decimal(row.Subtotal),
		Discount:      common.Decimal(row.Discount),
		Tax:           common.Decimal(row.Tax),
		Total:         common.Decimal(row.Total),
		PaymentMethod: row.PaymentMethod,
		CreatedAt:     row.CreatedAt.Time,
	}
}

func convertLine(row dbgen.SaleItem) Line {
	return Line{
		ProductID:   common.UUIDString(row.ProductID),
		ProductName: row.ProductName,
		Quantity:    int(row.Quantity),
		Price:       common.Decimal(row.Price),
		Subtotal:    common.Decimal(row.Subtotal),
	}
}
