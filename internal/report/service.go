package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

const versionKey = "rpt:version"

// Querier defines the database access required for reports.
type Querier interface {
	GetSalesSummary(ctx context.Context, arg dbgen.GetSalesSummaryParams) (dbgen.GetSalesSummaryRow, error)
	GetPurchaseTotal(ctx context.Context, arg dbgen.GetPurchaseTotalParams) (pgtype.Numeric, error)
	GetExpenseTotal(ctx context.Context, arg dbgen.GetExpenseTotalParams) (pgtype.Numeric, error)
	GetDailySales(ctx context.Context, arg dbgen.GetDailySalesParams) ([]dbgen.GetDailySalesRow, error)
	GetTopProducts(ctx context.Context, arg dbgen.GetTopProductsParams) ([]dbgen.GetTopProductsRow, error)
}

// Summary is the profit and loss view of a period. Revenue excludes tax
// collected; GrossSales includes it.
type Summary struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	SaleCount     int64           `json:"saleCount"`
	GrossSales    decimal.Decimal `json:"grossSales"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Revenue       decimal.Decimal `json:"revenue"`
	CostOfGoods   decimal.Decimal `json:"costOfGoods"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	Purchases     decimal.Decimal `json:"purchases"`
	Expenses      decimal.Decimal `json:"expenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// DailyPoint is one day of the sales series.
type DailyPoint struct {
	Day       time.Time       `json:"day"`
	SaleCount int64           `json:"saleCount"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopProduct ranks a product by quantity sold.
type TopProduct struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Service provides cached access to sales reports.
type Service struct {
	Q            Querier
	R            *redis.Client
	TTL          time.Duration
	DefaultRange int
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summary returns totals for rng.
func (s *Service) Summary(ctx context.Context, rng common.TimeRange) (Summary, error) {
	if s == nil || s.Q == nil {
		return Summary{}, errors.New("report service not configured")
	}
	key := s.cacheKey(ctx, "summary", rng.Key())
	var cached Summary
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	start, end := rng.Bounds()
	sales, err := s.Q.GetSalesSummary(ctx, dbgen.GetSalesSummaryParams{StartAt: start, EndAt: end})
	if err != nil {
		return Summary{}, fmt.Errorf("sales summary: %w", err)
	}
	purchases, err := s.Q.GetPurchaseTotal(ctx, dbgen.GetPurchaseTotalParams{StartAt: start, EndAt: end})
	if err != nil {
		return Summary{}, fmt.Errorf("purchase total: %w", err)
	}
	expenses, err := s.Q.GetExpenseTotal(ctx, dbgen.GetExpenseTotalParams{StartAt: start, EndAt: end})
	if err != nil {
		return Summary{}, fmt.Errorf("expense total: %w", err)
	}

	out := Summary{
		From:        rng.From,
		To:          rng.To,
		SaleCount:   sales.SaleCount,
		GrossSales:  common.Decimal(sales.Revenue),
		Discount:    common.Decimal(sales.Discount),
		Tax:         common.Decimal(sales.Tax),
		CostOfGoods: common.Money(common.Decimal(sales.Cogs)),
		Purchases:   common.Decimal(purchases),
		Expenses:    common.Decimal(expenses),
	}
	out.Revenue = out.GrossSales.Sub(out.Tax)
	out.GrossProfit = out.Revenue.Sub(out.CostOfGoods)
	out.NetProfit = out.GrossProfit.Sub(out.Expenses)
	if out.SaleCount > 0 {
		out.AverageTicket = common.Money(out.GrossSales.Div(decimal.NewFromInt(out.SaleCount)))
	}
	s.store(ctx, key, out)
	return out, nil
}

// Daily returns one point per day with at least one sale inside rng.
func (s *Service) Daily(ctx context.Context, rng common.TimeRange) ([]DailyPoint, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("report service not configured")
	}
	key := s.cacheKey(ctx, "daily", rng.Key())
	var cached []DailyPoint
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	start, end := rng.Bounds()
	rows, err := s.Q.GetDailySales(ctx, dbgen.GetDailySalesParams{StartAt: start, EndAt: end})
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	out := make([]DailyPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, DailyPoint{Day: row.Day.Time.UTC(), SaleCount: row.SaleCount, Revenue: common.Decimal(row.Revenue)})
	}
	s.store(ctx, key, out)
	return out, nil
}

// TopProducts returns the best selling products inside rng ordered by quantity.
func (s *Service) TopProducts(ctx context.Context, rng common.TimeRange, limit int32) ([]TopProduct, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("report service not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	key := s.cacheKey(ctx, "top", rng.Key(), limit)
	var cached []TopProduct
	if s.load(ctx, key, &cached) {
		return cached, nil
	}
	start, end := rng.Bounds()
	rows, err := s.Q.GetTopProducts(ctx, dbgen.GetTopProductsParams{StartAt: start, EndAt: end, LimitCount: limit})
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, TopProduct{
			ProductID:   common.UUIDString(row.ProductID),
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     common.Decimal(row.Revenue),
		})
	}
	s.store(ctx, key, out)
	return out, nil
}

// Invalidate retires every cached report. Entries from older generations
// expire on their TTL.
func (s *Service) Invalidate(ctx context.Context) error {
	if s == nil || s.R == nil {
		return nil
	}
	return s.R.Incr(ctx, versionKey).Err()
}

func (s *Service) cacheKey(ctx context.Context, parts ...any) string {
	version := int64(0)
	if s.R != nil {
		if v, err := s.R.Get(ctx, versionKey).Int64(); err == nil {
			version = v
		}
	}
	formatted := []string{"rpt", strconv.FormatInt(version, 10)}
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

func (s *Service) load(ctx context.Context, key string, dst any) bool {
	if s.R == nil || s.TTL <= 0 {
		return false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
