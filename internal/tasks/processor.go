package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/lock"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// CatalogInvalidator drops cached product data.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context, productIDs ...string) error
}

// ReportInvalidator retires cached report results.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

type lowStockQueries interface {
	ListLowStockProducts(ctx context.Context, arg dbgen.ListLowStockProductsParams) ([]dbgen.Product, error)
}

// Locker serialises the low-stock check per aggregate.
type Locker interface {
	TryWithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Processor handles stock-changed tasks in the worker.
type Processor struct {
	Catalog   CatalogInvalidator
	Reports   ReportInvalidator
	Queries   lowStockQueries
	Locker    Locker
	LockTTL   time.Duration
	Threshold int
	Logger    zerolog.Logger
}

// Register mounts the handlers on mux.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSaleCreated, p.HandleStockChanged)
	mux.HandleFunc(TypePurchaseCreated, p.HandleStockChanged)
}

// HandleStockChanged refreshes caches and reports products at or below the
// low-stock threshold. Malformed payloads are not retried.
func (p *Processor) HandleStockChanged(ctx context.Context, t *asynq.Task) error {
	var payload StockChanged
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	logger := p.Logger.With().Str("task", t.Type()).Str("event_id", payload.EventID).Logger()

	if p.Catalog != nil {
		if err := p.Catalog.Invalidate(ctx, payload.ProductIDs...); err != nil {
			return fmt.Errorf("invalidate catalog cache: %w", err)
		}
	}
	if p.Reports != nil {
		if err := p.Reports.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate report cache: %w", err)
		}
	}
	if t.Type() != TypeSaleCreated || p.Queries == nil || len(payload.ProductIDs) == 0 {
		logger.Debug().Msg("caches refreshed")
		return nil
	}

	check := func(ctx context.Context) error { return p.checkLowStock(ctx, logger, payload.ProductIDs) }
	if p.Locker == nil {
		return check(ctx)
	}
	err := p.Locker.TryWithLock(ctx, "lock:tasks:low-stock:"+payload.AggregateID, p.lockTTL(), check)
	if errors.Is(err, lock.ErrNotAcquired) {
		logger.Debug().Msg("low stock check already running")
		return nil
	}
	return err
}

func (p *Processor) checkLowStock(ctx context.Context, logger zerolog.Logger, productIDs []string) error {
	ids := make([]pgtype.UUID, 0, len(productIDs))
	for _, raw := range productIDs {
		id, err := common.ParseUUID(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	products, err := p.Queries.ListLowStockProducts(ctx, dbgen.ListLowStockProductsParams{
		Ids:       ids,
		Threshold: int32(p.Threshold),
	})
	if err != nil {
		return fmt.Errorf("list low stock products: %w", err)
	}
	for _, prod := range products {
		logger.Warn().
			Str("product_id", common.UUIDString(prod.ID)).
			Str("sku", prod.Sku).
			Int32("stock", prod.Stock).
			Int("threshold", p.Threshold).
			Msg("low stock")
	}
	obs.AddLowStockAlerts(len(products))
	return nil
}

func (p *Processor) lockTTL() time.Duration {
	if p.LockTTL <= 0 {
		return 30 * time.Second
	}
	return p.LockTTL
}
