package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

var (
	// ErrNotFound is wrapped by lookups that match no row.
	ErrNotFound = errors.New("catalog: not found")
	// ErrConflict is wrapped by writes that violate a uniqueness or reference constraint.
	ErrConflict = errors.New("catalog: conflict")
)

type queryProvider interface {
	ListCategories(ctx context.Context) ([]dbgen.Category, error)
	GetCategory(ctx context.Context, id pgtype.UUID) (dbgen.Category, error)
	CreateCategory(ctx context.Context, name string) (dbgen.Category, error)
	UpdateCategory(ctx context.Context, arg dbgen.UpdateCategoryParams) (dbgen.Category, error)
	DeleteCategory(ctx context.Context, id pgtype.UUID) (int64, error)
	ListProducts(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.Product, error)
	CountProducts(ctx context.Context, arg dbgen.CountProductsParams) (int64, error)
	GetProduct(ctx context.Context, id pgtype.UUID) (dbgen.Product, error)
	GetProductBySku(ctx context.Context, sku string) (dbgen.Product, error)
	CreateProduct(ctx context.Context, arg dbgen.CreateProductParams) (dbgen.Product, error)
	UpdateProduct(ctx context.Context, arg dbgen.UpdateProductParams) (dbgen.Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error)
}

// Service orchestrates catalog queries, DTO assembly, and caching.
type Service struct {
	queries           queryProvider
	cache             *Cache
	defaultLimit      int
	maxLimit          int
	lowStockThreshold int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries           queryProvider
	Cache             *Cache
	DefaultLimit      int
	MaxLimit          int
	LowStockThreshold int
}

// ListParams captures filters for product listing.
type ListParams struct {
	Query      string
	CategoryID string
	LowStock   bool
	Page       int
	Limit      int
}

// Category is the category payload.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is the product payload.
type Product struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int             `json:"stock"`
	Unit       string          `json:"unit"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProductInput is the writable part of a product.
type ProductInput struct {
	SKU        string          `json:"sku" validate:"required,max=64"`
	Name       string          `json:"name" validate:"required,max=200"`
	CategoryID *string         `json:"categoryId" validate:"omitempty,uuid"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int             `json:"stock" validate:"gte=0,max=2147483647"`
	Unit       string          `json:"unit" validate:"max=16"`
}

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"-"`
	Limit int       `json:"-"`
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	threshold := cfg.LowStockThreshold
	if threshold < 0 {
		threshold = 0
	}
	return &Service{
		queries:           cfg.Queries,
		cache:             cfg.Cache,
		defaultLimit:      defaultLimit,
		maxLimit:          maxLimit,
		lowStockThreshold: threshold,
	}, nil
}

// Cache exposes the cache so background jobs can invalidate it.
func (s *Service) Cache() *Cache {
	return s.cache
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{Page: 1, Limit: s.defaultLimit}
	params.Query = strings.TrimSpace(values.Get("q"))
	params.CategoryID = strings.TrimSpace(values.Get("category"))
	if params.CategoryID != "" {
		if _, err := common.ParseUUID(params.CategoryID); err != nil {
			return params, badRequest("category", "category must be a valid id", err)
		}
	}

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		params.Limit = l
	}
	if params.Limit > s.maxLimit {
		params.Limit = s.maxLimit
	}
	if params.Page > math.MaxInt32 || common.Offset(params.Page, params.Limit) > math.MaxInt32 {
		return params, badRequest("page", "page is out of range", nil)
	}
	if v := strings.TrimSpace(values.Get("lowStock")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, badRequest("lowStock", "lowStock must be true or false", err)
		}
		params.LowStock = b
	}
	return params, nil
}

// ListCategories returns all categories sorted by name.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	result := make([]Category, 0, len(rows))
	for _, row := range rows {
		result = append(result, toCategory(row))
	}
	return result, nil
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id string) (Category, error) {
	cid, err := parseID(id)
	if err != nil {
		return Category{}, err
	}
	row, err := s.queries.GetCategory(ctx, cid)
	if err != nil {
		return Category{}, mapErr("category", err)
	}
	return toCategory(row), nil
}

// CreateCategory inserts a category. Names are unique.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (Category, error) {
	row, err := s.queries.CreateCategory(ctx, strings.TrimSpace(in.Name))
	if err != nil {
		return Category{}, mapErr("category", err)
	}
	return toCategory(row), nil
}

// UpdateCategory renames a category.
func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (Category, error) {
	cid, err := parseID(id)
	if err != nil {
		return Category{}, err
	}
	row, err := s.queries.UpdateCategory(ctx, dbgen.UpdateCategoryParams{ID: cid, Name: strings.TrimSpace(in.Name)})
	if err != nil {
		return Category{}, mapErr("category", err)
	}
	return toCategory(row), nil
}

// DeleteCategory removes a category. Products keep existing without a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	cid, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteCategory(ctx, cid)
	if err != nil {
		return mapErr("category", err)
	}
	if n == 0 {
		return notFound("category")
	}
	_ = s.cache.Invalidate(ctx)
	return nil
}

// ListProducts returns a filtered product page. Results are cached per filter
// until the next product write.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	key, keyErr := s.cache.ListKey(ctx, listFilterKey(params))
	if keyErr == nil {
		var cached ProductListResult
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			cached.Page, cached.Limit = params.Page, params.Limit
			return cached, nil
		}
	}

	categoryID := pgtype.UUID{}
	if params.CategoryID != "" {
		parsed, err := common.ParseUUID(params.CategoryID)
		if err != nil {
			return ProductListResult{}, badRequest("category", "category must be a valid id", err)
		}
		categoryID = parsed
	}
	maxStock := pgtype.Int4{}
	if params.LowStock {
		maxStock = pgtype.Int4{Int32: int32(s.lowStockThreshold), Valid: true}
	}
	countParams := dbgen.CountProductsParams{
		Search:     common.Text(params.Query),
		CategoryID: categoryID,
		MaxStock:   maxStock,
	}
	total, err := s.queries.CountProducts(ctx, countParams)
	if err != nil {
		return ProductListResult{}, fmt.Errorf("count products: %w", err)
	}
	rows, err := s.queries.ListProducts(ctx, dbgen.ListProductsParams{
		Search:     countParams.Search,
		CategoryID: countParams.CategoryID,
		MaxStock:   countParams.MaxStock,
		LimitCount: int32(params.Limit),
		OffsetRows: int32(common.Offset(params.Page, params.Limit)),
	})
	if err != nil {
		return ProductListResult{}, fmt.Errorf("list products: %w", err)
	}
	items := make([]Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, toProduct(row))
	}
	result := ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
	if keyErr == nil {
		_ = s.cache.SetJSON(ctx, key, result)
	}
	return result, nil
}

// GetProduct returns a product by id, served from cache when possible.
func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return Product{}, err
	}
	key := detailCacheKey(common.UUIDString(pid))
	var cached Product
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	row, err := s.queries.GetProduct(ctx, pid)
	if err != nil {
		return Product{}, mapErr("product", err)
	}
	product := toProduct(row)
	_ = s.cache.SetJSON(ctx, key, product)
	return product, nil
}

// LookupProduct reads a product straight from the database so stock is current.
func (s *Service) LookupProduct(ctx context.Context, id string) (Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return Product{}, err
	}
	row, err := s.queries.GetProduct(ctx, pid)
	if err != nil {
		return Product{}, mapErr("product", err)
	}
	return toProduct(row), nil
}

// GetProductBySKU returns a product by its stock keeping unit.
func (s *Service) GetProductBySKU(ctx context.Context, sku string) (Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Product{}, badRequest("sku", "sku is required", nil)
	}
	row, err := s.queries.GetProductBySku(ctx, sku)
	if err != nil {
		return Product{}, mapErr("product", err)
	}
	return toProduct(row), nil
}

// CreateProduct inserts a product. SKUs are unique.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	args, err := productArgs(in)
	if err != nil {
		return Product{}, err
	}
	row, err := s.queries.CreateProduct(ctx, dbgen.CreateProductParams(args))
	if err != nil {
		return Product{}, mapErr("product", err)
	}
	_ = s.cache.Invalidate(ctx)
	return toProduct(row), nil
}

// UpdateProduct replaces the writable fields of a product.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return Product{}, err
	}
	args, err := productArgs(in)
	if err != nil {
		return Product{}, err
	}
	row, err := s.queries.UpdateProduct(ctx, dbgen.UpdateProductParams{
		ID:         pid,
		Sku:        args.Sku,
		Name:       args.Name,
		CategoryID: args.CategoryID,
		Price:      args.Price,
		Cost:       args.Cost,
		Stock:      args.Stock,
		Unit:       args.Unit,
	})
	if err != nil {
		return Product{}, mapErr("product", err)
	}
	_ = s.cache.Invalidate(ctx, common.UUIDString(pid))
	return toProduct(row), nil
}

// DeleteProduct removes a product that has never been sold or purchased.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteProduct(ctx, pid)
	if err != nil {
		return mapErr("product", err)
	}
	if n == 0 {
		return notFound("product")
	}
	_ = s.cache.Invalidate(ctx, common.UUIDString(pid))
	return nil
}

type productParams struct {
	Sku        string
	Name       string
	CategoryID pgtype.UUID
	Price      pgtype.Numeric
	Cost       pgtype.Numeric
	Stock      int32
	Unit       string
}

func productArgs(in ProductInput) (productParams, error) {
	if in.Price.IsNegative() {
		return productParams{}, badRequest("price", "price must not be negative", nil)
	}
	if in.Cost.IsNegative() {
		return productParams{}, badRequest("cost", "cost must not be negative", nil)
	}
	if in.Stock < 0 || in.Stock > math.MaxInt32 {
		return productParams{}, badRequest("stock", "stock must be between 0 and 2147483647", nil)
	}
	categoryID, err := common.OptionalUUID(in.CategoryID)
	if err != nil {
		return productParams{}, badRequest("categoryId", "categoryId must be a valid id", err)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "pcs"
	}
	return productParams{
		Sku:        strings.TrimSpace(in.SKU),
		Name:       strings.TrimSpace(in.Name),
		CategoryID: categoryID,
		Price:      common.Numeric(common.Money(in.Price)),
		Cost:       common.Numeric(common.Money(in.Cost)),
		Stock:      int32(in.Stock),
		Unit:       unit,
	}, nil
}

func toCategory(row dbgen.Category) Category {
	return Category{
		ID:        common.UUIDString(row.ID),
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func toProduct(row dbgen.Product) Product {
	return Product{
		ID:         common.UUIDString(row.ID),
		SKU:        row.Sku,
		Name:       row.Name,
		CategoryID: common.NullableUUIDString(row.CategoryID),
		Price:      common.Decimal(row.Price),
		Cost:       common.Decimal(row.Cost),
		Stock:      int(row.Stock),
		Unit:       row.Unit,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

func listFilterKey(p ListParams) string {
	return common.Sha256Hex(fmt.Sprintf("q=%s|c=%s|low=%t|p=%d|l=%d", strings.ToLower(p.Query), p.CategoryID, p.LowStock, p.Page, p.Limit))
}

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := common.ParseUUID(id)
	if err != nil {
		return pgtype.UUID{}, badRequest("id", "invalid id", err)
	}
	return parsed, nil
}

func mapErr(entity string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return notFound(entity)
	case common.IsUniqueViolation(err):
		code := "DUPLICATE_NAME"
		message := "category name already exists"
		if entity == "product" {
			code = "DUPLICATE_SKU"
			message = "sku already exists"
		}
		return &common.AppError{Code: code, Message: message, HTTPStatus: http.StatusConflict, Err: fmt.Errorf("%w: %v", ErrConflict, err)}
	case common.IsForeignKeyViolation(err):
		return &common.AppError{Code: "IN_USE", Message: entity + " is referenced by other records", HTTPStatus: http.StatusConflict, Err: fmt.Errorf("%w: %v", ErrConflict, err)}
	}
	return fmt.Errorf("%s query: %w", entity, err)
}

func notFound(entity string) *common.AppError {
	return &common.AppError{Code: "NOT_FOUND", Message: entity + " not found", HTTPStatus: http.StatusNotFound, Err: ErrNotFound}
}

func badRequest(field, message string, err error) *common.AppError {
	return &common.AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details: map[string]any{
			"field": field,
		},
	}
}
