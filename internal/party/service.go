package party

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-kasir/internal/common"
	db "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// ErrNotFound is wrapped when a customer or supplier does not exist.
var ErrNotFound = errors.New("party: not found")

type queries interface {
	ListCustomers(ctx context.Context, arg db.ListCustomersParams) ([]db.Customer, error)
	CountCustomers(ctx context.Context, search pgtype.Text) (int64, error)
	GetCustomer(ctx context.Context, id pgtype.UUID) (db.Customer, error)
	CreateCustomer(ctx context.Context, arg db.CreateCustomerParams) (db.Customer, error)
	UpdateCustomer(ctx context.Context, arg db.UpdateCustomerParams) (db.Customer, error)
	DeleteCustomer(ctx context.Context, id pgtype.UUID) (int64, error)
	ListSuppliers(ctx context.Context, arg db.ListSuppliersParams) ([]db.Supplier, error)
	CountSuppliers(ctx context.Context, search pgtype.Text) (int64, error)
	GetSupplier(ctx context.Context, id pgtype.UUID) (db.Supplier, error)
	CreateSupplier(ctx context.Context, arg db.CreateSupplierParams) (db.Supplier, error)
	UpdateSupplier(ctx context.Context, arg db.UpdateSupplierParams) (db.Supplier, error)
	DeleteSupplier(ctx context.Context, id pgtype.UUID) (int64, error)
}

// Customer is the API shape of a customer record.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Supplier is the API shape of a supplier record.
type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contactName"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerInput captures payload for creating or updating a customer.
type CustomerInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// SupplierInput captures payload for creating or updating a supplier.
type SupplierInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactName string `json:"contactName" validate:"omitempty,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

// Service manages the customer and supplier directories.
type Service struct {
	queries queries
}

// NewService constructs a Service over the given queries.
func NewService(q queries) *Service {
	return &Service{queries: q}
}

// ListCustomers returns a page of customers whose name, phone or email matches search.
func (s *Service) ListCustomers(ctx context.Context, search string, page, perPage int) ([]Customer, int64, error) {
	rows, err := s.queries.ListCustomers(ctx, db.ListCustomersParams{
		Search:     common.Text(search),
		LimitCount: int32(perPage),
		OffsetRows: int32(common.Offset(page, perPage)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	total, err := s.queries.CountCustomers(ctx, common.Text(search))
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, convertCustomer(row))
	}
	return out, total, nil
}

// GetCustomer returns one customer.
func (s *Service) GetCustomer(ctx context.Context, id string) (Customer, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.queries.GetCustomer(ctx, uid)
	if err != nil {
		return Customer{}, mapErr("customer", err)
	}
	return convertCustomer(row), nil
}

// CreateCustomer inserts a customer.
func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (Customer, error) {
	row, err := s.queries.CreateCustomer(ctx, db.CreateCustomerParams{
		Name:    strings.TrimSpace(in.Name),
		Phone:   common.Text(in.Phone),
		Email:   common.Text(in.Email),
		Address: common.Text(in.Address),
	})
	if err != nil {
		return Customer{}, mapErr("customer", err)
	}
	return convertCustomer(row), nil
}

// UpdateCustomer replaces a customer's details.
func (s *Service) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (Customer, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.queries.UpdateCustomer(ctx, db.UpdateCustomerParams{
		ID:      uid,
		Name:    strings.TrimSpace(in.Name),
		Phone:   common.Text(in.Phone),
		Email:   common.Text(in.Email),
		Address: common.Text(in.Address),
	})
	if err != nil {
		return Customer{}, mapErr("customer", err)
	}
	return convertCustomer(row), nil
}

// DeleteCustomer removes a customer that has no recorded sales.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := toUUID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteCustomer(ctx, uid)
	if err != nil {
		return mapErr("customer", err)
	}
	if n == 0 {
		return notFound("customer")
	}
	return nil
}

// ListSuppliers returns a page of suppliers matching search.
func (s *Service) ListSuppliers(ctx context.Context, search string, page, perPage int) ([]Supplier, int64, error) {
	rows, err := s.queries.ListSuppliers(ctx, db.ListSuppliersParams{
		Search:     common.Text(search),
		LimitCount: int32(perPage),
		OffsetRows: int32(common.Offset(page, perPage)),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	total, err := s.queries.CountSuppliers(ctx, common.Text(search))
	if err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	out := make([]Supplier, 0, len(rows))
	for _, row := range rows {
		out = append(out, convertSupplier(row))
	}
	return out, total, nil
}

// GetSupplier returns one supplier.
func (s *Service) GetSupplier(ctx context.Context, id string) (Supplier, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Supplier{}, err
	}
	row, err := s.queries.GetSupplier(ctx, uid)
	if err != nil {
		return Supplier{}, mapErr("supplier", err)
	}
	return convertSupplier(row), nil
}

// CreateSupplier inserts a supplier.
func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (Supplier, error) {
	row, err := s.queries.CreateSupplier(ctx, db.CreateSupplierParams{
		Name:        strings.TrimSpace(in.Name),
		ContactName: common.Text(in.ContactName),
		Phone:       common.Text(in.Phone),
		Email:       common.Text(in.Email),
		Address:     common.Text(in.Address),
	})
	if err != nil {
		return Supplier{}, mapErr("supplier", err)
	}
	return convertSupplier(row), nil
}

// UpdateSupplier replaces a supplier's details.
func (s *Service) UpdateSupplier(ctx context.Context, id string, in SupplierInput) (Supplier, error) {
	uid, err := toUUID(id)
	if err != nil {
		return Supplier{}, err
	}
	row, err := s.queries.UpdateSupplier(ctx, db.UpdateSupplierParams{
		ID:          uid,
		Name:        strings.TrimSpace(in.Name),
		ContactName: common.Text(in.ContactName),
		Phone:       common.Text(in.Phone),
		Email:       common.Text(in.Email),
		Address:     common.Text(in.Address),
	})
	if err != nil {
		return Supplier{}, mapErr("supplier", err)
	}
	return convertSupplier(row), nil
}

// DeleteSupplier removes a supplier that has no recorded purchases.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	uid, err := toUUID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteSupplier(ctx, uid)
	if err != nil {
		return mapErr("supplier", err)
	}
	if n == 0 {
		return notFound("supplier")
	}
	return nil
}

func convertCustomer(row db.Customer) Customer {
	return Customer{
		ID:        common.UUIDString(row.ID),
		Name:      row.Name,
		Phone:     common.NullableText(row.Phone),
		Email:     common.NullableText(row.Email),
		Address:   common.NullableText(row.Address),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func convertSupplier(row db.Supplier) Supplier {
	return Supplier{
		ID:          common.UUIDString(row.ID),
		Name:        row.Name,
		ContactName: common.NullableText(row.ContactName),
		Phone:       common.NullableText(row.Phone),
		Email:       common.NullableText(row.Email),
		Address:     common.NullableText(row.Address),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func toUUID(id string) (pgtype.UUID, error) {
	uid, err := common.ParseUUID(id)
	if err != nil {
		return pgtype.UUID{}, common.NewAppError("BAD_REQUEST", "invalid id", http.StatusBadRequest, err)
	}
	return uid, nil
}

func mapErr(entity string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return notFound(entity)
	case common.IsForeignKeyViolation(err):
		return common.NewAppError("IN_USE", entity+" has recorded transactions", http.StatusConflict, err)
	case common.IsUniqueViolation(err):
		return common.NewAppError("CONFLICT", entity+" already exists", http.StatusConflict, err)
	}
	return fmt.Errorf("%s query: %w", entity, err)
}

func notFound(entity string) error {
	return common.NewAppError("NOT_FOUND", entity+" not found", http.StatusNotFound, ErrNotFound)
}
