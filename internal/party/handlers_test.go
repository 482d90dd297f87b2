package party

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/common"
	db "github.com/noah-isme/backend-kasir/internal/db/gen"
)

type fakeQueries struct {
	customers   map[pgtype.UUID]db.Customer
	suppliers   map[pgtype.UUID]db.Supplier
	referenced  map[pgtype.UUID]bool
	lastListArg db.ListCustomersParams
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{
		customers:  map[pgtype.UUID]db.Customer{},
		suppliers:  map[pgtype.UUID]db.Supplier{},
		referenced: map[pgtype.UUID]bool{},
	}
}

func newID() pgtype.UUID { return pgtype.UUID{Bytes: uuid.New(), Valid: true} }

func (f *fakeQueries) ListCustomers(_ context.Context, arg db.ListCustomersParams) ([]db.Customer, error) {
	f.lastListArg = arg
	out := []db.Customer{}
	for _, c := range f.customers {
		if arg.Search.Valid && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(arg.Search.String)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeQueries) CountCustomers(ctx context.Context, search pgtype.Text) (int64, error) {
	rows, _ := f.ListCustomers(ctx, db.ListCustomersParams{Search: search})
	return int64(len(rows)), nil
}

func (f *fakeQueries) GetCustomer(_ context.Context, id pgtype.UUID) (db.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return db.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeQueries) CreateCustomer(_ context.Context, arg db.CreateCustomerParams) (db.Customer, error) {
	c := db.Customer{ID: newID(), Name: arg.Name, Phone: arg.Phone, Email: arg.Email, Address: arg.Address}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeQueries) UpdateCustomer(_ context.Context, arg db.UpdateCustomerParams) (db.Customer, error) {
	if _, ok := f.customers[arg.ID]; !ok {
		return db.Customer{}, pgx.ErrNoRows
	}
	c := db.Customer{ID: arg.ID, Name: arg.Name, Phone: arg.Phone, Email: arg.Email, Address: arg.Address}
	f.customers[c.ID] = c
	return c, nil
}

func (f *fakeQueries) DeleteCustomer(_ context.Context, id pgtype.UUID) (int64, error) {
	if f.referenced[id] {
		return 0, &pgconn.PgError{Code: "23503"}
	}
	if _, ok := f.customers[id]; !ok {
		return 0, nil
	}
	delete(f.customers, id)
	return 1, nil
}

func (f *fakeQueries) ListSuppliers(context.Context, db.ListSuppliersParams) ([]db.Supplier, error) {
	out := []db.Supplier{}
	for _, s := range f.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeQueries) CountSuppliers(context.Context, pgtype.Text) (int64, error) {
	return int64(len(f.suppliers)), nil
}

func (f *fakeQueries) GetSupplier(_ context.Context, id pgtype.UUID) (db.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return db.Supplier{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeQueries) CreateSupplier(_ context.Context, arg db.CreateSupplierParams) (db.Supplier, error) {
	s := db.Supplier{ID: newID(), Name: arg.Name, ContactName: arg.ContactName, Phone: arg.Phone, Email: arg.Email, Address: arg.Address}
	f.suppliers[s.ID] = s
	return s, nil
}

func (f *fakeQueries) UpdateSupplier(_ context.Context, arg db.UpdateSupplierParams) (db.Supplier, error) {
	if _, ok := f.suppliers[arg.ID]; !ok {
		return db.Supplier{}, pgx.ErrNoRows
	}
	s := db.Supplier{ID: arg.ID, Name: arg.Name, ContactName: arg.ContactName, Phone: arg.Phone, Email: arg.Email, Address: arg.Address}
	f.suppliers[s.ID] = s
	return s, nil
}

func (f *fakeQueries) DeleteSupplier(_ context.Context, id pgtype.UUID) (int64, error) {
	if _, ok := f.suppliers[id]; !ok {
		return 0, nil
	}
	delete(f.suppliers, id)
	return 1, nil
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error common.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestCustomerLifecycle(t *testing.T) {
	q := newFakeQueries()
	h := &Handler{Service: NewService(q)}

	rec := httptest.NewRecorder()
	h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":" Budi ","phone":"0812","email":""}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Budi", created.Data.Name)
	require.NotNil(t, created.Data.Phone)
	require.Nil(t, created.Data.Email)

	rec = httptest.NewRecorder()
	h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customers?q=bud&page=2&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int32(5), q.lastListArg.LimitCount)
	require.Equal(t, int32(5), q.lastListArg.OffsetRows)

	rec = httptest.NewRecorder()
	h.UpdateCustomer(rec, withID(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"Budi S"}`)), created.Data.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteCustomer(rec, withID(httptest.NewRequest(http.MethodDelete, "/", nil), created.Data.ID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.GetCustomer(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), created.Data.ID))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestCustomerValidation(t *testing.T) {
	h := &Handler{Service: NewService(newFakeQueries())}
	rec := httptest.NewRecorder()
	h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"email":"nope"}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	h.GetCustomer(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), "not-a-uuid"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteReferencedCustomerConflicts(t *testing.T) {
	q := newFakeQueries()
	svc := NewService(q)
	c, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: "Sari"})
	require.NoError(t, err)
	id, err := common.ParseUUID(c.ID)
	require.NoError(t, err)
	q.referenced[id] = true

	rec := httptest.NewRecorder()
	(&Handler{Service: svc}).DeleteCustomer(rec, withID(httptest.NewRequest(http.MethodDelete, "/", nil), c.ID))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "IN_USE", errorCode(t, rec))
}

func TestSupplierLifecycle(t *testing.T) {
	h := &Handler{Service: NewService(newFakeQueries())}

	rec := httptest.NewRecorder()
	h.CreateSupplier(rec, httptest.NewRequest(http.MethodPost, "/suppliers", strings.NewReader(`{"name":"PT Sumber","contactName":"Andi"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data Supplier `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Andi", *created.Data.ContactName)

	rec = httptest.NewRecorder()
	h.ListSuppliers(rec, httptest.NewRequest(http.MethodGet, "/suppliers", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data       []Supplier        `json:"data"`
		Pagination common.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.Equal(t, 1, list.Pagination.TotalItems)

	rec = httptest.NewRecorder()
	h.DeleteSupplier(rec, withID(httptest.NewRequest(http.MethodDelete, "/", nil), uuid.NewString()))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
