package sale

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
)

// fakeStore applies writes to a copy of its state and keeps them only when the
// transaction function succeeds.
type fakeStore struct {
	products map[pgtype.UUID]dbgen.Product
	sales    map[pgtype.UUID]dbgen.Sale
	items    map[pgtype.UUID][]dbgen.SaleItem
	commits  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[pgtype.UUID]dbgen.Product{},
		sales:    map[pgtype.UUID]dbgen.Sale{},
		items:    map[pgtype.UUID][]dbgen.SaleItem{},
	}
}

func (f *fakeStore) addProduct(name string, price int64, stock int32) string {
	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}
	f.products[id] = dbgen.Product{
		ID:    id,
		Name:  name,
		Price: common.Numeric(decimal.NewFromInt(price)),
		Cost:  common.Numeric(decimal.NewFromInt(price * 8 / 10)),
		Stock: stock,
	}
	return common.UUIDString(id)
}

func (f *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range f.products {
		c.products[k] = v
	}
	for k, v := range f.sales {
		c.sales[k] = v
	}
	for k, v := range f.items {
		c.items[k] = append([]dbgen.SaleItem(nil), v...)
	}
	return c
}

func (f *fakeStore) tx(ctx context.Context, fn func(q TxQueries) error) error {
	work := f.clone()
	if err := fn(work); err != nil {
		return err
	}
	f.products, f.sales, f.items = work.products, work.sales, work.items
	f.commits++
	return nil
}

func (f *fakeStore) GetProduct(_ context.Context, id pgtype.UUID) (dbgen.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return dbgen.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) DecrementProductStock(_ context.Context, arg dbgen.DecrementProductStockParams) (dbgen.DecrementProductStockRow, error) {
	p, ok := f.products[arg.ID]
	if !ok || p.Stock < arg.Quantity {
		return dbgen.DecrementProductStockRow{}, pgx.ErrNoRows
	}
	p.Stock -= arg.Quantity
	f.products[arg.ID] = p
	return dbgen.DecrementProductStockRow{ID: p.ID, Name: p.Name, Stock: p.Stock, Cost: p.Cost}, nil
}

func (f *fakeStore) CreateSale(_ context.Context, arg dbgen.CreateSaleParams) (dbgen.Sale, error) {
	s := dbgen.Sale{
		ID:            pgtype.UUID{Bytes: uuid.New(), Valid: true},
		InvoiceNo:     arg.InvoiceNo,
		CustomerID:    arg.CustomerID,
		Subtotal:      arg.Subtotal,
		Discount:      arg.Discount,
		Tax:           arg.Tax,
		Total:         arg.Total,
		PaymentMethod: arg.PaymentMethod,
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.sales[s.ID] = s
	return s, nil
}

func (f *fakeStore) CreateSaleItem(_ context.Context, arg dbgen.CreateSaleItemParams) (dbgen.SaleItem, error) {
	item := dbgen.SaleItem{
		ID:          pgtype.UUID{Bytes: uuid.New(), Valid: true},
		SaleID:      arg.SaleID,
		ProductID:   arg.ProductID,
		ProductName: arg.ProductName,
		Quantity:    arg.Quantity,
		Price:       arg.Price,
		Cost:        arg.Cost,
		Subtotal:    arg.Subtotal,
	}
	f.items[arg.SaleID] = append(f.items[arg.SaleID], item)
	return item, nil
}

func (f *fakeStore) GetSale(_ context.Context, id pgtype.UUID) (dbgen.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return dbgen.Sale{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) ListSaleItems(_ context.Context, id pgtype.UUID) ([]dbgen.SaleItem, error) {
	return f.items[id], nil
}

func (f *fakeStore) ListSales(context.Context, dbgen.ListSalesParams) ([]dbgen.Sale, error) {
	out := make([]dbgen.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) CountSales(context.Context, dbgen.CountSalesParams) (int64, error) {
	return int64(len(f.sales)), nil
}

type recordingEvents struct {
	inserted []dbgen.InsertDomainEventParams
}

func (r *recordingEvents) InsertDomainEvent(_ context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error) {
	r.inserted = append(r.inserted, arg)
	return dbgen.DomainEvent{Topic: arg.Topic, AggregateID: arg.AggregateID, Payload: arg.Payload}, nil
}

func newTestService(store *fakeStore, rec *recordingEvents) *Service {
	return &Service{
		Tx:      store.tx,
		Queries: store,
		Events:  &events.Bus{Store: rec},
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return time.Date(2026, 5, 17, 10, 0, 0, 0, time.UTC) },
	}
}

func TestCreateDecrementsStockAndEmits(t *testing.T) {
	store := newFakeStore()
	pid := store.addProduct("Beras 5kg", 100000, 5)
	rec := &recordingEvents{}
	svc := newTestService(store, rec)

	out, err := svc.Create(context.Background(), CreateInput{
		Items:    []Item{{ProductID: pid, Quantity: 2, Price: decimal.NewFromInt(100000)}},
		Subtotal: decimal.NewFromInt(200000),
		Discount: decimal.NewFromInt(20000),
		Tax:      decimal.NewFromInt(18000),
		Total:    decimal.NewFromInt(198000),
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^INV-20260517-[0-9A-F]{6}$`), out.InvoiceNo)
	require.Equal(t, PaymentCash, out.PaymentMethod)
	require.Nil(t, out.CustomerID)
	require.Len(t, out.Items, 1)
	require.Equal(t, "Beras 5kg", out.Items[0].ProductName)
	require.True(t, out.Total.Equal(decimal.NewFromInt(198000)))

	id, _ := common.ParseUUID(pid)
	require.EqualValues(t, 3, store.products[id].Stock)

	require.Len(t, rec.inserted, 1)
	require.Equal(t, events.TopicSaleCreated, rec.inserted[0].Topic)
	var payload events.SaleCreated
	require.NoError(t, json.Unmarshal(rec.inserted[0].Payload, &payload))
	require.Equal(t, []string{pid}, payload.ProductIDs)
	require.Equal(t, "198000.00", payload.Total)
}

func TestCreateRollsBackOnInsufficientStock(t *testing.T) {
	store := newFakeStore()
	a := store.addProduct("Gula", 15000, 10)
	b := store.addProduct("Minyak", 20000, 1)
	rec := &recordingEvents{}
	svc := newTestService(store, rec)

	_, err := svc.Create(context.Background(), CreateInput{
		Items: []Item{
			{ProductID: a, Quantity: 3, Price: decimal.NewFromInt(15000)},
			{ProductID: b, Quantity: 2, Price: decimal.NewFromInt(20000)},
		},
		Subtotal: decimal.NewFromInt(85000),
		Total:    decimal.NewFromInt(85000),
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusConflict, appErr.HTTPStatus)
	require.Equal(t, "INSUFFICIENT_STOCK", appErr.Code)

	id, _ := common.ParseUUID(a)
	require.EqualValues(t, 10, store.products[id].Stock)
	require.Empty(t, store.sales)
	require.Zero(t, store.commits)
	require.Empty(t, rec.inserted)
}

func TestCreateRejectsQuantityBeyondInt4(t *testing.T) {
	store := newFakeStore()
	pid := store.addProduct("Telur", 1, 10)
	rec := &recordingEvents{}
	svc := newTestService(store, rec)

	_, err := svc.Create(context.Background(), CreateInput{
		Items:    []Item{{ProductID: pid, Quantity: 1<<32 + 1, Price: decimal.NewFromInt(1)}},
		Subtotal: decimal.NewFromInt(1<<32 + 1),
		Total:    decimal.NewFromInt(1<<32 + 1),
	})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION_FAILED", appErr.Code)
	require.Contains(t, appErr.Details, "items[0].quantity")

	id, _ := common.ParseUUID(pid)
	require.EqualValues(t, 10, store.products[id].Stock)
	require.Empty(t, store.sales)
	require.Zero(t, store.commits)
	require.Empty(t, rec.inserted)
}

func TestCreateAcceptsQuantityAtStock(t *testing.T) {
	store := newFakeStore()
	pid := store.addProduct("Garam", 2000, 4)
	svc := newTestService(store, &recordingEvents{})

	out, err := svc.Create(context.Background(), CreateInput{
		Items:    []Item{{ProductID: pid, Quantity: 4, Price: decimal.NewFromInt(2000)}},
		Subtotal: decimal.NewFromInt(8000),
		Total:    decimal.NewFromInt(8000),
	})
	require.NoError(t, err)
	require.Equal(t, 4, out.Items[0].Quantity)
	id, _ := common.ParseUUID(pid)
	require.Zero(t, store.products[id].Stock)
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	svc := newTestService(newFakeStore(), &recordingEvents{})
	_, err := svc.Create(context.Background(), CreateInput{
		Items:    []Item{{ProductID: uuid.NewString(), Quantity: 1, Price: decimal.NewFromInt(1000)}},
		Subtotal: decimal.NewFromInt(1000),
		Total:    decimal.NewFromInt(1000),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateChecksTotals(t *testing.T) {
	store := newFakeStore()
	pid := store.addProduct("Kopi", 10000, 10)
	svc := newTestService(store, &recordingEvents{})

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"subtotal mismatch", CreateInput{
			Items:    []Item{{ProductID: pid, Quantity: 2, Price: decimal.NewFromInt(10000)}},
			Subtotal: decimal.NewFromInt(19000),
			Total:    decimal.NewFromInt(19000),
		}},
		{"total mismatch", CreateInput{
			Items:    []Item{{ProductID: pid, Quantity: 2, Price: decimal.NewFromInt(10000)}},
			Subtotal: decimal.NewFromInt(20000),
			Tax:      decimal.NewFromInt(2000),
			Total:    decimal.NewFromInt(20000),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			require.ErrorIs(t, err, ErrInconsistentTotals)
		})
	}

	_, err := svc.Create(context.Background(), CreateInput{
		Items:    []Item{{ProductID: pid, Quantity: 1, Price: decimal.NewFromInt(10000)}},
		Subtotal: decimal.NewFromInt(10000),
		Total:    decimal.RequireFromString("10000.01"),
	})
	require.NoError(t, err, "one minor unit of drift is tolerated")
}

func TestCreateHandlerValidation(t *testing.T) {
	h := &Handler{Service: newTestService(newFakeStore(), &recordingEvents{})}
	body := `{"items":[{"productId":"x","quantity":0,"price":"1"}],"paymentMethod":"cheque"}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	require.Contains(t, resp.Error.Details, "items[0].productId")
	require.Contains(t, resp.Error.Details, "items[0].quantity")
	require.Contains(t, resp.Error.Details, "paymentMethod")
}

func TestGetReturnsLines(t *testing.T) {
	store := newFakeStore()
	pid := store.addProduct("Sabun", 4000, 10)
	svc := newTestService(store, &recordingEvents{})
	created, err := svc.Create(context.Background(), CreateInput{
		Items:         []Item{{ProductID: pid, Quantity: 3, Price: decimal.NewFromInt(4000)}},
		Subtotal:      decimal.NewFromInt(12000),
		Total:         decimal.NewFromInt(12000),
		PaymentMethod: "qris",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, PaymentQRIS, got.PaymentMethod)
	require.Len(t, got.Items, 1)
	require.Equal(t, 3, got.Items[0].Quantity)

	_, err = svc.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}
