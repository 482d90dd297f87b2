package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
)

type stubStore struct {
	lastParams dbgen.InsertDomainEventParams
	event      dbgen.DomainEvent
	err        error
}

func (s *stubStore) InsertDomainEvent(_ context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error) {
	if s.err != nil {
		return dbgen.DomainEvent{}, s.err
	}
	s.lastParams = arg
	if !s.event.ID.Valid {
		s.event.ID = pgtype.UUID{Bytes: uuid.New(), Valid: true}
	}
	s.event.Topic = arg.Topic
	s.event.AggregateID = arg.AggregateID
	s.event.Payload = arg.Payload
	if !s.event.OccurredAt.Valid {
		s.event.OccurredAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}
	return s.event, nil
}

type captureNotifier struct {
	events []dbgen.DomainEvent
}

func (c *captureNotifier) Notify(_ context.Context, event dbgen.DomainEvent) error {
	c.events = append(c.events, event)
	return nil
}

func toUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: true}
}

func TestEmitPersistsEvent(t *testing.T) {
	store := &stubStore{}
	notifier := &captureNotifier{}
	bus := events.Bus{Store: store, Notifiers: []events.Notifier{notifier}}

	payload := events.SaleCreated{SaleID: "123", InvoiceNo: "INV-20250101-ABC123", Total: "198000", ProductIDs: []string{"p1"}}
	event, err := bus.Emit(context.Background(), events.TopicSaleCreated, toUUID(uuid.New()), payload)
	require.NoError(t, err)
	require.Equal(t, events.TopicSaleCreated, store.lastParams.Topic)
	require.Len(t, notifier.events, 1)
	require.Equal(t, event.ID, notifier.events[0].ID)

	var decoded events.SaleCreated
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	require.Equal(t, payload, decoded)
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	store := &stubStore{}
	failing := events.NotifierFunc(func(context.Context, dbgen.DomainEvent) error { return errors.New("queue down") })
	capture := &captureNotifier{}
	bus := events.Bus{Store: store, Notifiers: []events.Notifier{failing, nil, capture}}

	ev, err := bus.Emit(context.Background(), events.TopicPurchaseCreated, toUUID(uuid.New()), nil)
	require.ErrorContains(t, err, "queue down")
	require.True(t, ev.ID.Valid)
	require.Len(t, capture.events, 1)
	require.JSONEq(t, `{}`, string(store.lastParams.Payload))
}

func TestEmitValidatesInput(t *testing.T) {
	bus := events.Bus{Store: &stubStore{}}

	_, err := bus.Emit(context.Background(), " ", toUUID(uuid.New()), nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), events.TopicSaleCreated, pgtype.UUID{}, nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), events.TopicSaleCreated, toUUID(uuid.New()), []byte("not json"))
	require.Error(t, err)

	var nilBus *events.Bus
	_, err = nilBus.Emit(context.Background(), events.TopicSaleCreated, toUUID(uuid.New()), nil)
	require.Error(t, err)
}
