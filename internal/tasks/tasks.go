// Package tasks moves post-commit work for sales and purchases onto asynq.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/events"
)

// Task type names.
const (
	TypeSaleCreated     = "sale:created"
	TypePurchaseCreated = "purchase:created"
)

// StockChanged is the payload shared by both task types.
type StockChanged struct {
	EventID     string   `json:"eventId"`
	Topic       string   `json:"topic"`
	AggregateID string   `json:"aggregateId"`
	ProductIDs  []string `json:"productIds"`
}

// TypeForTopic maps an event topic to its task type.
func TypeForTopic(topic string) (string, bool) {
	switch topic {
	case events.TopicSaleCreated:
		return TypeSaleCreated, true
	case events.TopicPurchaseCreated:
		return TypePurchaseCreated, true
	default:
		return "", false
	}
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier enqueues a task for every stock-changing event. It implements
// events.Notifier.
type Notifier struct {
	Client    Enqueuer
	Queue     string
	MaxRetry  int
	Retention time.Duration
}

// Notify implements events.Notifier. Events on other topics are ignored.
func (n Notifier) Notify(ctx context.Context, ev dbgen.DomainEvent) error {
	typeName, ok := TypeForTopic(ev.Topic)
	if !ok {
		return nil
	}
	if n.Client == nil {
		return errors.New("tasks: enqueuer not configured")
	}
	var body struct {
		ProductIDs []string `json:"productIds"`
	}
	if len(ev.Payload) > 0 {
		if err := json.Unmarshal(ev.Payload, &body); err != nil {
			return fmt.Errorf("tasks: decode %s payload: %w", ev.Topic, err)
		}
	}
	eventID := common.UUIDString(ev.ID)
	payload, err := json.Marshal(StockChanged{
		EventID:     eventID,
		Topic:       ev.Topic,
		AggregateID: common.UUIDString(ev.AggregateID),
		ProductIDs:  body.ProductIDs,
	})
	if err != nil {
		return fmt.Errorf("tasks: encode payload: %w", err)
	}

	var opts []asynq.Option
	if eventID != "" {
		opts = append(opts, asynq.TaskID(eventID))
	}
	if n.Queue != "" {
		opts = append(opts, asynq.Queue(n.Queue))
	}
	if n.MaxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(n.MaxRetry))
	}
	if n.Retention > 0 {
		opts = append(opts, asynq.Retention(n.Retention))
	}
	_, err = n.Client.EnqueueContext(ctx, asynq.NewTask(typeName, payload), opts...)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("tasks: enqueue %s: %w", typeName, err)
	}
	return nil
}
