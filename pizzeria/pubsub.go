package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taldoflemis/pizza-time/order"
)

const EventOrderCheckedOut = "order.checked_out"

type OrderEvent struct {
	ID         uuid.UUID   `json:"id"`
	Kind       string      `json:"kind"`
	Order      order.Order `json:"order"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func NewOrderEvent(kind string, o order.Order) OrderEvent {
	return OrderEvent{
		ID:         uuid.New(),
		Kind:       kind,
		Order:      o,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderPubSubber fans order events out to live subscribers.
type OrderPubSubber interface {
	PubOrder(ctx context.Context, event OrderEvent) error
	SubLiveOrders(ctx context.Context) (uuid.UUID, <-chan OrderEvent, error)
	UnsubLiveOrders(ctx context.Context, subID uuid.UUID) error
}

// checkoutPublisher lets the order service announce checkouts on an
// OrderPubSubber.
type checkoutPublisher struct {
	pubsub OrderPubSubber
}

var _ order.CheckoutPublisher = checkoutPublisher{}

func (c checkoutPublisher) PublishCheckout(ctx context.Context, o order.Order) error {
	return c.pubsub.PubOrder(ctx, NewOrderEvent(EventOrderCheckedOut, o))
}

// GoChannelOrderPubSubber keeps everything in process. Used when NATS is
// disabled.
type GoChannelOrderPubSubber struct {
	liveEventSubscribers map[uuid.UUID]chan OrderEvent
	bufferSize           int
	mu                   sync.Mutex
}

func NewGoChannelOrderPubSubber(bufferSize int) *GoChannelOrderPubSubber {
	return &GoChannelOrderPubSubber{
		liveEventSubscribers: make(map[uuid.UUID]chan OrderEvent),
		bufferSize:           bufferSize,
	}
}

var _ OrderPubSubber = (*GoChannelOrderPubSubber)(nil)

// PubOrder implements OrderPubSubber. Subscribers whose buffer is full miss
// the event.
func (g *GoChannelOrderPubSubber) PubOrder(ctx context.Context, event OrderEvent) error {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPubSubber.PubOrder")
	defer span.End()

	slog.InfoContext(ctx, "publishing order event",
		slog.Int64("order-id", event.Order.ID),
		slog.String("kind", event.Kind),
	)

	g.mu.Lock()
	defer g.mu.Unlock()

	for subID, subChan := range g.liveEventSubscribers {
		select {
		case subChan <- event:
		default:
			slog.WarnContext(ctx, "dropping order event for slow subscriber", slog.String("subscriber-id", subID.String()))
		}
	}

	return nil
}

// SubLiveOrders implements OrderPubSubber.
func (g *GoChannelOrderPubSubber) SubLiveOrders(ctx context.Context) (uuid.UUID, <-chan OrderEvent, error) {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPubSubber.SubLiveOrders")
	defer span.End()

	subID := uuid.New()
	slog.InfoContext(ctx, "subscribing to live orders", slog.String("subscriber-id", subID.String()))

	ch := make(chan OrderEvent, g.bufferSize)
	g.mu.Lock()
	g.liveEventSubscribers[subID] = ch
	g.mu.Unlock()
	return subID, ch, nil
}

// UnsubLiveOrders implements OrderPubSubber.
func (g *GoChannelOrderPubSubber) UnsubLiveOrders(ctx context.Context, subID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPubSubber.UnsubLiveOrders")
	defer span.End()

	slog.InfoContext(ctx, "unsubscribing from live orders", slog.String("subscriber-id", subID.String()))

	g.mu.Lock()
	delete(g.liveEventSubscribers, subID)
	g.mu.Unlock()
	return nil
}
