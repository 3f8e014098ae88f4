package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/taldoflemis/pizza-time/pacchetto/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NATSOrderPubSubber publishes order events on <subject>.<kind>.<order id>
// and feeds live subscribers from the same subjects, so every pizzeria
// replica sees every checkout.
type NATSOrderPubSubber struct {
	nc          *nats.Conn
	subject     string
	channelSize int

	mu   sync.Mutex
	subs map[uuid.UUID]*nats.Subscription
}

var _ OrderPubSubber = (*NATSOrderPubSubber)(nil)

func NewNATSOrderPubSubber(nc *nats.Conn, subject string, channelSize int) *NATSOrderPubSubber {
	return &NATSOrderPubSubber{
		nc:          nc,
		subject:     subject,
		channelSize: channelSize,
		subs:        make(map[uuid.UUID]*nats.Subscription),
	}
}

func (n *NATSOrderPubSubber) eventSubject(event OrderEvent) string {
	return fmt.Sprintf("%s.%s.%d", n.subject, event.Kind, event.Order.ID)
}

// PubOrder implements OrderPubSubber.
func (n *NATSOrderPubSubber) PubOrder(ctx context.Context, event OrderEvent) error {
	ctx, span := tracer.Start(ctx, "NATSOrderPubSubber.PubOrder", trace.WithAttributes(
		attribute.Int64("pizza-time.order-id", event.Order.ID),
	))
	defer span.End()

	msg := &nats.Msg{
		Subject: n.eventSubject(event),
		Header:  nats.Header{},
	}
	telemetry.InjectContextToNatsMsg(ctx, msg)

	data, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal order event", slog.Any("err", err))
		span.SetStatus(codes.Error, "failed to marshal order event")
		span.RecordError(err)
		return err
	}
	msg.Data = data

	err = n.nc.PublishMsg(msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish order event", slog.String("subject", msg.Subject), slog.Any("err", err))
		span.SetStatus(codes.Error, "failed to publish order event")
		span.RecordError(err)
		return err
	}

	slog.InfoContext(ctx, "published order event", slog.String("subject", msg.Subject))
	return nil
}

// SubLiveOrders implements OrderPubSubber.
func (n *NATSOrderPubSubber) SubLiveOrders(ctx context.Context) (uuid.UUID, <-chan OrderEvent, error) {
	ctx, span := tracer.Start(ctx, "NATSOrderPubSubber.SubLiveOrders")
	defer span.End()

	subID := uuid.New()
	orderCh := make(chan OrderEvent, n.channelSize)

	sub, err := n.nc.Subscribe(n.subject+".>", func(msg *nats.Msg) {
		msgCtx := telemetry.GetContextFromNatsMsg(context.Background(), msg)

		var event OrderEvent
		err := json.Unmarshal(msg.Data, &event)
		if err != nil {
			slog.ErrorContext(msgCtx, "failed to unmarshal order event from NATS message", slog.Any("err", err))
			return
		}

		select {
		case orderCh <- event:
		default:
			slog.WarnContext(msgCtx, "dropping order event for slow subscriber", slog.String("subscriber-id", subID.String()))
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to NATS subject", slog.String("subject", n.subject), slog.Any("err", err))
		span.SetStatus(codes.Error, "failed to subscribe to NATS subject")
		span.RecordError(err)
		return uuid.Nil, nil, err
	}

	n.mu.Lock()
	n.subs[subID] = sub
	n.mu.Unlock()

	slog.InfoContext(ctx, "subscribed to live orders", slog.String("subscriber-id", subID.String()))
	return subID, orderCh, nil
}

// UnsubLiveOrders implements OrderPubSubber.
func (n *NATSOrderPubSubber) UnsubLiveOrders(ctx context.Context, subID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "NATSOrderPubSubber.UnsubLiveOrders")
	defer span.End()

	slog.InfoContext(ctx, "unsubscribing from live orders", slog.String("subscriber-id", subID.String()))

	n.mu.Lock()
	sub, ok := n.subs[subID]
	delete(n.subs, subID)
	n.mu.Unlock()

	if !ok {
		slog.WarnContext(ctx, "no subscription found for subscriber", slog.String("subscriber-id", subID.String()))
		return nil
	}

	return sub.Unsubscribe()
}
