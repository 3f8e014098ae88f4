package main

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taldoflemis/pizza-time/order"
	"github.com/taldoflemis/pizza-time/pizza"
)

func receive(t *testing.T, ch <-chan OrderEvent) OrderEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for order event")
		return OrderEvent{}
	}
}

func assertNoEvent(t *testing.T, ch <-chan OrderEvent) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatalf("unexpected order event %+v", event)
	default:
	}
}

func TestGoChannelOrderPubSubberFanOut(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pubsub := NewGoChannelOrderPubSubber(4)
	firstID, first, err := pubsub.SubLiveOrders(ctx)
	require.NoError(t, err)
	secondID, second, err := pubsub.SubLiveOrders(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	event := NewOrderEvent(EventOrderCheckedOut, order.Order{ID: 7})

	// Act
	err = pubsub.PubOrder(ctx, event)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, event, receive(t, first))
	assert.Equal(t, event, receive(t, second))
}

func TestGoChannelOrderPubSubberUnsubscribe(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pubsub := NewGoChannelOrderPubSubber(4)
	subID, ch, err := pubsub.SubLiveOrders(ctx)
	require.NoError(t, err)

	// Act
	require.NoError(t, pubsub.UnsubLiveOrders(ctx, subID))
	require.NoError(t, pubsub.PubOrder(ctx, NewOrderEvent(EventOrderCheckedOut, order.Order{ID: 1})))

	// Assert
	assertNoEvent(t, ch)
	assert.NoError(t, pubsub.UnsubLiveOrders(ctx, uuid.New()))
}

func TestGoChannelOrderPubSubberSlowSubscriber(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pubsub := NewGoChannelOrderPubSubber(1)
	_, ch, err := pubsub.SubLiveOrders(ctx)
	require.NoError(t, err)

	// Act
	for i := range 3 {
		require.NoError(t, pubsub.PubOrder(ctx, NewOrderEvent(EventOrderCheckedOut, order.Order{ID: int64(i + 1)})))
	}

	// Assert
	assert.Equal(t, int64(1), receive(t, ch).Order.ID)
	assertNoEvent(t, ch)
}

func TestGoChannelOrderPubSubberConcurrentUse(t *testing.T) {
	ctx := context.Background()
	pubsub := NewGoChannelOrderPubSubber(64)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subID, _, err := pubsub.SubLiveOrders(ctx)
			assert.NoError(t, err)
			assert.NoError(t, pubsub.UnsubLiveOrders(ctx, subID))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, pubsub.PubOrder(ctx, NewOrderEvent(EventOrderCheckedOut, order.Order{ID: int64(i)})))
		}()
	}
	wg.Wait()
}

func TestCheckoutPublisherWrapsOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	pubsub := NewGoChannelOrderPubSubber(1)
	_, ch, err := pubsub.SubLiveOrders(ctx)
	require.NoError(t, err)
	publisher := checkoutPublisher{pubsub: pubsub}

	// Act
	err = publisher.PublishCheckout(ctx, order.Order{ID: 3})

	// Assert
	require.NoError(t, err)
	event := receive(t, ch)
	assert.Equal(t, EventOrderCheckedOut, event.Kind)
	assert.Equal(t, int64(3), event.Order.ID)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestOrderEventJSON(t *testing.T) {
	// Arrange
	event := NewOrderEvent(EventOrderCheckedOut, order.Order{
		ID:     5,
		Pizzas: []pizza.Pizza{pizza.Default()},
	})

	// Act
	data, err := json.Marshal(event)
	require.NoError(t, err)
	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Assert
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, EventOrderCheckedOut, decoded.Kind)
	assert.Equal(t, int64(5), decoded.Order.ID)
	require.Len(t, decoded.Order.Pizzas, 1)
	assert.Equal(t, pizza.Medium, decoded.Order.Pizzas[0].Size)
}

func TestNATSEventSubject(t *testing.T) {
	pubsub := NewNATSOrderPubSubber(nil, "orders", 1)

	subject := pubsub.eventSubject(NewOrderEvent(EventOrderCheckedOut, order.Order{ID: 42}))

	assert.Equal(t, "orders.order.checked_out.42", subject)
}
