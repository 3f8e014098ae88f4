package order

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taldoflemis/pizza-time/pizza"
)

type recordingPublisher struct {
	mu     sync.Mutex
	orders []Order
	err    error
}

func (r *recordingPublisher) PublishCheckout(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return r.err
}

var fixedNow = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewService(pizza.DefaultPriceList(), opts...)
	require.NoError(t, err)
	return s
}

func assertCost(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	created, err := s.Create(ctx, 1, []pizza.Pizza{pizza.New(pizza.Small), pizza.New(pizza.Medium)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, fixedNow, created.Date)
	assert.Len(t, created.Pizzas, 2)
	assertCost(t, "13", created.TotalCost)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateRejectsDuplicateAndInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, 1, nil)
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, nil)
	assert.ErrorIs(t, err, ErrOrderExists)

	_, err = s.Create(ctx, 2, []pizza.Pizza{pizza.New(pizza.Size(9))})
	assert.ErrorIs(t, err, pizza.ErrInvalidSize)
	assert.False(t, s.OrderExists(2))
}

func TestGetUnknownOrder(t *testing.T) {
	s := newTestService(t)

	_, err := s.Get(context.Background(), 42)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, nil)
	require.NoError(t, err)

	assert.True(t, s.Delete(ctx, 1))
	assert.False(t, s.Delete(ctx, 1))
	assert.False(t, s.OrderExists(1))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	for _, id := range []int64{3, 1, 2} {
		_, err := s.Create(ctx, id, nil)
		require.NoError(t, err)
	}

	orders := s.List(ctx)

	require.Len(t, orders, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestPizzaIndexValid(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default(), pizza.Default()})
	require.NoError(t, err)

	tests := []struct {
		name  string
		id    int64
		index int
		want  bool
	}{
		{name: "first", id: 1, index: 0, want: true},
		{name: "last", id: 1, index: 1, want: true},
		{name: "past the end", id: 1, index: 2, want: false},
		{name: "negative", id: 1, index: -1, want: false},
		{name: "unknown order", id: 7, index: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.PizzaIndexValid(tt.id, tt.index))
		})
	}
}

func TestReadAccessors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.New(pizza.Small, pizza.Topping{Type: pizza.Ham, Amount: pizza.Light})})
	require.NoError(t, err)

	pizzas, err := s.Pizzas(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pizzas, 1)

	p, err := s.Pizza(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, pizza.Small, p.Size)

	toppings, err := s.Toppings(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []pizza.Topping{{Type: pizza.Ham, Amount: pizza.Light}}, toppings)

	_, err = s.Pizza(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
	_, err = s.Toppings(ctx, 2, 0)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReturnedOrdersAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	created, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default()})
	require.NoError(t, err)

	created.Pizzas[0].AddTopping(pizza.Topping{Type: pizza.Bacon, Amount: pizza.Extra})
	created.Pizzas[0].Size = pizza.Large

	stored, err := s.Pizza(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, pizza.Medium, stored.Size)
	assert.Equal(t, 1, stored.ToppingCount())
}

func TestEndToEndPricing(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	o, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default()})
	require.NoError(t, err)
	assertCost(t, "10", o.TotalCost)

	o, err = s.RemovePizza(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, o.Pizzas)
	assertCost(t, "0", o.TotalCost)

	o, err = s.AddPizza(ctx, 1)
	require.NoError(t, err)
	assertCost(t, "10", o.TotalCost)

	o, err = s.UpdatePizzaSize(ctx, 1, 0, pizza.Small)
	require.NoError(t, err)
	assertCost(t, "5", o.TotalCost)

	o, err = s.UpdatePizzaSize(ctx, 1, 0, pizza.Large)
	require.NoError(t, err)
	assertCost(t, "15", o.TotalCost)
}

func TestRemovePizzaShiftsIndexes(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.New(pizza.Small), pizza.New(pizza.Medium), pizza.New(pizza.Large)})
	require.NoError(t, err)

	o, err := s.RemovePizza(ctx, 1, 0)
	require.NoError(t, err)

	require.Len(t, o.Pizzas, 2)
	assert.Equal(t, pizza.Medium, o.Pizzas[0].Size)
	assert.Equal(t, pizza.Large, o.Pizzas[1].Size)
	assertCost(t, "23", o.TotalCost)
}

func TestToppingOperations(t *testing.T) {
	ctx := context.Background()
	cheese := pizza.Topping{Type: pizza.Cheese, Amount: pizza.Regular}

	tests := []struct {
		name      string
		act       func(s *Service) (Order, error)
		wantCount int
		wantCost  string
	}{
		{
			name: "add existing type updates amount",
			act: func(s *Service) (Order, error) {
				return s.AddTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Cheese, Amount: pizza.Extra})
			},
			wantCount: 1,
			wantCost:  "10.5",
		},
		{
			name: "add new type appends",
			act: func(s *Service) (Order, error) {
				return s.AddTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Onions, Amount: pizza.Regular})
			},
			wantCount: 2,
			wantCost:  "10.5",
		},
		{
			name: "remove absent topping is a no-op",
			act: func(s *Service) (Order, error) {
				return s.RemoveTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Olives, Amount: pizza.Regular})
			},
			wantCount: 1,
			wantCost:  "10",
		},
		{
			name: "remove matches on type only",
			act: func(s *Service) (Order, error) {
				return s.RemoveTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Cheese, Amount: pizza.Light})
			},
			wantCount: 0,
			wantCost:  "9",
		},
		{
			name: "replace overwrites the whole set",
			act: func(s *Service) (Order, error) {
				return s.ReplaceToppings(ctx, 1, 0, []pizza.Topping{
					{Type: pizza.Pepperoni, Amount: pizza.Light},
					{Type: pizza.Pineapples, Amount: pizza.Extra},
				})
			},
			wantCount: 2,
			wantCost:  "10.25",
		},
		{
			name: "replace with nothing clears",
			act: func(s *Service) (Order, error) {
				return s.ReplaceToppings(ctx, 1, 0, nil)
			},
			wantCount: 0,
			wantCost:  "9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			s := newTestService(t)
			_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.New(pizza.Medium, cheese)})
			require.NoError(t, err)

			// Act
			o, err := tt.act(s)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, o.Pizzas[0].ToppingCount())
			assertCost(t, tt.wantCost, o.TotalCost)
		})
	}
}

func TestMutationsReportMissingTargets(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default()})
	require.NoError(t, err)
	cheese := pizza.Topping{Type: pizza.Cheese, Amount: pizza.Regular}

	_, err = s.AddPizza(ctx, 2)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = s.RemovePizza(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
	_, err = s.UpdatePizzaSize(ctx, 1, -1, pizza.Large)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
	_, err = s.AddTopping(ctx, 1, 3, cheese)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
	_, err = s.RemoveTopping(ctx, 9, 0, cheese)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = s.ReplaceToppings(ctx, 1, 5, nil)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
}

func TestMutationsRejectInvalidValues(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default()})
	require.NoError(t, err)

	_, err = s.UpdatePizzaSize(ctx, 1, 0, pizza.Size(0))
	assert.ErrorIs(t, err, pizza.ErrInvalidSize)
	_, err = s.AddTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Cheese})
	assert.ErrorIs(t, err, pizza.ErrInvalidToppingAmount)
	_, err = s.ReplaceToppings(ctx, 1, 0, []pizza.Topping{{Type: pizza.ToppingType(77), Amount: pizza.Light}})
	assert.ErrorIs(t, err, pizza.ErrInvalidToppingType)

	o, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assertCost(t, "10", o.TotalCost)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s := newTestService(t, WithCheckoutPublisher(pub))
	_, err := s.Create(ctx, 1, []pizza.Pizza{pizza.Default()})
	require.NoError(t, err)

	first, err := s.Checkout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	require.NotNil(t, first.CheckedOutAt)
	assertCost(t, "10", first.TotalCost)

	second, err := s.Checkout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, pub.orders, 1)
	assert.Equal(t, int64(1), pub.orders[0].ID)

	_, err = s.AddPizza(ctx, 1)
	assert.ErrorIs(t, err, ErrOrderCheckedOut)
	_, err = s.AddTopping(ctx, 1, 0, pizza.Topping{Type: pizza.Ham, Amount: pizza.Regular})
	assert.ErrorIs(t, err, ErrOrderCheckedOut)

	assert.True(t, s.Delete(ctx, 1))

	_, err = s.Checkout(ctx, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	s := newTestService(t, WithCheckoutPublisher(pub))
	_, err := s.Create(ctx, 1, nil)
	require.NoError(t, err)

	o, err := s.Checkout(ctx, 1)

	require.NoError(t, err)
	assert.True(t, o.CheckedOut())
}

func TestConcurrentMutationsKeepTotalConsistent(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.Create(ctx, 1, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				_, err := s.AddPizza(ctx, 1)
				assert.NoError(t, err)
				_, _ = s.Get(ctx, 1)
			}
		}()
	}
	wg.Wait()

	o, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, o.Pizzas, 200)
	assertCost(t, "2000", o.TotalCost)
}

func TestOrderJSON(t *testing.T) {
	o := Order{
		ID:        3,
		Date:      fixedNow,
		Pizzas:    []pizza.Pizza{pizza.Default()},
		TotalCost: decimal.RequireFromString("10"),
	}

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"date": "2024-03-14T12:00:00Z",
		"pizzas": [{"size": "MEDIUM", "toppings": [{"type": "CHEESE", "amount": "REGULAR"}]}],
		"totalCost": 10
	}`, string(data))

	empty, err := json.Marshal(Order{ID: 4, Date: fixedNow})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"pizzas":[]`)
}
