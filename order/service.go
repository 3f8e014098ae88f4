package order

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/taldoflemis/pizza-time/pizza"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("order")
	meter  = otel.Meter("order")
)

// CheckoutPublisher is told about every order the first time it is checked
// out.
type CheckoutPublisher interface {
	PublishCheckout(ctx context.Context, o Order) error
}

type Option func(*Service)

func WithCheckoutPublisher(p CheckoutPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service owns every order of the process. Reads return copies; writes
// hold the lock through the change and the price recompute.
type Service struct {
	prices    *pizza.PriceList
	publisher CheckoutPublisher
	now       func() time.Time

	mu     sync.RWMutex
	orders map[int64]*Order

	createdCounter  metric.Int64Counter
	checkoutCounter metric.Int64Counter
	mutationCounter metric.Int64Counter
	totalHistogram  metric.Float64Histogram
}

func NewService(prices *pizza.PriceList, opts ...Option) (*Service, error) {
	ctx := context.Background()

	createdCounter, err := meter.Int64Counter(
		"order.created.count",
		metric.WithDescription("Number of orders created"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create order counter", slog.Any("err", err))
		return nil, err
	}

	checkoutCounter, err := meter.Int64Counter(
		"order.checkout.count",
		metric.WithDescription("Number of orders checked out"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create checkout counter", slog.Any("err", err))
		return nil, err
	}

	mutationCounter, err := meter.Int64Counter(
		"order.mutation.count",
		metric.WithDescription("Number of changes applied to orders"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create mutation counter", slog.Any("err", err))
		return nil, err
	}

	totalHistogram, err := meter.Float64Histogram(
		"order.total_cost",
		metric.WithDescription("Total cost of checked out orders"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create total cost histogram", slog.Any("err", err))
		return nil, err
	}

	s := &Service{
		prices:          prices,
		now:             time.Now,
		orders:          make(map[int64]*Order),
		createdCounter:  createdCounter,
		checkoutCounter: checkoutCounter,
		mutationCounter: mutationCounter,
		totalHistogram:  totalHistogram,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func orderAttr(id int64) attribute.KeyValue {
	return attribute.Int64("pizza-time.order-id", id)
}

// OrderExists reports whether an order with id is stored.
func (s *Service) OrderExists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.orders[id]
	return ok
}

// PizzaIndexValid reports whether the order exists and has a pizza at index.
func (s *Service) PizzaIndexValid(id int64, index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return ok && o.validIndex(index)
}

// Create stores a new order made of pizzas under id and prices it.
func (s *Service) Create(ctx context.Context, id int64, pizzas []pizza.Pizza) (Order, error) {
	ctx, span := tracer.Start(ctx, "Service.Create", trace.WithAttributes(
		orderAttr(id),
		attribute.Int("order.pizzas", len(pizzas)),
	))
	defer span.End()

	for _, p := range pizzas {
		if err := p.Validate(); err != nil {
			return Order{}, recordErr(span, err)
		}
	}

	o := &Order{
		ID:     id,
		Date:   s.now(),
		Pizzas: make([]pizza.Pizza, 0, len(pizzas)),
	}
	for _, p := range pizzas {
		o.Pizzas = append(o.Pizzas, p.Clone())
	}
	o.recompute(s.prices)

	s.mu.Lock()
	if _, ok := s.orders[id]; ok {
		s.mu.Unlock()
		return Order{}, recordErr(span, fmt.Errorf("%w: %d", ErrOrderExists, id))
	}
	s.orders[id] = o
	created := o.Clone()
	s.mu.Unlock()

	s.createdCounter.Add(ctx, 1)
	slog.InfoContext(ctx, "order created",
		slog.Int64("order-id", id),
		slog.Int("pizzas", len(created.Pizzas)),
		slog.String("total-cost", created.TotalCost.String()),
	)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	_, span := tracer.Start(ctx, "Service.Get", trace.WithAttributes(orderAttr(id)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, recordErr(span, fmt.Errorf("%w: %d", ErrOrderNotFound, id))
	}
	return o.Clone(), nil
}

// List returns every order by ascending id.
func (s *Service) List(ctx context.Context) []Order {
	_, span := tracer.Start(ctx, "Service.List")
	defer span.End()

	s.mu.RLock()
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Order) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Delete removes the order and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id int64) bool {
	ctx, span := tracer.Start(ctx, "Service.Delete", trace.WithAttributes(orderAttr(id)))
	defer span.End()

	s.mu.Lock()
	_, ok := s.orders[id]
	delete(s.orders, id)
	s.mu.Unlock()

	if ok {
		slog.InfoContext(ctx, "order deleted", slog.Int64("order-id", id))
	}
	return ok
}

// Checkout reprices the order and finalizes it. Checking out twice returns
// the same order and leaves the first checkout time in place.
func (s *Service) Checkout(ctx context.Context, id int64) (Order, error) {
	ctx, span := tracer.Start(ctx, "Service.Checkout", trace.WithAttributes(orderAttr(id)))
	defer span.End()

	s.mu.Lock()
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return Order{}, recordErr(span, fmt.Errorf("%w: %d", ErrOrderNotFound, id))
	}
	o.recompute(s.prices)
	first := !o.CheckedOut()
	if first {
		at := s.now()
		o.CheckedOutAt = &at
	}
	out := o.Clone()
	s.mu.Unlock()

	if !first {
		return out, nil
	}

	s.checkoutCounter.Add(ctx, 1)
	s.totalHistogram.Record(ctx, out.TotalCost.InexactFloat64())
	slog.InfoContext(ctx, "order checked out",
		slog.Int64("order-id", id),
		slog.String("total-cost", out.TotalCost.String()),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishCheckout(ctx, out); err != nil {
			slog.ErrorContext(ctx, "failed to publish checkout", slog.Int64("order-id", id), slog.Any("err", err))
			span.RecordError(err)
		}
	}

	return out, nil
}

func (s *Service) Pizzas(ctx context.Context, id int64) ([]pizza.Pizza, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Pizzas == nil {
		return []pizza.Pizza{}, nil
	}
	return o.Pizzas, nil
}

func (s *Service) Pizza(ctx context.Context, id int64, index int) (pizza.Pizza, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return pizza.Pizza{}, err
	}
	if !o.validIndex(index) {
		return pizza.Pizza{}, fmt.Errorf("%w: order %d index %d", ErrPizzaNotFound, id, index)
	}
	return o.Pizzas[index], nil
}

func (s *Service) Toppings(ctx context.Context, id int64, index int) ([]pizza.Topping, error) {
	p, err := s.Pizza(ctx, id, index)
	if err != nil {
		return nil, err
	}
	return p.Toppings(), nil
}

// mutate runs fn on the stored order under the write lock and reprices it.
func (s *Service) mutate(ctx context.Context, id int64, op string, fn func(o *Order) error) (Order, error) {
	ctx, span := tracer.Start(ctx, "Service."+op, trace.WithAttributes(orderAttr(id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, recordErr(span, fmt.Errorf("%w: %d", ErrOrderNotFound, id))
	}
	if o.CheckedOut() {
		return Order{}, recordErr(span, fmt.Errorf("%w: %d", ErrOrderCheckedOut, id))
	}
	if err := fn(o); err != nil {
		return Order{}, recordErr(span, err)
	}
	o.recompute(s.prices)

	s.mutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	slog.DebugContext(ctx, "order changed",
		slog.Int64("order-id", id),
		slog.String("operation", op),
		slog.String("total-cost", o.TotalCost.String()),
	)

	return o.Clone(), nil
}

// mutatePizza is mutate for operations addressing a single pizza.
func (s *Service) mutatePizza(ctx context.Context, id int64, index int, op string, fn func(p *pizza.Pizza) error) (Order, error) {
	return s.mutate(ctx, id, op, func(o *Order) error {
		if !o.validIndex(index) {
			return fmt.Errorf("%w: order %d index %d", ErrPizzaNotFound, id, index)
		}
		return fn(&o.Pizzas[index])
	})
}

// AddPizza appends a default pizza to the order.
func (s *Service) AddPizza(ctx context.Context, id int64) (Order, error) {
	return s.mutate(ctx, id, "AddPizza", func(o *Order) error {
		o.Pizzas = append(o.Pizzas, pizza.Default())
		return nil
	})
}

// RemovePizza drops the pizza at index; later pizzas move down one place.
func (s *Service) RemovePizza(ctx context.Context, id int64, index int) (Order, error) {
	return s.mutate(ctx, id, "RemovePizza", func(o *Order) error {
		if !o.validIndex(index) {
			return fmt.Errorf("%w: order %d index %d", ErrPizzaNotFound, id, index)
		}
		o.Pizzas = slices.Delete(o.Pizzas, index, index+1)
		return nil
	})
}

func (s *Service) UpdatePizzaSize(ctx context.Context, id int64, index int, size pizza.Size) (Order, error) {
	if !size.Valid() {
		return Order{}, fmt.Errorf("%w: %d", pizza.ErrInvalidSize, uint8(size))
	}
	return s.mutatePizza(ctx, id, index, "UpdatePizzaSize", func(p *pizza.Pizza) error {
		p.Size = size
		return nil
	})
}

// AddTopping puts t on the pizza, or changes the amount if the type is
// already there.
func (s *Service) AddTopping(ctx context.Context, id int64, index int, t pizza.Topping) (Order, error) {
	if err := t.Validate(); err != nil {
		return Order{}, err
	}
	return s.mutatePizza(ctx, id, index, "AddTopping", func(p *pizza.Pizza) error {
		p.AddTopping(t)
		return nil
	})
}

// RemoveTopping takes t's type off the pizza; nothing happens if it is not
// there. Only the type of t is looked at.
func (s *Service) RemoveTopping(ctx context.Context, id int64, index int, t pizza.Topping) (Order, error) {
	if !t.Type.Valid() {
		return Order{}, fmt.Errorf("%w: %d", pizza.ErrInvalidToppingType, uint8(t.Type))
	}
	return s.mutatePizza(ctx, id, index, "RemoveTopping", func(p *pizza.Pizza) error {
		p.RemoveTopping(t)
		return nil
	})
}

// ReplaceToppings sets the pizza's toppings to exactly toppings.
func (s *Service) ReplaceToppings(ctx context.Context, id int64, index int, toppings []pizza.Topping) (Order, error) {
	for _, t := range toppings {
		if err := t.Validate(); err != nil {
			return Order{}, err
		}
	}
	return s.mutatePizza(ctx, id, index, "ReplaceToppings", func(p *pizza.Pizza) error {
		p.ReplaceToppings(toppings)
		return nil
	})
}
