package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"github.com/taldoflemis/pizza-time/order"
	"github.com/taldoflemis/pizza-time/pacchetto"
	"github.com/taldoflemis/pizza-time/pizza"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("pizzeria")

const maxSizeBodyBytes = 1 << 10

type MainHandler struct {
	orders   *order.Service
	counter  *order.Counter
	pubsub   OrderPubSubber
	health   *healthgo.Health
	validate *validator.Validate
	live     LiveSettings
	origins  map[string]struct{}
}

func NewMainHandler(
	e *echo.Echo,
	settings *Settings,
	orders *order.Service,
	counter *order.Counter,
	pubsub OrderPubSubber,
	health *healthgo.Health,
) *MainHandler {
	logger := slog.Default()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: settings.HTTP.CORS.Origins,
		AllowMethods: settings.HTTP.CORS.Methods,
		AllowHeaders: settings.HTTP.CORS.Headers,
	}))
	e.Use(otelecho.Middleware(settings.App.Name,
		otelecho.WithMetricAttributeFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("client.ip", r.RemoteAddr),
				attribute.String("user.agent", r.UserAgent()),
			}
		}),
		otelecho.WithEchoMetricAttributeFn(func(c echo.Context) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("handler.path", c.Path()),
				attribute.String("handler.method", c.Request().Method),
			}
		}),
	))

	origins := make(map[string]struct{}, len(settings.HTTP.CORS.Origins))
	for _, o := range settings.HTTP.CORS.Origins {
		origins[o] = struct{}{}
	}

	handler := &MainHandler{
		orders:   orders,
		counter:  counter,
		pubsub:   pubsub,
		health:   health,
		validate: pacchetto.NewValidator(),
		live:     settings.Live,
		origins:  origins,
	}

	e.GET("/healthz", handler.HealthCheck)

	v1 := e.Group(settings.HTTP.Prefix)
	o := v1.Group("/orders")

	o.GET("", handler.ListOrders)
	o.POST("", handler.CreateOrder)
	o.GET("/live", handler.GetLiveOrdersSSE)
	o.GET("/live/ws", handler.GetLiveOrdersWS)
	o.GET("/:orderId", handler.GetOrder)
	o.DELETE("/:orderId", handler.DeleteOrder)
	o.POST("/:orderId/checkout", handler.CheckoutOrder)

	o.GET("/:orderId/pizzas", handler.ListPizzas)
	o.POST("/:orderId/pizzas", handler.AddPizza)
	o.POST("/:orderId/pizzas/:pizzaIndex", handler.AddPizza)
	o.GET("/:orderId/pizzas/:pizzaIndex", handler.GetPizza)
	o.DELETE("/:orderId/pizzas/:pizzaIndex", handler.RemovePizza)
	o.PATCH("/:orderId/pizzas/:pizzaIndex", handler.UpdatePizzaSize)

	o.GET("/:orderId/pizzas/:pizzaIndex/toppings", handler.ListToppings)
	o.POST("/:orderId/pizzas/:pizzaIndex/toppings", handler.AddTopping)
	o.DELETE("/:orderId/pizzas/:pizzaIndex/toppings", handler.RemoveTopping)
	o.PATCH("/:orderId/pizzas/:pizzaIndex/toppings", handler.ReplaceToppings)

	return handler
}

func orderIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", order.ErrOrderNotFound, c.Param("orderId"))
	}
	return id, nil
}

func pizzaParams(c echo.Context) (int64, int, error) {
	id, err := orderIDParam(c)
	if err != nil {
		return 0, 0, err
	}
	index, err := strconv.Atoi(c.Param("pizzaIndex"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", order.ErrPizzaNotFound, c.Param("pizzaIndex"))
	}
	return id, index, nil
}

func bindBody(c echo.Context, dest any) error {
	err := c.Bind(dest)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		err = he.Internal
	}
	// Enum errors keep their own identity so they read well in the response.
	if errors.Is(err, pizza.ErrInvalidSize) || errors.Is(err, pizza.ErrInvalidToppingType) || errors.Is(err, pizza.ErrInvalidToppingAmount) {
		return err
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}

func (h *MainHandler) bindTopping(c echo.Context) (pizza.Topping, error) {
	var req ToppingRequest
	if err := bindBody(c, &req); err != nil {
		return pizza.Topping{}, err
	}
	if err := h.validate.Struct(req); err != nil {
		return pizza.Topping{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req.toTopping()
}

// ListOrders godoc
//
// @Summary List every order
// @Tags order
// @Produce json
// @Success 200 {array} order.Order
// @Router /v1/app/orders [get]
func (h *MainHandler) ListOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.orders.List(c.Request().Context()))
}

// CreateOrder godoc
//
// @Summary Create a new pizza order
// @Tags order
// @Accept json
// @Produce json
// @Param pizzas body []PizzaRequest true "Pizzas of the order"
// @Success 201 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Router /v1/app/orders [post]
func (h *MainHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var reqs []PizzaRequest
	if err := bindBody(c, &reqs); err != nil {
		return respondErr(c, err)
	}
	if err := h.validate.Var(reqs, "dive"); err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", errInvalidBody, err))
	}

	pizzas := make([]pizza.Pizza, 0, len(reqs))
	for _, r := range reqs {
		p, err := r.toPizza()
		if err != nil {
			return respondErr(c, err)
		}
		pizzas = append(pizzas, p)
	}

	created, err := h.orders.Create(ctx, h.counter.Next(), pizzas)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetOrder godoc
//
// @Summary Get an order
// @Tags order
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId} [get]
func (h *MainHandler) GetOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// DeleteOrder godoc
//
// @Summary Delete an order
// @Tags order
// @Param orderId path int true "Order ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId} [delete]
func (h *MainHandler) DeleteOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	if !h.orders.Delete(c.Request().Context(), id) {
		return respondErr(c, fmt.Errorf("%w: %d", order.ErrOrderNotFound, id))
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckoutOrder godoc
//
// @Summary Check out an order
// @Description Reprices the order and finalizes it. Further changes to its pizzas are rejected.
// @Tags order
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/checkout [post]
func (h *MainHandler) CheckoutOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.Checkout(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// ListPizzas godoc
//
// @Summary List the pizzas of an order
// @Tags pizza
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {array} pizza.Pizza
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas [get]
func (h *MainHandler) ListPizzas(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	pizzas, err := h.orders.Pizzas(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, pizzas)
}

// AddPizza godoc
//
// @Summary Add a default pizza (medium, regular cheese) to an order
// @Tags pizza
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas [post]
func (h *MainHandler) AddPizza(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.AddPizza(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// GetPizza godoc
//
// @Summary Get one pizza of an order
// @Tags pizza
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Success 200 {object} pizza.Pizza
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex} [get]
func (h *MainHandler) GetPizza(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}

	p, err := h.orders.Pizza(c.Request().Context(), id, index)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// RemovePizza godoc
//
// @Summary Remove a pizza from an order
// @Tags pizza
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Success 200 {object} order.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex} [delete]
func (h *MainHandler) RemovePizza(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.RemovePizza(c.Request().Context(), id, index)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// UpdatePizzaSize godoc
//
// @Summary Change the size of a pizza
// @Tags pizza
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Param size body UpdatePizzaSizeRequest true "New size"
// @Success 200 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex} [patch]
func (h *MainHandler) UpdatePizzaSize(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}
	if !h.orders.PizzaIndexValid(id, index) {
		return respondErr(c, fmt.Errorf("%w: order %d index %d", order.ErrPizzaNotFound, id, index))
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSizeBodyBytes))
	if err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", errInvalidBody, err))
	}
	size, err := parseSizeBody(body)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.UpdatePizzaSize(c.Request().Context(), id, index, size)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// ListToppings godoc
//
// @Summary List the toppings of a pizza
// @Tags topping
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Success 200 {array} pizza.Topping
// @Failure 404 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex}/toppings [get]
func (h *MainHandler) ListToppings(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}

	toppings, err := h.orders.Toppings(c.Request().Context(), id, index)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toppings)
}

// AddTopping godoc
//
// @Summary Add a topping to a pizza, or change its amount
// @Tags topping
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Param topping body ToppingRequest true "Topping"
// @Success 200 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex}/toppings [post]
func (h *MainHandler) AddTopping(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}
	if !h.orders.PizzaIndexValid(id, index) {
		return respondErr(c, fmt.Errorf("%w: order %d index %d", order.ErrPizzaNotFound, id, index))
	}

	t, err := h.bindTopping(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.AddTopping(c.Request().Context(), id, index, t)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// RemoveTopping godoc
//
// @Summary Remove a topping from a pizza
// @Description Only the topping type is looked at. Removing a missing topping changes nothing.
// @Tags topping
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Param topping body ToppingRequest true "Topping"
// @Success 200 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex}/toppings [delete]
func (h *MainHandler) RemoveTopping(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}
	if !h.orders.PizzaIndexValid(id, index) {
		return respondErr(c, fmt.Errorf("%w: order %d index %d", order.ErrPizzaNotFound, id, index))
	}

	t, err := h.bindTopping(c)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.RemoveTopping(c.Request().Context(), id, index, t)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// ReplaceToppings godoc
//
// @Summary Replace every topping of a pizza
// @Tags topping
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param pizzaIndex path int true "Zero-based pizza position"
// @Param toppings body []ToppingRequest true "New toppings"
// @Success 200 {object} order.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/app/orders/{orderId}/pizzas/{pizzaIndex}/toppings [patch]
func (h *MainHandler) ReplaceToppings(c echo.Context) error {
	id, index, err := pizzaParams(c)
	if err != nil {
		return respondErr(c, err)
	}
	if !h.orders.PizzaIndexValid(id, index) {
		return respondErr(c, fmt.Errorf("%w: order %d index %d", order.ErrPizzaNotFound, id, index))
	}

	var reqs []ToppingRequest
	if err := bindBody(c, &reqs); err != nil {
		return respondErr(c, err)
	}
	if err := h.validate.Var(reqs, "dive"); err != nil {
		return respondErr(c, fmt.Errorf("%w: %v", errInvalidBody, err))
	}
	toppings, err := toToppings(reqs)
	if err != nil {
		return respondErr(c, err)
	}

	o, err := h.orders.ReplaceToppings(c.Request().Context(), id, index, toppings)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// HealthCheck godoc
//
// @Summary Check the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} healthgo.Check
// @Failure 503 {object} healthgo.Check
// @Router /healthz [get]
func (h *MainHandler) HealthCheck(c echo.Context) error {
	check := h.health.Measure(c.Request().Context())

	statusCode := http.StatusOK
	if check.Status != healthgo.StatusOK {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, check)
}
