package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taldoflemis/pizza-time/order"
	"github.com/taldoflemis/pizza-time/pizza"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, order.ErrPizzaNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrOrderCheckedOut), errors.Is(err, order.ErrOrderExists):
		return http.StatusConflict
	case errors.Is(err, errInvalidBody),
		errors.Is(err, pizza.ErrInvalidSize),
		errors.Is(err, pizza.ErrInvalidToppingType),
		errors.Is(err, pizza.ErrInvalidToppingAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c echo.Context, err error) error {
	ctx := c.Request().Context()
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", slog.String("path", c.Path()), slog.Any("err", err))
		return c.JSON(status, ErrorResponse{Error: "internal error"})
	}

	slog.InfoContext(ctx, "request rejected", slog.String("path", c.Path()), slog.Int("status", status), slog.String("reason", err.Error()))
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
