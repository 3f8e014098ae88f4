package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taldoflemis/pizza-time/pizza"
)

var errInvalidBody = errors.New("invalid request body")

// PizzaRequest is a pizza in a new order. A missing size means MEDIUM and
// missing toppings mean regular cheese; an empty toppings list means none.
type PizzaRequest struct {
	Size     string           `json:"size" example:"SMALL"`
	Toppings []ToppingRequest `json:"toppings" validate:"omitempty,dive"`
}

// ToppingRequest is a topping in a request body. A missing amount means
// REGULAR.
type ToppingRequest struct {
	Type   string `json:"type" validate:"required" example:"PEPPERONI"`
	Amount string `json:"amount" example:"EXTRA"`
}

type UpdatePizzaSizeRequest struct {
	Size string `json:"size" validate:"required" example:"LARGE"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (r ToppingRequest) toTopping() (pizza.Topping, error) {
	tt, err := pizza.ParseToppingType(r.Type)
	if err != nil {
		return pizza.Topping{}, err
	}

	amount := pizza.Regular
	if r.Amount != "" {
		amount, err = pizza.ParseToppingAmount(r.Amount)
		if err != nil {
			return pizza.Topping{}, err
		}
	}

	return pizza.Topping{Type: tt, Amount: amount}, nil
}

func toToppings(reqs []ToppingRequest) ([]pizza.Topping, error) {
	toppings := make([]pizza.Topping, 0, len(reqs))
	for _, r := range reqs {
		t, err := r.toTopping()
		if err != nil {
			return nil, err
		}
		toppings = append(toppings, t)
	}
	return toppings, nil
}

func (r PizzaRequest) toPizza() (pizza.Pizza, error) {
	size := pizza.Medium
	if r.Size != "" {
		var err error
		size, err = pizza.ParseSize(r.Size)
		if err != nil {
			return pizza.Pizza{}, err
		}
	}

	if r.Toppings == nil {
		p := pizza.Default()
		p.Size = size
		return p, nil
	}

	toppings, err := toToppings(r.Toppings)
	if err != nil {
		return pizza.Pizza{}, err
	}
	return pizza.New(size, toppings...), nil
}

// parseSizeBody accepts {"size":"LARGE"}, "LARGE" as a JSON string, or the
// bare name.
func parseSizeBody(body []byte) (pizza.Size, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0, fmt.Errorf("%w: empty size", errInvalidBody)
	}

	var name string
	switch trimmed[0] {
	case '{':
		var req UpdatePizzaSizeRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return 0, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		name = req.Size
	case '"':
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return 0, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
	default:
		name = string(trimmed)
	}

	return pizza.ParseSize(name)
}
