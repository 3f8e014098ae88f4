// Package order keeps the in-memory pizza orders and their prices.
package order

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taldoflemis/pizza-time/pizza"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPizzaNotFound   = errors.New("pizza not found")
	ErrOrderExists     = errors.New("order already exists")
	ErrOrderCheckedOut = errors.New("order already checked out")
)

// Order is a customer's pizza purchase. TotalCost is derived from Pizzas
// and is recomputed after every change.
type Order struct {
	ID           int64
	Date         time.Time
	Pizzas       []pizza.Pizza
	TotalCost    decimal.Decimal
	CheckedOutAt *time.Time
}

func (o *Order) CheckedOut() bool {
	return o.CheckedOutAt != nil
}

func (o *Order) recompute(prices *pizza.PriceList) {
	o.TotalCost = prices.OrderPrice(o.Pizzas)
}

func (o *Order) validIndex(index int) bool {
	return index >= 0 && index < len(o.Pizzas)
}

// Clone returns a deep copy that shares nothing with o.
func (o *Order) Clone() Order {
	c := *o
	c.Pizzas = make([]pizza.Pizza, len(o.Pizzas))
	for i, p := range o.Pizzas {
		c.Pizzas[i] = p.Clone()
	}
	if o.CheckedOutAt != nil {
		at := *o.CheckedOutAt
		c.CheckedOutAt = &at
	}
	return c
}

type orderJSON struct {
	ID           int64         `json:"id"`
	Date         time.Time     `json:"date"`
	Pizzas       []pizza.Pizza `json:"pizzas"`
	TotalCost    float64       `json:"totalCost"`
	CheckedOutAt *time.Time    `json:"checkedOutAt,omitempty"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	pizzas := o.Pizzas
	if pizzas == nil {
		pizzas = []pizza.Pizza{}
	}
	return json.Marshal(orderJSON{
		ID:           o.ID,
		Date:         o.Date,
		Pizzas:       pizzas,
		TotalCost:    o.TotalCost.InexactFloat64(),
		CheckedOutAt: o.CheckedOutAt,
	})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order{
		ID:           raw.ID,
		Date:         raw.Date,
		Pizzas:       raw.Pizzas,
		TotalCost:    decimal.NewFromFloat(raw.TotalCost),
		CheckedOutAt: raw.CheckedOutAt,
	}
	return nil
}
