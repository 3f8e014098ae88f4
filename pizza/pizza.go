// Package pizza holds the pizza model and its price list.
package pizza

import (
	"encoding/json"
	"fmt"
)

// Topping is a topping type together with the amount requested.
// Two toppings are the same topping when their types match; the amount is
// not part of the identity.
type Topping struct {
	Type   ToppingType   `json:"type"`
	Amount ToppingAmount `json:"amount"`
}

// Same reports whether t and other name the same topping type.
func (t Topping) Same(other Topping) bool {
	return t.Type == other.Type
}

func (t Topping) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidToppingType, uint8(t.Type))
	}
	if !t.Amount.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidToppingAmount, uint8(t.Amount))
	}
	return nil
}

// Pizza is a size plus a set of toppings keyed by type.
type Pizza struct {
	Size     Size
	toppings map[ToppingType]ToppingAmount
}

// New builds a pizza of the given size. Later toppings of a repeated type
// override earlier ones.
func New(size Size, toppings ...Topping) Pizza {
	p := Pizza{Size: size, toppings: make(map[ToppingType]ToppingAmount, len(toppings))}
	for _, t := range toppings {
		p.toppings[t.Type] = t.Amount
	}
	return p
}

// Default is a medium pizza with regular cheese.
func Default() Pizza {
	return New(Medium, Topping{Type: Cheese, Amount: Regular})
}

// Toppings returns the toppings in enumeration order.
func (p Pizza) Toppings() []Topping {
	out := make([]Topping, 0, len(p.toppings))
	for _, tt := range ToppingTypes() {
		if amount, ok := p.toppings[tt]; ok {
			out = append(out, Topping{Type: tt, Amount: amount})
		}
	}
	return out
}

func (p Pizza) ToppingCount() int {
	return len(p.toppings)
}

// Topping looks up the topping of the given type.
func (p Pizza) Topping(tt ToppingType) (Topping, bool) {
	amount, ok := p.toppings[tt]
	return Topping{Type: tt, Amount: amount}, ok
}

// AddTopping puts t on the pizza. If the type is already there only its
// amount changes.
func (p *Pizza) AddTopping(t Topping) {
	if p.toppings == nil {
		p.toppings = make(map[ToppingType]ToppingAmount)
	}
	p.toppings[t.Type] = t.Amount
}

// RemoveTopping takes the topping's type off the pizza. Absent types are
// ignored.
func (p *Pizza) RemoveTopping(t Topping) {
	delete(p.toppings, t.Type)
}

// ReplaceToppings makes toppings the exact topping set of the pizza.
func (p *Pizza) ReplaceToppings(toppings []Topping) {
	p.toppings = make(map[ToppingType]ToppingAmount, len(toppings))
	for _, t := range toppings {
		p.toppings[t.Type] = t.Amount
	}
}

func (p Pizza) Clone() Pizza {
	c := Pizza{Size: p.Size, toppings: make(map[ToppingType]ToppingAmount, len(p.toppings))}
	for tt, amount := range p.toppings {
		c.toppings[tt] = amount
	}
	return c
}

func (p Pizza) Validate() error {
	if !p.Size.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSize, uint8(p.Size))
	}
	for tt, amount := range p.toppings {
		if err := (Topping{Type: tt, Amount: amount}).Validate(); err != nil {
			return err
		}
	}
	return nil
}

type pizzaJSON struct {
	Size     Size      `json:"size"`
	Toppings []Topping `json:"toppings"`
}

func (p Pizza) MarshalJSON() ([]byte, error) {
	return json.Marshal(pizzaJSON{Size: p.Size, Toppings: p.Toppings()})
}

func (p *Pizza) UnmarshalJSON(data []byte) error {
	var raw pizzaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = New(raw.Size, raw.Toppings...)
	return p.Validate()
}
