package pizza

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceList holds the base price per size, the per-unit price per topping
// type and the multiplier per topping amount. It is read-only once built.
type PriceList struct {
	base        map[Size]decimal.Decimal
	perUnit     map[ToppingType]decimal.Decimal
	multipliers map[ToppingAmount]decimal.Decimal
}

// DefaultPriceList returns the house prices.
func DefaultPriceList() *PriceList {
	premium := decimal.RequireFromString("1.0")
	vegetable := decimal.RequireFromString("0.5")

	return &PriceList{
		base: map[Size]decimal.Decimal{
			Small:  decimal.RequireFromString("4.0"),
			Medium: decimal.RequireFromString("9.0"),
			Large:  decimal.RequireFromString("14.0"),
		},
		perUnit: map[ToppingType]decimal.Decimal{
			Cheese:     premium,
			Pepperoni:  premium,
			Ham:        premium,
			Sausage:    premium,
			Bacon:      premium,
			Mushrooms:  vegetable,
			Olives:     vegetable,
			Onions:     vegetable,
			Peppers:    vegetable,
			Pineapples: vegetable,
		},
		multipliers: map[ToppingAmount]decimal.Decimal{
			Light:   decimal.RequireFromString("0.5"),
			Regular: decimal.RequireFromString("1.0"),
			Extra:   decimal.RequireFromString("1.5"),
		},
	}
}

// BasePrice panics for a size outside the enumeration.
func (l *PriceList) BasePrice(size Size) decimal.Decimal {
	price, ok := l.base[size]
	if !ok {
		panic(fmt.Sprintf("pizza: no base price for %s", size))
	}
	return price
}

// ToppingPrice is the per-unit price of the type times the amount multiplier.
// It panics for a type or amount outside the enumeration.
func (l *PriceList) ToppingPrice(t Topping) decimal.Decimal {
	unit, ok := l.perUnit[t.Type]
	if !ok {
		panic(fmt.Sprintf("pizza: no price for topping %s", t.Type))
	}
	multiplier, ok := l.multipliers[t.Amount]
	if !ok {
		panic(fmt.Sprintf("pizza: no multiplier for amount %s", t.Amount))
	}
	return unit.Mul(multiplier)
}

func (l *PriceList) PizzaPrice(p Pizza) decimal.Decimal {
	price := l.BasePrice(p.Size)
	for _, t := range p.Toppings() {
		price = price.Add(l.ToppingPrice(t))
	}
	return price
}

func (l *PriceList) OrderPrice(pizzas []Pizza) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pizzas {
		total = total.Add(l.PizzaPrice(p))
	}
	return total
}
