package pizza

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	size, err := ParseSize("large")
	require.NoError(t, err)
	assert.Equal(t, Large, size)

	tt, err := ParseToppingType(" Pineapples ")
	require.NoError(t, err)
	assert.Equal(t, Pineapples, tt)

	amount, err := ParseToppingAmount("EXTRA")
	require.NoError(t, err)
	assert.Equal(t, Extra, amount)

	_, err = ParseSize("HUGE")
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = ParseToppingType("ANCHOVIES")
	assert.ErrorIs(t, err, ErrInvalidToppingType)
	_, err = ParseToppingAmount("NONE")
	assert.ErrorIs(t, err, ErrInvalidToppingAmount)
}

func TestToppingEqualityIgnoresAmount(t *testing.T) {
	light := Topping{Type: Cheese, Amount: Light}
	extra := Topping{Type: Cheese, Amount: Extra}
	ham := Topping{Type: Ham, Amount: Light}

	assert.True(t, light.Same(extra))
	assert.False(t, light.Same(ham))
}

func TestDefaultPizza(t *testing.T) {
	p := Default()

	assert.Equal(t, Medium, p.Size)
	assert.Equal(t, []Topping{{Type: Cheese, Amount: Regular}}, p.Toppings())
}

func TestAddTopping(t *testing.T) {
	tests := []struct {
		name      string
		add       Topping
		wantCount int
		want      Topping
	}{
		{
			name:      "existing type updates amount",
			add:       Topping{Type: Cheese, Amount: Extra},
			wantCount: 1,
			want:      Topping{Type: Cheese, Amount: Extra},
		},
		{
			name:      "new type is appended",
			add:       Topping{Type: Olives, Amount: Light},
			wantCount: 2,
			want:      Topping{Type: Olives, Amount: Light},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			p := Default()

			// Act
			p.AddTopping(tt.add)

			// Assert
			assert.Equal(t, tt.wantCount, p.ToppingCount())
			got, ok := p.Topping(tt.add.Type)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveTopping(t *testing.T) {
	p := New(Small, Topping{Type: Cheese, Amount: Regular}, Topping{Type: Sausage, Amount: Regular})

	p.RemoveTopping(Topping{Type: Onions, Amount: Regular})
	assert.Equal(t, 2, p.ToppingCount())

	p.RemoveTopping(Topping{Type: Cheese, Amount: Extra})
	assert.Equal(t, []Topping{{Type: Sausage, Amount: Regular}}, p.Toppings())
}

func TestReplaceToppings(t *testing.T) {
	p := New(Small, Topping{Type: Cheese, Amount: Regular}, Topping{Type: Sausage, Amount: Regular})

	p.ReplaceToppings([]Topping{
		{Type: Ham, Amount: Light},
		{Type: Ham, Amount: Extra},
	})

	assert.Equal(t, []Topping{{Type: Ham, Amount: Extra}}, p.Toppings())
}

func TestCloneIsIndependent(t *testing.T) {
	p := Default()
	c := p.Clone()

	c.AddTopping(Topping{Type: Bacon, Amount: Regular})
	c.Size = Large

	assert.Equal(t, 1, p.ToppingCount())
	assert.Equal(t, Medium, p.Size)
}

func TestPizzaJSON(t *testing.T) {
	p := New(Small, Topping{Type: Pepperoni, Amount: Extra}, Topping{Type: Cheese, Amount: Light})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":"SMALL","toppings":[{"type":"CHEESE","amount":"LIGHT"},{"type":"PEPPERONI","amount":"EXTRA"}]}`, string(data))

	var decoded Pizza
	require.NoError(t, json.Unmarshal([]byte(`{"size":"large","toppings":[{"type":"HAM","amount":"REGULAR"}]}`), &decoded))
	assert.Equal(t, Large, decoded.Size)
	assert.Equal(t, []Topping{{Type: Ham, Amount: Regular}}, decoded.Toppings())

	err = json.Unmarshal([]byte(`{"size":"HUGE","toppings":[]}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidSize)

	err = json.Unmarshal([]byte(`{"size":"SMALL","toppings":[{"type":"HAM"}]}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidToppingAmount)
}

func TestPriceList(t *testing.T) {
	prices := DefaultPriceList()

	tests := []struct {
		name  string
		pizza Pizza
		want  string
	}{
		{
			name:  "default pizza",
			pizza: Default(),
			want:  "10",
		},
		{
			name:  "plain small",
			pizza: New(Small),
			want:  "4",
		},
		{
			name: "small with cheese, extra pineapples and bacon",
			pizza: New(Small,
				Topping{Type: Cheese, Amount: Regular},
				Topping{Type: Pineapples, Amount: Extra},
				Topping{Type: Bacon, Amount: Regular},
			),
			want: "6.75",
		},
		{
			name: "large supreme",
			pizza: New(Large,
				Topping{Type: Cheese, Amount: Regular},
				Topping{Type: Sausage, Amount: Regular},
				Topping{Type: Mushrooms, Amount: Light},
				Topping{Type: Peppers, Amount: Regular},
				Topping{Type: Onions, Amount: Regular},
			),
			want: "17.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prices.PizzaPrice(tt.pizza)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestOrderPriceIsSumOfPizzas(t *testing.T) {
	prices := DefaultPriceList()
	pizzas := []Pizza{Default(), New(Small), New(Large, Topping{Type: Olives, Amount: Extra})}

	first := prices.OrderPrice(pizzas)
	second := prices.OrderPrice(pizzas)

	assert.True(t, decimal.RequireFromString("28.75").Equal(first), "got %s", first)
	assert.True(t, first.Equal(second))
	assert.True(t, decimal.Zero.Equal(prices.OrderPrice(nil)))
}

func TestPriceListPanicsOnUnknownKey(t *testing.T) {
	prices := DefaultPriceList()

	assert.Panics(t, func() { prices.BasePrice(Size(42)) })
	assert.Panics(t, func() { prices.ToppingPrice(Topping{Type: ToppingType(42), Amount: Regular}) })
	assert.Panics(t, func() { prices.ToppingPrice(Topping{Type: Cheese}) })
}
