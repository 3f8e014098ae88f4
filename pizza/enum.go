package pizza

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSize          = errors.New("invalid pizza size")
	ErrInvalidToppingType   = errors.New("invalid topping type")
	ErrInvalidToppingAmount = errors.New("invalid topping amount")
)

// Size is the size of a pizza. The zero value means "not set".
type Size uint8

const (
	Small Size = iota + 1
	Medium
	Large
)

var sizeNames = map[Size]string{
	Small:  "SMALL",
	Medium: "MEDIUM",
	Large:  "LARGE",
}

// Sizes lists every valid size in declaration order.
func Sizes() []Size {
	return []Size{Small, Medium, Large}
}

func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Size(%d)", uint8(s))
}

func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

// ParseSize parses a size name, ignoring case.
func ParseSize(name string) (Size, error) {
	for s, n := range sizeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSize, name)
}

func (s Size) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ToppingType identifies a topping. The enumeration order is also the order
// in which a pizza lists its toppings.
type ToppingType uint8

const (
	Cheese ToppingType = iota + 1
	Pepperoni
	Ham
	Sausage
	Bacon
	Mushrooms
	Olives
	Onions
	Peppers
	Pineapples
)

var toppingTypeNames = map[ToppingType]string{
	Cheese:     "CHEESE",
	Pepperoni:  "PEPPERONI",
	Ham:        "HAM",
	Sausage:    "SAUSAGE",
	Bacon:      "BACON",
	Mushrooms:  "MUSHROOMS",
	Olives:     "OLIVES",
	Onions:     "ONIONS",
	Peppers:    "PEPPERS",
	Pineapples: "PINEAPPLES",
}

// ToppingTypes lists every valid topping type in declaration order.
func ToppingTypes() []ToppingType {
	return []ToppingType{Cheese, Pepperoni, Ham, Sausage, Bacon, Mushrooms, Olives, Onions, Peppers, Pineapples}
}

func (t ToppingType) String() string {
	if name, ok := toppingTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ToppingType(%d)", uint8(t))
}

func (t ToppingType) Valid() bool {
	_, ok := toppingTypeNames[t]
	return ok
}

// ParseToppingType parses a topping type name, ignoring case.
func ParseToppingType(name string) (ToppingType, error) {
	for t, n := range toppingTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidToppingType, name)
}

func (t ToppingType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidToppingType, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *ToppingType) UnmarshalText(text []byte) error {
	parsed, err := ParseToppingType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ToppingAmount is how much of a topping goes on a pizza. The zero value
// means "not set".
type ToppingAmount uint8

const (
	Light ToppingAmount = iota + 1
	Regular
	Extra
)

var toppingAmountNames = map[ToppingAmount]string{
	Light:   "LIGHT",
	Regular: "REGULAR",
	Extra:   "EXTRA",
}

// ToppingAmounts lists every valid amount in declaration order.
func ToppingAmounts() []ToppingAmount {
	return []ToppingAmount{Light, Regular, Extra}
}

func (a ToppingAmount) String() string {
	if name, ok := toppingAmountNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ToppingAmount(%d)", uint8(a))
}

func (a ToppingAmount) Valid() bool {
	_, ok := toppingAmountNames[a]
	return ok
}

// ParseToppingAmount parses an amount name, ignoring case.
func ParseToppingAmount(name string) (ToppingAmount, error) {
	for a, n := range toppingAmountNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidToppingAmount, name)
}

func (a ToppingAmount) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidToppingAmount, uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *ToppingAmount) UnmarshalText(text []byte) error {
	parsed, err := ParseToppingAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
