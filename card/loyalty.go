package card

import (
	"fmt"
	"strconv"
	"strings"
)

// LoyaltyKind enumerates the loyalty cost shapes on planeswalker abilities.
type LoyaltyKind uint8

const (
	LoyaltyPlus LoyaltyKind = iota
	LoyaltyMinus
	LoyaltyZero
	LoyaltyPlusX
	LoyaltyMinusX
)

// LoyaltyCost is a signed or variable loyalty delta. N is meaningful only
// for LoyaltyPlus and LoyaltyMinus.
type LoyaltyCost struct {
	Kind LoyaltyKind
	N    int
}

// InvalidLoyaltyCostError reports text that matches no loyalty cost shape.
type InvalidLoyaltyCostError struct {
	Text string
}

func (e *InvalidLoyaltyCostError) Error() string {
	return fmt.Sprintf("invalid loyalty cost: %s", e.Text)
}

// ParseLoyaltyCost parses "+2", "-3", "0", "+X", "-X" and bare integers
// (which read as Plus, or Zero for 0). Input is trimmed and uppercased.
func ParseLoyaltyCost(input string) (LoyaltyCost, error) {
	v := strings.ToUpper(strings.TrimSpace(input))
	switch v {
	case "0":
		return LoyaltyCost{Kind: LoyaltyZero}, nil
	case "+X":
		return LoyaltyCost{Kind: LoyaltyPlusX}, nil
	case "-X":
		return LoyaltyCost{Kind: LoyaltyMinusX}, nil
	}
	if strings.HasPrefix(v, "+") {
		n, err := strconv.ParseUint(v[1:], 10, 8)
		if err != nil {
			return LoyaltyCost{}, &InvalidLoyaltyCostError{Text: v}
		}
		return LoyaltyCost{Kind: LoyaltyPlus, N: int(n)}, nil
	}
	if strings.HasPrefix(v, "-") {
		n, err := strconv.ParseUint(v[1:], 10, 8)
		if err != nil {
			return LoyaltyCost{}, &InvalidLoyaltyCostError{Text: v}
		}
		return LoyaltyCost{Kind: LoyaltyMinus, N: int(n)}, nil
	}
	if n, err := strconv.ParseUint(v, 10, 8); err == nil {
		if n == 0 {
			return LoyaltyCost{Kind: LoyaltyZero}, nil
		}
		return LoyaltyCost{Kind: LoyaltyPlus, N: int(n)}, nil
	}
	return LoyaltyCost{}, &InvalidLoyaltyCostError{Text: v}
}

func (c LoyaltyCost) String() string {
	switch c.Kind {
	case LoyaltyPlus:
		return fmt.Sprintf("+%d", c.N)
	case LoyaltyMinus:
		return fmt.Sprintf("-%d", c.N)
	case LoyaltyPlusX:
		return "+X"
	case LoyaltyMinusX:
		return "-X"
	}
	return "0"
}

// LoyaltyValue is a starting loyalty: a number or X.
type LoyaltyValue struct {
	Number int
	X      bool
}

// InvalidLoyaltyValueError reports text that is neither "X" nor a
// non-negative integer.
type InvalidLoyaltyValueError struct {
	Text string
}

func (e *InvalidLoyaltyValueError) Error() string {
	return fmt.Sprintf("invalid loyalty value: %s", e.Text)
}

// ParseLoyaltyValue parses a starting loyalty such as "3" or "X".
func ParseLoyaltyValue(input string) (LoyaltyValue, error) {
	v := strings.ToUpper(strings.TrimSpace(input))
	if v == "X" {
		return LoyaltyValue{X: true}, nil
	}
	n, err := strconv.ParseUint(v, 10, 31)
	if err != nil {
		return LoyaltyValue{}, &InvalidLoyaltyValueError{Text: v}
	}
	return LoyaltyValue{Number: int(n)}, nil
}

func (v LoyaltyValue) String() string {
	if v.X {
		return "X"
	}
	return strconv.Itoa(v.Number)
}
