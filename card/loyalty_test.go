package card

import (
	"errors"
	"testing"
)

func TestParseLoyaltyCost(t *testing.T) {
	tests := []struct {
		input string
		want  LoyaltyCost
	}{
		{"+2", LoyaltyCost{Kind: LoyaltyPlus, N: 2}},
		{"-3", LoyaltyCost{Kind: LoyaltyMinus, N: 3}},
		{"0", LoyaltyCost{Kind: LoyaltyZero}},
		{"+X", LoyaltyCost{Kind: LoyaltyPlusX}},
		{"-X", LoyaltyCost{Kind: LoyaltyMinusX}},
		{"2", LoyaltyCost{Kind: LoyaltyPlus, N: 2}},
		{" -12 ", LoyaltyCost{Kind: LoyaltyMinus, N: 12}},
		{"+x", LoyaltyCost{Kind: LoyaltyPlusX}},
	}
	for _, test := range tests {
		got, err := ParseLoyaltyCost(test.input)
		if err != nil {
			t.Fatalf("parsing %q: %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("%q: expected %v, got %v", test.input, test.want, got)
		}
	}
}

func TestParseLoyaltyCostBareZero(t *testing.T) {
	got, err := ParseLoyaltyCost("0")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != LoyaltyZero {
		t.Errorf("expected Zero, got %v", got)
	}
}

func TestParseLoyaltyCostInvalid(t *testing.T) {
	for _, input := range []string{"", "++2", "-", "plus two", "+2000"} {
		_, err := ParseLoyaltyCost(input)
		var invalid *InvalidLoyaltyCostError
		if !errors.As(err, &invalid) {
			t.Errorf("%q: expected InvalidLoyaltyCostError, got %v", input, err)
		}
	}
}

func TestLoyaltyCostString(t *testing.T) {
	tests := []struct {
		cost LoyaltyCost
		want string
	}{
		{LoyaltyCost{Kind: LoyaltyPlus, N: 2}, "+2"},
		{LoyaltyCost{Kind: LoyaltyMinus, N: 3}, "-3"},
		{LoyaltyCost{Kind: LoyaltyZero}, "0"},
		{LoyaltyCost{Kind: LoyaltyPlusX}, "+X"},
		{LoyaltyCost{Kind: LoyaltyMinusX}, "-X"},
	}
	for _, test := range tests {
		if got := test.cost.String(); got != test.want {
			t.Errorf("expected %s, got %s", test.want, got)
		}
	}
}

func TestParseLoyaltyValue(t *testing.T) {
	tests := []struct {
		input string
		want  LoyaltyValue
	}{
		{"3", LoyaltyValue{Number: 3}},
		{"0", LoyaltyValue{Number: 0}},
		{"X", LoyaltyValue{X: true}},
		{" x ", LoyaltyValue{X: true}},
	}
	for _, test := range tests {
		got, err := ParseLoyaltyValue(test.input)
		if err != nil {
			t.Fatalf("parsing %q: %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("%q: expected %v, got %v", test.input, test.want, got)
		}
	}
	if _, err := ParseLoyaltyValue("-1"); err == nil {
		t.Error("expected error for negative loyalty value")
	}
	var invalid *InvalidLoyaltyValueError
	_, err := ParseLoyaltyValue("lots")
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidLoyaltyValueError, got %v", err)
	}
}

func TestLoyaltyValueString(t *testing.T) {
	if got := (LoyaltyValue{Number: 4}).String(); got != "4" {
		t.Errorf("expected 4, got %s", got)
	}
	if got := (LoyaltyValue{X: true}).String(); got != "X" {
		t.Errorf("expected X, got %s", got)
	}
}
