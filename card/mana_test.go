package card

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSingleSymbols(t *testing.T) {
	tests := []struct {
		input string
		want  []CastingSymbol
	}{
		{"{W}", []CastingSymbol{{Kind: White}}},
		{"{U}", []CastingSymbol{{Kind: Blue}}},
		{"{B}", []CastingSymbol{{Kind: Black}}},
		{"{R}", []CastingSymbol{{Kind: Red}}},
		{"{G}", []CastingSymbol{{Kind: Green}}},
		{"{C}", []CastingSymbol{{Kind: Colorless}}},
		{"{X}", []CastingSymbol{{Kind: VarX}}},
		{"{Y}", []CastingSymbol{{Kind: VarY}}},
		{"{Z}", []CastingSymbol{{Kind: VarZ}}},
		{"{S}", []CastingSymbol{{Kind: Snow}}},
		{"{0}", []CastingSymbol{GenericSymbol(0)}},
		{"{1}", []CastingSymbol{GenericSymbol(1)}},
		{"{5}", []CastingSymbol{GenericSymbol(5)}},
		{"{20}", []CastingSymbol{GenericSymbol(20)}},
	}
	for _, test := range tests {
		cost, err := ParseCastingCost(test.input)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.input, err)
		}
		if !reflect.DeepEqual(cost.Symbols, test.want) {
			t.Errorf("%s: expected %v, got %v", test.input, test.want, cost.Symbols)
		}
	}
}

func TestParseHybridBothOrderings(t *testing.T) {
	tests := []struct {
		a, b string
		want CastingKind
	}{
		{"{W/U}", "{U/W}", WhiteBlue},
		{"{W/B}", "{B/W}", WhiteBlack},
		{"{W/R}", "{R/W}", WhiteRed},
		{"{W/G}", "{G/W}", WhiteGreen},
		{"{U/B}", "{B/U}", BlueBlack},
		{"{U/R}", "{R/U}", BlueRed},
		{"{U/G}", "{G/U}", BlueGreen},
		{"{B/R}", "{R/B}", BlackRed},
		{"{B/G}", "{G/B}", BlackGreen},
		{"{R/G}", "{G/R}", RedGreen},
	}
	for _, test := range tests {
		ca, err := ParseCastingCost(test.a)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.a, err)
		}
		cb, err := ParseCastingCost(test.b)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.b, err)
		}
		if ca.Symbols[0].Kind != test.want || !reflect.DeepEqual(ca.Symbols, cb.Symbols) {
			t.Errorf("%s / %s: expected both to resolve to kind %v", test.a, test.b, test.want)
		}
		// Printing normalizes to the canonical ordering.
		if cb.String() != test.a {
			t.Errorf("%s: expected canonical form %s, got %s", test.b, test.a, cb.String())
		}
	}
}

func TestParseTwobridAndPhyrexian(t *testing.T) {
	tests := []struct {
		input string
		want  CastingKind
	}{
		{"{2/W}", TwoWhite},
		{"{2/U}", TwoBlue},
		{"{2/B}", TwoBlack},
		{"{2/R}", TwoRed},
		{"{2/G}", TwoGreen},
		{"{W/P}", PhyrexianWhite},
		{"{U/P}", PhyrexianBlue},
		{"{B/P}", PhyrexianBlack},
		{"{R/P}", PhyrexianRed},
		{"{G/P}", PhyrexianGreen},
	}
	for _, test := range tests {
		cost, err := ParseCastingCost(test.input)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.input, err)
		}
		want := []CastingSymbol{{Kind: test.want}}
		if !reflect.DeepEqual(cost.Symbols, want) {
			t.Errorf("%s: expected %v, got %v", test.input, want, cost.Symbols)
		}
	}
}

func TestParseActionSymbols(t *testing.T) {
	tests := []struct {
		input string
		want  []Symbol
	}{
		{"{T}", []Symbol{TapSymbol}},
		{"{Q}", []Symbol{UntapSymbol}},
		{"{E}", []Symbol{EnergySymbol}},
		{"{CHAOS}", []Symbol{ChaosSymbol}},
		{"{W}", []Symbol{CastingSym(CastingSymbol{Kind: White})}},
	}
	for _, test := range tests {
		cost, err := ParseActionCost(test.input)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.input, err)
		}
		if !reflect.DeepEqual(cost.Symbols, test.want) {
			t.Errorf("%s: expected %v, got %v", test.input, test.want, cost.Symbols)
		}
	}
}

func TestDerivedQueries(t *testing.T) {
	tests := []struct {
		input   string
		generic int
		colored int
	}{
		{"{R}", 0, 1},
		{"{U}{U}", 0, 2},
		{"{1}{B}{B}", 1, 2},
		{"{2}{U}{U}", 2, 2},
		{"{1}{W}{B}{G}", 1, 3},
		{"{R/B}", 0, 0},
		{"{2/W}{W/P}", 0, 0},
		{"{15}", 15, 0},
	}
	for _, test := range tests {
		cost, err := ParseCastingCost(test.input)
		if err != nil {
			t.Fatalf("parsing %s: %v", test.input, err)
		}
		if cost.GenericCost() != test.generic {
			t.Errorf("%s: expected generic cost %d, got %d", test.input, test.generic, cost.GenericCost())
		}
		if cost.ColoredCount() != test.colored {
			t.Errorf("%s: expected colored count %d, got %d", test.input, test.colored, cost.ColoredCount())
		}
	}
}

func TestHasVariable(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"{X}{U}{U}", true},
		{"{Y}{1}{G}", true},
		{"{Z}", true},
		{"{R}{R}", false},
		{"", false},
	}
	for _, test := range tests {
		cost, err := ParseCastingCost(test.input)
		if err != nil {
			t.Fatalf("parsing %q: %v", test.input, err)
		}
		if cost.HasVariable() != test.want {
			t.Errorf("%q: expected HasVariable %v", test.input, test.want)
		}
	}
}

func TestWhitespaceBetweenTokens(t *testing.T) {
	a, err := ParseCastingCost("{2} {U} {U}")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseCastingCost("{2}{U}{U}")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Symbols, b.Symbols) {
		t.Errorf("expected %v, got %v", b.Symbols, a.Symbols)
	}
}

func TestParseEmptyCost(t *testing.T) {
	cost, err := ParseCastingCost("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cost.Symbols) != 0 || cost.GenericCost() != 0 || cost.HasVariable() {
		t.Errorf("empty cost misparsed: %v", cost)
	}
}

func TestCastingCostRoundTrip(t *testing.T) {
	for _, input := range []string{"{W}", "{2}{U}{U}", "{X}{R/G}{2/B}{W/P}{S}{C}", "{0}", "{15}{B}"} {
		cost, err := ParseCastingCost(input)
		if err != nil {
			t.Fatalf("parsing %s: %v", input, err)
		}
		if cost.String() != input {
			t.Errorf("round trip of %s produced %s", input, cost.String())
		}
	}
}

func TestActionCostRoundTrip(t *testing.T) {
	cost, err := ParseActionCost("{T}{1}{U}")
	if err != nil {
		t.Fatal(err)
	}
	if cost.String() != "{T}{1}{U}" {
		t.Errorf("expected {T}{1}{U}, got %s", cost.String())
	}
}

func TestCastingCostRejectsTap(t *testing.T) {
	_, err := ParseCastingCost("{T}")
	var unknown *UnknownSymbolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSymbolError, got %v", err)
	}
	if unknown.Symbol != "T" {
		t.Errorf("expected symbol T, got %s", unknown.Symbol)
	}
}

func TestUnclosedBrace(t *testing.T) {
	_, err := ParseCastingCost("{2}{U")
	var unclosed *UnclosedBraceError
	if !errors.As(err, &unclosed) {
		t.Fatalf("expected UnclosedBraceError, got %v", err)
	}
	if unclosed.Pos != 3 {
		t.Errorf("expected position 3, got %d", unclosed.Pos)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := ParseCastingCost("{2} x {U}")
	var unexpected *UnexpectedCharError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedCharError, got %v", err)
	}
	if unexpected.Char != 'x' || unexpected.Pos != 4 {
		t.Errorf("expected 'x' at 4, got %q at %d", unexpected.Char, unexpected.Pos)
	}
}

func TestInvalidUTF8InBracketBody(t *testing.T) {
	inputs := []string{"{\xff\xfe}", "{2}{\xc3(}"}
	for _, input := range inputs {
		if _, err := ParseCastingCost(input); !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("casting cost %q: expected ErrInvalidUTF8, got %v", input, err)
		}
		if _, err := ParseActionCost(input); !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("action cost %q: expected ErrInvalidUTF8, got %v", input, err)
		}
		if _, err := ParseRulesText("Pay " + input + "."); !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("rules text %q: expected ErrInvalidUTF8, got %v", input, err)
		}
	}
}

func TestLenientConstructors(t *testing.T) {
	if got := CastingCostFromText("{T}"); len(got.Symbols) != 0 {
		t.Errorf("expected empty cost for invalid text, got %v", got)
	}
	if got := CastingCostFromText("{G}"); len(got.Symbols) != 1 {
		t.Errorf("expected one symbol, got %v", got)
	}
	if got := ActionCostFromText("{nope}"); len(got.Symbols) != 0 {
		t.Errorf("expected empty action cost for invalid text, got %v", got)
	}
}
