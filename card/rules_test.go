package card

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRulesText(t *testing.T) {
	tests := []struct {
		input string
		want  []Segment
	}{
		{
			input: "{T}: Add {G}.",
			want: []Segment{
				SymbolSegment{TapSymbol},
				TextSegment{": Add "},
				SymbolSegment{CastingSym(CastingSymbol{Kind: Green})},
				TextSegment{"."},
			},
		},
		{
			input: "Flying",
			want:  []Segment{TextSegment{"Flying"}},
		},
		{
			input: "{W}{W}",
			want: []Segment{
				SymbolSegment{CastingSym(CastingSymbol{Kind: White})},
				SymbolSegment{CastingSym(CastingSymbol{Kind: White})},
			},
		},
		{
			input: "Pay {E}{E}: Scry 1.",
			want: []Segment{
				TextSegment{"Pay "},
				SymbolSegment{EnergySymbol},
				SymbolSegment{EnergySymbol},
				TextSegment{": Scry 1."},
			},
		},
		{
			input: "",
			want:  nil,
		},
	}
	for _, test := range tests {
		text, err := ParseRulesText(test.input)
		if err != nil {
			t.Fatalf("parsing %q: %v", test.input, err)
		}
		if !reflect.DeepEqual(text.Segments, test.want) {
			t.Errorf("%q: expected %v, got %v", test.input, test.want, text.Segments)
		}
	}
}

func TestRulesTextRoundTrip(t *testing.T) {
	inputs := []string{
		"{T}: Add {G}.",
		"When this creature dies, create a 1/1 token.\nIt has haste.",
		"Pay {W/P}: gain 2 life.  Trailing  spaces preserved ",
		"{CHAOS} Whenever you roll, do the thing.",
		"",
	}
	for _, input := range inputs {
		text, err := ParseRulesText(input)
		if err != nil {
			t.Fatalf("parsing %q: %v", input, err)
		}
		if text.String() != input {
			t.Errorf("round trip of %q produced %q", input, text.String())
		}
	}
}

func TestRulesTextUnclosedBrace(t *testing.T) {
	_, err := ParseRulesText("{T: Add mana.")
	var unclosed *UnclosedBraceError
	if !errors.As(err, &unclosed) {
		t.Fatalf("expected UnclosedBraceError, got %v", err)
	}
	if unclosed.Pos != 0 {
		t.Errorf("expected position 0, got %d", unclosed.Pos)
	}
}

func TestRulesTextUnknownSymbol(t *testing.T) {
	_, err := ParseRulesText("Pay {WUT} to win.")
	var unknown *UnknownSymbolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSymbolError, got %v", err)
	}
}
