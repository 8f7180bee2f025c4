package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// CastingKind enumerates every symbol that may appear in a casting cost.
type CastingKind uint8

const (
	White CastingKind = iota
	Blue
	Black
	Red
	Green
	Colorless
	Generic
	VarX
	VarY
	VarZ
	Snow
	WhiteBlue
	WhiteBlack
	WhiteRed
	WhiteGreen
	BlueBlack
	BlueRed
	BlueGreen
	BlackRed
	BlackGreen
	RedGreen
	TwoWhite
	TwoBlue
	TwoBlack
	TwoRed
	TwoGreen
	PhyrexianWhite
	PhyrexianBlue
	PhyrexianBlack
	PhyrexianRed
	PhyrexianGreen
)

// CastingSymbol is a single symbol in a casting cost. N is the amount for
// Generic symbols and zero otherwise.
type CastingSymbol struct {
	Kind CastingKind
	N    int
}

// GenericSymbol returns the {n} symbol.
func GenericSymbol(n int) CastingSymbol {
	return CastingSymbol{Kind: Generic, N: n}
}

// SymbolKind enumerates the shapes a general cost symbol can take.
type SymbolKind uint8

const (
	SymCasting SymbolKind = iota
	SymTap
	SymUntap
	SymEnergy
	SymChaos
)

// Symbol is any symbol that can appear in an action cost or rules text.
// Casting is only meaningful when Kind is SymCasting.
type Symbol struct {
	Kind    SymbolKind
	Casting CastingSymbol
}

// CastingSym wraps a casting symbol into a general symbol.
func CastingSym(s CastingSymbol) Symbol {
	return Symbol{Kind: SymCasting, Casting: s}
}

var (
	TapSymbol    = Symbol{Kind: SymTap}
	UntapSymbol  = Symbol{Kind: SymUntap}
	EnergySymbol = Symbol{Kind: SymEnergy}
	ChaosSymbol  = Symbol{Kind: SymChaos}
)

// castingTable maps bracket bodies to casting symbols. Hybrid pairs carry
// both orderings; printing always uses the canonical one from castingText.
var castingTable = map[string]CastingKind{
	"W": White,
	"U": Blue,
	"B": Black,
	"R": Red,
	"G": Green,
	"C": Colorless,
	"X": VarX,
	"Y": VarY,
	"Z": VarZ,
	"S": Snow,
	"W/U": WhiteBlue, "U/W": WhiteBlue,
	"W/B": WhiteBlack, "B/W": WhiteBlack,
	"W/R": WhiteRed, "R/W": WhiteRed,
	"W/G": WhiteGreen, "G/W": WhiteGreen,
	"U/B": BlueBlack, "B/U": BlueBlack,
	"U/R": BlueRed, "R/U": BlueRed,
	"U/G": BlueGreen, "G/U": BlueGreen,
	"B/R": BlackRed, "R/B": BlackRed,
	"B/G": BlackGreen, "G/B": BlackGreen,
	"R/G": RedGreen, "G/R": RedGreen,
	"2/W": TwoWhite,
	"2/U": TwoBlue,
	"2/B": TwoBlack,
	"2/R": TwoRed,
	"2/G": TwoGreen,
	"W/P": PhyrexianWhite,
	"U/P": PhyrexianBlue,
	"B/P": PhyrexianBlack,
	"R/P": PhyrexianRed,
	"G/P": PhyrexianGreen,
}

var castingText = map[CastingKind]string{
	White:          "W",
	Blue:           "U",
	Black:          "B",
	Red:            "R",
	Green:          "G",
	Colorless:      "C",
	VarX:           "X",
	VarY:           "Y",
	VarZ:           "Z",
	Snow:           "S",
	WhiteBlue:      "W/U",
	WhiteBlack:     "W/B",
	WhiteRed:       "W/R",
	WhiteGreen:     "W/G",
	BlueBlack:      "U/B",
	BlueRed:        "U/R",
	BlueGreen:      "U/G",
	BlackRed:       "B/R",
	BlackGreen:     "B/G",
	RedGreen:       "R/G",
	TwoWhite:       "2/W",
	TwoBlue:        "2/U",
	TwoBlack:       "2/B",
	TwoRed:         "2/R",
	TwoGreen:       "2/G",
	PhyrexianWhite: "W/P",
	PhyrexianBlue:  "U/P",
	PhyrexianBlack: "B/P",
	PhyrexianRed:   "R/P",
	PhyrexianGreen: "G/P",
}

// Text returns the canonical bracket body without braces, e.g. "W/U".
func (s CastingSymbol) Text() string {
	if s.Kind == Generic {
		return strconv.Itoa(s.N)
	}
	return castingText[s.Kind]
}

func (s CastingSymbol) String() string { return "{" + s.Text() + "}" }

// Text returns the canonical bracket body without braces.
func (s Symbol) Text() string {
	switch s.Kind {
	case SymTap:
		return "T"
	case SymUntap:
		return "Q"
	case SymEnergy:
		return "E"
	case SymChaos:
		return "CHAOS"
	}
	return s.Casting.Text()
}

func (s Symbol) String() string { return "{" + s.Text() + "}" }

// ErrInvalidUTF8 is returned when a bracket body is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in symbol text")

// UnclosedBraceError reports a '{' with no matching '}'. Pos is the byte
// offset of the opening brace.
type UnclosedBraceError struct {
	Pos int
}

func (e *UnclosedBraceError) Error() string {
	return fmt.Sprintf("unclosed brace at position %d", e.Pos)
}

// UnexpectedCharError reports a top-level character in a cost string that is
// neither whitespace nor part of a bracket group.
type UnexpectedCharError struct {
	Char rune
	Pos  int
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// UnknownSymbolError reports a bracket body that matches no known spelling.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown mana symbol: %s", e.Symbol)
}

// parseCastingSymbol resolves a bracket body against the casting table.
// Unmatched bodies that parse as a non-negative integer become Generic(n).
func parseCastingSymbol(body string) (CastingSymbol, error) {
	if !utf8.ValidString(body) {
		return CastingSymbol{}, ErrInvalidUTF8
	}
	if kind, ok := castingTable[body]; ok {
		return CastingSymbol{Kind: kind}, nil
	}
	if n, err := strconv.ParseUint(body, 10, 31); err == nil {
		return GenericSymbol(int(n)), nil
	}
	return CastingSymbol{}, &UnknownSymbolError{Symbol: body}
}

// parseSymbol resolves the action-only symbols and falls back to the casting
// resolver for everything else.
func parseSymbol(body string) (Symbol, error) {
	switch body {
	case "T":
		return TapSymbol, nil
	case "Q":
		return UntapSymbol, nil
	case "E":
		return EnergySymbol, nil
	case "CHAOS":
		return ChaosSymbol, nil
	}
	s, err := parseCastingSymbol(body)
	if err != nil {
		return Symbol{}, err
	}
	return CastingSym(s), nil
}

// span is one piece of a tokenized string: either a {..} group or the
// literal run between groups. pos is the byte offset of the span start.
type span struct {
	text    string
	pos     int
	bracket bool
}

// scanBrackets splits input into bracket bodies and the literal runs between
// them, preserving order and exact slicing. A '{' with no closing '}' fails
// with UnclosedBraceError at the offset of the opening brace.
func scanBrackets(input string) ([]span, error) {
	var spans []span
	i := 0
	for i < len(input) {
		if input[i] == '{' {
			end := strings.IndexByte(input[i+1:], '}')
			if end < 0 {
				return nil, &UnclosedBraceError{Pos: i}
			}
			spans = append(spans, span{text: input[i+1 : i+1+end], pos: i, bracket: true})
			i += end + 2
			continue
		}
		start := i
		next := strings.IndexByte(input[i:], '{')
		if next < 0 {
			i = len(input)
		} else {
			i += next
		}
		spans = append(spans, span{text: input[start:i], pos: start})
	}
	return spans, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// checkCostLiteral rejects any literal run in a cost string that contains
// something besides ASCII whitespace.
func checkCostLiteral(s span) error {
	for i := 0; i < len(s.text); i++ {
		if !isSpace(s.text[i]) {
			r, _ := utf8.DecodeRuneInString(s.text[i:])
			return &UnexpectedCharError{Char: r, Pos: s.pos + i}
		}
	}
	return nil
}

// CastingCost is an ordered sequence of casting symbols. Order is preserved
// for display; symbols are not deduplicated.
type CastingCost struct {
	Symbols []CastingSymbol
}

// ParseCastingCost parses a bracketed casting cost such as "{2}{U}{U}".
// Whitespace between tokens is skipped. The parse fails atomically: a single
// bad token rejects the whole cost.
func ParseCastingCost(input string) (CastingCost, error) {
	spans, err := scanBrackets(input)
	if err != nil {
		return CastingCost{}, err
	}
	cost := CastingCost{}
	for _, s := range spans {
		if !s.bracket {
			if err := checkCostLiteral(s); err != nil {
				return CastingCost{}, err
			}
			continue
		}
		sym, err := parseCastingSymbol(s.text)
		if err != nil {
			return CastingCost{}, err
		}
		cost.Symbols = append(cost.Symbols, sym)
	}
	return cost, nil
}

// CastingCostFromText is the lossy boundary constructor: it substitutes the
// empty cost when the text does not parse. Only for display paths where the
// loader has already validated the field; everything else uses
// ParseCastingCost.
func CastingCostFromText(input string) CastingCost {
	cost, err := ParseCastingCost(input)
	if err != nil {
		return CastingCost{}
	}
	return cost
}

func (c CastingCost) String() string {
	var b strings.Builder
	for _, s := range c.Symbols {
		b.WriteString(s.String())
	}
	return b.String()
}

// GenericCost sums all Generic(n) symbols.
func (c CastingCost) GenericCost() int {
	total := 0
	for _, s := range c.Symbols {
		if s.Kind == Generic {
			total += s.N
		}
	}
	return total
}

// HasVariable reports whether the cost contains X, Y or Z.
func (c CastingCost) HasVariable() bool {
	for _, s := range c.Symbols {
		if s.Kind == VarX || s.Kind == VarY || s.Kind == VarZ {
			return true
		}
	}
	return false
}

// ColoredCount counts plain single-color pips. Hybrid, twobrid and Phyrexian
// symbols are not monocolored pips and do not count.
func (c CastingCost) ColoredCount() int {
	count := 0
	for _, s := range c.Symbols {
		switch s.Kind {
		case White, Blue, Black, Red, Green:
			count++
		}
	}
	return count
}

// ActionCost is an ordered sequence of general symbols. It accepts everything
// a casting cost does plus tap, untap, energy and chaos.
type ActionCost struct {
	Symbols []Symbol
}

// ParseActionCost parses a cost that may include action symbols, e.g.
// "{T}{1}{U}".
func ParseActionCost(input string) (ActionCost, error) {
	spans, err := scanBrackets(input)
	if err != nil {
		return ActionCost{}, err
	}
	cost := ActionCost{}
	for _, s := range spans {
		if !s.bracket {
			if err := checkCostLiteral(s); err != nil {
				return ActionCost{}, err
			}
			continue
		}
		sym, err := parseSymbol(s.text)
		if err != nil {
			return ActionCost{}, err
		}
		cost.Symbols = append(cost.Symbols, sym)
	}
	return cost, nil
}

// ActionCostFromText substitutes the empty cost when the text does not parse.
// Same caveats as CastingCostFromText.
func ActionCostFromText(input string) ActionCost {
	cost, err := ParseActionCost(input)
	if err != nil {
		return ActionCost{}
	}
	return cost
}

func (c ActionCost) String() string {
	var b strings.Builder
	for _, s := range c.Symbols {
		b.WriteString(s.String())
	}
	return b.String()
}
