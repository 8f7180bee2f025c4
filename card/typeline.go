package card

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TypeLine is a parsed type line such as "Legendary Creature — Elf Druid":
// the words before the dash (supertypes and card types) and the subtypes
// after it.
type TypeLine struct {
	Head     []string `parser:"@Word+"`
	Subtypes []string `parser:"(Dash @Word+)?"`
}

var typeLineParser = participle.MustBuild[TypeLine](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `[\s]+`},
		{Name: "Dash", Pattern: `—|–|-`},
		{Name: "Word", Pattern: `[A-Za-z][A-Za-z']*`},
	})),
)

// ParseTypeLine parses a type line. The raw string stays authoritative for
// display; this is only for layout decisions, so callers treat failure as
// "no information".
func ParseTypeLine(input string) (*TypeLine, error) {
	return typeLineParser.ParseString("", input)
}

var supertypes = map[string]bool{
	"Basic":     true,
	"Legendary": true,
	"Snow":      true,
	"World":     true,
	"Ongoing":   true,
}

// Supertypes returns the head words that are supertypes, in order.
func (t *TypeLine) Supertypes() []string {
	var out []string
	for _, w := range t.Head {
		if supertypes[w] {
			out = append(out, w)
		}
	}
	return out
}

// Types returns the head words that are card types, in order.
func (t *TypeLine) Types() []string {
	var out []string
	for _, w := range t.Head {
		if !supertypes[w] {
			out = append(out, w)
		}
	}
	return out
}

func (t *TypeLine) hasType(name string) bool {
	for _, w := range t.Head {
		if w == name {
			return true
		}
	}
	return false
}

func (t *TypeLine) IsLand() bool      { return t.hasType("Land") }
func (t *TypeLine) IsCreature() bool  { return t.hasType("Creature") }
func (t *TypeLine) IsLegendary() bool { return t.hasType("Legendary") }
