package card

import "strings"

// Segment is one piece of parsed rules text: a literal text run or a
// resolved symbol.
type Segment interface {
	segment()
	String() string
}

// TextSegment is a literal run of prose, kept verbatim.
type TextSegment struct {
	Text string
}

func (s TextSegment) segment()       {}
func (s TextSegment) String() string { return s.Text }

// SymbolSegment is a bracket token resolved to a general symbol.
type SymbolSegment struct {
	Symbol Symbol
}

func (s SymbolSegment) segment()       {}
func (s SymbolSegment) String() string { return s.Symbol.String() }

// RulesText is rules text split into an ordered sequence of literal and
// symbol segments. Printing it reproduces the parsed input exactly.
type RulesText struct {
	Segments []Segment
}

// ParseRulesText tokenizes mixed prose and bracket symbols. Action symbols
// are legal inline, so "{T}: Add {G}." parses. Empty input yields zero
// segments. Unlike the cost parsers, literal text is never an error.
func ParseRulesText(input string) (RulesText, error) {
	spans, err := scanBrackets(input)
	if err != nil {
		return RulesText{}, err
	}
	text := RulesText{}
	for _, s := range spans {
		if s.bracket {
			sym, err := parseSymbol(s.text)
			if err != nil {
				return RulesText{}, err
			}
			text.Segments = append(text.Segments, SymbolSegment{Symbol: sym})
		} else if s.text != "" {
			text.Segments = append(text.Segments, TextSegment{Text: s.text})
		}
	}
	return text, nil
}

func (r RulesText) String() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.String())
	}
	return b.String()
}
