package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/SvenDH/go-card-render/card"
)

const symbolBaseURL = "https://svgs.scryfall.io/card-symbols"

// symbolCode is the SVG file name for a symbol: the canonical text with the
// slash dropped, so "W/U" becomes "WU" and "2/G" becomes "2G".
func symbolCode(text string) string {
	return strings.ReplaceAll(text, "/", "")
}

func symbolImg(code string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<img class="mana-symbol" src="%s/%s.svg" alt="%s">`,
		symbolBaseURL, code, code))
}

// CastingSymbolHTML renders one casting symbol. Generic amounts render as a
// numbered circle instead of an image.
func CastingSymbolHTML(s card.CastingSymbol) template.HTML {
	if s.Kind == card.Generic {
		return template.HTML(fmt.Sprintf(`<span class="mana-generic">%d</span>`, s.N))
	}
	return symbolImg(symbolCode(s.Text()))
}

// SymbolHTML renders any cost symbol, including tap, untap, energy and chaos.
func SymbolHTML(s card.Symbol) template.HTML {
	if s.Kind == card.SymCasting {
		return CastingSymbolHTML(s.Casting)
	}
	return symbolImg(s.Text())
}

// ManaCostHTML renders a whole casting cost in printed order.
func ManaCostHTML(cost card.CastingCost) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="mana-cost-container">`)
	for _, s := range cost.Symbols {
		b.WriteString(string(CastingSymbolHTML(s)))
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

// RulesTextHTML renders parsed rules text, inlining symbol images between
// escaped prose runs.
func RulesTextHTML(text card.RulesText) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="rules-text-inner">`)
	for _, seg := range text.Segments {
		switch s := seg.(type) {
		case card.TextSegment:
			b.WriteString(template.HTMLEscapeString(s.Text))
		case card.SymbolSegment:
			b.WriteString(string(SymbolHTML(s.Symbol)))
		}
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

// FrameColor picks the frame for a card from its mana cost. No cost reads as
// a land frame; generic-only costs read as artifact. Hybrid, twobrid and
// Phyrexian symbols count toward their primary color.
func FrameColor(cost *card.CastingCost) string {
	if cost == nil {
		return "land"
	}
	var white, blue, black, red, green, colorless bool
	for _, s := range cost.Symbols {
		switch s.Kind {
		case card.White, card.WhiteBlue, card.WhiteBlack, card.WhiteRed,
			card.WhiteGreen, card.TwoWhite, card.PhyrexianWhite:
			white = true
		case card.Blue, card.BlueBlack, card.BlueRed, card.BlueGreen,
			card.TwoBlue, card.PhyrexianBlue:
			blue = true
		case card.Black, card.BlackRed, card.BlackGreen, card.TwoBlack,
			card.PhyrexianBlack:
			black = true
		case card.Red, card.RedGreen, card.TwoRed, card.PhyrexianRed:
			red = true
		case card.Green, card.TwoGreen, card.PhyrexianGreen:
			green = true
		case card.Colorless:
			colorless = true
		}
	}
	count := 0
	for _, c := range []bool{white, blue, black, red, green} {
		if c {
			count++
		}
	}
	switch {
	case count > 1:
		return "gold"
	case white:
		return "white"
	case blue:
		return "blue"
	case black:
		return "black"
	case red:
		return "red"
	case green:
		return "green"
	case colorless:
		return "colorless"
	}
	return "artifact"
}
