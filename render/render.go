package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/SvenDH/go-card-render/card"
)

// UnsupportedLayoutError reports a card variant that has no HTML layout yet.
type UnsupportedLayoutError struct {
	Kind card.Kind
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("no layout for %s cards", e.Kind)
}

// Renderer turns cards into standalone HTML documents.
type Renderer struct {
	tmpl *template.Template
}

func New() *Renderer {
	return &Renderer{tmpl: cardTemplates}
}

type loyaltyAbilityView struct {
	Cost string
	Text template.HTML
}

type classLevelView struct {
	Level int
	Cost  template.HTML
	Text  template.HTML
}

// cardView is the flattened data every layout template reads from.
type cardView struct {
	Name         string
	FrameClass   string
	TextBoxClass string
	PTBoxClass   string
	RarityClass  string
	ManaCost     template.HTML
	TypeLine     string
	RulesText    template.HTML
	FlavorText   string
	Power        string
	Toughness    string

	Loyalty   string
	Abilities []loyaltyAbilityView
	Levels    []classLevelView
}

func baseView(base *card.CardBase) cardView {
	frame := FrameColor(base.ManaCost)
	v := cardView{
		Name:         base.Name,
		FrameClass:   "frame-" + frame,
		TextBoxClass: "text-box-" + frame,
		PTBoxClass:   "pt-box-" + frame,
		RarityClass:  "rarity-" + string(base.Rarity),
		TypeLine:     base.TypeLine,
		FlavorText:   base.FlavorText,
		Power:        base.Power,
		Toughness:    base.Toughness,
	}
	if base.ManaCost != nil {
		v.ManaCost = ManaCostHTML(*base.ManaCost)
	}
	if base.RulesText != nil {
		v.RulesText = RulesTextHTML(*base.RulesText)
	}
	return v
}

// Render produces the HTML document for a card. Variants without a layout
// fail with UnsupportedLayoutError.
func (r *Renderer) Render(c card.Card) (string, error) {
	var (
		layout string
		view   cardView
	)
	switch c := c.(type) {
	case *card.Normal:
		layout = "normal"
		view = baseView(&c.CardBase)
	case *card.Planeswalker:
		layout = "planeswalker"
		view = baseView(&c.CardBase)
		view.Loyalty = c.Loyalty.String()
		for _, a := range c.Abilities {
			view.Abilities = append(view.Abilities, loyaltyAbilityView{
				Cost: a.Cost.String(),
				Text: RulesTextHTML(a.Text),
			})
		}
	case *card.Class:
		layout = "class"
		view = baseView(&c.CardBase)
		for _, lv := range c.Levels {
			lvv := classLevelView{Level: lv.Level, Text: RulesTextHTML(lv.Text)}
			if lv.Cost != nil {
				lvv.Cost = ManaCostHTML(*lv.Cost)
			}
			view.Levels = append(view.Levels, lvv)
		}
	default:
		return "", &UnsupportedLayoutError{Kind: c.Kind()}
	}

	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, layout, view); err != nil {
		return "", fmt.Errorf("rendering %s: %w", c.Base().Name, err)
	}
	return b.String(), nil
}

// RenderToFile writes the card's document under dir, named after the
// sanitized card name. It returns the written path.
func (r *Renderer) RenderToFile(c card.Card, dir string) (string, error) {
	doc, err := r.Render(c)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, SanitizeName(c.Base().Name)+".html")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var cardTemplates = template.Must(template.New("card").Parse(`
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>{{template "css"}}</style>
</head>
<body>
<div class="card {{.FrameClass}}">
<div class="card-inner">
<div class="card-header">
<div class="card-name">{{.Name}}</div>
{{.ManaCost}}
</div>
<div class="art-box">[Art]</div>
<div class="type-line"><div class="type-text">{{.TypeLine}}</div></div>
{{end}}

{{define "foot"}}<div class="rarity-indicator {{.RarityClass}}"></div>
</div>
</div>
</body>
</html>
{{end}}

{{define "normal"}}{{template "head" .}}
<div class="text-box {{.TextBoxClass}}">
{{if .RulesText}}<div class="rules-text">{{.RulesText}}</div>{{end}}
{{if .FlavorText}}<div class="flavor-text">{{.FlavorText}}</div>{{end}}
</div>
{{if and .Power .Toughness}}<div class="pt-box {{.PTBoxClass}}"><div class="pt-text">{{.Power}}/{{.Toughness}}</div></div>{{end}}
{{template "foot" .}}{{end}}

{{define "planeswalker"}}{{template "head" .}}
<div class="text-box {{.TextBoxClass}}">
{{range .Abilities}}<div class="loyalty-ability">
<span class="loyalty-cost">{{.Cost}}</span>
<div class="loyalty-text">{{.Text}}</div>
</div>
{{end}}</div>
<div class="loyalty-box"><div class="loyalty-value">{{.Loyalty}}</div></div>
{{template "foot" .}}{{end}}

{{define "class"}}{{template "head" .}}
<div class="class-text-box">
{{range .Levels}}<div class="class-level">
<div class="class-level-header">
<span class="class-level-indicator">Level {{.Level}}</span>
{{if .Cost}}<div class="class-level-cost">{{.Cost}}</div>{{end}}
</div>
<div class="class-level-text">{{.Text}}</div>
</div>
{{end}}</div>
{{template "foot" .}}{{end}}

{{define "css"}}` + cardCSS + `{{end}}
`))

// cardCSS lays out a 744x1040 card. Frames are flat gradients keyed by the
// derived frame color; the class names line up with FrameColor output.
const cardCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: serif; background: transparent; }
.card {
  width: 744px; height: 1040px; border-radius: 24px; overflow: hidden;
  position: relative; background-size: cover; background-position: center;
}
.card-inner { width: 100%; height: 100%; position: relative; }
.frame-white { background: linear-gradient(135deg, #f5f2e3, #d8d2b4); }
.frame-blue { background: linear-gradient(135deg, #b3cde8, #6a93bd); }
.frame-black { background: linear-gradient(135deg, #4a4441, #211d1a); }
.frame-red { background: linear-gradient(135deg, #d88f7b, #ab3a22); }
.frame-green { background: linear-gradient(135deg, #a4c2a0, #547c52); }
.frame-gold { background: linear-gradient(135deg, #e2cd8c, #b69b4d); }
.frame-artifact { background: linear-gradient(135deg, #c5cdd3, #8e9aa3); }
.frame-colorless { background: linear-gradient(135deg, #d6d2cc, #a8a49c); }
.frame-land { background: linear-gradient(135deg, #d0bca4, #987f5f); }
.card-header {
  position: absolute; top: 28px; left: 28px; width: 688px; height: 40px;
  display: flex; justify-content: space-between; align-items: center;
  padding: 12px 16px; z-index: 10;
}
.card-name { font-size: 26px; font-weight: bold; color: #000; }
.mana-cost-container { display: flex; gap: 4px; align-items: center; }
.mana-symbol { width: 24px; height: 24px; display: inline-block; vertical-align: middle; }
.mana-generic {
  display: inline-flex; align-items: center; justify-content: center;
  width: 24px; height: 24px; border-radius: 50%; background: #ccc;
  color: #000; font-weight: bold; font-size: 14px;
}
.art-box {
  position: absolute; top: 80px; left: 36px; width: 672px; height: 490px;
  background: linear-gradient(135deg, #2a2a2a 0%, #1a1a1a 100%);
  display: flex; align-items: center; justify-content: center;
  color: #666; font-size: 18px; border: 1px solid #000; z-index: 5;
}
.type-line {
  position: absolute; top: 600px; left: 28px; width: 688px; height: 38px;
  display: flex; align-items: center; padding-left: 8px; z-index: 10;
}
.type-text { font-size: 24px; font-weight: bold; color: #000; }
.text-box {
  position: absolute; top: 640px; left: 36px; width: 672px; height: 330px;
  padding: 24px 32px; z-index: 5; display: flex; flex-direction: column;
  justify-content: flex-start; gap: 12px; background: rgba(255, 255, 255, 0.85);
}
.text-box-white { background: rgba(248, 246, 232, 0.92); }
.text-box-blue { background: rgba(224, 236, 246, 0.92); }
.text-box-black { background: rgba(212, 206, 200, 0.92); }
.text-box-red { background: rgba(246, 226, 218, 0.92); }
.text-box-green { background: rgba(226, 238, 222, 0.92); }
.text-box-gold { background: rgba(246, 238, 212, 0.92); }
.text-box-artifact { background: rgba(232, 236, 238, 0.92); }
.text-box-colorless { background: rgba(236, 234, 230, 0.92); }
.text-box-land { background: rgba(240, 230, 214, 0.92); }
.rules-text { font-size: 24px; line-height: 1.3; color: #000; margin-bottom: 12px; }
.rules-text-inner { display: flex; flex-wrap: wrap; align-items: center; gap: 2px; }
.rules-text .mana-symbol { width: 16px; height: 16px; }
.flavor-text {
  font-size: 22px; font-style: italic; color: #000; line-height: 1.2;
  padding-top: 8px; margin-top: 8px;
}
.pt-box {
  position: absolute; bottom: 26px; right: 26px; width: 90px; height: 64px;
  display: flex; align-items: center; justify-content: center;
  background: rgba(0, 0, 0, 0.15); border: 2px solid #000;
  border-radius: 8px; z-index: 20;
}
.pt-text { font-size: 36px; font-weight: bold; color: #000; }
.rarity-indicator {
  position: absolute; bottom: 32px; left: 50%; transform: translateX(-50%);
  width: 20px; height: 20px; border-radius: 50%;
}
.rarity-common { background: #1a1a1a; }
.rarity-uncommon { background: #707070; }
.rarity-rare { background: #a58e4a; }
.rarity-mythic { background: #bf4427; }
.loyalty-ability {
  display: flex; align-items: flex-start; gap: 12px;
  padding: 8px 0; border-bottom: 1px solid rgba(0, 0, 0, 0.2);
}
.loyalty-ability:last-child { border-bottom: none; }
.loyalty-cost {
  min-width: 56px; text-align: center; font-weight: bold; font-size: 22px;
  color: #fff; background: #1a1a1a; border-radius: 10px; padding: 4px 8px;
}
.loyalty-text { font-size: 20px; line-height: 1.3; color: #000; }
.loyalty-box {
  position: absolute; bottom: 26px; right: 26px; width: 90px; height: 64px;
  display: flex; align-items: center; justify-content: center;
  background: #1a1a1a; border-radius: 12px; z-index: 20;
}
.loyalty-value { font-size: 34px; font-weight: bold; color: #fff; }
.class-text-box {
  position: absolute; top: 640px; left: 36px; width: 672px; height: 330px;
  display: flex; flex-direction: column; background: rgba(255, 255, 255, 0.9);
  border-radius: 8px; overflow: hidden; z-index: 5;
}
.class-level { padding: 12px 16px; border-bottom: 2px solid rgba(0, 0, 0, 0.2); }
.class-level:last-child { border-bottom: none; }
.class-level-header {
  display: flex; justify-content: space-between; align-items: center;
  margin-bottom: 8px;
}
.class-level-indicator {
  font-size: 14px; font-weight: bold; color: #333;
  background: rgba(0, 0, 0, 0.1); padding: 4px 10px; border-radius: 4px;
}
.class-level-cost { display: flex; align-items: center; gap: 4px; }
.class-level-cost .mana-symbol { width: 18px; height: 18px; }
.class-level-text { font-size: 14px; line-height: 1.4; color: #000; }
.class-level-text .mana-symbol { width: 14px; height: 14px; }
`
