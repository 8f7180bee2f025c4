package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnknownVariantError reports a type discriminator that matches no card
// variant.
type UnknownVariantError struct {
	Type string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown card variant: %q", e.Type)
}

// FieldError wraps a parse failure of a single field, naming the card and
// field so batch loads can point at the defective record.
type FieldError struct {
	Card  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("card %q: field %s: %v", e.Card, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Raw record shapes as they appear in the YAML source. Base keys sit next to
// the variant keys (flattened), so one record struct carries everything and
// the discriminator picks which variant keys are read.
type rawFace struct {
	Name           string   `yaml:"name"`
	ManaCost       *string  `yaml:"mana_cost"`
	TypeLine       string   `yaml:"type_line"`
	RulesText      *string  `yaml:"rules_text"`
	FlavorText     string   `yaml:"flavor_text"`
	Power          string   `yaml:"power"`
	Toughness      string   `yaml:"toughness"`
	ColorIndicator []string `yaml:"color_indicator"`
}

type rawLoyaltyAbility struct {
	Cost string `yaml:"cost"`
	Text string `yaml:"text"`
}

type rawChapter struct {
	Chapters []int  `yaml:"chapters"`
	Text     string `yaml:"text"`
}

type rawClassLevel struct {
	Level int     `yaml:"level"`
	Cost  *string `yaml:"cost"`
	Text  string  `yaml:"text"`
}

type rawAdventure struct {
	Name      string `yaml:"name"`
	ManaCost  string `yaml:"mana_cost"`
	TypeLine  string `yaml:"type_line"`
	RulesText string `yaml:"rules_text"`
}

type rawLevelRange struct {
	Range     []*int  `yaml:"range"`
	Power     string  `yaml:"power"`
	Toughness string  `yaml:"toughness"`
	Text      *string `yaml:"text"`
}

type rawCard struct {
	Type       string  `yaml:"type"`
	Name       string  `yaml:"name"`
	ManaCost   *string `yaml:"mana_cost"`
	TypeLine   string  `yaml:"type_line"`
	RulesText  *string `yaml:"rules_text"`
	FlavorText string  `yaml:"flavor_text"`
	Power      string  `yaml:"power"`
	Toughness  string  `yaml:"toughness"`
	Rarity     string  `yaml:"rarity"`

	Loyalty          *string             `yaml:"loyalty"`
	LoyaltyAbilities []rawLoyaltyAbility `yaml:"loyalty_abilities"`
	Chapters         []rawChapter        `yaml:"chapters"`
	Levels           []rawClassLevel     `yaml:"levels"`
	Adventure        *rawAdventure       `yaml:"adventure"`
	Faces            []rawFace           `yaml:"faces"`
	Fuse             *bool               `yaml:"fuse"`
	Aftermath        *bool               `yaml:"aftermath"`
	Defense          *int                `yaml:"defense"`
	LevelerRanges    []rawLevelRange     `yaml:"leveler_ranges"`
	Prototype        *rawFace            `yaml:"prototype"`
}

// loader carries the card name so every field conversion can report it.
type loader struct {
	name string
}

func (l *loader) fail(field string, err error) error {
	return &FieldError{Card: l.name, Field: field, Err: err}
}

func (l *loader) castingCost(field string, s *string) (*CastingCost, error) {
	if s == nil {
		return nil, nil
	}
	cost, err := ParseCastingCost(*s)
	if err != nil {
		return nil, l.fail(field, err)
	}
	return &cost, nil
}

func (l *loader) rulesText(field string, s *string) (*RulesText, error) {
	if s == nil {
		return nil, nil
	}
	text, err := ParseRulesText(*s)
	if err != nil {
		return nil, l.fail(field, err)
	}
	return &text, nil
}

func (l *loader) base(raw *rawCard) (CardBase, error) {
	base := CardBase{
		Name:       raw.Name,
		TypeLine:   raw.TypeLine,
		FlavorText: raw.FlavorText,
		Power:      raw.Power,
		Toughness:  raw.Toughness,
	}
	if raw.Name == "" {
		return base, l.fail("name", fmt.Errorf("missing"))
	}
	if raw.TypeLine == "" {
		return base, l.fail("type_line", fmt.Errorf("missing"))
	}
	rarity, err := ParseRarity(raw.Rarity)
	if err != nil {
		return base, l.fail("rarity", err)
	}
	base.Rarity = rarity
	if base.ManaCost, err = l.castingCost("mana_cost", raw.ManaCost); err != nil {
		return base, err
	}
	if base.RulesText, err = l.rulesText("rules_text", raw.RulesText); err != nil {
		return base, err
	}
	return base, nil
}

func (l *loader) face(field string, raw *rawFace) (Face, error) {
	face := Face{
		Name:           raw.Name,
		TypeLine:       raw.TypeLine,
		FlavorText:     raw.FlavorText,
		Power:          raw.Power,
		Toughness:      raw.Toughness,
		ColorIndicator: raw.ColorIndicator,
	}
	var err error
	if face.ManaCost, err = l.castingCost(field+".mana_cost", raw.ManaCost); err != nil {
		return face, err
	}
	if face.RulesText, err = l.rulesText(field+".rules_text", raw.RulesText); err != nil {
		return face, err
	}
	return face, nil
}

func (l *loader) faces(raws []rawFace) ([]Face, error) {
	faces := make([]Face, 0, len(raws))
	for i := range raws {
		face, err := l.face(fmt.Sprintf("faces[%d]", i), &raws[i])
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return faces, nil
}

// LoadCard decodes one YAML card record, dispatching on the type
// discriminator and running every string-typed cost/loyalty/rules field
// through its parser. A failed sub-parse surfaces as a FieldError; it never
// defaults silently.
func LoadCard(data []byte) (Card, error) {
	var raw rawCard
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding card record: %w", err)
	}
	l := &loader{name: raw.Name}
	base, err := l.base(&raw)
	if err != nil {
		return nil, err
	}

	switch Kind(raw.Type) {
	case KindNormal:
		return &Normal{CardBase: base}, nil

	case KindPlaneswalker:
		if raw.Loyalty == nil {
			return nil, l.fail("loyalty", fmt.Errorf("missing"))
		}
		loyalty, err := ParseLoyaltyValue(*raw.Loyalty)
		if err != nil {
			return nil, l.fail("loyalty", err)
		}
		abilities := make([]LoyaltyAbility, 0, len(raw.LoyaltyAbilities))
		for i, a := range raw.LoyaltyAbilities {
			cost, err := ParseLoyaltyCost(a.Cost)
			if err != nil {
				return nil, l.fail(fmt.Sprintf("loyalty_abilities[%d].cost", i), err)
			}
			text, err := ParseRulesText(a.Text)
			if err != nil {
				return nil, l.fail(fmt.Sprintf("loyalty_abilities[%d].text", i), err)
			}
			abilities = append(abilities, LoyaltyAbility{Cost: cost, Text: text})
		}
		return &Planeswalker{CardBase: base, Loyalty: loyalty, Abilities: abilities}, nil

	case KindSaga:
		chapters := make([]Chapter, 0, len(raw.Chapters))
		for i, c := range raw.Chapters {
			text, err := ParseRulesText(c.Text)
			if err != nil {
				return nil, l.fail(fmt.Sprintf("chapters[%d].text", i), err)
			}
			chapters = append(chapters, Chapter{Numbers: c.Chapters, Text: text})
		}
		return &Saga{CardBase: base, Chapters: chapters}, nil

	case KindClass:
		levels := make([]ClassLevel, 0, len(raw.Levels))
		for i, lv := range raw.Levels {
			cost, err := l.castingCost(fmt.Sprintf("levels[%d].cost", i), lv.Cost)
			if err != nil {
				return nil, err
			}
			text, err := ParseRulesText(lv.Text)
			if err != nil {
				return nil, l.fail(fmt.Sprintf("levels[%d].text", i), err)
			}
			levels = append(levels, ClassLevel{Level: lv.Level, Cost: cost, Text: text})
		}
		return &Class{CardBase: base, Levels: levels}, nil

	case KindAdventure:
		if raw.Adventure == nil {
			return nil, l.fail("adventure", fmt.Errorf("missing"))
		}
		cost, err := ParseCastingCost(raw.Adventure.ManaCost)
		if err != nil {
			return nil, l.fail("adventure.mana_cost", err)
		}
		text, err := ParseRulesText(raw.Adventure.RulesText)
		if err != nil {
			return nil, l.fail("adventure.rules_text", err)
		}
		return &Adventure{CardBase: base, Adventure: AdventureSpell{
			Name:      raw.Adventure.Name,
			ManaCost:  cost,
			TypeLine:  raw.Adventure.TypeLine,
			RulesText: text,
		}}, nil

	case KindSplit:
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		split := &Split{CardBase: base, Faces: faces}
		if raw.Fuse != nil {
			split.Fuse = *raw.Fuse
		}
		if raw.Aftermath != nil {
			split.Aftermath = *raw.Aftermath
		}
		return split, nil

	case KindFlip:
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		return &Flip{CardBase: base, Faces: faces}, nil

	case KindTransform:
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		return &Transform{CardBase: base, Faces: faces}, nil

	case KindModalDFC:
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		return &ModalDFC{CardBase: base, Faces: faces}, nil

	case KindBattle:
		if raw.Defense == nil {
			return nil, l.fail("defense", fmt.Errorf("missing"))
		}
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		return &Battle{CardBase: base, Defense: *raw.Defense, Faces: faces}, nil

	case KindMeld:
		faces, err := l.faces(raw.Faces)
		if err != nil {
			return nil, err
		}
		return &Meld{CardBase: base, Faces: faces}, nil

	case KindLeveler:
		ranges := make([]LevelRange, 0, len(raw.LevelerRanges))
		for i, r := range raw.LevelerRanges {
			field := fmt.Sprintf("leveler_ranges[%d]", i)
			if len(r.Range) == 0 || r.Range[0] == nil {
				return nil, l.fail(field+".range", fmt.Errorf("missing lower bound"))
			}
			lr := LevelRange{Min: *r.Range[0], Power: r.Power, Toughness: r.Toughness}
			if len(r.Range) > 1 && r.Range[1] != nil {
				lr.Max = r.Range[1]
			}
			if lr.Text, err = l.rulesText(field+".text", r.Text); err != nil {
				return nil, err
			}
			ranges = append(ranges, lr)
		}
		return &Leveler{CardBase: base, Ranges: ranges}, nil

	case KindPrototype:
		if raw.Prototype == nil {
			return nil, l.fail("prototype", fmt.Errorf("missing"))
		}
		proto, err := l.face("prototype", raw.Prototype)
		if err != nil {
			return nil, err
		}
		return &Prototype{CardBase: base, Prototype: proto}, nil
	}
	return nil, &UnknownVariantError{Type: raw.Type}
}

// LoadCardFile reads and decodes a single card file.
func LoadCardFile(path string) (Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := LoadCard(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
