package card

import "fmt"

// Rarity of a card. Always present on a loaded card.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
)

// ParseRarity validates a rarity string from a source record.
func ParseRarity(s string) (Rarity, error) {
	switch Rarity(s) {
	case RarityCommon, RarityUncommon, RarityRare, RarityMythic:
		return Rarity(s), nil
	}
	return "", fmt.Errorf("unknown rarity: %q", s)
}

// Kind is the type discriminator selecting a card variant.
type Kind string

const (
	KindNormal       Kind = "normal"
	KindPlaneswalker Kind = "planeswalker"
	KindSaga         Kind = "saga"
	KindClass        Kind = "class"
	KindAdventure    Kind = "adventure"
	KindSplit        Kind = "split"
	KindFlip         Kind = "flip"
	KindTransform    Kind = "transform"
	KindModalDFC     Kind = "modal_dfc"
	KindBattle       Kind = "battle"
	KindMeld         Kind = "meld"
	KindLeveler      Kind = "leveler"
	KindPrototype    Kind = "prototype"
)

// CardBase holds the fields shared by every card variant. ManaCost is nil
// for cards with no cost (lands); a non-nil cost with zero symbols is a
// distinct state and must stay that way. Empty strings stand for absent
// flavor, power and toughness.
type CardBase struct {
	Name       string
	ManaCost   *CastingCost
	TypeLine   string
	RulesText  *RulesText
	FlavorText string
	Power      string
	Toughness  string
	Rarity     Rarity
}

// Face is one side of a multi-faced layout. All fields are optional;
// ColorIndicator covers faces that have colors but no mana cost.
type Face struct {
	Name           string
	ManaCost       *CastingCost
	TypeLine       string
	RulesText      *RulesText
	FlavorText     string
	Power          string
	Toughness      string
	ColorIndicator []string
}

// LoyaltyAbility is one activated loyalty ability on a planeswalker.
type LoyaltyAbility struct {
	Cost LoyaltyCost
	Text RulesText
}

// Chapter is one saga chapter ability; Numbers lists the chapter numbers it
// triggers on (e.g. [1] or [1, 2]).
type Chapter struct {
	Numbers []int
	Text    RulesText
}

// ClassLevel is one level of a class enchantment. Cost is nil on level 1.
type ClassLevel struct {
	Level int
	Cost  *CastingCost
	Text  RulesText
}

// AdventureSpell is the adventure half of an adventure card.
type AdventureSpell struct {
	Name      string
	ManaCost  CastingCost
	TypeLine  string
	RulesText RulesText
}

// LevelRange is one band of a leveler creature. Max is nil for an open-ended
// band ("8+").
type LevelRange struct {
	Min       int
	Max       *int
	Power     string
	Toughness string
	Text      *RulesText
}

// Card is the closed union of card shapes. Every variant exposes the shared
// base through Base; consumers dispatch on the concrete type.
type Card interface {
	Base() *CardBase
	Kind() Kind
	card()
}

type Normal struct {
	CardBase
}

type Planeswalker struct {
	CardBase
	Loyalty   LoyaltyValue
	Abilities []LoyaltyAbility
}

type Saga struct {
	CardBase
	Chapters []Chapter
}

type Class struct {
	CardBase
	Levels []ClassLevel
}

type Adventure struct {
	CardBase
	Adventure AdventureSpell
}

type Split struct {
	CardBase
	Faces     []Face
	Fuse      bool
	Aftermath bool
}

type Flip struct {
	CardBase
	Faces []Face
}

type Transform struct {
	CardBase
	Faces []Face
}

type ModalDFC struct {
	CardBase
	Faces []Face
}

// Battle models its back side as a face list; see the loader for the
// accepted record shape.
type Battle struct {
	CardBase
	Defense int
	Faces   []Face
}

type Meld struct {
	CardBase
	Faces []Face
}

type Leveler struct {
	CardBase
	Ranges []LevelRange
}

type Prototype struct {
	CardBase
	Prototype Face
}

func (c *Normal) Base() *CardBase       { return &c.CardBase }
func (c *Planeswalker) Base() *CardBase { return &c.CardBase }
func (c *Saga) Base() *CardBase         { return &c.CardBase }
func (c *Class) Base() *CardBase        { return &c.CardBase }
func (c *Adventure) Base() *CardBase    { return &c.CardBase }
func (c *Split) Base() *CardBase        { return &c.CardBase }
func (c *Flip) Base() *CardBase         { return &c.CardBase }
func (c *Transform) Base() *CardBase    { return &c.CardBase }
func (c *ModalDFC) Base() *CardBase     { return &c.CardBase }
func (c *Battle) Base() *CardBase       { return &c.CardBase }
func (c *Meld) Base() *CardBase         { return &c.CardBase }
func (c *Leveler) Base() *CardBase      { return &c.CardBase }
func (c *Prototype) Base() *CardBase    { return &c.CardBase }

func (c *Normal) Kind() Kind       { return KindNormal }
func (c *Planeswalker) Kind() Kind { return KindPlaneswalker }
func (c *Saga) Kind() Kind         { return KindSaga }
func (c *Class) Kind() Kind        { return KindClass }
func (c *Adventure) Kind() Kind    { return KindAdventure }
func (c *Split) Kind() Kind        { return KindSplit }
func (c *Flip) Kind() Kind         { return KindFlip }
func (c *Transform) Kind() Kind    { return KindTransform }
func (c *ModalDFC) Kind() Kind     { return KindModalDFC }
func (c *Battle) Kind() Kind       { return KindBattle }
func (c *Meld) Kind() Kind         { return KindMeld }
func (c *Leveler) Kind() Kind      { return KindLeveler }
func (c *Prototype) Kind() Kind    { return KindPrototype }

func (c *Normal) card()       {}
func (c *Planeswalker) card() {}
func (c *Saga) card()         {}
func (c *Class) card()        {}
func (c *Adventure) card()    {}
func (c *Split) card()        {}
func (c *Flip) card()         {}
func (c *Transform) card()    {}
func (c *ModalDFC) card()     {}
func (c *Battle) card()       {}
func (c *Meld) card()         {}
func (c *Leveler) card()      {}
func (c *Prototype) card()    {}

// ManaCost returns the base cost or the empty cost when absent.
func ManaCost(c Card) CastingCost {
	if cost := c.Base().ManaCost; cost != nil {
		return *cost
	}
	return CastingCost{}
}
