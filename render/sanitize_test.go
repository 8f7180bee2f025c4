package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Llanowar Elves", "llanowar_elves"},
		{"Fire // Ice", "fire_ice"},
		{"Jace, the Mind Sculptor", "jace_the_mind_sculptor"},
		{"Emeria's Call", "emerias_call"},
		{"Delver of Secrets // Insectile Aberration", "delver_of_secrets_insectile_aberration"},
		{"Tok-Tok, Volcano Born", "tok_tok_volcano_born"},
		{"Card  With   Spaces", "card_with_spaces"},
		{"Ætherling", "therling"},
		{"Phyrexian Fleshgorger", "phyrexian_fleshgorger"},
		{"", ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, SanitizeName(test.name), "input %q", test.name)
	}
}
