package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents and punctuation", "Free Fire: Códigos!", "free-fire-codigos"},
		{"already plain", "free fire codigos", "free-fire-codigos"},
		{"surrounding and repeated separators", "  --Tier   List -- Mobile Legends-- ", "tier-list-mobile-legends"},
		{"portuguese", "Como evoluir o Pokémon Ação", "como-evoluir-o-pokemon-acao"},
		{"underscore is a word char", "build_ranked top 10", "build_ranked-top-10"},
		{"no-break space separates words", "free\u00a0fire", "free-fire"},
		{"vertical tab separates words", "free\vfire", "free-fire"},
		{"ideographic space", "tier\u3000list", "tier-list"},
		{"only symbols", "!!! ???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Free Fire: Códigos!",
		"Genshin Impact — Melhores Personagens (2026)",
		"ÀÉÎÕÜ çñ",
		"a--b  c",
		"   ",
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestSlugify_DiacriticInsensitive(t *testing.T) {
	assert.Equal(t, Slugify("free fire codigos"), Slugify("Free Fire: Códigos!"))
}

func TestGenerateID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]+-[0-9a-z]{7}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := GenerateID()
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}

	// Probabilistic, but 7 random base36 chars make a collision in 200 draws
	// vanishingly unlikely.
	assert.Len(t, seen, 200)
}

func TestBuildStorageKey(t *testing.T) {
	key := BuildStorageKey("codes", "Free Fire", "abc-1234567")
	assert.Equal(t, "guide:codes:free-fire:abc-1234567", key)

	guideType, subject, id, ok := ParseStorageKey(key)
	assert.True(t, ok)
	assert.Equal(t, "codes", guideType)
	assert.Equal(t, "free-fire", subject)
	assert.Equal(t, "abc-1234567", id)

	_, _, _, ok = ParseStorageKey("slug:free-fire")
	assert.False(t, ok)
}
