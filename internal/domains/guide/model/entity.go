package model

import (
	"strings"
	"time"

	"gameguide-backend/internal/shared/utils"
)

// Category is the content type of a guide.
type Category string

const (
	CategoryCodes    Category = "codes"
	CategoryTutorial Category = "tutorial"
	CategoryTierList Category = "tierlist"
	CategoryBuild    Category = "build"
)

// Categories lists every category in classifier priority order.
var Categories = []Category{CategoryCodes, CategoryTierList, CategoryBuild, CategoryTutorial}

func (c Category) Valid() bool {
	switch c {
	case CategoryCodes, CategoryTutorial, CategoryTierList, CategoryBuild:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyAliases = map[string]Difficulty{
	"easy":    DifficultyEasy,
	"facil":   DifficultyEasy,
	"fácil":   DifficultyEasy,
	"medium":  DifficultyMedium,
	"medio":   DifficultyMedium,
	"médio":   DifficultyMedium,
	"hard":    DifficultyHard,
	"dificil": DifficultyHard,
	"difícil": DifficultyHard,
}

// ParseDifficulty accepts the canonical values and their Portuguese spellings.
func ParseDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

type Code struct {
	Code   string `json:"code"`
	Reward string `json:"reward"`
	Active bool   `json:"active"`
	Notes  string `json:"notes,omitempty"`
}

type TierItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Icon   string `json:"icon,omitempty"`
}

// TierList always carries the five buckets, even when empty.
type TierList struct {
	S []TierItem `json:"S"`
	A []TierItem `json:"A"`
	B []TierItem `json:"B"`
	C []TierItem `json:"C"`
	D []TierItem `json:"D"`
}

type BuildItem struct {
	Name   string `json:"name"`
	Order  int    `json:"order"`
	Reason string `json:"reason"`
	Icon   string `json:"icon,omitempty"`
}

type Build struct {
	Items  []BuildItem `json:"items"`
	Skills []string    `json:"skills"`
	Combos []string    `json:"combos"`
}

type Counters struct {
	StrongAgainst []string `json:"strongAgainst"`
	WeakAgainst   []string `json:"weakAgainst"`
}

// Guide is the canonical content record. The same document is stored under
// guide:{type}:{gameSlug}:{id} and slug:{slug}.
type Guide struct {
	// Identity
	ID   string   `json:"id"`
	Slug string   `json:"slug"`
	Type Category `json:"type"`
	Game string   `json:"game"`

	// Presentation
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	MetaDescription string `json:"metaDescription"`
	ImageURL        string `json:"imageUrl"`
	ImageQuery      string `json:"imageQuery"`

	// Body
	Content    string     `json:"content"`
	ReadTime   int        `json:"readTime"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`

	// Category payloads
	Codes          []Code    `json:"codes,omitempty"`
	Steps          []string  `json:"steps,omitempty"`
	Tips           []string  `json:"tips,omitempty"`
	CommonMistakes []string  `json:"commonMistakes,omitempty"`
	TierList       *TierList `json:"tierList,omitempty"`
	Build          *Build    `json:"build,omitempty"`
	Counters       *Counters `json:"counters,omitempty"`

	// Metadata
	Status    string    `json:"status,omitempty"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageKey is the structured key for this guide.
func (g *Guide) StorageKey() string {
	return utils.BuildStorageKey(string(g.Type), g.Game, g.ID)
}

// Summary is the lightweight entry kept in the recency index.
type Summary struct {
	ID        string    `json:"id,omitempty"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Game      string    `json:"game"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	Views     int       `json:"views"`
	Status    string    `json:"status,omitempty"`
}

func (g *Guide) Summary() Summary {
	return Summary{
		ID:        g.ID,
		Slug:      g.Slug,
		Title:     g.Title,
		Game:      g.Game,
		Category:  g.Type,
		CreatedAt: g.CreatedAt,
		Views:     g.Views,
		Status:    g.Status,
	}
}

// Monetization carries affiliate and ad identifiers attached to a guide response.
type Monetization struct {
	AmazonTag      string `json:"amazonTag,omitempty"`
	ShopeeID       string `json:"shopeeId,omitempty"`
	MagaluID       string `json:"magaluId,omitempty"`
	AliexpressID   string `json:"aliexpressId,omitempty"`
	MercadoLivreID string `json:"mercadolivreId,omitempty"`
	AdSensePubID   string `json:"adSensePubId,omitempty"`
	AdSenseSlotID  string `json:"adSenseSlotId,omitempty"`
}
