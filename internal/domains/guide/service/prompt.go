package service

import (
	"fmt"
	"strings"
	"time"

	"gameguide-backend/internal/domains/guide/model"
)

// PromptBuilder renders the system and user prompts sent to the generator.
type PromptBuilder struct {
	Language string
}

func NewPromptBuilder(language string) *PromptBuilder {
	if language == "" {
		language = "Brazilian Portuguese"
	}
	return &PromptBuilder{Language: language}
}

// System returns the fixed system prompt.
func (b *PromptBuilder) System() string {
	return fmt.Sprintf(`You are an expert in mobile and PC games writing for a %[1]s-speaking audience.

GENERAL RULES:
- Language: write every text field in %[1]s, casual but professional tone
- Content: always current and factual
- Format: return ONLY a valid JSON object, no markdown, no code fences
- Time: prefer "currently", "right now", avoid specific dates
- SEO: include keywords naturally
- Quality: accurate, verifiable information

RESTRICTIONS:
- Do NOT invent fake codes
- Do NOT use offensive language
- Do NOT make impossible promises
- Do NOT copy other sites verbatim`, b.Language)
}

// TitleYear is the year titles should target: from October on, next year.
func TitleYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}

// User returns the temporal block followed by the category template.
func (b *PromptBuilder) User(category model.Category, topic, game string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(temporalBlock(now))
	sb.WriteString("\n")

	switch category {
	case model.CategoryCodes:
		sb.WriteString(codesTemplate(game))
	case model.CategoryTierList:
		sb.WriteString(tierListTemplate(topic, game))
	case model.CategoryBuild:
		sb.WriteString(buildTemplate(topic, game))
	default:
		sb.WriteString(tutorialTemplate(topic, game))
	}

	return sb.String()
}

func temporalBlock(now time.Time) string {
	year := now.Year()
	target := TitleYear(now)

	return fmt.Sprintf(`MANDATORY TIME CONTEXT:
- Today is: %s
- Year for titles: use "%d" or terms like "current", "today", "updated".
- FORBIDDEN: years before %d (e.g. %d) in titles, unless the article is historical.
- IF THE QUERY ASKS FOR AN OLD YEAR, REPLACE IT WITH THE CURRENT/NEXT YEAR IN TITLE AND CONTENT.
- NOTE: prefer "active now" or "%d" over leaving the title undated.
`, now.Format("2006-01-02"), target, year, year-1, target)
}

func codesTemplate(game string) string {
	return fmt.Sprintf(`Write a complete guide of ACTIVE CODES for the game: %[1]s

REQUIREMENTS:
- Length: 400-600 words
- List 8-12 real, verified codes
- Each code has: code, reward, active status
- Include how to redeem
- Important warnings (case-sensitive, region, etc.)

HTML STRUCTURE (content field):
1. Introduction (2-3 paragraphs)
2. Code list (<ul> with <strong> for the code)
3. How to redeem (numbered steps)
4. Extra tips

EXPECTED JSON:
{
  "title": "%[1]s Codes Active Now - Free Rewards",
  "subtitle": "Updated list of working codes plus a full tutorial",
  "metaDescription": "Active %[1]s codes to redeem rewards.",
  "game": "%[1]s",
  "category": "codes",
  "difficulty": "easy",
  "readTime": 3,
  "tags": ["codes", "rewards", "%[2]s"],
  "imageQuery": "%[1]s game codes rewards",
  "codes": [
    {"code": "EXAMPLE123", "reward": "100 Diamonds", "active": true, "notes": "Case-sensitive"}
  ],
  "tips": ["Extra tip"],
  "content": "<p>Introduction...</p><h2>Active Codes</h2><ul><li><strong>CODE1</strong> - Reward</li></ul>..."
}

IMPORTANT: only list codes you believe are real. If none can be verified, say in the content that they are historical or examples.
`, game, strings.ToLower(game))
}

func tutorialTemplate(topic, game string) string {
	return fmt.Sprintf(`Write a complete TUTORIAL about: %[1]s in the game %[2]s

REQUIREMENTS:
- Length: 500-700 words
- Detailed numbered step by step
- Pro tips
- Common mistakes and how to avoid them

HTML STRUCTURE (content field):
1. Introduction: what it is and why it matters
2. Prerequisites (if any)
3. Step by step (<ol>)
4. Advanced tips
5. Common mistakes
6. Conclusion

EXPECTED JSON:
{
  "title": "How to %[1]s in %[2]s: Complete Step by Step Guide",
  "subtitle": "Learn %[1]s quickly",
  "metaDescription": "Complete guide on %[1]s in %[2]s.",
  "game": "%[2]s",
  "category": "tutorial",
  "difficulty": "medium",
  "readTime": 5,
  "tags": ["tutorial", "guide", "%[3]s", "%[4]s"],
  "imageQuery": "%[2]s %[1]s tutorial gameplay",
  "steps": ["Step 1: detailed description", "Step 2: detailed description"],
  "tips": ["Pro tip 1"],
  "commonMistakes": ["Common mistake 1 and how to avoid it"],
  "content": "<p>Introduction...</p><h2>Step by Step</h2><ol><li>...</li></ol>..."
}
`, topic, game, strings.ToLower(topic), strings.ToLower(game))
}

func tierListTemplate(topic, game string) string {
	return fmt.Sprintf(`Write an updated TIER LIST of %[1]s for the game: %[2]s

REQUIREMENTS:
- Length: 450-650 words
- Tiers: S, A, B, C, D
- At least 15 ranked items
- Clear justification per tier
- Based on the current meta

HTML STRUCTURE (content field):
1. Introduction and criteria
2. Tier S (3-5 items)
3. Tier A (4-6 items)
4. Tier B (4-5 items)
5. Tiers C/D (3-4 items)
6. Final notes

EXPECTED JSON:
{
  "title": "%[1]s Tier List %[2]s - Full Updated Ranking",
  "subtitle": "The best %[1]s in the current meta",
  "metaDescription": "Complete %[1]s tier list for %[2]s.",
  "game": "%[2]s",
  "category": "tierlist",
  "difficulty": "medium",
  "readTime": 4,
  "tags": ["tier list", "ranking", "%[3]s", "%[4]s"],
  "imageQuery": "%[2]s %[1]s tier list ranking",
  "tierList": {
    "S": [{"name": "Item 1", "reason": "Detailed justification", "icon": "⭐"}],
    "A": [], "B": [], "C": [], "D": []
  },
  "tips": ["Tip"],
  "content": "<p>Introduction...</p><h2>Tier S</h2><ul>...</ul>..."
}
`, topic, game, strings.ToLower(topic), strings.ToLower(game))
}

func buildTemplate(topic, game string) string {
	return fmt.Sprintf(`Write a complete BUILD/STRATEGY for: %[1]s in the game %[2]s

REQUIREMENTS:
- Length: 500-700 words
- Specific build (items, skills, order)
- Combos and synergies
- Matchups (counters)
- Play style

HTML STRUCTURE (content field):
1. Build overview
2. Items in priority order
3. Skills/talents
4. Main combos
5. Matchups (strong against / weak against)
6. Advanced tips

EXPECTED JSON:
{
  "title": "%[1]s Build %[2]s: Complete Guide + Combos",
  "subtitle": "The best %[1]s build with tested strategies",
  "metaDescription": "Complete %[1]s build for %[2]s.",
  "game": "%[2]s",
  "category": "build",
  "difficulty": "hard",
  "readTime": 5,
  "tags": ["build", "strategy", "%[3]s", "%[4]s"],
  "imageQuery": "%[2]s %[1]s build strategy",
  "build": {
    "items": [{"name": "Item 1", "order": 1, "reason": "Justification"}],
    "skills": ["Skill order"],
    "combos": ["Combo 1"]
  },
  "counters": {"strongAgainst": ["Character 1"], "weakAgainst": ["Character 2"]},
  "tips": ["Tip"],
  "content": "<p>Introduction...</p><h2>Core Items</h2><ol>...</ol>..."
}
`, topic, game, strings.ToLower(topic), strings.ToLower(game))
}
