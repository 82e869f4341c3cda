package service

import (
	"regexp"
	"strings"
	"unicode"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/shared/utils"
)

// Category vocabulary, matched against the lowercased, accent-free query.
// "free" is not codes vocabulary: "Free Fire" is a game title.
var (
	codesPattern    = regexp.MustCompile(`codigos?|codes?|recompensa|rewards?|gratis|redeem|gift|premio`)
	tierListPattern = regexp.MustCompile(`tier\s*list|ranking|melhor|melhores|top\s*\d+|classificacao`)
	buildPattern    = regexp.MustCompile(`build|estrategia|combo|counter|setup|loadout|equipamento`)
	tutorialPattern = regexp.MustCompile(`como|guia|tutorial|passo|dica|dicas|aprender|fazer|how\s+to|guide`)
)

var subjectStopwords = toSet(
	"codigo", "codigos", "code", "codes",
	"como", "guia", "tutorial", "dica", "dicas",
	"melhor", "melhores", "ranking", "tier", "list", "tierlist", "top",
	"build", "estrategia", "combo", "counter", "setup",
	"de", "do", "da", "no", "na", "para", "em", "o", "a",
	"gratis", "ativos", "ativo",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Classify maps a free-text query to a category.
// Priority: codes > tierlist > build > tutorial, tutorial when nothing matches.
func Classify(query string) model.Category {
	q := utils.RemoveDiacritics(strings.ToLower(query))

	switch {
	case codesPattern.MatchString(q):
		return model.CategoryCodes
	case tierListPattern.MatchString(q):
		return model.CategoryTierList
	case buildPattern.MatchString(q):
		return model.CategoryBuild
	case tutorialPattern.MatchString(q):
		return model.CategoryTutorial
	default:
		return model.CategoryTutorial
	}
}

// ExtractSubject strips category vocabulary and filler words from query.
// Matching is per whole word, ignoring case, accents and surrounding punctuation.
// The result may be empty when the query is nothing but stopwords.
func ExtractSubject(query string) string {
	kept := make([]string, 0, 8)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		bare := utils.RemoveDiacritics(strings.TrimFunc(word, unicode.IsPunct))
		if _, stop := subjectStopwords[bare]; stop {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
