package utils

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^\w\s\p{Z}\v-]`)
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\v]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a URL-safe lookup key.
// "Free Fire: Códigos!" → "free-fire-codigos"
//
// Slugify(Slugify(x)) == Slugify(x) for every input.
func Slugify(text string) string {
	// Step 1: Lowercase + strip diacritics
	s := RemoveDiacritics(strings.ToLower(text))

	// Step 2: Drop everything that is not a word char, space or hyphen
	s = nonSlugChars.ReplaceAllString(s, "")

	// Step 3: Whitespace → hyphen, collapse hyphens
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")

	// Step 4: Trim leading/trailing hyphens
	return strings.Trim(s, "-")
}

// RemoveDiacritics decomposes input (NFD) and drops combining marks.
// "ação" → "acao"
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID returns "<base36 unix millis>-<7 random base36 chars>".
// Uniqueness is probabilistic; it is not a security token.
func GenerateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}

	return ts + "-" + string(suffix)
}

// BuildStorageKey builds the structured guide key guide:{type}:{subjectSlug}:{id}.
func BuildStorageKey(guideType, subject, id string) string {
	return fmt.Sprintf("guide:%s:%s:%s", guideType, Slugify(subject), id)
}

// ParseStorageKey splits a structured guide key. ok is false for any other key shape.
func ParseStorageKey(key string) (guideType, subjectSlug, id string, ok bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 || parts[0] != "guide" {
		return "", "", "", false
	}
	return parts[1], parts[2], parts[3], true
}

// SlugKey builds the lookup key slug:{slug}.
func SlugKey(slug string) string {
	return "slug:" + slug
}
