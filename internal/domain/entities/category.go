package entities

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid game category")

// Category is one of the phonological-awareness challenge types.
type Category string

const (
	CategorySyllableCount Category = "SYLLABLE_COUNT" // how many syllables are in the word
	CategoryInitialSound  Category = "INITIAL_SOUND"  // which sound opens the word
	CategoryRhymeMatch    Category = "RHYME_MATCH"    // which option rhymes with the word
)

// Categories lists every category in lobby order.
func Categories() []Category {
	return []Category{
		CategorySyllableCount,
		CategoryInitialSound,
		CategoryRhymeMatch,
	}
}

// categoryAliases maps accepted wire names to categories.
// Providers trained on older prompts still answer with SYLLABLES and RHYMES.
var categoryAliases = map[string]Category{
	"SYLLABLE_COUNT": CategorySyllableCount,
	"SYLLABLES":      CategorySyllableCount,
	"INITIAL_SOUND":  CategoryInitialSound,
	"RHYME_MATCH":    CategoryRhymeMatch,
	"RHYMES":         CategoryRhymeMatch,
}

// ParseCategory resolves a category from its wire name, ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")

	c, ok := categoryAliases[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySyllableCount, CategoryInitialSound, CategoryRhymeMatch:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}
