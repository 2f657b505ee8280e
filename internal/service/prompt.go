package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// categoryTasks describes each challenge to the provider.
var categoryTasks = map[entities.Category]string{
	entities.CategorySyllableCount: "Ask how many syllables%s are in the word. The options are syllable counts written as digits.",
	entities.CategoryInitialSound:  "Ask what the starting sound%s of the word is. The options are candidate sounds or letters.",
	entities.CategoryRhymeMatch:    "Provide a word and ask which of the options rhymes%s with it. The options are candidate words.",
}

// hebrewTerms are the classroom terms for each challenge, added when questions are in Hebrew.
var hebrewTerms = map[entities.Category]string{
	entities.CategorySyllableCount: " (הברות)",
	entities.CategoryInitialSound:  " (צליל פותח)",
	entities.CategoryRhymeMatch:    " (מתחרז)",
}

// BuildPrompt renders the generation request for count questions of a category.
func BuildPrompt(category entities.Category, count, maxOptions int, lang language.Tag) string {
	langName := display.English.Languages().Name(lang)
	if langName == "" {
		langName = lang.String()
	}

	term := ""
	if isHebrew(lang) {
		term = hebrewTerms[category]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d interactive questions for first-grade children (age 6-7) in %s for a game about phonological awareness.\n", count, langName)
	fmt.Fprintf(&sb, "Type of challenge: %s.\n", category)
	fmt.Fprintf(&sb, "- %s\n", fmt.Sprintf(categoryTasks[category], term))
	fmt.Fprintf(&sb, "Use simple everyday %s words.\n", langName)
	fmt.Fprintf(&sb, "Set \"type\" to %s on every item and give every item a unique \"id\".\n", category)
	fmt.Fprintf(&sb, "Give between 2 and %d options per question; \"correctAnswer\" must be copied exactly from \"options\".\n", maxOptions)
	sb.WriteString("Return only valid JSON.")

	return sb.String()
}

func isHebrew(tag language.Tag) bool {
	base, _ := tag.Base()
	hebrew, _ := language.Hebrew.Base()
	return base == hebrew
}
