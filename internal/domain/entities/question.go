package entities

import (
	"fmt"
	"net/url"
	"slices"
)

const imageServiceURL = "https://picsum.photos/seed/%s/400/300"

// Question is a single validated quiz item.
type Question struct {
	ID             string   // opaque id assigned by the provider
	Category       Category // category the item belongs to
	Word           string   // prompt word in the target language
	Instruction    string   // task text shown to the player
	Options        []string // candidate answers, in display order
	CorrectAnswer  string   // always a member of Options
	ImageReference string   // derived from Word, see ImageFor
}

// IsCorrect reports whether option matches the correct answer exactly.
func (q *Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// HasOption reports whether option is one of the question's choices.
func (q *Question) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// ImageFor returns the illustrative image locator for a word.
// The same word always yields the same reference.
func ImageFor(word string) string {
	return fmt.Sprintf(imageServiceURL, url.PathEscape(word))
}
