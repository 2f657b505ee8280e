package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

var ErrSchemaViolation = errors.New("question payload violates schema")

// questionPayload is one item of the provider reply.
type questionPayload struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Word          string   `json:"word"`
	Instruction   string   `json:"instruction"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuestionValidator turns provider items into invariant-checked questions.
type QuestionValidator struct {
	maxOptions int // upper bound of answer choices
}

// NewQuestionValidator creates a validator accepting between 2 and maxOptions choices.
func NewQuestionValidator(maxOptions int) *QuestionValidator {
	if maxOptions < 2 {
		maxOptions = 2
	}
	return &QuestionValidator{maxOptions: maxOptions}
}

// Validate normalizes p and checks it against the question invariants.
// The item must belong to the requested category.
func (v *QuestionValidator) Validate(p questionPayload, want entities.Category) (entities.Question, error) {
	q := entities.Question{
		ID:            v.normalize(p.ID),
		Word:          v.normalize(p.Word),
		Instruction:   v.normalize(p.Instruction),
		CorrectAnswer: v.normalize(p.CorrectAnswer),
	}

	switch {
	case q.ID == "":
		return entities.Question{}, fmt.Errorf("%w: missing id", ErrSchemaViolation)
	case q.Word == "":
		return entities.Question{}, fmt.Errorf("%w: item %s: missing word", ErrSchemaViolation, q.ID)
	case q.Instruction == "":
		return entities.Question{}, fmt.Errorf("%w: item %s: missing instruction", ErrSchemaViolation, q.ID)
	case q.CorrectAnswer == "":
		return entities.Question{}, fmt.Errorf("%w: item %s: missing correctAnswer", ErrSchemaViolation, q.ID)
	}

	category, err := entities.ParseCategory(p.Type)
	if err != nil {
		return entities.Question{}, fmt.Errorf("%w: item %s: %v", ErrSchemaViolation, q.ID, err)
	}
	if category != want {
		return entities.Question{}, fmt.Errorf("%w: item %s: type %s, want %s", ErrSchemaViolation, q.ID, category, want)
	}
	q.Category = category

	if len(p.Options) < 2 || len(p.Options) > v.maxOptions {
		return entities.Question{}, fmt.Errorf("%w: item %s: %d options, want 2..%d",
			ErrSchemaViolation, q.ID, len(p.Options), v.maxOptions)
	}

	q.Options = make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		o = v.normalize(o)
		if o == "" {
			return entities.Question{}, fmt.Errorf("%w: item %s: empty option", ErrSchemaViolation, q.ID)
		}
		q.Options = append(q.Options, o)
	}

	if !q.HasOption(q.CorrectAnswer) {
		return entities.Question{}, fmt.Errorf("%w: item %s: correctAnswer %q not among options",
			ErrSchemaViolation, q.ID, q.CorrectAnswer)
	}

	q.ImageReference = entities.ImageFor(q.Word)

	return q, nil
}

// normalize trims, collapses inner whitespace and composes Unicode to NFC,
// so that equal answers compare equal byte for byte.
func (v *QuestionValidator) normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}
