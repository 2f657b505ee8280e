package gemini

import "google.golang.org/genai"

// questionFields lists the properties every generated item must carry, in order.
func questionFields() []string {
	return []string{"id", "type", "word", "instruction", "options", "correctAnswer"}
}

// ResponseSchema describes the expected reply: an array of fixed-shape question objects.
func ResponseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":          str("Unique id of the question"),
				"type":        str("Challenge type, one of SYLLABLE_COUNT, INITIAL_SOUND, RHYME_MATCH"),
				"word":        str("The prompt word"),
				"instruction": str("Task text shown to the child"),
				"options": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Answer choices",
				},
				"correctAnswer": str("The correct choice, copied exactly from options"),
			},
			Required:         questionFields(),
			PropertyOrdering: questionFields(),
		},
	}
}
