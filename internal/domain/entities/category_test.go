package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{in: "SYLLABLE_COUNT", want: CategorySyllableCount},
		{in: "syllables", want: CategorySyllableCount},
		{in: " initial-sound ", want: CategoryInitialSound},
		{in: "RHYME_MATCH", want: CategoryRhymeMatch},
		{in: "Rhymes", want: CategoryRhymeMatch},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseCategoryUnknown(t *testing.T) {
	_, err := ParseCategory("SPELLING")
	require.ErrorIs(t, err, ErrInvalidCategory)

	assert.False(t, Category("SPELLING").Valid())
	assert.False(t, Category("").Valid())
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{
		CategorySyllableCount,
		CategoryInitialSound,
		CategoryRhymeMatch,
	}, Categories())
}
