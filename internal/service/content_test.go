package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

type fakeProvider struct {
	reply   string
	err     error
	prompts []string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func newTestContentService(p Provider) *ContentService {
	return NewContentService(p, language.Hebrew, 4, zap.NewNop())
}

const rhymeReply = `[
  {"id":"q1","type":"RHYME_MATCH","word":"ילד","instruction":"מה מתחרז?","options":["גשם","סל","קלד"],"correctAnswer":"קלד"},
  {"id":"q2","type":"RHYME_MATCH","word":"חתול","instruction":"מה מתחרז?","options":["גדול","בית"],"correctAnswer":"גדול"}
]`

func TestRequestBatchBuildsValidatedQuestions(t *testing.T) {
	p := &fakeProvider{reply: rhymeReply}
	s := newTestContentService(p)

	batch := s.RequestBatch(context.Background(), entities.CategoryRhymeMatch, 5)
	require.Len(t, batch, 2)
	require.Len(t, p.prompts, 1)

	for _, q := range batch {
		assert.Equal(t, entities.CategoryRhymeMatch, q.Category)
		assert.Contains(t, q.Options, q.CorrectAnswer)
		assert.Equal(t, entities.ImageFor(q.Word), q.ImageReference)
	}
	assert.Equal(t, "q1", batch[0].ID)
	assert.Equal(t, []string{"גשם", "סל", "קלד"}, batch[0].Options)
}

func TestRequestBatchDefaultsCount(t *testing.T) {
	p := &fakeProvider{reply: rhymeReply}
	s := newTestContentService(p)

	s.RequestBatch(context.Background(), entities.CategoryRhymeMatch, 0)
	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], fmt.Sprintf("Generate %d interactive questions", DefaultBatchSize))
}

func TestRequestBatchFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "provider error", err: errors.New("deadline exceeded")},
		{name: "malformed json", reply: `[{"id":"q1",`},
		{name: "object instead of array", reply: `{"id":"q1"}`},
		{name: "empty array", reply: `[]`},
		{name: "null", reply: `null`},
		{name: "missing word", reply: `[{"id":"q1","type":"RHYME_MATCH","instruction":"i","options":["a","b"],"correctAnswer":"a"}]`},
		{name: "missing options", reply: `[{"id":"q1","type":"RHYME_MATCH","word":"w","instruction":"i","correctAnswer":"a"}]`},
		{
			name: "one bad item rejects batch",
			reply: `[
				{"id":"q1","type":"RHYME_MATCH","word":"w","instruction":"i","options":["a","b"],"correctAnswer":"a"},
				{"id":"q2","type":"RHYME_MATCH","word":"w","instruction":"i","options":["a","b"],"correctAnswer":"c"}
			]`,
		},
		{name: "other category", reply: `[{"id":"q1","type":"INITIAL_SOUND","word":"w","instruction":"i","options":["a","b"],"correctAnswer":"a"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestContentService(&fakeProvider{reply: tt.reply, err: tt.err})

			batch := s.RequestBatch(context.Background(), entities.CategoryRhymeMatch, 5)
			assert.Empty(t, batch)
		})
	}
}

func TestRequestBatchUnknownCategorySkipsProvider(t *testing.T) {
	p := &fakeProvider{reply: rhymeReply}
	s := newTestContentService(p)

	assert.Empty(t, s.RequestBatch(context.Background(), entities.Category("SPELLING"), 5))
	assert.Empty(t, p.prompts)
}

func TestParseBatchTruncatesToCount(t *testing.T) {
	s := newTestContentService(&fakeProvider{})

	batch, err := s.ParseBatch(rhymeReply, entities.CategoryRhymeMatch, 1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "q1", batch[0].ID)
}

func TestParseBatchAcceptsCodeFenceAndAliases(t *testing.T) {
	s := newTestContentService(&fakeProvider{})
	raw := "```json\n" +
		`[{"id":"s1","type":"SYLLABLES","word":"מטוס","instruction":"כמה הברות?","options":["1","2","3"],"correctAnswer":"2"}]` +
		"\n```"

	batch, err := s.ParseBatch(raw, entities.CategorySyllableCount, 5)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, entities.CategorySyllableCount, batch[0].Category)
}

func TestParseBatchErrors(t *testing.T) {
	s := newTestContentService(&fakeProvider{})

	_, err := s.ParseBatch(`[]`, entities.CategoryRhymeMatch, 5)
	require.ErrorIs(t, err, ErrEmptyBatch)

	_, err = s.ParseBatch(`[{"id":"q1","type":"RHYME_MATCH","word":"w","instruction":"i","options":["a"],"correctAnswer":"a"}]`,
		entities.CategoryRhymeMatch, 5)
	require.ErrorIs(t, err, ErrSchemaViolation)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[]", stripCodeFence("[]"))
	assert.Equal(t, "[]", stripCodeFence("  ```json\n[]\n```  "))
	assert.Equal(t, "[1]", stripCodeFence("```\n[1]```"))
	assert.True(t, strings.HasPrefix(stripCodeFence("```json\n[{}]\n```"), "["))
}
