package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// DefaultBatchSize is the number of questions requested per round.
const DefaultBatchSize = 5

var ErrEmptyBatch = errors.New("provider returned no questions")

// ContentService builds provider requests and turns replies into validated question batches.
// It keeps no state between calls.
type ContentService struct {
	provider   Provider
	validator  *QuestionValidator
	language   language.Tag
	maxOptions int
	shuffler   *OptionShuffler // nil keeps the provider's option order
	logger     *zap.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(
	provider Provider,
	lang language.Tag,
	maxOptions int,
	logger *zap.Logger,
) *ContentService {
	validator := NewQuestionValidator(maxOptions)
	return &ContentService{
		provider:   provider,
		validator:  validator,
		language:   lang,
		maxOptions: validator.maxOptions,
		logger:     logger,
	}
}

// SetShuffler makes every parsed question get its options shuffled.
func (s *ContentService) SetShuffler(sh *OptionShuffler) {
	s.shuffler = sh
}

// RequestBatch asks the provider for count questions of a category.
// Every failure is logged and reported as an empty batch.
func (s *ContentService) RequestBatch(ctx context.Context, category entities.Category, count int) []entities.Question {
	if count <= 0 {
		count = DefaultBatchSize
	}

	if !category.Valid() {
		s.logger.Warn("batch requested for unknown category", zap.String("category", category.String()))
		return nil
	}

	prompt := BuildPrompt(category, count, s.maxOptions, s.language)

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("question generation failed",
			zap.String("category", category.String()),
			zap.Error(err),
		)
		return nil
	}

	batch, err := s.ParseBatch(raw, category, count)
	if err != nil {
		s.logger.Warn("question batch rejected",
			zap.String("category", category.String()),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Debug("question batch ready",
		zap.String("category", category.String()),
		zap.Int("questions", len(batch)),
	)

	return batch
}

// ParseBatch decodes and validates a raw provider reply.
// A single invalid item rejects the whole batch. Batches longer than count are truncated.
func (s *ContentService) ParseBatch(raw string, category entities.Category, count int) ([]entities.Question, error) {
	var items []questionPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("decode provider reply: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	if count > 0 && len(items) > count {
		items = items[:count]
	}

	batch := make([]entities.Question, 0, len(items))
	for i, item := range items {
		q, err := s.validator.Validate(item, category)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if s.shuffler != nil {
			q = s.shuffler.Shuffle(q)
		}
		batch = append(batch, q)
	}

	return batch, nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON in.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
