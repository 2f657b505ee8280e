package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in current session phase")
	ErrNoContent         = errors.New("no questions available for this round")
	ErrStaleBatch        = errors.New("batch arrived for an abandoned round")
)

// ControllerConfig tunes a session controller.
type ControllerConfig struct {
	BatchSize int           // questions requested per round
	Timeout   time.Duration // upper bound of a batch request, zero disables it
}

// AnswerResult is the outcome of a submitted answer.
type AnswerResult struct {
	Correct       bool                // whether the option matched
	CorrectAnswer string              // the expected option
	PointsAwarded int                 // points added by this answer
	Score         int                 // session score after this answer
	Completed     bool                // whether the round ended with this answer
	Completion    entities.Completion // round summary, set when Completed
}

// View is a consistent snapshot of a session.
type View struct {
	Phase      entities.Phase
	Category   entities.Category
	Question   entities.Question // zero unless a round is in progress
	Current    int               // 1-based question number, zero without a batch
	Total      int               // batch size
	Generation uint64
	Score      int
	Completed  []entities.Category // categories finished at least once, in lobby order
}

// Controller owns one player's quiz session and drives its state machine.
// It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	playerID int64
	session  *entities.Session
	cancel   context.CancelFunc // cancels the in-flight batch request

	source   BatchSource
	recorder RoundRecorder
	effects  Effects
	cfg      ControllerConfig
	logger   *zap.Logger
}

// NewController creates a controller with an idle session.
// recorder may be nil; effects defaults to NopEffects.
func NewController(
	playerID int64,
	source BatchSource,
	recorder RoundRecorder,
	effects Effects,
	cfg ControllerConfig,
	logger *zap.Logger,
) *Controller {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if effects == nil {
		effects = NopEffects{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		playerID: playerID,
		session:  entities.NewSession(),
		source:   source,
		recorder: recorder,
		effects:  effects,
		cfg:      cfg,
		logger:   logger.With(zap.Int64("player_id", playerID)),
	}
}

// StartRound requests a batch for category and starts a round with it.
// It blocks for the duration of the provider call. The session must be idle.
// An empty batch returns the session to idle with ErrNoContent; a batch that
// arrives after the round was abandoned is dropped with ErrStaleBatch.
func (c *Controller) StartRound(ctx context.Context, category entities.Category) error {
	if !category.Valid() {
		return fmt.Errorf("start round: %w", entities.ErrInvalidCategory)
	}

	c.mu.Lock()
	if c.session.Phase != entities.PhaseIdle {
		phase := c.session.Phase
		c.mu.Unlock()
		return fmt.Errorf("start round in phase %s: %w", phase, ErrInvalidTransition)
	}

	c.session.Phase = entities.PhaseLoading
	c.session.Generation++
	c.session.LastActivity = time.Now()
	gen := c.session.Generation

	reqCtx, cancel := c.requestContext(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Debug("requesting batch",
		zap.String("category", category.String()),
		zap.Uint64("generation", gen),
	)

	batch := c.source.RequestBatch(reqCtx, category, c.cfg.BatchSize)
	cancel()

	c.mu.Lock()
	if c.session.Generation != gen || c.session.Phase != entities.PhaseLoading {
		c.mu.Unlock()
		c.logger.Debug("dropping stale batch", zap.Uint64("generation", gen))
		return ErrStaleBatch
	}
	c.cancel = nil

	if !validBatch(batch) {
		c.session.Reset()
		c.mu.Unlock()
		c.logger.Info("no content for round", zap.String("category", category.String()))
		return ErrNoContent
	}

	c.session.Begin(category, batch)
	c.session.LastActivity = time.Now()
	first := batch[0]
	roundID := c.session.RoundID
	c.mu.Unlock()

	c.logger.Info("round started",
		zap.String("round_id", roundID),
		zap.String("category", category.String()),
		zap.Int("questions", len(batch)),
	)
	c.effects.Speak(first.Word)

	return nil
}

// SubmitAnswer scores option against the current question and advances the round.
// The session must be in progress.
func (c *Controller) SubmitAnswer(ctx context.Context, option string) (AnswerResult, error) {
	c.mu.Lock()
	if c.session.Phase != entities.PhaseInProgress {
		phase := c.session.Phase
		c.mu.Unlock()
		return AnswerResult{}, fmt.Errorf("submit answer in phase %s: %w", phase, ErrInvalidTransition)
	}

	q := c.session.Batch[c.session.Cursor]
	before := c.session.Score
	correct := c.session.Answer(option)
	c.session.LastActivity = time.Now()

	res := AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		PointsAwarded: c.session.Score - before,
		Score:         c.session.Score,
	}

	var (
		next   *entities.Question
		record *entities.RoundResult
	)
	if completion, ok := c.session.Completion(); ok {
		res.Completed = true
		res.Completion = completion
		record = entities.NewRoundResult(c.playerID, completion, c.session.StartedAt)
	} else {
		nq := c.session.Batch[c.session.Cursor]
		next = &nq
	}
	c.mu.Unlock()

	if correct {
		c.effects.Celebrate()
	} else {
		c.effects.Shake()
	}
	if next != nil {
		c.effects.Speak(next.Word)
	}

	if record != nil {
		c.logger.Info("round completed",
			zap.String("round_id", record.ID),
			zap.String("category", record.Category.String()),
			zap.Int("correct", record.Correct),
			zap.Int("total", record.Total),
		)
		c.record(ctx, record)
	}

	return res, nil
}

// ReturnHome abandons any round and returns to the lobby. Score is kept.
// Calling it on an idle session changes nothing.
func (c *Controller) ReturnHome() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Phase == entities.PhaseIdle {
		return
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.logger.Debug("returning home", zap.String("phase", string(c.session.Phase)))
	c.session.Reset()
	c.session.LastActivity = time.Now()
}

// Release abandons the round of a session untouched since before, like
// ReturnHome, and reports whether there was one. Score is kept.
func (c *Controller) Release(before time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Phase == entities.PhaseIdle || !c.session.LastActivity.Before(before) {
		return false
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.logger.Debug("releasing idle round", zap.String("phase", string(c.session.Phase)))
	c.session.Reset()
	return true
}

// Close cancels any in-flight request. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// View returns a snapshot of the whole session taken under one lock.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:      c.session.Phase,
		Category:   c.session.ActiveCategory,
		Generation: c.session.Generation,
		Score:      c.session.Score,
		Completed:  c.completedLocked(),
	}
	if len(c.session.Batch) > 0 {
		v.Current, v.Total = c.session.Cursor+1, len(c.session.Batch)
	}
	if c.session.Phase == entities.PhaseInProgress {
		v.Question = c.session.Batch[c.session.Cursor]
	}
	return v
}

// CurrentQuestion returns the question to answer. ok is false unless a round is in progress.
func (c *Controller) CurrentQuestion() (q entities.Question, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Phase != entities.PhaseInProgress {
		return entities.Question{}, false
	}
	return c.session.Batch[c.session.Cursor], true
}

// Phase returns the current lifecycle state.
func (c *Controller) Phase() entities.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Phase
}

// Score returns the points accumulated during the whole session.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Score
}

// ActiveCategory returns the category of the current batch, or "" when there is none.
func (c *Controller) ActiveCategory() entities.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ActiveCategory
}

// Progress returns the 1-based number of the current question and the batch size.
func (c *Controller) Progress() (current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.session.Batch) == 0 {
		return 0, 0
	}
	return c.session.Cursor + 1, len(c.session.Batch)
}

// Completion returns the summary of a completed round.
func (c *Controller) Completion() (entities.Completion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Completion()
}

// Generation returns the tag of the latest round request.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Generation
}

// CompletedCategories returns the categories finished at least once, in lobby order.
func (c *Controller) CompletedCategories() []entities.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completedLocked()
}

func (c *Controller) completedLocked() []entities.Category {
	out := make([]entities.Category, 0, len(c.session.CompletedCategories))
	for _, cat := range entities.Categories() {
		if _, ok := c.session.CompletedCategories[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// LastActivity returns when the player last touched the session.
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.LastActivity
}

// PlayerID returns the owner of the session.
func (c *Controller) PlayerID() int64 {
	return c.playerID
}

func (c *Controller) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, c.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Controller) record(ctx context.Context, r *entities.RoundResult) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRound(ctx, r); err != nil {
		c.logger.Error("failed to record round",
			zap.String("round_id", r.ID),
			zap.Error(err),
		)
	}
}

// validBatch reports whether batch is non-empty and every question keeps its answer among its options.
func validBatch(batch []entities.Question) bool {
	if len(batch) == 0 {
		return false
	}
	for i := range batch {
		if len(batch[i].Options) == 0 || !batch[i].HasOption(batch[i].CorrectAnswer) {
			return false
		}
	}
	return true
}
