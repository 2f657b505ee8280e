package entities

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerCorrectAnswer is awarded for every correct answer. Wrong answers cost nothing.
const PointsPerCorrectAnswer = 10

// Phase is the lifecycle state of a quiz session.
type Phase string

const (
	PhaseIdle       Phase = "idle"        // lobby, no round
	PhaseLoading    Phase = "loading"     // waiting for a batch
	PhaseInProgress Phase = "in_progress" // answering questions
	PhaseCompleted  Phase = "completed"   // every question of the round answered
)

// Session is the runtime state of one player's quiz. It is never persisted.
type Session struct {
	Phase               Phase                 // current lifecycle state
	ActiveCategory      Category              // category of the current batch, empty when none
	Batch               []Question            // questions of the current round
	Cursor              int                   // index of the current question
	Score               int                   // points accumulated over the whole session
	RoundCorrect        int                   // correct answers in the current round
	Generation          uint64                // tag of the latest round request
	RoundID             string                // id of the current round, empty when none
	StartedAt           time.Time             // when the current round received its batch
	CompletedCategories map[Category]struct{} // categories finished at least once
	LastActivity        time.Time             // last time the player touched the session
}

// NewSession creates an idle session with zero score.
func NewSession() *Session {
	return &Session{
		Phase:               PhaseIdle,
		CompletedCategories: make(map[Category]struct{}),
		LastActivity:        time.Now(),
	}
}

// Begin moves a loading session into play with the given batch.
func (s *Session) Begin(category Category, batch []Question) {
	s.Phase = PhaseInProgress
	s.ActiveCategory = category
	s.Batch = batch
	s.Cursor = 0
	s.RoundCorrect = 0
	s.RoundID = uuid.NewString()
	s.StartedAt = time.Now()
}

// Answer scores option against the current question and advances the cursor,
// or completes the round on the last question. It reports whether the answer was correct.
func (s *Session) Answer(option string) bool {
	q := s.Batch[s.Cursor]
	correct := q.IsCorrect(option)
	if correct {
		s.Score += PointsPerCorrectAnswer
		s.RoundCorrect++
	}

	if s.Cursor < len(s.Batch)-1 {
		s.Cursor++
		return correct
	}

	s.Phase = PhaseCompleted
	s.CompletedCategories[s.ActiveCategory] = struct{}{}
	return correct
}

// Reset drops the current round and returns to the lobby. Score is kept.
func (s *Session) Reset() {
	s.Phase = PhaseIdle
	s.ActiveCategory = ""
	s.Batch = nil
	s.Cursor = 0
	s.RoundCorrect = 0
	s.RoundID = ""
	s.StartedAt = time.Time{}
}

// Completion summarizes a finished round.
type Completion struct {
	RoundID     string
	Category    Category
	Correct     int // correct answers in the round
	Total       int // questions in the round
	RoundPoints int // points earned in the round
	TotalScore  int // session score after the round
}

// Completion returns the round summary when the session is completed.
func (s *Session) Completion() (Completion, bool) {
	if s.Phase != PhaseCompleted {
		return Completion{}, false
	}

	return Completion{
		RoundID:     s.RoundID,
		Category:    s.ActiveCategory,
		Correct:     s.RoundCorrect,
		Total:       len(s.Batch),
		RoundPoints: s.RoundCorrect * PointsPerCorrectAnswer,
		TotalScore:  s.Score,
	}, true
}

// RoundResult is the persisted record of a completed round.
type RoundResult struct {
	ID          string    // round id
	PlayerID    int64     // player who played the round
	Category    Category  // category of the round
	Correct     int       // number of correct answers
	Total       int       // number of questions
	Points      int       // points earned
	StartedAt   time.Time // when the batch arrived
	CompletedAt time.Time // when the last answer was submitted
}

// NewRoundResult builds a round record from a completion summary.
func NewRoundResult(playerID int64, c Completion, startedAt time.Time) *RoundResult {
	return &RoundResult{
		ID:          c.RoundID,
		PlayerID:    playerID,
		Category:    c.Category,
		Correct:     c.Correct,
		Total:       c.Total,
		Points:      c.RoundPoints,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
}

// CategoryStats aggregates a player's completed rounds in one category.
type CategoryStats struct {
	PlayerID     int64
	Category     Category
	RoundsPlayed int
	TotalPoints  int
	BestPoints   int
	LastPlayedAt *time.Time
}
