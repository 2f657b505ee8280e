package service

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// OptionShuffler reorders answer choices so the correct one does not always
// sit where the provider put it.
type OptionShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewOptionShuffler creates a shuffler with a fixed seed.
func NewOptionShuffler(seed int64) *OptionShuffler {
	return &OptionShuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns q with its options in random order. q itself is not modified.
func (s *OptionShuffler) Shuffle(q entities.Question) entities.Question {
	options := slices.Clone(q.Options)

	s.mu.Lock()
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	s.mu.Unlock()

	q.Options = options
	return q
}
