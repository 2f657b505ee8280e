package service

import (
	"sync"
	"time"
)

// ControllerFactory builds the controller of a new player.
type ControllerFactory func(playerID int64) *Controller

// SessionRegistry hands out one controller per player.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[int64]*Controller
	factory  ControllerFactory
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(factory ControllerFactory) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[int64]*Controller),
		factory:  factory,
	}
}

// Get returns the player's controller, creating it on first use.
func (r *SessionRegistry) Get(playerID int64) *Controller {
	r.mu.RLock()
	c, ok := r.sessions[playerID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok = r.sessions[playerID]; ok {
		return c
	}
	c = r.factory(playerID)
	r.sessions[playerID] = c
	return c
}

// Lookup returns the player's controller without creating one.
func (r *SessionRegistry) Lookup(playerID int64) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.sessions[playerID]
	return c, ok
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ReleaseIdle drops the round state of every session untouched since before.
// Controllers stay registered so score and completed categories outlive the sweep.
// It returns the number of released rounds.
func (r *SessionRegistry) ReleaseIdle(before time.Time) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	released := 0
	for _, c := range r.sessions {
		if c.Release(before) {
			released++
		}
	}
	return released
}

// CloseAll closes every session. Used on shutdown.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.sessions {
		c.Close()
		delete(r.sessions, id)
	}
}
