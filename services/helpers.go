package services

import (
	"sync"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
)

// Notifier pushes live updates to connected clients. *brackets.Hub satisfies it.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type noopNotifier struct{}

func (noopNotifier) BroadcastToRoom(string, interface{}) {}

func isValidStateTransition(current, next models.TournamentState) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentState][]models.TournamentState{
		models.StateSetup:     {models.StateScheduled},
		models.StateScheduled: {models.StateSetup, models.StateClosed},
		models.StateClosed:    {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func hasRecordedResults(t *models.Tournament) bool {
	for _, m := range t.Matches {
		if !m.Base().Score.IsBlank() {
			return true
		}
	}
	return false
}

func isPlaceholder(team string) bool {
	return brackets.IsPlaceholder(team)
}

// keyedMutex serializes work per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
