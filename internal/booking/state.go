package booking

import (
	"sync"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

type trackedSession struct {
	state     domain.FlowState
	expiresAt time.Time
}

// stateTracker remembers the client-observed state of sessions this process
// has seen. Entries are pruned once their session has expired.
type stateTracker struct {
	mu       sync.Mutex
	sessions map[string]trackedSession
}

func newStateTracker() *stateTracker {
	return &stateTracker{sessions: make(map[string]trackedSession)}
}

func (t *stateTracker) get(sessionID string) domain.FlowState {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[sessionID]
	if !ok {
		return domain.FlowStateNone
	}

	return s.state
}

// transition moves sessionID to next when the state machine allows it and
// reports whether it did.
func (t *stateTracker) transition(sessionID string, next domain.FlowState, expiresAt, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune(now)

	current, ok := t.sessions[sessionID]
	if !ok {
		current = trackedSession{state: domain.FlowStateNone}
	}

	if !current.state.CanTransition(next) {
		return false
	}

	if expiresAt.IsZero() {
		expiresAt = current.expiresAt
	}

	t.sessions[sessionID] = trackedSession{state: next, expiresAt: expiresAt}

	return true
}

func (t *stateTracker) prune(now time.Time) {
	for id, s := range t.sessions {
		if !s.expiresAt.IsZero() && now.Sub(s.expiresAt) > time.Hour {
			delete(t.sessions, id)
		}
	}
}
