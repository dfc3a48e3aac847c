package state

import "sync"

type memoryTracker struct {
	mu      sync.Mutex
	pending map[int64]Pending
}

// NewMemoryTracker constructs an in-memory Tracker. State is lost on restart.
func NewMemoryTracker() Tracker {
	return &memoryTracker{pending: make(map[int64]Pending)}
}

func (m *memoryTracker) Arm(userID int64, p Pending) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == Idle {
		delete(m.pending, userID)
		return
	}
	m.pending[userID] = p
}

func (m *memoryTracker) Current(userID int64) Pending {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending[userID]
}

func (m *memoryTracker) Consume(userID int64, p Pending) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == Idle || m.pending[userID] != p {
		return false
	}
	delete(m.pending, userID)
	return true
}

func (m *memoryTracker) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, userID)
}
