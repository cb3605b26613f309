// Package session serializes context-management calls per conversation.
//
// The core transform is stateless, but callers running many conversations
// must keep two passes over the same conversation from racing. Registry
// provides that keying: one call in flight per session id at a time,
// nothing else. It holds only locks, never conversation data.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/BaSui01/contextflow/manager"
	"github.com/BaSui01/contextflow/types"
)

// Registry holds one lock per active session id. Locks are dropped as
// soon as no caller holds or waits on them.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*sessionLock)}
}

// NewID mints a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Do runs fn while holding the lock for the given session id. Calls with
// the same id are serialized; calls with different ids run independently.
func (r *Registry) Do(id string, fn func()) {
	l := r.acquire(id)
	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		r.release(id)
	}()
	fn()
}

func (r *Registry) acquire(id string) *sessionLock {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.sessions[id]
	if !ok {
		l = &sessionLock{}
		r.sessions[id] = l
	}
	l.refs++
	return l
}

func (r *Registry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.sessions[id]
	if !ok {
		return
	}
	l.refs--
	if l.refs <= 0 {
		delete(r.sessions, id)
	}
}

// SerializedManager wraps a Manager with per-session serialization.
type SerializedManager struct {
	mgr *manager.Manager
	reg *Registry
}

// NewSerializedManager wraps mgr. reg may be nil (a fresh registry is
// created).
func NewSerializedManager(mgr *manager.Manager, reg *Registry) *SerializedManager {
	if reg == nil {
		reg = NewRegistry()
	}
	return &SerializedManager{mgr: mgr, reg: reg}
}

// Manage runs one management pass for the given session, serialized
// against other passes for the same session id.
func (s *SerializedManager) Manage(sessionID string, messages []types.Message, incoming string) types.ManagementResult {
	var result types.ManagementResult
	s.reg.Do(sessionID, func() {
		result = s.mgr.Manage(messages, incoming)
	})
	return result
}
