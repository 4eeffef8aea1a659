package session

import (
	"sync"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// Registry maps workers to their sessions.
// Each worker is expected to touch only its own key.
type Registry struct {
	mu       sync.Mutex
	sessions map[WorkerKey]Session
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[WorkerKey]Session)}
}

// Set associates session with the worker key.
// A prior association is replaced without being closed: closing it is up to the caller.
// A nil session removes the association.
func (r *Registry) Set(key WorkerKey, session Session) {
	if session == nil {
		r.unset(key)
		return
	}
	r.mu.Lock()
	prev, exists := r.sessions[key]
	r.sessions[key] = session
	r.mu.Unlock()

	logger := log.WithFields(log.Fields{"worker": key, "session": session.ID()})
	if exists && prev != session {
		logger.Warnf("replacing session %v without closing it, it may leak", prev.ID())
		return
	}
	logger.Debug("session set")
}

func (r *Registry) unset(key WorkerKey) {
	r.mu.Lock()
	prev, exists := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	logger := log.WithField("worker", key)
	if exists {
		logger.Warnf("session %v unset without closing it, it may leak", prev.ID())
		return
	}
	logger.Debug("session unset")
}

// Get returns the session for the worker key
func (r *Registry) Get(key WorkerKey) (Session, error) {
	r.mu.Lock()
	session, ok := r.sessions[key]
	r.mu.Unlock()
	if !ok {
		log.WithField("worker", key).Error("session is not initialized")
		return nil, trace.Wrap(&SessionNotInitializedError{Key: key})
	}
	return session, nil
}

// IsInitialized returns true if the worker key has a session
func (r *Registry) IsInitialized(key WorkerKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[key]
	return ok
}

// Clear closes the session for the worker key and removes the association.
// It is a no-op if the worker has no session.
func (r *Registry) Clear(key WorkerKey) error {
	r.mu.Lock()
	session, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()
	if !ok {
		return nil
	}

	log.WithFields(log.Fields{"worker": key, "session": session.ID()}).Info("closing session")
	if err := session.Close(); err != nil {
		return trace.Wrap(err, "failed to close session for worker %q", key)
	}
	return nil
}

// ClearAll closes every registered session
func (r *Registry) ClearAll() error {
	r.mu.Lock()
	keys := make([]WorkerKey, 0, len(r.sessions))
	for key := range r.sessions {
		keys = append(keys, key)
	}
	r.mu.Unlock()

	var errors []error
	for _, key := range keys {
		errors = append(errors, r.Clear(key))
	}
	return trace.NewAggregate(errors...)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
