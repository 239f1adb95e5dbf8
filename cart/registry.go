package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

// Registry tracks the open cart sessions across all screens. Opening a
// dialog creates a session; closing it discards the session unconditionally,
// which also unsubscribes it from price updates (dispatch only reaches
// registered sessions).
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) Open(businessID string, userID int, kind OrderKind) *Session {
	session := NewSession(uuid.NewString(), businessID, userID, kind)
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, utils.ErrorSessionNotFound
	}
	return session, nil
}

// Close discards the session. The in-memory cart state is gone for good;
// submission must have happened before this point.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		session.Reset()
		delete(r.sessions, id)
	}
}

// ForBusiness returns every open session for a business, for price-update
// dispatch.
func (r *Registry) ForBusiness(businessID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var results []*Session
	for _, session := range r.sessions {
		if session.BusinessID == businessID {
			results = append(results, session)
		}
	}
	return results
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
