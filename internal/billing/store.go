package billing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trade2cart/internal/domain"
	apperrors "trade2cart/internal/errors"
)

// SessionStore holds the in-flight processing sessions of this process.
// Sessions are ephemeral by design: they exist only between OTP verification
// and commit/cancel, and idle ones are pruned.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *SessionStore) Create(vendorID string, order domain.Order, customer domain.Customer, builder *Builder) *Session {
	sess := newSession(uuid.New().String(), vendorID, order, customer, builder)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.prune()
	st.sessions[sess.ID] = sess
	return sess
}

// Get resolves a session for the given vendor. A session belonging to
// another vendor is reported the same as a missing one.
func (st *SessionStore) Get(id, vendorID string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok || sess.VendorID != vendorID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("processing session %s not found", id))
	}
	if st.now().Sub(sess.createdAt) > st.ttl {
		st.Remove(id)
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("processing session %s expired", id))
	}
	return sess, nil
}

func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) prune() {
	cutoff := st.now().Add(-st.ttl)
	for id, sess := range st.sessions {
		if sess.createdAt.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
