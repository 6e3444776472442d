package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "trade2cart/internal/errors"
)

// challenge is one in-flight phone sign-in attempt. Challenges are keyed by a
// request ID so the verify call names the attempt it answers; nothing is
// shared between the request and verify steps beyond that ID.
type challenge struct {
	phone     string
	code      string
	expiresAt time.Time
}

type ChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]challenge
	ttl        time.Duration
	now        func() time.Time
}

func NewChallengeStore(ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{
		challenges: make(map[string]challenge),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Create registers a new challenge for the phone number and returns the
// request ID and the code to deliver out of band.
func (s *ChallengeStore) Create(phone string) (requestID, code string, err error) {
	code, err = generateCode()
	if err != nil {
		return "", "", fmt.Errorf("generating code: %w", err)
	}

	requestID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.challenges[requestID] = challenge{
		phone:     phone,
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}

	return requestID, code, nil
}

// Verify consumes the challenge. A challenge is single-use: it is removed on
// success and on a wrong code alike, so codes cannot be brute-forced against
// one request ID.
func (s *ChallengeStore) Verify(requestID, code string) (phone string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[requestID]
	if !ok {
		return "", apperrors.NewUnauthorizedError("unknown or expired sign-in request")
	}
	delete(s.challenges, requestID)

	if s.now().After(ch.expiresAt) {
		return "", apperrors.NewUnauthorizedError("sign-in code expired")
	}
	if ch.code != code {
		return "", apperrors.NewUnauthorizedError("invalid sign-in code")
	}

	return ch.phone, nil
}

func (s *ChallengeStore) prune() {
	now := s.now()
	for id, ch := range s.challenges {
		if now.After(ch.expiresAt) {
			delete(s.challenges, id)
		}
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
