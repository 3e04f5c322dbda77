package utils

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fitquest/fitquest/models"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "fitquest_session"

const sessionKeyPrefix = "session:"

type memSession struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore maps opaque tokens to a JSON snapshot of the authenticated
// user's row. Redis-backed when available so sessions survive restarts,
// otherwise an in-memory map (single-instance only). The snapshot is
// refreshed explicitly after profile or settings writes so pages never
// render stale fields.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration

	mu  sync.RWMutex
	mem map[string]memSession
}

// NewSessionStore builds a store preferring Redis when reachable.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		rdb: GetRedis(),
		ttl: ttl,
		mem: map[string]memSession{},
	}
}

// NewMemorySessionStore builds a purely in-memory store, used by tests and
// deployments that run without Redis on purpose.
func NewMemorySessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl: ttl,
		mem: map[string]memSession{},
	}
}

// Create opens a session for the user and returns its opaque token.
func (s *SessionStore) Create(user models.User) (string, error) {
	token := uuid.NewString()
	if err := s.put(token, user); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its user snapshot.
func (s *SessionStore) Get(token string) (models.User, bool) {
	var user models.User
	if token == "" {
		return user, false
	}

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		b, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
		if err != nil {
			return user, false
		}
		if err := json.Unmarshal(b, &user); err != nil {
			return user, false
		}
		return user, true
	}

	s.mu.RLock()
	entry, ok := s.mem[token]
	s.mu.RUnlock()
	if !ok {
		return user, false
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.mem, token)
		s.mu.Unlock()
		return user, false
	}
	if err := json.Unmarshal(entry.data, &user); err != nil {
		return user, false
	}
	return user, true
}

// Refresh replaces the stored snapshot for an existing token, resetting its
// TTL. Called after any mutation of the user's row.
func (s *SessionStore) Refresh(token string, user models.User) error {
	if token == "" {
		return nil
	}
	return s.put(token, user)
}

// Destroy removes a session. Destroying an unknown token is a no-op, which
// keeps logout idempotent.
func (s *SessionStore) Destroy(token string) {
	if token == "" {
		return
	}
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
		return
	}
	s.mu.Lock()
	delete(s.mem, token)
	s.mu.Unlock()
}

func (s *SessionStore) put(token string, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.rdb.Set(ctx, sessionKeyPrefix+token, b, s.ttl).Err()
	}

	s.mu.Lock()
	s.sweepLocked()
	s.mem[token] = memSession{data: b, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) sweepLocked() {
	now := time.Now()
	for token, entry := range s.mem {
		if now.After(entry.expiresAt) {
			delete(s.mem, token)
		}
	}
}
