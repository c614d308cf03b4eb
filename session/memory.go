package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process [Store] for tests and single-node development.
// Records are held as encoded bytes so callers never share a *Session with
// the store. Expiry is enforced on read, same as [RedisStore].
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string][]byte
	storeTTL time.Duration
	saved    map[string]time.Time
}

// NewMemoryStore creates a [MemoryStore] with the given retention ceiling.
func NewMemoryStore(storeTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		records:  make(map[string][]byte),
		saved:    make(map[string]time.Time),
		storeTTL: storeTTL,
	}
}

// Save persists the session.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sess.ID] = data
	s.saved[sess.ID] = time.Now()
	return nil
}

// Load retrieves a session by ID, enforcing both the retention ceiling and
// the session's own expiry.
func (s *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now()
	if savedAt, ok := s.saved[id]; ok && s.storeTTL > 0 && now.After(savedAt.Add(s.storeTTL)) {
		delete(s.records, id)
		delete(s.saved, id)
		return nil, ErrNotFound
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrNotFound
	}
	sess.ID = id

	if sess.Expired(now) {
		delete(s.records, id)
		delete(s.saved, id)
		return nil, ErrNotFound
	}

	return &sess, nil
}

// Destroy removes a session. Removing a missing session is a no-op.
func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	delete(s.saved, id)
	return nil
}

// Len reports the number of stored records. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
