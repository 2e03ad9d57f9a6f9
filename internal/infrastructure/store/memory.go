// Package store provides the credential store: one bearer token per session,
// durable in Redis when available, with a process-local fallback so an
// unavailable backend degrades persistence instead of breaking logins.
package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process credential store. Entries expire after
// ttl; a ttl of zero disables expiry.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (m *Memory) Save(_ context.Context, sessionID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{token: token}
	if m.ttl > 0 {
		entry.expiresAt = time.Now().Add(m.ttl)
	}
	m.entries[sessionID] = entry
	return nil
}

func (m *Memory) Read(_ context.Context, sessionID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[sessionID]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, sessionID)
		return "", false, nil
	}
	return entry.token, true, nil
}

func (m *Memory) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}
