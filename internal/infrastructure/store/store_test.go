package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMemory_SaveReadClear(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	if _, ok, _ := m.Read(ctx, "s1"); ok {
		t.Fatalf("expected absent token before save")
	}

	if err := m.Save(ctx, "s1", "T1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	token, ok, err := m.Read(ctx, "s1")
	if err != nil || !ok || token != "T1" {
		t.Fatalf("expected T1, got %q ok=%v err=%v", token, ok, err)
	}

	// Overwrite keeps a single active token.
	_ = m.Save(ctx, "s1", "T2")
	token, _, _ = m.Read(ctx, "s1")
	if token != "T2" {
		t.Fatalf("expected overwrite to T2, got %q", token)
	}

	if err := m.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := m.Read(ctx, "s1"); ok {
		t.Fatalf("expected absent token after clear")
	}
	// Clearing twice is a no-op.
	if err := m.Clear(ctx, "s1"); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	_ = m.Save(ctx, "s1", "T1")
	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := m.Read(ctx, "s1"); ok {
		t.Fatalf("expected expired token to read as absent")
	}
}

type failingStore struct {
	err        error
	clearFails int
	tokens     map[string]string
}

func (f *failingStore) Save(_ context.Context, sessionID, token string) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[sessionID] = token
	return nil
}

func (f *failingStore) Read(_ context.Context, sessionID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	token, ok := f.tokens[sessionID]
	return token, ok, nil
}

func (f *failingStore) Clear(_ context.Context, sessionID string) error {
	if f.clearFails > 0 {
		f.clearFails--
		return errors.New("clear failed")
	}
	if f.err != nil {
		return f.err
	}
	delete(f.tokens, sessionID)
	return nil
}

func TestFallback_DegradesToMemoryWhenPrimaryDown(t *testing.T) {
	primary := &failingStore{err: errors.New("connection refused"), tokens: map[string]string{}}
	fb := NewFallback(primary, NewMemory(0), zerolog.Nop())
	ctx := context.Background()

	if err := fb.Save(ctx, "s1", "T1"); err != nil {
		t.Fatalf("save must degrade, not fail: %v", err)
	}
	token, ok, err := fb.Read(ctx, "s1")
	if err != nil || !ok || token != "T1" {
		t.Fatalf("expected T1 from memory, got %q ok=%v err=%v", token, ok, err)
	}

	if err := fb.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear must not fail: %v", err)
	}
	if _, ok, _ := fb.Read(ctx, "s1"); ok {
		t.Fatalf("expected cleared token")
	}
}

func TestFallback_PrefersPrimaryWhenHealthy(t *testing.T) {
	primary := &failingStore{tokens: map[string]string{}}
	fb := NewFallback(primary, NewMemory(0), zerolog.Nop())
	ctx := context.Background()

	if err := fb.Save(ctx, "s1", "T1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if primary.tokens["s1"] != "T1" {
		t.Fatalf("expected token in primary store, got %q", primary.tokens["s1"])
	}

	token, ok, err := fb.Read(ctx, "s1")
	if err != nil || !ok || token != "T1" {
		t.Fatalf("expected T1 from primary, got %q ok=%v err=%v", token, ok, err)
	}
}

func TestFallback_ClearRetriesPrimaryOnce(t *testing.T) {
	primary := &failingStore{clearFails: 1, tokens: map[string]string{}}
	fb := NewFallback(primary, NewMemory(0), zerolog.Nop())
	ctx := context.Background()

	_ = fb.Save(ctx, "s1", "T1")

	// First clear attempt fails transiently; the retry must revoke the token.
	if err := fb.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear must not fail: %v", err)
	}
	if _, ok := primary.tokens["s1"]; ok {
		t.Fatalf("expected retried clear to remove the token from the primary store")
	}
}

func TestFallback_OutageTokenReadableAfterRecovery(t *testing.T) {
	primary := &failingStore{err: errors.New("down"), tokens: map[string]string{}}
	fb := NewFallback(primary, NewMemory(0), zerolog.Nop())
	ctx := context.Background()

	_ = fb.Save(ctx, "s1", "T1")

	// Primary comes back empty: the in-memory copy still serves the session.
	primary.err = nil
	token, ok, err := fb.Read(ctx, "s1")
	if err != nil || !ok || token != "T1" {
		t.Fatalf("expected T1 from memory after recovery, got %q ok=%v err=%v", token, ok, err)
	}
}
