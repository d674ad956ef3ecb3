// Package prefs persists the small amount of state the updater keeps between
// runs: how many checks found an update, and whether the user asked to stop
// being prompted.
package prefs

import (
	"context"
	"sync"
)

// Namespace prefixes every stored key.
const Namespace = "PrefAppUpdater"

const (
	keyShow             = Namespace + ".show"
	keySuccessfulChecks = Namespace + ".successfulChecks"
)

// Store persists the updater's counter and flag.
type Store interface {
	// ShowEnabled reports whether prompts are allowed. Defaults to true.
	ShowEnabled(ctx context.Context) (bool, error)
	SetShowEnabled(ctx context.Context, enabled bool) error
	// SuccessfulChecks is the number of checks that found an update.
	SuccessfulChecks(ctx context.Context) (int, error)
	// IncrementSuccessfulChecks adds one and returns the new count.
	IncrementSuccessfulChecks(ctx context.Context) (int, error)
	// Reset clears the namespace.
	Reset(ctx context.Context) error
	Close() error
}

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu     sync.Mutex
	hidden bool
	checks int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ShowEnabled(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.hidden, nil
}

func (m *MemoryStore) SetShowEnabled(_ context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden = !enabled
	return nil
}

func (m *MemoryStore) SuccessfulChecks(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks, nil
}

func (m *MemoryStore) IncrementSuccessfulChecks(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++
	return m.checks, nil
}

func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden = false
	m.checks = 0
	return nil
}

func (m *MemoryStore) Close() error { return nil }
