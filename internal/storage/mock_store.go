package storage

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store for testing.
type MockStore struct {
	mu       sync.RWMutex
	files    map[string][]byte
	failures map[string]error
	calls    MockCalls
	emitted  []string
}

// MockCalls tracks method invocations for test verification.
type MockCalls struct {
	ReadFile int
	Emit     int
	Remove   int
	Exists   int
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		files:    make(map[string][]byte),
		failures: make(map[string]error),
	}
}

// FailEmit makes every Emit of name return err. A nil err clears the failure.
func (m *MockStore) FailEmit(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, name)
		return
	}
	m.failures[name] = err
}

// ReadFile returns a copy of the stored contents.
func (m *MockStore) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.ReadFile++

	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotFound{Name: name}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Emit stores a copy of data under name.
func (m *MockStore) Emit(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Emit++

	if err, ok := m.failures[name]; ok {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[name] = stored
	m.emitted = append(m.emitted, name)
	return nil
}

// Remove deletes name.
func (m *MockStore) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Remove++
	delete(m.files, name)
	return nil
}

// Exists reports whether name is stored.
func (m *MockStore) Exists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Exists++
	_, ok := m.files[name]
	return ok, nil
}

// Calls returns the invocation counters.
func (m *MockStore) Calls() MockCalls {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// ResetCalls clears the invocation counters and the emission log.
func (m *MockStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = MockCalls{}
	m.emitted = nil
}

// Emitted returns the names passed to successful Emit calls, in order.
func (m *MockStore) Emitted() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.emitted))
	copy(out, m.emitted)
	return out
}

// Names returns every stored name, sorted.
func (m *MockStore) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
