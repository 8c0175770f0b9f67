package storage

import "sync"

// Memory is an in-process Medium used by tests and as a fallback when no
// durable file is wanted.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte

	// FailWrites, when set, makes Set return this error. Tests use it to
	// exercise write-failure propagation.
	FailWrites error
}

// NewMemory returns an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get reads a slot.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

// Set writes a slot.
func (m *Memory) Set(key string, value []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.slots[key] = cp
	return nil
}
