package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"seriestracker/internal/model"
)

// MemoryStore holds the encoded document in memory. Used by tests; goes
// through the same encode/decode round trip as the durable backends.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) GetState(_ context.Context) (model.TrackerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeState(m.raw), nil
}

func (m *MemoryStore) SetState(_ context.Context, state model.TrackerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "error marshalling TrackerState")
	}
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}

// SetRaw seeds the stored bytes directly, bypassing encoding. Lets tests
// exercise corrupt-document recovery.
func (m *MemoryStore) SetRaw(raw []byte) {
	m.mu.Lock()
	m.raw = append([]byte(nil), raw...)
	m.mu.Unlock()
}
