package store

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"seriestracker/internal/model"
)

// FileStore keeps the tracker document in a single JSON file, the
// device-storage analog for a single-writer local deployment.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) GetState(_ context.Context) (model.TrackerState, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.EmptyState(), nil
		}
		return model.EmptyState(), errors.Wrapf(err, "error reading state file: %s", fs.path)
	}
	return decodeState(raw), nil
}

func (fs *FileStore) SetState(_ context.Context, state model.TrackerState) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "error marshalling TrackerState")
	}
	if err := os.WriteFile(fs.path, raw, 0644); err != nil {
		return errors.Wrapf(err, "error writing state file: %s", fs.path)
	}
	return nil
}
