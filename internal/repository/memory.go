package repository

import (
	"context"
	"sync"
)

type memoryProfile struct {
	mu   sync.RWMutex
	blob *string
}

// NewMemoryProfileRepository keeps the blob in process memory; nothing survives a restart.
func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfile{}
}

func (that *memoryProfile) Get(_ context.Context) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.blob == nil {
		return "", ErrProfileNotFound
	}

	return *that.blob, nil
}

func (that *memoryProfile) Set(_ context.Context, blob string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.blob = &blob

	return nil
}

func (that *memoryProfile) Delete(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.blob = nil

	return nil
}
