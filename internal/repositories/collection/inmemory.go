package collection

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Documents are stored as JSON so callers never share memory with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Load retrieves a player's document
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	raw, exists := r.store[input.PlayerID]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("no collection found for player %s", input.PlayerID)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "collection document is corrupt")
	}
	if err := checkDocument(&doc); err != nil {
		return nil, err
	}

	return &LoadOutput{Document: &doc}, nil
}

// Save creates or replaces a player's document
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection")
	}

	r.mu.Lock()
	r.store[input.PlayerID] = data
	r.mu.Unlock()

	return &SaveOutput{}, nil
}

// Delete removes a player's document
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.store[input.PlayerID]
	delete(r.store, input.PlayerID)

	return &DeleteOutput{Existed: existed}, nil
}
