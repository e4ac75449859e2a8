package hexcrawl

import (
	"context"
	"sync"

	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/errors"
)

// InMemoryRepository implements Repository with process-local storage, for
// tests and throwaway sessions.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.HexcrawlState
}

// NewInMemory creates an empty in-memory repository.
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.HexcrawlState),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.State.ID]; exists {
		return nil, errors.AlreadyExistsf("hexcrawl with ID %s already exists", input.State.ID)
	}

	r.store[input.State.ID] = input.State.Clone()
	return &CreateOutput{State: input.State}, nil
}

func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
	}

	// Hand out a clone so callers cannot mutate stored state directly.
	return &GetOutput{State: state.Clone()}, nil
}

func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.State.ID]; !exists {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.State.ID)
	}

	r.store[input.State.ID] = input.State.Clone()
	return &UpdateOutput{State: input.State}, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
	}

	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}
