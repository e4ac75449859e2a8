// Package hexcrawl provides persistence for hexcrawl aggregates. Storage is
// the only boundary where I/O happens; every engine operation is pure
// in-memory computation over a loaded aggregate.
package hexcrawl

//go:generate mockgen -destination=mock/mock_repository.go -package=hexcrawlmock github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl Repository

import (
	"context"

	"github.com/wildlands/hexcrawl-api/internal/entities"
)

// Repository defines the interface for hexcrawl state persistence.
// Serialization is lossless: a stored aggregate round-trips exactly,
// including travel log order and timestamps.
type Repository interface {
	// Create stores a new hexcrawl.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a hexcrawl with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a hexcrawl by ID.
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the hexcrawl doesn't exist
	// Returns errors.DataLoss if the stored state is corrupt
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing hexcrawl.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the hexcrawl doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a hexcrawl by ID.
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the hexcrawl doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for storing a new hexcrawl.
type CreateInput struct {
	State *entities.HexcrawlState
}

// CreateOutput defines the output for storing a new hexcrawl.
type CreateOutput struct {
	State *entities.HexcrawlState
}

// GetInput defines the input for loading a hexcrawl.
type GetInput struct {
	ID string
}

// GetOutput defines the output for loading a hexcrawl.
type GetOutput struct {
	State *entities.HexcrawlState
}

// UpdateInput defines the input for overwriting a hexcrawl.
type UpdateInput struct {
	State *entities.HexcrawlState
}

// UpdateOutput defines the output for overwriting a hexcrawl.
type UpdateOutput struct {
	State *entities.HexcrawlState
}

// DeleteInput defines the input for deleting a hexcrawl.
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a hexcrawl.
type DeleteOutput struct{}
