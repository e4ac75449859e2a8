package hexcrawl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl"
)

func TestInMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := hexcrawl.NewInMemory()
	state := testState("hexcrawl_mem_1")

	_, err := repo.Create(ctx, hexcrawl.CreateInput{State: state})
	require.NoError(t, err)

	_, err = repo.Create(ctx, hexcrawl.CreateInput{State: state})
	assert.True(t, errors.IsAlreadyExists(err))

	got, err := repo.Get(ctx, hexcrawl.GetInput{ID: state.ID})
	require.NoError(t, err)
	assert.Equal(t, state, got.State)

	state.CurrentDay = 9
	_, err = repo.Update(ctx, hexcrawl.UpdateInput{State: state})
	require.NoError(t, err)

	got, err = repo.Get(ctx, hexcrawl.GetInput{ID: state.ID})
	require.NoError(t, err)
	assert.Equal(t, 9, got.State.CurrentDay)

	_, err = repo.Delete(ctx, hexcrawl.DeleteInput{ID: state.ID})
	require.NoError(t, err)

	_, err = repo.Get(ctx, hexcrawl.GetInput{ID: state.ID})
	assert.True(t, errors.IsNotFound(err))
}

func TestInMemoryIsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	repo := hexcrawl.NewInMemory()
	state := testState("hexcrawl_mem_iso")

	_, err := repo.Create(ctx, hexcrawl.CreateInput{State: state})
	require.NoError(t, err)

	// Mutating the caller's copy after Create must not leak into the store.
	state.RoleAssignments["navigator"] = "tampered"
	state.TravelLog[0].Notes = "tampered"

	got, err := repo.Get(ctx, hexcrawl.GetInput{ID: "hexcrawl_mem_iso"})
	require.NoError(t, err)
	assert.Equal(t, "Ashley", got.State.RoleAssignments["navigator"])
	assert.Equal(t, "", got.State.TravelLog[0].Notes)

	// Mutating the state returned by Get must not either.
	got.State.CurrentDay = 99
	again, err := repo.Get(ctx, hexcrawl.GetInput{ID: "hexcrawl_mem_iso"})
	require.NoError(t, err)
	assert.Equal(t, 3, again.State.CurrentDay)
}

func TestInMemoryValidatesInput(t *testing.T) {
	ctx := context.Background()
	repo := hexcrawl.NewInMemory()

	_, err := repo.Create(ctx, hexcrawl.CreateInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Get(ctx, hexcrawl.GetInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Delete(ctx, hexcrawl.DeleteInput{})
	assert.True(t, errors.IsInvalidArgument(err))
}
