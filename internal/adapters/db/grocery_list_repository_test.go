package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/adapters/db"
	"github.com/emartell/grocery-be/internal/core/domain"
	"github.com/emartell/grocery-be/test/helpers"
)

func TestGroceryListRepository_RoundTrip(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	repo, err := db.NewGroceryListRepository(ctx, database, helpers.TestLogger())
	require.NoError(t, err)

	list := helpers.CreateTestList()
	added, err := repo.Add(ctx, list)
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Positive(t, added.ID)

	got, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, list.Name, got.Name)
	assert.Equal(t, list.Color, got.Color)
	require.NotNil(t, got.CreatedOn)
	assert.True(t, got.CreatedOn.Equal(*list.CreatedOn))
	assert.Nil(t, got.OwnerUserID)
}

func TestGroceryListRepository_OptionalFields(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	repo, err := db.NewGroceryListRepository(ctx, database, helpers.TestLogger())
	require.NoError(t, err)

	owner := int64(42)
	added, err := repo.Add(ctx, &domain.GroceryList{
		Name:        "Office pantry",
		OwnerUserID: &owner,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CreatedOn)
	assert.Empty(t, got.Color)
	require.NotNil(t, got.OwnerUserID)
	assert.Equal(t, owner, *got.OwnerUserID)
}

func TestGroceryListRepository_UpdateDelete(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	repo, err := db.NewGroceryListRepository(ctx, database, helpers.TestLogger())
	require.NoError(t, err)

	added, err := repo.Add(ctx, helpers.CreateTestList())
	require.NoError(t, err)

	added.Name = "Sunday market"
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	added.CreatedOn = &now
	updated, err := repo.Update(ctx, added)
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, err := repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunday market", got.Name)

	deleted, err := repo.Delete(ctx, added)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	got, err = repo.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGroceryListRepository_GuardsNonPositiveID(t *testing.T) {
	database := helpers.SetupTestDB(t)
	ctx := context.Background()

	repo, err := db.NewGroceryListRepository(ctx, database, helpers.TestLogger())
	require.NoError(t, err)

	got, err := repo.Get(ctx, 0)
	assert.NoError(t, err)
	assert.Nil(t, got)

	updated, err := repo.Update(ctx, &domain.GroceryList{Name: "x"})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.Delete(ctx, &domain.GroceryList{Name: "x"})
	assert.NoError(t, err)
	assert.Nil(t, deleted)
}
