package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasq/moviefavs/internal/models"
)

func addFavorite(t *testing.T, r *GormRepo, userID uint, movieID int, title string) {
	t.Helper()
	overview := "some overview"
	f := models.Favorite{
		UserID:    userID,
		MovieID:   movieID,
		Title:     title,
		Overview:  &overview,
		MovieData: "{}",
	}
	require.NoError(t, r.CreateFavorite(context.Background(), &f))
}

func TestFavorite_CreateAndList(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	addFavorite(t, r, 1, 550, "Fight Club")
	addFavorite(t, r, 1, 680, "Pulp Fiction")
	addFavorite(t, r, 2, 550, "Fight Club")

	favorited, err := r.IsFavorited(ctx, 1, 550)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = r.IsFavorited(ctx, 2, 680)
	require.NoError(t, err)
	assert.False(t, favorited)

	items, err := r.FindFavoritesByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestFavorite_Delete(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	addFavorite(t, r, 1, 550, "Fight Club")

	require.NoError(t, r.DeleteFavorite(ctx, 1, 550))

	err := r.DeleteFavorite(ctx, 1, 550)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavorite_Search(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	addFavorite(t, r, 1, 550, "Fight Club")
	addFavorite(t, r, 1, 27205, "Inception")

	items, err := r.SearchFavorites(ctx, 1, "Fight")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 550, items[0].MovieID)

	items, err = r.SearchFavorites(ctx, 2, "Fight")
	require.NoError(t, err)
	assert.Empty(t, items)
}
