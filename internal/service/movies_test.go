package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasq/moviefavs/internal/tmdb"
)

func TestMovieService_SearchMovies(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{movies: map[int]tmdb.Movie{
		1: {ID: 1, Title: "One"},
		2: {ID: 2, Title: "Two"},
		3: {ID: 3, Title: "Three"},
	}}
	svc := &MovieService{Provider: provider}

	movies, err := svc.SearchMovies(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, movies, 3)

	for _, m := range movies {
		assert.GreaterOrEqual(t, m.SuggestionScore, 0)
		assert.Less(t, m.SuggestionScore, 100)
	}
	assert.True(t, sort.SliceIsSorted(movies, func(i, j int) bool {
		return movies[i].SuggestionScore > movies[j].SuggestionScore
	}))
}
