package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/avelasq/moviefavs/internal/tmdb"
	"github.com/avelasq/moviefavs/internal/transport"
	"github.com/avelasq/moviefavs/pkg/logging"
)

type MovieProvider interface {
	SearchMovies(ctx context.Context, keyword string) ([]tmdb.Movie, error)
	GetMovieByID(ctx context.Context, id int) (*tmdb.Movie, error)
}

type MovieService struct {
	Provider MovieProvider
}

// SearchMovies proxies the metadata provider and decorates each result with
// a random suggestion score, best suggestions first.
func (s *MovieService) SearchMovies(ctx context.Context, keyword string) ([]transport.MovieDTO, error) {
	l := logging.FromContext(ctx).With("svc", "movies.search")

	movies, err := s.Provider.SearchMovies(ctx, keyword)
	if err != nil {
		l.Error("movie search failed", "error", err)
		return nil, fmt.Errorf("movie provider: %w", err)
	}

	dtos := make([]transport.MovieDTO, len(movies))
	for i, m := range movies {
		dtos[i] = transport.MovieDTO{
			ID:              m.ID,
			Title:           m.Title,
			Overview:        m.Overview,
			PosterPath:      m.PosterPath,
			ReleaseDate:     m.ReleaseDate,
			VoteAverage:     m.VoteAverage,
			SuggestionScore: rand.Intn(100),
		}
	}
	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].SuggestionScore > dtos[j].SuggestionScore
	})

	l.Info("movies fetched", "count", len(dtos), "keyword", keyword)
	return dtos, nil
}
