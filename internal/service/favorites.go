package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/avelasq/moviefavs/internal/apperr"
	"github.com/avelasq/moviefavs/internal/events"
	"github.com/avelasq/moviefavs/internal/models"
	"github.com/avelasq/moviefavs/internal/repo"
	"github.com/avelasq/moviefavs/internal/search"
	"github.com/avelasq/moviefavs/internal/tmdb"
	"github.com/avelasq/moviefavs/internal/transport"
	"github.com/avelasq/moviefavs/pkg/logging"
)

type FavoriteStore interface {
	IsFavorited(ctx context.Context, userID uint, movieID int) (bool, error)
	CreateFavorite(ctx context.Context, f *models.Favorite) error
	FindFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	DeleteFavorite(ctx context.Context, userID uint, movieID int) error
	SearchFavorites(ctx context.Context, userID uint, query string) ([]models.Favorite, error)
}

type FavoriteService struct {
	Favorites FavoriteStore
	Movies    MovieProvider
	Index     *search.FavoritesIndex
	Producer  *events.Producer
}

// AddFavorite fetches the movie's metadata from the provider and stores a
// denormalized copy alongside the raw payload.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID uint, movieID int) (*transport.FavoriteDTO, error) {
	l := logging.FromContext(ctx).With("svc", "favorites.add", "user_id", userID, "movie_id", movieID)

	if movieID <= 0 {
		return nil, fmt.Errorf("a movie id is required: %w", apperr.ErrValidation)
	}

	favorited, err := s.Favorites.IsFavorited(ctx, userID, movieID)
	if err != nil {
		l.Error("favorite lookup failed", "error", err)
		return nil, err
	}
	if favorited {
		return nil, fmt.Errorf("movie already in favorites: %w", apperr.ErrValidation)
	}

	movie, err := s.Movies.GetMovieByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, tmdb.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie %d: %w", movieID, apperr.ErrNotFound)
		}
		l.Error("movie fetch failed", "error", err)
		return nil, fmt.Errorf("movie provider: %w", err)
	}

	raw, err := json.Marshal(movie)
	if err != nil {
		return nil, err
	}

	fav := models.Favorite{
		UserID:     userID,
		MovieID:    movie.ID,
		Title:      movie.Title,
		MovieData:  string(raw),
		PosterPath: movie.PosterPath,
	}
	if movie.Overview != "" {
		fav.Overview = &movie.Overview
	}
	if movie.ReleaseDate != "" {
		fav.ReleaseDate = &movie.ReleaseDate
	}
	if movie.VoteAverage != 0 {
		fav.VoteAverage = &movie.VoteAverage
	}

	if err := s.Favorites.CreateFavorite(ctx, &fav); err != nil {
		l.Error("favorite create failed", "error", err)
		return nil, err
	}

	if err := s.Index.Index(ctx, &fav); err != nil {
		l.Error("favorite index failed", "error", err)
	}
	s.publish(ctx, userID, map[string]any{
		"type":    "favorite_added",
		"userId":  userID,
		"movieId": movie.ID,
		"title":   movie.Title,
	})

	dto := favoriteDTO(&fav, rand.Intn(100))
	l.Info("favorite added")
	return &dto, nil
}

func (s *FavoriteService) GetFavorites(ctx context.Context, userID uint) ([]transport.FavoriteDTO, error) {
	favorites, err := s.Favorites.FindFavoritesByUser(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("favorites fetch failed", "error", err)
		return nil, err
	}

	dtos := make([]transport.FavoriteDTO, len(favorites))
	for i := range favorites {
		dtos[i] = favoriteDTO(&favorites[i], rand.Intn(100))
	}
	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].SuggestionForTodayScore > dtos[j].SuggestionForTodayScore
	})
	return dtos, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uint, movieID int) error {
	l := logging.FromContext(ctx).With("svc", "favorites.remove", "user_id", userID, "movie_id", movieID)

	if err := s.Favorites.DeleteFavorite(ctx, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrFavoriteNotFound) {
			return fmt.Errorf("favorite %d: %w", movieID, apperr.ErrNotFound)
		}
		l.Error("favorite delete failed", "error", err)
		return err
	}

	if err := s.Index.Delete(ctx, userID, movieID); err != nil {
		l.Error("favorite unindex failed", "error", err)
	}
	s.publish(ctx, userID, map[string]any{
		"type":    "favorite_removed",
		"userId":  userID,
		"movieId": movieID,
	})

	l.Info("favorite removed")
	return nil
}

// SearchFavorites uses the search index when one is configured and falls
// back to a LIKE query on the favorites table otherwise.
func (s *FavoriteService) SearchFavorites(ctx context.Context, userID uint, query string) ([]transport.FavoriteDTO, error) {
	if query == "" {
		return nil, fmt.Errorf("a search query is required: %w", apperr.ErrValidation)
	}

	if s.Index == nil {
		favorites, err := s.Favorites.SearchFavorites(ctx, userID, query)
		if err != nil {
			return nil, err
		}
		return favoriteDTOs(favorites), nil
	}

	ids, err := s.Index.Search(ctx, userID, query)
	if err != nil {
		logging.FromContext(ctx).Error("favorites search failed", "error", err)
		return nil, err
	}

	favorites, err := s.Favorites.FindFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byMovie := make(map[int]*models.Favorite, len(favorites))
	for i := range favorites {
		byMovie[favorites[i].MovieID] = &favorites[i]
	}

	// keep the index's relevance order
	out := make([]transport.FavoriteDTO, 0, len(ids))
	for _, id := range ids {
		if fav, ok := byMovie[id]; ok {
			out = append(out, favoriteDTO(fav, 0))
		}
	}
	return out, nil
}

func (s *FavoriteService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicFavoriteEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func favoriteDTO(f *models.Favorite, score int) transport.FavoriteDTO {
	return transport.FavoriteDTO{
		ID:                      f.ID,
		MovieID:                 f.MovieID,
		Title:                   f.Title,
		Overview:                f.Overview,
		PosterPath:              f.PosterPath,
		ReleaseDate:             f.ReleaseDate,
		VoteAverage:             f.VoteAverage,
		AddedAt:                 f.AddedAt,
		SuggestionForTodayScore: score,
	}
}

func favoriteDTOs(favorites []models.Favorite) []transport.FavoriteDTO {
	out := make([]transport.FavoriteDTO, len(favorites))
	for i := range favorites {
		out[i] = favoriteDTO(&favorites[i], 0)
	}
	return out
}
