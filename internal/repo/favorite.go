package repo

import (
	"context"
	"errors"

	"github.com/avelasq/moviefavs/internal/models"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

func (r *GormRepo) IsFavorited(ctx context.Context, userID uint, movieID int) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) FindFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var items []models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, userID uint, movieID int) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// SearchFavorites is the fallback used when no search index is configured.
func (r *GormRepo) SearchFavorites(ctx context.Context, userID uint, query string) ([]models.Favorite, error) {
	var items []models.Favorite
	pattern := "%" + query + "%"
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND (title LIKE ? OR overview LIKE ?)", userID, pattern, pattern).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
