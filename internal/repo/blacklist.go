package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/avelasq/moviefavs/internal/models"
)

// ErrTokenAlreadyBlacklisted is returned on a duplicate insert. The unique
// index on the token column keeps at most one row per token; callers may
// treat the duplicate as a no-op since the expiry was already recorded.
var ErrTokenAlreadyBlacklisted = errors.New("token already blacklisted")

func (r *GormRepo) AddToBlacklist(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	record := models.BlacklistedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := r.DB.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTokenAlreadyBlacklisted
		}
		return err
	}
	return nil
}

// IsBlacklisted is a point lookup by the exact token string. A row whose
// expiry already passed counts as not blacklisted: the token itself fails
// verification on expiry anyway, the row is just waiting for the sweeper.
func (r *GormRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.BlacklistedToken{}).
		Where("token = ? AND expires_at > ?", token, time.Now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SweepExpired deletes every record whose expiry has passed and returns how
// many rows went away. A single bounded delete, safe to run concurrently
// with AddToBlacklist and IsBlacklisted.
func (r *GormRepo) SweepExpired(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&models.BlacklistedToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
