package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	FirstName    string    `gorm:"not null"                 json:"firstName"`
	LastName     string    `gorm:"not null"                 json:"lastName"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BlacklistedToken is a revoked access token. A row only matters until
// ExpiresAt (copied from the token's own exp claim) passes; after that it is
// dead weight awaiting the sweeper.
type BlacklistedToken struct {
	ID            uint      `gorm:"primaryKey"            json:"id"`
	Token         string    `gorm:"uniqueIndex;not null"  json:"token"`
	UserID        uint      `gorm:"index;not null"        json:"user_id"`
	ExpiresAt     time.Time `gorm:"index;not null"        json:"expires_at"`
	BlacklistedAt time.Time `gorm:"autoCreateTime"        json:"blacklisted_at"`
}

type Favorite struct {
	ID          uint      `gorm:"primaryKey"                            json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_movie;not null"   json:"userId"`
	MovieID     int       `gorm:"uniqueIndex:idx_user_movie;not null"   json:"movieId"`
	Title       string    `gorm:"not null"                              json:"title"`
	Overview    *string   `json:"overview"`
	PosterPath  *string   `json:"posterPath"`
	ReleaseDate *string   `json:"releaseDate"`
	VoteAverage *float64  `json:"voteAverage"`
	MovieData   string    `gorm:"not null"                              json:"-"`
	AddedAt     time.Time `gorm:"autoCreateTime"                        json:"addedAt"`
}
