package transport

import "time"

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public shape of a user. It never carries the hash.
type UserView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResult struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type MovieDTO struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Overview        string  `json:"overview"`
	PosterPath      *string `json:"poster_path"`
	ReleaseDate     string  `json:"release_date"`
	VoteAverage     float64 `json:"vote_average"`
	SuggestionScore int     `json:"suggestionScore"`
}

type AddFavoriteRequest struct {
	MovieID int `json:"movieId"`
}

type FavoriteDTO struct {
	ID                      uint      `json:"id"`
	MovieID                 int       `json:"movieId"`
	Title                   string    `json:"title"`
	Overview                *string   `json:"overview"`
	PosterPath              *string   `json:"posterPath"`
	ReleaseDate             *string   `json:"releaseDate"`
	VoteAverage             *float64  `json:"voteAverage"`
	AddedAt                 time.Time `json:"addedAt"`
	SuggestionForTodayScore int       `json:"suggestionForTodayScore"`
}
