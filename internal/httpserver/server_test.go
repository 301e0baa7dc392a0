package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avelasq/moviefavs/internal/middleware"
	"github.com/avelasq/moviefavs/internal/models"
	"github.com/avelasq/moviefavs/internal/repo"
	"github.com/avelasq/moviefavs/internal/service"
	"github.com/avelasq/moviefavs/internal/tmdb"
	"github.com/avelasq/moviefavs/pkg/logging"
)

var testSecret = []byte("test-jwt-secret")

type fakeProvider struct {
	movies map[int]tmdb.Movie
}

func (f *fakeProvider) SearchMovies(_ context.Context, _ string) ([]tmdb.Movie, error) {
	out := make([]tmdb.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeProvider) GetMovieByID(_ context.Context, id int) (*tmdb.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return nil, tmdb.ErrMovieNotFound
	}
	return &m, nil
}

type testEnv struct {
	e     *echo.Echo
	store *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.BlacklistedToken{}, &models.Favorite{}))

	store := repo.New(db)
	logger := logging.New("error")

	authSvc := &service.AuthService{
		Users:     store,
		Blacklist: store,
		JWTSecret: testSecret,
		TokenTTL:  15 * time.Minute,
	}
	provider := &fakeProvider{movies: map[int]tmdb.Movie{
		550: {ID: 550, Title: "Fight Club", Overview: "An insomniac office worker...", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
	}}
	movieSvc := &service.MovieService{Provider: provider}
	favSvc := &service.FavoriteService{
		Favorites: store,
		Movies:    provider,
	}

	e := echo.New()
	Register(e, &Deps{
		Log:       logger,
		Auth:      &AuthHandler{Svc: authSvc},
		Movies:    &MovieHandler{Svc: movieSvc},
		Favorites: &FavoriteHandler{Svc: favSvc},
		Gate:      middleware.NewTokenGate(store, testSecret),
	})

	return &testEnv{e: e, store: store}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func registerBody() map[string]string {
	return map[string]string{
		"email":     "a@x.com",
		"firstName": "A",
		"lastName":  "B",
		"password":  "secret1",
	}
}

func (env *testEnv) registerAndLogin(t *testing.T) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/auth/register", registerBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}
