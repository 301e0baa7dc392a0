package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/avelasq/moviefavs/internal/models"
	"github.com/avelasq/moviefavs/internal/repo"
)

var testSecret = []byte("test-jwt-secret")

func newTestStore(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.BlacklistedToken{}, &models.Favorite{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return repo.New(db)
}

func newTestAuthService(t *testing.T) (*AuthService, *repo.GormRepo) {
	t.Helper()

	store := newTestStore(t)
	svc := &AuthService{
		Users:     store,
		Blacklist: store,
		JWTSecret: testSecret,
		TokenTTL:  15 * time.Minute,
	}
	return svc, store
}
