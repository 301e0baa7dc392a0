package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avelasq/moviefavs/internal/apperr"
	"github.com/avelasq/moviefavs/internal/events"
	"github.com/avelasq/moviefavs/internal/models"
	"github.com/avelasq/moviefavs/internal/repo"
	"github.com/avelasq/moviefavs/internal/transport"
	"github.com/avelasq/moviefavs/pkg/hash"
	"github.com/avelasq/moviefavs/pkg/logging"
	"github.com/avelasq/moviefavs/pkg/tokens"
)

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type TokenBlacklist interface {
	AddToBlacklist(ctx context.Context, token string, userID uint, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type AuthService struct {
	Users     UserStore
	Blacklist TokenBlacklist
	JWTSecret []byte
	TokenTTL  time.Duration
	Producer  *events.Producer
}

func UserViewOf(u *models.User) transport.UserView {
	return transport.UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.UserView, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validateRegister(req); err != nil {
		return nil, err
	}

	if _, err := s.Users.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email %q: %w", req.Email, apperr.ErrEmailTaken)
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		l.Error("register_failed", "reason", "user lookup", "error", err)
		return nil, err
	}

	pwHash, err := hash.Password(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: pwHash,
	}
	if err := s.Users.CreateUser(ctx, &user); err != nil {
		// lost the race against a concurrent register for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("email %q: %w", req.Email, apperr.ErrEmailTaken)
		}
		l.Error("register_failed", "reason", "user create", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	})

	view := UserViewOf(&user)
	l.Info("user_registered", "user_id", user.ID)
	return &view, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password so responses cannot be used to enumerate users.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperr.ErrValidation)
	}

	user, err := s.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "user lookup", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := tokens.Issue(user.ID, user.Email, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "reason", "token issue", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userId": user.ID,
		"email":  user.Email,
	})

	l.Info("login_successful", "user_id", user.ID)
	return &transport.LoginResult{
		User:  UserViewOf(user),
		Token: token,
	}, nil
}

// Logout blacklists the presented token until its natural expiry. The token
// already passed the gate on the way in, so the payload is decoded without
// re-verifying the signature, only to read the exp claim.
func (s *AuthService) Logout(ctx context.Context, token string, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	claims := tokens.DecodeUnverified(token)
	if claims == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("cannot decode token: %w", apperr.ErrInvalidToken)
	}

	err := s.Blacklist.AddToBlacklist(ctx, token, userID, claims.ExpiresAt.Time)
	if err != nil {
		if errors.Is(err, repo.ErrTokenAlreadyBlacklisted) {
			l.Warn("token already blacklisted")
			return nil
		}
		l.Error("logout_failed", "reason", "blacklist insert", "error", err)
		return err
	}

	s.publish(ctx, events.TopicUserEvents, userID, map[string]any{
		"type":   "user_logged_out",
		"userId": userID,
	})

	l.Info("logout_successful")
	return nil
}

func (s *AuthService) publish(ctx context.Context, topic string, userID uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func validateRegister(req transport.RegisterRequest) error {
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return fmt.Errorf("a valid email is required: %w", apperr.ErrValidation)
	case req.FirstName == "" || req.LastName == "":
		return fmt.Errorf("first and last name are required: %w", apperr.ErrValidation)
	case len(req.Password) < 6:
		return fmt.Errorf("password must be at least 6 characters: %w", apperr.ErrValidation)
	}
	return nil
}
