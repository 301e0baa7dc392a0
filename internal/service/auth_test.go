package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasq/moviefavs/internal/apperr"
	"github.com/avelasq/moviefavs/internal/transport"
	"github.com/avelasq/moviefavs/pkg/tokens"
)

func registerReq() transport.RegisterRequest {
	return transport.RegisterRequest{
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "B",
		Password:  "secret1",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	view, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "a@x.com", view.Email)
	assert.Equal(t, "A", view.FirstName)
	assert.Equal(t, "B", view.LastName)

	// the public view must never leak the hash
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret1")
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.RegisterRequest)
	}{
		{name: "empty email", mutate: func(r *transport.RegisterRequest) { r.Email = "" }},
		{name: "email without at-sign", mutate: func(r *transport.RegisterRequest) { r.Email = "not-an-email" }},
		{name: "empty first name", mutate: func(r *transport.RegisterRequest) { r.FirstName = "" }},
		{name: "empty last name", mutate: func(r *transport.RegisterRequest) { r.LastName = "" }},
		{name: "short password", mutate: func(r *transport.RegisterRequest) { r.Password = "12345" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := registerReq()
			tt.mutate(&req)

			view, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.Nil(t, view)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "a@x.com", res.User.Email)

	claims, err := tokens.Parse(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAuthService_Login_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, errWrongPw := svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: "wrong"})
	require.Error(t, errWrongPw)
	assert.ErrorIs(t, errWrongPw, apperr.ErrInvalidCredentials)

	_, errNoUser := svc.Login(ctx, transport.LoginRequest{Email: "nobody@x.com", Password: "anything"})
	require.Error(t, errNoUser)
	assert.ErrorIs(t, errNoUser, apperr.ErrInvalidCredentials)

	// indistinguishable to the caller
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	res, err := svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Token, res.User.ID))

	revoked, err := store.IsBlacklisted(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	// repeat logout with the same token is a safe no-op
	require.NoError(t, svc.Logout(ctx, res.Token, res.User.ID))
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	err := svc.Logout(ctx, "not-a-jwt", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestAuthService_Logout_ExpiryCopiedFromClaims(t *testing.T) {
	t.Parallel()

	svc, store := newTestAuthService(t)
	ctx := context.Background()

	token, err := tokens.Issue(9, "c@x.com", testSecret, -time.Minute)
	require.NoError(t, err)

	// an already expired token can still be recorded, but the record is
	// immediately dead from the membership-check standpoint
	require.NoError(t, svc.Logout(ctx, token, 9))

	revoked, err := store.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)
}
