package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/pkg/logging"
	"github.com/avelasq/moviefavs/pkg/tokens"
)

type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// TokenGate protects routes with bearer-token authentication. Order matters:
// extract, blacklist lookup, then signature/expiry verification. A store
// failure is an internal error, never a 401 — infrastructure trouble must
// not masquerade as bad credentials.
type TokenGate struct {
	Blacklist BlacklistChecker
	JWTSecret []byte
}

func NewTokenGate(blacklist BlacklistChecker, secret []byte) *TokenGate {
	return &TokenGate{Blacklist: blacklist, JWTSecret: secret}
}

func (g *TokenGate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "token_gate")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}
		token := strings.TrimPrefix(header, prefix)

		revoked, err := g.Blacklist.IsBlacklisted(ctx, token)
		if err != nil {
			l.Error("blacklist lookup failed", "error", err)
			return err
		}
		if revoked {
			l.Warn("revoked token presented")
			return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
		}

		claims, err := tokens.Parse(token, g.JWTSecret)
		if err != nil {
			l.Warn("token rejected", "reason", err.Error())
			msg := "invalid token"
			if errors.Is(err, tokens.ErrExpired) {
				msg = "token expired"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msg)
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("token", token)
		return next(c)
	}
}

// CurrentUserID reads the identity the gate attached. Only meaningful on
// routes behind RequireAuth.
func CurrentUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return id, nil
}

func CurrentEmail(c echo.Context) (string, error) {
	email, ok := c.Get("email").(string)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return email, nil
}

func CurrentToken(c echo.Context) (string, error) {
	token, ok := c.Get("token").(string)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return token, nil
}
