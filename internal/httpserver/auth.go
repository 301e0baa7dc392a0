package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/internal/apperr"
	"github.com/avelasq/moviefavs/internal/middleware"
	"github.com/avelasq/moviefavs/internal/service"
	"github.com/avelasq/moviefavs/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("invalid body: %w", apperr.ErrValidation)
	}

	view, err := h.Svc.Register(ctx, req)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusCreated, view, "User registered successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("invalid body: %w", apperr.ErrValidation)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, res, "Login successful")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := middleware.CurrentToken(c)
	if err != nil {
		return err
	}
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Logout(ctx, token, userID); err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, nil, "Logout successful")
}
