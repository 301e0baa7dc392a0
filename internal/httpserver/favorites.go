package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/internal/apperr"
	"github.com/avelasq/moviefavs/internal/middleware"
	"github.com/avelasq/moviefavs/internal/service"
)

type FavoriteHandler struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	// clients may send either movieId or a raw movie object with an id field
	var req struct {
		MovieID int `json:"movieId"`
		ID      int `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("invalid body: %w", apperr.ErrValidation)
	}
	movieID := req.MovieID
	if movieID == 0 {
		movieID = req.ID
	}

	fav, err := h.Svc.AddFavorite(ctx, userID, movieID)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusCreated, fav, "Movie added to favorites")
}

func (h *FavoriteHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	favorites, err := h.Svc.GetFavorites(ctx, userID)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, favorites, "Favorites retrieved successfully")
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		return fmt.Errorf("invalid movie id: %w", apperr.ErrValidation)
	}

	if err := h.Svc.RemoveFavorite(ctx, userID, movieID); err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, nil, "Favorite removed successfully")
}

func (h *FavoriteHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	favorites, err := h.Svc.SearchFavorites(ctx, userID, c.QueryParam("q"))
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, favorites, "Favorites retrieved successfully")
}
