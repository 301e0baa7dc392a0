package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/internal/service"
)

type MovieHandler struct {
	Svc *service.MovieService
}

func (h *MovieHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	keyword := c.QueryParam("keyword")

	movies, err := h.Svc.SearchMovies(ctx, keyword)
	if err != nil {
		return err
	}

	return respondSuccess(c, http.StatusOK, movies, "Movies retrieved successfully")
}
