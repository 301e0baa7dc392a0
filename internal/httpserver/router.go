package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelasq/moviefavs/internal/middleware"
)

type Deps struct {
	Log       *slog.Logger
	Auth      *AuthHandler
	Movies    *MovieHandler
	Favorites *FavoriteHandler
	Gate      *middleware.TokenGate
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(
		echomw.Recover(),
		middleware.RequestLogger(d.Log),
		echomw.Secure(),
	)

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "moviefavs API",
			"version": "1.0.0",
		})
	})

	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	private := api.Group("", d.Gate.RequireAuth)
	private.POST("/auth/logout", d.Auth.Logout)
	private.GET("/movies", d.Movies.Search)
	private.POST("/favorites", d.Favorites.Add)
	private.GET("/favorites", d.Favorites.List)
	private.GET("/favorites/search", d.Favorites.Search)
	private.DELETE("/favorites/:movieId", d.Favorites.Remove)
}
