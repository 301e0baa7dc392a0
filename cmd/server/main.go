package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelasq/moviefavs/internal/config"
	"github.com/avelasq/moviefavs/internal/events"
	"github.com/avelasq/moviefavs/internal/httpserver"
	"github.com/avelasq/moviefavs/internal/middleware"
	"github.com/avelasq/moviefavs/internal/models"
	"github.com/avelasq/moviefavs/internal/repo"
	"github.com/avelasq/moviefavs/internal/search"
	"github.com/avelasq/moviefavs/internal/service"
	"github.com/avelasq/moviefavs/internal/tmdb"
	"github.com/avelasq/moviefavs/pkg/db"
	"github.com/avelasq/moviefavs/pkg/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.BlacklistedToken{}, &models.Favorite{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	store := repo.New(gdb)

	producer := events.NewProducer(cfg.KafkaBrokers)

	var favIndex *search.FavoritesIndex
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		favIndex = search.NewFavoritesIndex(esClient)
	}

	authSvc := &service.AuthService{
		Users:     store,
		Blacklist: store,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Producer:  producer,
	}
	movieSvc := &service.MovieService{
		Provider: tmdb.NewClient(cfg.TMDBAPIURL, cfg.TMDBAPIKey),
	}
	favSvc := &service.FavoriteService{
		Favorites: store,
		Movies:    movieSvc.Provider,
		Index:     favIndex,
		Producer:  producer,
	}

	sweeper := service.NewSweeper(store, cfg.SweepSchedule, logger)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("sweeper start error: %v", err)
	}

	httpserver.Register(e, &httpserver.Deps{
		Log:       logger,
		Auth:      &httpserver.AuthHandler{Svc: authSvc},
		Movies:    &httpserver.MovieHandler{Svc: movieSvc},
		Favorites: &httpserver.FavoriteHandler{Svc: favSvc},
		Gate:      middleware.NewTokenGate(store, cfg.JWTSecret),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	sweeper.Stop()
	if err := producer.Close(); err != nil {
		logger.Error("kafka producer close", "error", err)
	}
}
