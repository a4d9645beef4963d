package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"herohome/docs" // swagger docs
	"herohome/internal/auth"
	"herohome/internal/cache"
	"herohome/internal/config"
	"herohome/internal/db"
	"herohome/internal/handler"
	"herohome/internal/logger"
	"herohome/internal/metrics"
	"herohome/internal/repository"
	"herohome/internal/router"
	"herohome/internal/service"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Hero Home API
// @version 1.0
// @description Home-services marketplace API: users, services, bookings, reviews and dashboards.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("config")
	}

	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	metrics.Register(prometheus.DefaultRegisterer)

	client, err := db.NewMongo(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo client")
	}
	database := client.Database(cfg.DBName)

	// An unreachable database is logged, not fatal: the server still serves
	// and requests fail until the cluster comes back.
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	if err := db.Ping(startCtx, client); err != nil {
		log.Error().Err(err).Msg("mongo ping failed")
	} else {
		log.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")
		if err := db.EnsureIndexes(startCtx, database); err != nil {
			log.Error().Err(err).Msg("ensure indexes")
		}
	}
	cancel()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	serviceRepo := repository.NewServiceRepository(database)
	bookingRepo := repository.NewBookingRepository(database)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	catalogService := service.NewCatalogService(serviceRepo)
	bookingService := service.NewBookingService(bookingRepo)
	reviewService := service.NewReviewService(serviceRepo)
	statsService := service.NewStatsService(userRepo, serviceRepo, bookingRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, log, router.Handlers{
		Users:    handler.NewUserHandler(userService),
		Auth:     handler.NewAuthHandler(authService),
		Services: handler.NewServiceHandler(catalogService),
		Bookings: handler.NewBookingHandler(bookingService),
		Reviews:  handler.NewReviewHandler(reviewService),
		Stats:    handler.NewStatsHandler(statsService),
	}, userService)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Msg("Hero Home server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := cacheClient.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
