package main

// @title           Shelfreview API
// @version         1.0
// @description     Books, reviews, ratings, recommendations and AI summaries.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/config"
	"github.com/snnyvrz/shelfreview/internal/db"
	docs "github.com/snnyvrz/shelfreview/internal/docs"
	"github.com/snnyvrz/shelfreview/internal/handler"
	"github.com/snnyvrz/shelfreview/internal/logging"
	"github.com/snnyvrz/shelfreview/internal/middleware"
	"github.com/snnyvrz/shelfreview/internal/rating"
	"github.com/snnyvrz/shelfreview/internal/recommend"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"github.com/snnyvrz/shelfreview/internal/summary"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const appVersion = "0.1.0"

// shutdownTimeout covers an in-flight summary's generation deadline.
const shutdownTimeout = 200 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	database, err := db.ConnectWithRetry(cfg, logger.Named("db"))
	if err != nil {
		return err
	}
	if err := db.Migrate(database); err != nil {
		return err
	}

	books := repository.NewGormBookRepository(database)
	reviews := repository.NewGormReviewRepository(database)

	aggregator := rating.NewAggregator(books, reviews, logger.Named("rating"))
	selector := recommend.NewSelector(reviews, books)
	summarizer := summary.New(cfg.Summary.Client(), summary.WithLogger(logger))
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAccessTTL)

	e := gin.New()
	e.Use(logging.Middleware(logger.Named("http")), gin.Recovery())

	if err := e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	}); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"

	healthHandler := handler.NewHealthHandler(database, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	guards := handler.Guards{
		Auth:      auth.RequireAuth(jwtManager),
		RateLimit: middleware.RateLimit(cfg.Summary.RateLimit, cfg.Summary.RateBurst, logger.Named("ratelimit")),
	}

	api := e.Group("/api/v1")
	{
		handler.NewBookHandler(books, reviews, logger).RegisterRoutes(api, guards)
		handler.NewReviewHandler(reviews, books, aggregator, logger).RegisterRoutes(api, guards)
		handler.NewSummaryHandler(books, summarizer, logger).RegisterRoutes(api, guards)
		handler.NewRecommendationHandler(selector, logger).RegisterRoutes(api, guards)
	}

	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("version", appVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
