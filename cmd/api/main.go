package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/siscec-api/internal/config"
	"github.com/jwalitptl/siscec-api/internal/database"
	alertHandler "github.com/jwalitptl/siscec-api/internal/handler/alert"
	authHandler "github.com/jwalitptl/siscec-api/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/siscec-api/internal/handler/dashboard"
	healthHandler "github.com/jwalitptl/siscec-api/internal/handler/health"
	vitalsHandler "github.com/jwalitptl/siscec-api/internal/handler/vitals"
	"github.com/jwalitptl/siscec-api/internal/repository/sqlstore"
	"github.com/jwalitptl/siscec-api/internal/router"
	alertService "github.com/jwalitptl/siscec-api/internal/service/alert"
	authService "github.com/jwalitptl/siscec-api/internal/service/auth"
	dashboardService "github.com/jwalitptl/siscec-api/internal/service/dashboard"
	healthService "github.com/jwalitptl/siscec-api/internal/service/health"
	vitalsService "github.com/jwalitptl/siscec-api/internal/service/vitals"
	"github.com/jwalitptl/siscec-api/pkg/logger"
	"github.com/jwalitptl/siscec-api/pkg/metrics"
	"github.com/jwalitptl/siscec-api/pkg/validator"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level)})

	// Metrics stay nil unless enabled; every consumer treats nil as a no-op.
	var m *metrics.Metrics
	var obs database.Observer
	if cfg.Monitoring.PrometheusEnabled {
		m = metrics.New(cfg.Monitoring.Namespace)
		obs = m
	}

	gw, err := database.New(cfg.Database, appLog, obs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database gateway")
	}
	defer gw.Close()

	// Initialize repositories
	base := sqlstore.NewBaseRepository(gw, appLog)
	healthRepo := sqlstore.NewHealthRepository(base)
	userRepo := sqlstore.NewUserRepository(base)
	vitalsRepo := sqlstore.NewVitalSignsRepository(base)
	alertRepo := sqlstore.NewAlertRepository(base)
	dashboardRepo := sqlstore.NewDashboardRepository(base)

	// Initialize services
	healthSvc := healthService.NewService(healthRepo)
	authSvc := authService.NewService(userRepo, appLog)
	vitalsSvc := vitalsService.NewService(vitalsRepo, validator.New(), appLog)
	alertSvc := alertService.NewService(alertRepo, appLog)
	dashboardSvc := dashboardService.NewService(dashboardRepo, appLog)

	r := router.NewRouter(
		appLog,
		router.ConfigFrom(cfg, m),
		healthHandler.NewHandler(healthSvc, cfg.Database.Label, appLog),
		authHandler.NewHandler(authSvc),
		vitalsHandler.NewHandler(vitalsSvc),
		alertHandler.NewHandler(alertSvc, m),
		dashboardHandler.NewHandler(dashboardSvc, m),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.Database.Driver).
			Bool("pooled", cfg.Database.Pooled).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
