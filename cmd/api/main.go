package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/wejdenmesaoud/cashback/api/routes"
	"github.com/wejdenmesaoud/cashback/internal/auth"
	"github.com/wejdenmesaoud/cashback/internal/bonuses"
	"github.com/wejdenmesaoud/cashback/internal/cases"
	"github.com/wejdenmesaoud/cashback/internal/engineers"
	"github.com/wejdenmesaoud/cashback/internal/excelimport"
	"github.com/wejdenmesaoud/cashback/internal/reports"
	"github.com/wejdenmesaoud/cashback/internal/settings"
	"github.com/wejdenmesaoud/cashback/internal/teams"
	"github.com/wejdenmesaoud/cashback/internal/users"
	"github.com/wejdenmesaoud/cashback/pkg/activesessions"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
	"github.com/wejdenmesaoud/cashback/pkg/metrics"
	"github.com/wejdenmesaoud/cashback/pkg/migrate"
	"github.com/wejdenmesaoud/cashback/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	registry := prometheus.NewRegistry()
	authMetrics := metrics.NewAuthMetrics(registry)
	importMetrics := metrics.NewImportMetrics(registry)

	sessions := activesessions.New(cfg.ActiveSessions.TTL, nil)
	metrics.RegisterActiveUsersGauge(registry, sessions.Count)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	engineerRepo := engineers.NewRepository(gormDB)
	teamRepo := teams.NewRepository(gormDB)
	caseRepo := cases.NewRepository(gormDB)
	reportRepo := reports.NewRepository(gormDB)
	settingRepo := settings.NewRepository(gormDB)
	bonusRepo := bonuses.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionTracker: sessions,
		AuthMetrics:    authMetrics,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	caseStats, err := cases.NewService(caseRepo, engineerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create case statistics service", err)
		os.Exit(1)
	}

	reportGen, err := reports.NewService(reportRepo, engineerRepo, caseRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	importer, err := excelimport.NewService(excelimport.ServiceParams{
		EngineerRepo:  engineerRepo,
		CaseRepo:      caseRepo,
		Logger:        logg,
		ImportMetrics: importMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create excel import service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunSweeper(ctx, cfg.ActiveSessions.SweepInterval, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Registry:    registry,
			Sessions:    sessions,
			StartedAt:   time.Now(),
			AuthService: authService,
			Users:       userRepo,
			Engineers:   engineerRepo,
			Teams:       teamRepo,
			Cases:       caseRepo,
			CaseStats:   caseStats,
			Reports:     reportRepo,
			ReportGen:   reportGen,
			Settings:    settingRepo,
			Bonuses:     bonusRepo,
			Importer:    importer,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(logCtx, "api server shut down gracefully")
	}
}
