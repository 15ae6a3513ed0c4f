package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/habte-job-portal/internal/auth"
	"github.com/justsurfingit/habte-job-portal/internal/config"
	"github.com/justsurfingit/habte-job-portal/internal/database"
	"github.com/justsurfingit/habte-job-portal/internal/handlers"
	"github.com/justsurfingit/habte-job-portal/internal/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 2. Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	links := services.NewLinkGenerator()
	payments := services.NewPaymentSimulator(db, services.NewSimulatedTelegram(logger), cfg.Payment.Delay, logger)
	defer payments.Stop()

	auditor := services.NewPaymentAuditor(db, cfg.Payment.StaleAfter, logger)
	if err := auditor.Start(cfg.Payment.AuditSchedule); err != nil {
		return err
	}
	defer auditor.Stop()

	pricing := services.Pricing{Standard: cfg.Payment.JobPrice, WithTelegram: cfg.Payment.TelegramJobPrice}

	// 3. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterDeps{
		Users:       services.NewUserService(db, tokens),
		Jobs:        services.NewJobService(db, links, payments, pricing),
		CVs:         services.NewCVService(db, links, payments),
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		AuthLimiter: handlers.NewClientLimiter(cfg.AuthRateLimit.PerSecond, cfg.AuthRateLimit.Burst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
