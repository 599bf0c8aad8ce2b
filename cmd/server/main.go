package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listenerlab/internal/app"
	"listenerlab/internal/catalog"
	"listenerlab/internal/config"
	"listenerlab/internal/logging"
	"listenerlab/internal/metrics"
	"listenerlab/internal/scoring"
	"listenerlab/internal/service"
	"listenerlab/internal/transport/rest"
	"listenerlab/internal/transport/ws"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load survey catalog: %w", err)
	}

	a, err := app.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	recorder, err := metrics.NewRecorder(nil, logger)
	if err != nil {
		return err
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger)
	defer wsHub.Close()

	// Initialize services
	scorer := scoring.NewScorer(cat, recorder)
	authSvc := service.NewAuthService(cfg)
	surveySvc := service.NewSurveyService(cat)
	sessionSvc := service.NewSessionService(a.SessionCache, a.ReportCache, a.SubmissionRepo, scorer, authSvc, surveySvc, recorder, logger)
	profileSvc := service.NewProfileService(scorer, a.SubmissionRepo)
	reportSvc := service.NewReportService(a.SubmissionRepo, a.ReportCache, scorer, cfg.ReportSampleLimit, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)
	sessionSvc.SetSegmentTally(a.SegmentTally)

	router := rest.NewRouter(&rest.Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        recorder,
		AuthService:    authSvc,
		SurveyService:  surveySvc,
		SessionService: sessionSvc,
		ProfileService: profileSvc,
		ReportService:  reportSvc,
		WSHub:          wsHub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Int("questions", cat.Len()),
			zap.String("hostUsername", cfg.HostUsername),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		wsHub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("server exited")
	return nil
}
