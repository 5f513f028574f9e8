package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"clinic-medications/internal/adapters/catalog"
	"clinic-medications/internal/domain/prescriptions"
	"clinic-medications/internal/middleware"
	"clinic-medications/internal/platform/config"
	"clinic-medications/internal/platform/jobs"
	"clinic-medications/internal/platform/logger"
	"clinic-medications/internal/router"

	"github.com/spf13/cobra"
)

const (
	sweepInterval = 10 * time.Minute
	auditInterval = time.Hour
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg)
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	units, err := catalog.NewDaysUnits(cfg.Catalog.DaysUnitFile, log.With(map[string]any{"module": "days_units"}))
	if err != nil {
		return err
	}
	if err := units.Watch(ctx); err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Capacity)

	sched := jobs.New(log.With(map[string]any{"module": "jobs"}))
	if err := sched.Every(sweepInterval, "ratelimit-sweep", func(context.Context) error {
		limiter.Sweep()
		return nil
	}); err != nil {
		return err
	}
	if err := sched.Every(auditInterval, "days-unit-audit", func(ctx context.Context) error {
		_, err := units.Audit(ctx, st.Medications)
		return err
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	handler := router.NewRouter(router.Options{
		Logger:      log,
		Medications: st.Medications,
		Sets:        st.Sets,
		DaysUnits:   units,
		Clinic: prescriptions.Clinic{
			Name:    cfg.Clinic.Name,
			Address: cfg.Clinic.Address,
			Phone:   cfg.Clinic.Phone,
			Notice:  cfg.Clinic.Notice,
		},
		CORSOrigins: cfg.Server.CORS.AllowOrigins,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": st.Kind})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
}
