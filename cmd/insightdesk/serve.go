package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"InsightDesk/internal/branding"
	"InsightDesk/internal/forecast"
	"InsightDesk/internal/metrics"
	"InsightDesk/internal/notifier"
	"InsightDesk/internal/scheduler"
	"InsightDesk/internal/server"
)

const shutdownTimeout = 10 * time.Second

var runDigestOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboards and the optional Telegram digest",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&runDigestOnStart, "digest-now", false, "Send one digest immediately after startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	slog.Info("InsightDesk starting", "addr", cfg.Server.Addr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	forecasts := forecast.NewService()

	srv, err := server.NewServer(cfg, branding.Default(), forecasts, reg, m)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	if cfg.Digest.Enabled {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sched := scheduler.NewScheduler(ctx, forecasts, cfg.Forecast, tn, clockwork.NewRealClock())
		if err := sched.RegisterDigest(cfg.Digest.Cron); err != nil {
			return fmt.Errorf("register digest: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		slog.Info("telegram polling started")

		if runDigestOnStart {
			go sched.RunDigestNow()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("InsightDesk stopped")
	return nil
}
