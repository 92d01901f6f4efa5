package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"InsightDesk/internal/forecast"
	"InsightDesk/internal/model"
	"InsightDesk/internal/notifier"
)

// Scheduler runs the periodic forecast digest.
type Scheduler struct {
	Cron        *cron.Cron
	Forecasts   *forecast.Service
	Assumptions model.ScenarioAssumptions
	Notifier    notifier.Sender
	Clock       clockwork.Clock
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, svc *forecast.Service, a model.ScenarioAssumptions, n notifier.Sender, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Forecasts:   svc,
		Assumptions: a,
		Notifier:    n,
		Clock:       clock,
		Ctx:         ctx,
	}
}

// RegisterDigest schedules the digest task.
func (s *Scheduler) RegisterDigest(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	slog.Info("scheduler started", "entries", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

// Digest builds the configured scenario table and formats its headline figures.
func (s *Scheduler) Digest() (string, error) {
	table, _, err := s.Forecasts.Build(s.Assumptions)
	if err != nil {
		return "", fmt.Errorf("build scenarios: %w", err)
	}
	summary, err := forecast.Summarize(table)
	if err != nil {
		return "", fmt.Errorf("summarize scenarios: %w", err)
	}
	return notifier.FormatDigest(s.Assumptions, table, summary, s.Clock.Now()), nil
}

func (s *Scheduler) digestTask() {
	slog.Info("running digest task")
	msg, err := s.Digest()
	if err != nil {
		slog.Error("digest failed", "error", err)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
		slog.Error("send digest", "error", err)
	}
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/forecast", "/digest":
		msg, err := s.Digest()
		if err != nil {
			return "❌ forecast failed: " + err.Error()
		}
		return msg
	default:
		return notifier.FormatHelp()
	}
}
