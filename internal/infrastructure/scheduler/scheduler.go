package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/bibbank/kyb-service/internal/application/dto"
)

// Rescreener runs a full rescreening sweep.
type Rescreener interface {
	Execute(ctx context.Context, req dto.RescreenAllRequest) (dto.RescreenAllResponse, error)
}

// OutboxRelay publishes one batch of pending outbox entries.
type OutboxRelay interface {
	RunOnce(ctx context.Context) (int, error)
}

// Config holds job intervals. A zero interval disables the job.
type Config struct {
	RescreenInterval time.Duration
	RescreenPageSize int
	RelayInterval    time.Duration
	// JobTimeout bounds a single run of any job.
	JobTimeout time.Duration
}

// Scheduler runs the periodic rescreening sweep and the outbox relay.
// Each job runs in singleton mode, so a slow sweep never overlaps itself.
type Scheduler struct {
	cron     *gocron.Scheduler
	rescreen Rescreener
	relay    OutboxRelay
	logger   *slog.Logger
	cfg      Config
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a new Scheduler instance.
func New(cfg Config, rescreen Rescreener, relay OutboxRelay, logger *slog.Logger) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     gocron.NewScheduler(time.UTC),
		rescreen: rescreen,
		relay:    relay,
		logger:   logger,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the jobs and starts the scheduler in the background.
func (s *Scheduler) Start() error {
	if s.cfg.RescreenInterval > 0 {
		_, err := s.cron.Every(s.cfg.RescreenInterval).
			WaitForSchedule().
			SingletonMode().
			Tag("rescreen").
			Do(s.RunRescreen)
		if err != nil {
			return fmt.Errorf("failed to schedule rescreen job: %w", err)
		}
	}

	if s.cfg.RelayInterval > 0 {
		_, err := s.cron.Every(s.cfg.RelayInterval).
			SingletonMode().
			Tag("outbox-relay").
			Do(s.RunRelay)
		if err != nil {
			return fmt.Errorf("failed to schedule outbox relay job: %w", err)
		}
	}

	s.cron.StartAsync()
	s.logger.Info("scheduler started",
		slog.Duration("rescreen_interval", s.cfg.RescreenInterval),
		slog.Duration("relay_interval", s.cfg.RelayInterval),
		slog.Int("jobs", len(s.cron.Jobs())),
	)
	return nil
}

// Stop cancels running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	s.cancel()
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// RunRescreen runs one rescreening sweep.
func (s *Scheduler) RunRescreen() {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.JobTimeout)
	defer cancel()

	resp, err := s.rescreen.Execute(ctx, dto.RescreenAllRequest{PageSize: s.cfg.RescreenPageSize})
	if err != nil {
		s.logger.Error("scheduled rescreen failed",
			slog.Int("processed", resp.Processed),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("scheduled rescreen completed",
		slog.Int("processed", resp.Processed),
		slog.Int("matches", resp.Matches),
		slog.Int("failed", resp.Failed),
	)
}

// RunRelay drains the outbox until a batch comes back empty or fails.
func (s *Scheduler) RunRelay() {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.JobTimeout)
	defer cancel()

	total := 0
	for ctx.Err() == nil {
		n, err := s.relay.RunOnce(ctx)
		total += n
		if err != nil {
			s.logger.Error("outbox relay failed",
				slog.Int("published", total),
				slog.String("error", err.Error()),
			)
			return
		}
		if n == 0 {
			break
		}
	}
	if total > 0 {
		s.logger.Debug("outbox relay published events", slog.Int("published", total))
	}
}
