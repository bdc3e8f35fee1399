package cron

import (
	"context"
	"log/slog"
	"time"

	"core/services"

	"github.com/robfig/cron/v3"
)

const (
	// at minute 0 of every hour
	staleChallengeSpec = "0 0 * * * *"
	// every five minutes
	leaderboardWarmSpec = "0 */5 * * * *"

	jobTimeout = time.Minute
)

type Scheduler struct {
	cron                  *cron.Cron
	staleChallengeService *services.StaleChallengeService
	ladderService         *services.LadderService
	logger                *slog.Logger
}

func NewScheduler(staleChallengeService *services.StaleChallengeService, ladderService *services.LadderService, logger *slog.Logger) *Scheduler {
	cronLogger := cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger))

	return &Scheduler{
		cron:                  c,
		staleChallengeService: staleChallengeService,
		ladderService:         ladderService,
		logger:                logger,
	}
}

// Start registers the maintenance jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(staleChallengeSpec, s.runStaleChallengeReport); err != nil {
		s.logger.Error("scheduling stale challenge report failed", slog.Any("error", err))
		return err
	}

	if _, err := s.cron.AddFunc(leaderboardWarmSpec, s.runLeaderboardWarmUp); err != nil {
		s.logger.Error("scheduling leaderboard warm-up failed", slog.Any("error", err))
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started", slog.Int("jobs", len(s.cron.Entries())))

	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) runStaleChallengeReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.staleChallengeService.Report(ctx)
	if err != nil {
		s.logger.Error("stale challenge report failed", slog.Any("error", err))
		return
	}

	s.logger.Info("stale challenge report completed", slog.Int("stale", count))
}

func (s *Scheduler) runLeaderboardWarmUp() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	entries, err := s.ladderService.RefreshLeaderboard(ctx)
	if err != nil {
		s.logger.Error("leaderboard warm-up failed", slog.Any("error", err))
		return
	}

	s.logger.Debug("leaderboard warmed", slog.Int("players", len(entries)))
}

// RunNow runs every job once, synchronously.
func (s *Scheduler) RunNow() {
	s.runStaleChallengeReport()
	s.runLeaderboardWarmUp()
}
