package service

import (
	"context"
	"humaniq_backend/internal/config"
	"humaniq_backend/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs the periodic course jobs: scheduled re-releases and auto-lock retries.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.SchedulerConfig
	Availability *AvailabilityService
	FollowUps    *FollowUpService
}

// cronLogger routes robfig/cron messages to zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

func NewScheduler(cfg config.SchedulerConfig, availability *AvailabilityService, followUps *FollowUpService) *Scheduler {
	cl := cronLogger{log: logger.Log.Sugar().Named("cron")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		cfg:          cfg,
		Availability: availability,
		FollowUps:    followUps,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.AvailabilitySpec, s.releaseDue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.FollowUpSpec, s.retryFollowUps); err != nil {
		return err
	}
	s.cron.Start()
	logger.Log.Info("scheduler started",
		zap.String("availability", s.cfg.AvailabilitySpec),
		zap.String("followup", s.cfg.FollowUpSpec))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) releaseDue() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.Availability.ReleaseDue(ctx); err != nil {
		logger.Log.Error("scheduled release failed", zap.Error(err))
	}
}

func (s *Scheduler) retryFollowUps() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.FollowUps.ProcessPending(ctx); err != nil {
		logger.Log.Error("follow-up retry failed", zap.Error(err))
	}
}
