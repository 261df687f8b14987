package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-panel/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refreshable is the part of the panel the scheduler drives.
type Refreshable interface {
	City() string
	State() services.ViewState
	Submit(ctx context.Context, city string) (services.ViewState, error)
}

// Scheduler re-submits the panel's current city on a cron schedule.
type Scheduler struct {
	panel    Refreshable
	logger   *zap.Logger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
	lastRun time.Time
	runs    int
}

func NewScheduler(panel Refreshable, schedule string, timeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		panel:    panel,
		logger:   logger,
		schedule: schedule,
		timeout:  timeout,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger.Sugar()}),
			cron.SkipIfStillRunning(cronLogger{logger.Sugar()}),
		)),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.RunRefresh)
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(id).Next))

	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunRefresh re-submits the panel's city once.
func (s *Scheduler) RunRefresh() {
	city := s.panel.City()
	if city == "" {
		s.logger.Debug("Skipping refresh, no city submitted yet")
		return
	}
	// A cleared search stays cleared until the user submits again.
	if s.panel.State().Status() == services.StatusIdle {
		s.logger.Debug("Skipping refresh, panel is idle")
		return
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.runs++
	s.mu.Unlock()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	startTime := time.Now()
	state, err := s.panel.Submit(ctx, city)
	switch {
	case errors.Is(err, services.ErrSuperseded):
		s.logger.Debug("Refresh superseded by a user search", zap.String("city", city))
	case err != nil:
		s.logger.Warn("Refresh failed", zap.String("city", city), zap.Error(err))
	default:
		s.logger.Info("Refresh completed",
			zap.String("city", city),
			zap.String("status", state.Status().String()),
			zap.Duration("duration", time.Since(startTime)))
	}
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"schedule": s.schedule,
		"last_run": s.lastRun,
		"runs":     s.runs,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
