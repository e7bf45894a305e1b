package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-token-pulse/internal/discovery/config"
	"golang-token-pulse/pkg/logger"
	"golang-token-pulse/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService drives the discovery pipeline on a cron cadence, bounded
// by a daily run quota and an active-hours window.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewSchedulerService creates the scheduler.
func NewSchedulerService(cfg *config.Config, runner *DiscoveryRunner, log *logger.Logger) SchedulerService {
	return &schedulerService{
		cfg:    cfg,
		runner: runner,
		log:    log,
		now:    time.Now,
	}
}

type schedulerService struct {
	cfg    *config.Config
	runner *DiscoveryRunner
	log    *logger.Logger
	cron   *cron.Cron
	loc    *time.Location

	// now is swapped in tests to make quota and rollover behavior
	// deterministic.
	now func() time.Time

	mu           sync.Mutex
	runCount     int
	lastResetDay time.Time
}

// Start begins scheduled execution. When scheduling is disabled the
// scheduler never fires for the lifetime of the process. An initial run is
// triggered immediately when the current hour falls inside the active window.
func (s *schedulerService) Start(ctx context.Context) error {
	sched := s.cfg.Scheduler
	if !sched.Enabled {
		s.log.Info("Scheduler is disabled via configuration")
		return nil
	}

	loc, err := time.LoadLocation(sched.Timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", sched.Timezone, err)
	}
	s.loc = loc
	s.lastResetDay = s.now().In(loc)

	currentHour := s.now().In(loc).Hour()
	if currentHour >= sched.StartHour && currentHour <= sched.EndHour {
		s.log.Info("Running initial discovery")
		s.executeTick(ctx)
	}

	cronExpression := cronSpec(sched)

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(cronExpression, func() {
		s.executeTick(ctx)
	}); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpression, err)
	}
	s.cron.Start()

	s.log.Info("Scheduler started",
		logger.IntField("interval_minutes", sched.IntervalMinutes),
		logger.IntField("start_hour", sched.StartHour),
		logger.IntField("end_hour", sched.EndHour),
		logger.StringField("timezone", sched.Timezone),
		logger.IntField("max_daily_runs", sched.MaxDailyRuns))

	utils.GoSafe(func() {
		<-ctx.Done()
		s.Stop()
	})

	return nil
}

// cronSpec renders the tick schedule. A 60-minute interval fires at the top
// of every hour inside the window; */60 is not a valid minute step.
func cronSpec(sched config.Scheduler) string {
	if sched.IntervalMinutes >= 60 {
		return fmt.Sprintf("0 %d-%d * * *", sched.StartHour, sched.EndHour)
	}
	return fmt.Sprintf("*/%d %d-%d * * *", sched.IntervalMinutes, sched.StartHour, sched.EndHour)
}

// Stop halts future ticks. An in-flight run is not cancelled; it finishes
// naturally.
func (s *schedulerService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.log.Info("Scheduler stopped")
	}
}

// executeTick applies the daily reset and quota checks, then triggers one
// run. The counter resets at the first tick observed on a new calendar day,
// before the quota check. A run error is logged and never stops the
// scheduler; a dropped concurrent trigger does not consume quota.
func (s *schedulerService) executeTick(ctx context.Context) {
	if !s.consumeQuota() {
		return
	}

	s.log.Info("Starting scheduled discovery run",
		logger.IntField("run_number", s.currentRunCount()),
		logger.IntField("max_daily_runs", s.cfg.Scheduler.MaxDailyRuns))

	if err := s.runner.TriggerRun(ctx); err != nil {
		if errors.Is(err, ErrRunInProgress) {
			s.releaseQuota()
			return
		}
		s.log.Error("Scheduled discovery run failed", logger.ErrorField(err))
	}
}

// consumeQuota performs the day-rollover reset and, when the quota allows,
// reserves one run slot.
func (s *schedulerService) consumeQuota() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.loc)
	if !utils.SameCalendarDay(now, s.lastResetDay) {
		s.runCount = 0
		s.lastResetDay = now
	}

	if s.runCount >= s.cfg.Scheduler.MaxDailyRuns {
		s.log.Info("Daily run limit reached, waiting for next day",
			logger.IntField("max_daily_runs", s.cfg.Scheduler.MaxDailyRuns))
		return false
	}

	s.runCount++
	return true
}

// releaseQuota gives back a slot reserved for a trigger that was dropped by
// the reentrancy guard.
func (s *schedulerService) releaseQuota() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runCount > 0 {
		s.runCount--
	}
}

func (s *schedulerService) currentRunCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCount
}
