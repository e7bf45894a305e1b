package service

import (
	"context"
	"errors"
	"sync/atomic"

	"golang-token-pulse/pkg/logger"
	"golang-token-pulse/pkg/utils"
)

// ErrRunInProgress indicates a trigger arrived while a discovery run was
// already executing. Triggers are dropped, never queued.
var ErrRunInProgress = errors.New("discovery run already in progress")

// DiscoveryRunner guards the pipeline with an at-most-one-concurrent-run
// invariant shared by every trigger source (cron tick, manual HTTP trigger).
type DiscoveryRunner struct {
	discovery DiscoveryService
	reporter  ReporterService
	log       *logger.Logger
	running   atomic.Bool
}

// NewDiscoveryRunner creates the runner.
func NewDiscoveryRunner(discovery DiscoveryService, reporter ReporterService, log *logger.Logger) *DiscoveryRunner {
	return &DiscoveryRunner{
		discovery: discovery,
		reporter:  reporter,
		log:       log,
	}
}

// TriggerRun executes one discovery cycle followed by downstream reporting.
// A concurrent trigger returns ErrRunInProgress without starting a second run.
func (r *DiscoveryRunner) TriggerRun(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		r.log.InfoContext(ctx, "Run already in progress, dropping trigger")
		return ErrRunInProgress
	}
	defer r.running.Store(false)

	return r.run(ctx)
}

// TriggerRunAsync starts a run in the background, returning ErrRunInProgress
// when one is already executing. The run is detached from the caller's
// context so it finishes naturally even if the trigger request ends first.
func (r *DiscoveryRunner) TriggerRunAsync() error {
	if !r.running.CompareAndSwap(false, true) {
		r.log.Info("Run already in progress, dropping trigger")
		return ErrRunInProgress
	}

	utils.GoSafe(func() {
		defer r.running.Store(false)
		if err := r.run(context.Background()); err != nil {
			r.log.Error("Discovery run failed", logger.ErrorField(err))
		}
	})

	return nil
}

func (r *DiscoveryRunner) run(ctx context.Context) error {
	best, err := r.discovery.Run(ctx)
	if err != nil {
		return err
	}

	if best == nil {
		r.log.InfoContext(ctx, "No qualifying token this run")
		return nil
	}

	r.reporter.Report(ctx, best)
	return nil
}
