package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// stopTimeout bounds how long Stop waits for an in-flight scan.
const stopTimeout = 10 * time.Second

// OrderAdvancementJob periodically scans for orders stuck in the waiting
// status and advances them through the AdvanceStaleOrdersCommandHandler.
//
// Scans never overlap: a run that outlasts the interval causes the next
// tick to be skipped rather than queued.
type OrderAdvancementJob struct {
	handler *commands.AdvanceStaleOrdersCommandHandler
	cron    *cron.Cron
	spec    string
	logger  *slog.Logger

	started bool
}

// NewOrderAdvancementJob creates a job running one advancement scan per
// tick of the given cron spec (e.g. "@every 1m").
func NewOrderAdvancementJob(
	handler *commands.AdvanceStaleOrdersCommandHandler,
	spec string,
	logger *slog.Logger,
) *OrderAdvancementJob {
	return &OrderAdvancementJob{
		handler: handler,
		cron:    cron.New(),
		spec:    spec,
		logger:  logger.With("component", "order_advancement_job"),
	}
}

// Start schedules the scan and starts the cron runner.
// Calling Start on a started job is a no-op.
func (j *OrderAdvancementJob) Start() error {
	if j.started {
		return nil
	}

	_, err := j.cron.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(
		cron.FuncJob(j.run),
	))
	if err != nil {
		return err
	}

	j.cron.Start()
	j.started = true
	j.logger.InfoContext(context.Background(), "Order advancement job started", "schedule", j.spec)
	return nil
}

// Stop halts scheduling and waits up to stopTimeout for an in-flight scan
// to finish. An overrunning scan is abandoned with a warning; it cannot
// corrupt state because every transition it makes is individually locked
// and validated.
func (j *OrderAdvancementJob) Stop() {
	if !j.started {
		return
	}
	j.started = false

	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.InfoContext(context.Background(), "Order advancement job stopped")
	case <-time.After(stopTimeout):
		j.logger.WarnContext(context.Background(),
			"Order advancement job stop timed out with a scan still running",
			"timeout", stopTimeout)
	}
}

// run executes one scan with a fresh run id for log correlation.
func (j *OrderAdvancementJob) run() {
	ctx := context.Background()
	logger := j.logger.With("run_id", uuid.NewString())

	started := time.Now()
	advanced, err := j.handler.Handle(ctx, commands.NewAdvanceStaleOrdersCommand())
	if err != nil {
		logger.ErrorContext(ctx, "Order advancement scan failed", "error", err)
		return
	}

	if advanced > 0 {
		logger.InfoContext(ctx, "Order advancement scan finished",
			"advanced", advanced, "duration", time.Since(started))
	}
}
