package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tradepulse/tradepulse/app/pipeline"
)

type ScanTask struct {
	Task
	runner ScanRunner
}

func NewScanTask(runner ScanRunner, trigger string) *ScanTask {
	return &ScanTask{
		Task:   NewTask(TaskTypeScan, trigger),
		runner: runner,
	}
}

func (t *ScanTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.runner.Run(ctx)
	if errors.Is(err, pipeline.ErrScanInProgress) {
		// Another scan holds the run lock; this trigger is a clean
		// skip, not a failure to retry.
		slog.Info("Scan skipped, another scan in progress", "trigger", t.Trigger)
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	slog.Info("Task completed",
		"type", "Scan",
		"trigger", t.Trigger,
		"duration", t.GetDuration())

	return nil
}
