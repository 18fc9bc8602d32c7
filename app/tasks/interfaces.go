package tasks

import (
	"context"

	"github.com/tradepulse/tradepulse/app/notify"
)

// TaskSchedulerInterface defines the interface for task scheduling
// operations. Used by the main application and the API handlers to run
// background work.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// ScanRunner executes one full pipeline scan.
type ScanRunner interface {
	Run(ctx context.Context) error
}

// TestSender delivers a canned alert for a symbol.
type TestSender interface {
	SendTest(ctx context.Context, symbol string) (notify.Report, error)
}
