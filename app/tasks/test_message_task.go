package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type TestMessageTask struct {
	Task
	sender TestSender
	symbol string
}

func NewTestMessageTask(sender TestSender, symbol string) *TestMessageTask {
	return &TestMessageTask{
		Task:   NewTask(TaskTypeTestMessage, "manual"),
		sender: sender,
		symbol: symbol,
	}
}

func (t *TestMessageTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report, err := t.sender.SendTest(ctx, t.symbol)
	if err != nil {
		return fmt.Errorf("test message failed: %w", err)
	}

	slog.Info("Task completed",
		"type", "TestMessage",
		"symbol", t.symbol,
		"duration", t.GetDuration(),
		"sent", report.Sent,
		"failed", report.Failed)

	return nil
}
