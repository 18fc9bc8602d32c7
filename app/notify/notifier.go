package notify

import (
	"context"
	"log/slog"
	"time"
)

// Channel is the delivery transport for a single recipient.
type Channel interface {
	Send(ctx context.Context, recipient, text string) error
}

// RetryPolicy is an explicit, testable description of the retry
// behavior composed around each send.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// Delay returns the backoff before the attempt following attempt n
// (1-based). Non-decreasing in n and bounded by MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	delay := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= p.Multiplier
		if time.Duration(delay) >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if time.Duration(delay) > p.MaxDelay {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// Outcome is the per-recipient delivery result.
type Outcome struct {
	Recipient string
	Attempts  int
	Err       error
}

// Report aggregates outcomes for one Deliver call.
type Report struct {
	Outcomes []Outcome
	Sent     int
	Failed   int
}

// Notifier delivers one message to many recipients with bounded retry.
// A failure for one recipient never prevents delivery to another.
type Notifier struct {
	channel Channel
	policy  RetryPolicy
	pacing  time.Duration

	sleep func(time.Duration)
}

func NewNotifier(channel Channel, policy RetryPolicy, pacing time.Duration) *Notifier {
	return &Notifier{
		channel: channel,
		policy:  policy,
		pacing:  pacing,
		sleep:   time.Sleep,
	}
}

func (n *Notifier) Deliver(ctx context.Context, text string, recipients []string) Report {
	report := Report{
		Outcomes: make([]Outcome, 0, len(recipients)),
	}

	for i, recipient := range recipients {
		if i > 0 && n.pacing > 0 {
			n.sleep(n.pacing)
		}

		outcome := n.deliverOne(ctx, recipient, text)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Err == nil {
			report.Sent++
			slog.Info("Alert delivered", "recipient", recipient, "attempts", outcome.Attempts)
		} else {
			report.Failed++
			slog.Error("Alert delivery failed", "recipient", recipient, "attempts", outcome.Attempts, "error", outcome.Err)
		}
	}

	return report
}

func (n *Notifier) deliverOne(ctx context.Context, recipient, text string) Outcome {
	outcome := Outcome{Recipient: recipient}

	for attempt := 1; attempt <= n.policy.MaxAttempts; attempt++ {
		outcome.Attempts = attempt

		err := n.channel.Send(ctx, recipient, text)
		if err == nil {
			outcome.Err = nil
			return outcome
		}
		outcome.Err = err

		if IsPermanent(err) {
			return outcome
		}

		if attempt < n.policy.MaxAttempts {
			delay := n.policy.Delay(attempt)
			slog.Warn("Send attempt failed, retrying", "recipient", recipient, "attempt", attempt, "delay", delay.String(), "error", err)
			n.sleep(delay)
		}
	}

	return outcome
}
