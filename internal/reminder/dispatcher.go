// Package reminder dispatches due memo reminders to messenger channels.
package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/kdate"
	"github.com/akfldk1028/chatnote/internal/store"
)

// Notifier delivers a reminder message to one channel.
type Notifier interface {
	Platform() string
	Notify(ctx context.Context, userID, message string) error
}

// ReminderStore is the subset of the store the dispatcher needs.
type ReminderStore interface {
	PendingReminders(ctx context.Context) ([]*store.PendingReminder, error)
	MarkReminderSent(ctx context.Context, userID, memoID string) (bool, error)
}

// Result summarizes one dispatch sweep.
type Result struct {
	Processed int
	Sent      int
	Errors    []string
}

// Dispatcher polls the pending reminder index and fans each due
// reminder out to every configured notifier.
type Dispatcher struct {
	store     ReminderStore
	notifiers []Notifier
	logger    *zap.Logger
	interval  time.Duration
	now       func() time.Time
}

func NewDispatcher(st ReminderStore, notifiers []Notifier, interval time.Duration, logger *zap.Logger) *Dispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Dispatcher{
		store:     st,
		notifiers: notifiers,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
	}
}

// RunOnce processes all currently due reminders. A reminder is marked
// sent when at least one notifier delivered it; delivery failures keep
// it pending for the next sweep.
func (d *Dispatcher) RunOnce(ctx context.Context) (*Result, error) {
	pending, err := d.store.PendingReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending reminders: %w", err)
	}

	result := &Result{Processed: len(pending)}
	for _, p := range pending {
		message := d.formatMessage(p.Memo)

		delivered := false
		for _, n := range d.notifiers {
			if err := n.Notify(ctx, p.UserID, message); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: %s: %v", n.Platform(), p.MemoID, err))
				d.logger.Warn("reminder delivery failed",
					zap.String("platform", n.Platform()),
					zap.String("memo_id", p.MemoID),
					zap.Error(err))
				continue
			}
			delivered = true
		}
		if !delivered {
			continue
		}

		if _, err := d.store.MarkReminderSent(ctx, p.UserID, p.MemoID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("mark sent %s: %v", p.MemoID, err))
			continue
		}
		result.Sent++
		d.logger.Info("reminder sent",
			zap.String("user_id", p.UserID),
			zap.String("memo_id", p.MemoID))
	}
	return result, nil
}

// Start runs dispatch sweeps on the configured interval until the
// context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("reminder dispatcher started", zap.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("reminder dispatcher stopped")
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil {
				d.logger.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

func (d *Dispatcher) formatMessage(memo *store.Memo) string {
	summary := memo.Summary
	if summary == "" {
		summary = memo.Content
		if runes := []rune(summary); len(runes) > 50 {
			summary = string(runes[:50])
		}
	}

	timeStr := "시간 미지정"
	if memo.ReminderAt != nil {
		timeStr = kdate.FormatReminderTime(*memo.ReminderAt, d.now())
	}
	return fmt.Sprintf("⏰ 리마인더\n\n%s\n\n예정: %s", summary, timeStr)
}
