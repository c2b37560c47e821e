package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// PendingReminders returns reminders that are due now and not yet sent.
func (s *Store) PendingReminders(ctx context.Context) ([]*PendingReminder, error) {
	due, err := s.rdb.ZRangeByScore(ctx, pendingRemindersKey, &redis.ZRangeBy{
		Min: "0",
		Max: strconv.FormatInt(s.now().Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}

	var results []*PendingReminder
	for _, member := range due {
		userID, memoID, ok := strings.Cut(member, ":")
		if !ok {
			continue
		}

		memo, err := s.MemoByID(ctx, userID, memoID)
		if err != nil {
			return nil, err
		}
		if memo == nil || memo.ReminderSent {
			continue
		}
		results = append(results, &PendingReminder{
			UserID: userID,
			MemoID: memoID,
			Memo:   memo,
		})
	}
	return results, nil
}

// MarkReminderSent flags the memo as notified and drops it from the
// pending index. It reports false when the memo does not exist.
func (s *Store) MarkReminderSent(ctx context.Context, userID, memoID string) (bool, error) {
	memo, err := s.MemoByID(ctx, userID, memoID)
	if err != nil {
		return false, err
	}
	if memo == nil {
		return false, nil
	}

	now := s.now()
	memo.ReminderSent = true
	memo.ReminderSentAt = &now

	data, err := json.Marshal(memo)
	if err != nil {
		return false, fmt.Errorf("marshal memo: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, memoKey(userID, memoID), data, 0)
	pipe.ZRem(ctx, pendingRemindersKey, userID+":"+memoID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}
	return true, nil
}

// UserReminders lists a user's 할일 memos carrying a reminder, soonest
// first. Sent reminders are included only when includeSent is set.
func (s *Store) UserReminders(ctx context.Context, userID string, includeSent bool) ([]*Memo, error) {
	memos, err := s.MemosByCategory(ctx, userID, "할일", 50)
	if err != nil {
		return nil, err
	}

	var reminders []*Memo
	for _, memo := range memos {
		if memo.ReminderAt == nil {
			continue
		}
		if includeSent || !memo.ReminderSent {
			reminders = append(reminders, memo)
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderAt.Before(*reminders[j].ReminderAt)
	})
	return reminders, nil
}
