package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// mgetBatchSize bounds a single MGET so one lookup never drags the
// whole keyspace across the wire.
const mgetBatchSize = 20

// searchWindow limits unfiltered searches to the most recent memos.
const searchWindow = 100

// SaveMemo persists the memo and updates the user's recency, category
// and reminder indexes. The memo's ID and CreatedAt are assigned here.
func (s *Store) SaveMemo(ctx context.Context, memo *Memo) (string, error) {
	memo.ID = uuid.NewString()
	memo.CreatedAt = s.now()
	if memo.Category == "" {
		memo.Category = "기타"
	}
	if memo.Tags == nil {
		memo.Tags = []string{}
	}

	data, err := json.Marshal(memo)
	if err != nil {
		return "", fmt.Errorf("marshal memo: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, memoKey(memo.UserID, memo.ID), data, 0)
	pipe.ZAdd(ctx, memosKey(memo.UserID), redis.Z{
		Score:  float64(memo.CreatedAt.Unix()),
		Member: memo.ID,
	})
	pipe.SAdd(ctx, categoryKey(memo.UserID, memo.Category), memo.ID)
	if memo.ReminderAt != nil {
		pipe.ZAdd(ctx, pendingRemindersKey, redis.Z{
			Score:  float64(memo.ReminderAt.Unix()),
			Member: memo.UserID + ":" + memo.ID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("save memo: %w", err)
	}

	s.logger.Debug("memo saved",
		zap.String("memo_id", memo.ID),
		zap.String("category", memo.Category))
	return memo.ID, nil
}

// fetchMemos resolves memo IDs to memos with batched MGETs, skipping
// IDs whose values are gone.
func (s *Store) fetchMemos(ctx context.Context, userID string, memoIDs []string) ([]*Memo, error) {
	var memos []*Memo
	for i := 0; i < len(memoIDs); i += mgetBatchSize {
		end := i + mgetBatchSize
		if end > len(memoIDs) {
			end = len(memoIDs)
		}

		keys := make([]string, 0, end-i)
		for _, id := range memoIDs[i:end] {
			keys = append(keys, memoKey(userID, id))
		}

		values, err := s.rdb.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("mget memos: %w", err)
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var memo Memo
			if err := json.Unmarshal([]byte(raw), &memo); err != nil {
				continue
			}
			memos = append(memos, &memo)
		}
	}
	return memos, nil
}

// SearchMemos matches the query against content, summary and tags.
// Without a category filter only the most recent memos are scanned.
func (s *Store) SearchMemos(ctx context.Context, userID, query, category string, limit int) ([]*Memo, error) {
	if limit <= 0 {
		limit = 5
	}

	var memoIDs []string
	var err error
	if category != "" {
		memoIDs, err = s.rdb.SMembers(ctx, categoryKey(userID, category)).Result()
	} else {
		memoIDs, err = s.rdb.ZRevRange(ctx, memosKey(userID), 0, searchWindow-1).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("list memo ids: %w", err)
	}
	if len(memoIDs) == 0 {
		return nil, nil
	}

	memos, err := s.fetchMemos(ctx, userID, memoIDs)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var results []*Memo
	for _, memo := range memos {
		searchable := strings.ToLower(memo.Content + " " + memo.Summary + " " + strings.Join(memo.Tags, " "))
		if strings.Contains(searchable, queryLower) {
			results = append(results, memo)
		}
	}

	// SMEMBERS has no order, so a category search sorts by recency here
	if category != "" {
		sort.Slice(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// MemosByCategory returns a user's memos in one category, newest first.
func (s *Store) MemosByCategory(ctx context.Context, userID, category string, limit int) ([]*Memo, error) {
	if limit <= 0 {
		limit = 10
	}

	memoIDs, err := s.rdb.SMembers(ctx, categoryKey(userID, category)).Result()
	if err != nil {
		return nil, fmt.Errorf("category members: %w", err)
	}
	if len(memoIDs) == 0 {
		return nil, nil
	}

	memos, err := s.fetchMemos(ctx, userID, memoIDs)
	if err != nil {
		return nil, err
	}

	sort.Slice(memos, func(i, j int) bool {
		return memos[i].CreatedAt.After(memos[j].CreatedAt)
	})
	if len(memos) > limit {
		memos = memos[:limit]
	}
	return memos, nil
}

// periodRange maps a period name to a [start, end) score range. A zero
// end means the range is open towards now.
func periodRange(now time.Time, period string) (start time.Time, end time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "today":
		return midnight, time.Time{}
	case "yesterday":
		return midnight.AddDate(0, 0, -1), midnight
	case "week":
		return now.AddDate(0, 0, -7), time.Time{}
	case "last_week":
		return now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, 0, -30), time.Time{}
	case "last_month":
		return now.AddDate(0, 0, -60), now.AddDate(0, 0, -30)
	case "all":
		return now.AddDate(-1, 0, 0), time.Time{}
	default:
		return now.AddDate(0, 0, -7), time.Time{}
	}
}

// MemosByPeriod returns a user's memos within a named period, newest
// first.
func (s *Store) MemosByPeriod(ctx context.Context, userID, period string) ([]*Memo, error) {
	start, end := periodRange(s.now(), period)

	max := "+inf"
	if !end.IsZero() {
		max = strconv.FormatInt(end.Unix(), 10)
	}

	memoIDs, err := s.rdb.ZRevRangeByScore(ctx, memosKey(userID), &redis.ZRangeBy{
		Min: strconv.FormatInt(start.Unix(), 10),
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("period range: %w", err)
	}
	if len(memoIDs) == 0 {
		return nil, nil
	}

	return s.fetchMemos(ctx, userID, memoIDs)
}

// RecentMemos returns the user's newest memos.
func (s *Store) RecentMemos(ctx context.Context, userID string, limit int) ([]*Memo, error) {
	if limit <= 0 {
		limit = 5
	}

	memoIDs, err := s.rdb.ZRevRange(ctx, memosKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent memo ids: %w", err)
	}
	if len(memoIDs) == 0 {
		return nil, nil
	}

	return s.fetchMemos(ctx, userID, memoIDs)
}

// Stats counts the user's memos overall, per recent period and per
// category, in a single pipelined round trip.
func (s *Store) Stats(ctx context.Context, userID string, categories []string) (*Stats, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nowScore := strconv.FormatInt(now.Unix(), 10)

	key := memosKey(userID)
	pipe := s.rdb.Pipeline()
	totalCmd := pipe.ZCard(ctx, key)
	todayCmd := pipe.ZCount(ctx, key, strconv.FormatInt(midnight.Unix(), 10), nowScore)
	weekCmd := pipe.ZCount(ctx, key, strconv.FormatInt(now.AddDate(0, 0, -7).Unix(), 10), nowScore)
	monthCmd := pipe.ZCount(ctx, key, strconv.FormatInt(now.AddDate(0, 0, -30).Unix(), 10), nowScore)

	categoryCmds := make(map[string]*redis.IntCmd, len(categories))
	for _, cat := range categories {
		categoryCmds[cat] = pipe.SCard(ctx, categoryKey(userID, cat))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("stats pipeline: %w", err)
	}

	stats := &Stats{
		Total:      totalCmd.Val(),
		Today:      todayCmd.Val(),
		Week:       weekCmd.Val(),
		Month:      monthCmd.Val(),
		ByCategory: make(map[string]int64),
	}
	for cat, cmd := range categoryCmds {
		if count := cmd.Val(); count > 0 {
			stats.ByCategory[cat] = count
		}
	}
	return stats, nil
}

// DeleteMemo removes the memo and all its index entries. It reports
// false when the memo does not exist.
func (s *Store) DeleteMemo(ctx context.Context, userID, memoID string) (bool, error) {
	memo, err := s.MemoByID(ctx, userID, memoID)
	if err != nil {
		return false, err
	}
	if memo == nil {
		return false, nil
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, memoKey(userID, memoID))
	pipe.ZRem(ctx, memosKey(userID), memoID)
	pipe.SRem(ctx, categoryKey(userID, memo.Category), memoID)
	pipe.ZRem(ctx, pendingRemindersKey, userID+":"+memoID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete memo: %w", err)
	}
	return true, nil
}

// UpdateMemo rewrites a memo's summary, category or tags. A nil field
// is left unchanged. A category change migrates the category index.
func (s *Store) UpdateMemo(ctx context.Context, userID, memoID string, summary, category *string, tags []string) (*Memo, error) {
	memo, err := s.MemoByID(ctx, userID, memoID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, nil
	}

	if summary != nil {
		memo.Summary = *summary
	}
	if tags != nil {
		memo.Tags = tags
	}
	if category != nil && *category != memo.Category {
		pipe := s.rdb.Pipeline()
		pipe.SRem(ctx, categoryKey(userID, memo.Category), memoID)
		pipe.SAdd(ctx, categoryKey(userID, *category), memoID)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("move category index: %w", err)
		}
		memo.Category = *category
	}
	memo.UpdatedAt = s.now()

	data, err := json.Marshal(memo)
	if err != nil {
		return nil, fmt.Errorf("marshal memo: %w", err)
	}
	if err := s.rdb.Set(ctx, memoKey(userID, memoID), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("update memo: %w", err)
	}
	return memo, nil
}

// MemoByID fetches one memo, returning nil when it does not exist.
func (s *Store) MemoByID(ctx context.Context, userID, memoID string) (*Memo, error) {
	raw, err := s.rdb.Get(ctx, memoKey(userID, memoID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get memo: %w", err)
	}

	var memo Memo
	if err := json.Unmarshal([]byte(raw), &memo); err != nil {
		return nil, fmt.Errorf("unmarshal memo: %w", err)
	}
	return &memo, nil
}

// MemoByShortID resolves a UUID prefix of at least 4 characters against
// the user's recent memos.
func (s *Store) MemoByShortID(ctx context.Context, userID, shortID string) (*Memo, error) {
	if len(shortID) < 4 {
		return nil, nil
	}
	prefix := strings.ToLower(shortID)

	memoIDs, err := s.rdb.ZRevRange(ctx, memosKey(userID), 0, searchWindow-1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent memo ids: %w", err)
	}
	for _, id := range memoIDs {
		if strings.HasPrefix(strings.ToLower(id), prefix) {
			return s.MemoByID(ctx, userID, id)
		}
	}
	return nil, nil
}
