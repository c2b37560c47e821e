// Package memo holds the business logic shared by the webhook handler
// and the reminder dispatcher.
package memo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/kdate"
	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/store"
)

// ErrNotFound is returned when a delete or detail target does not exist.
var ErrNotFound = errors.New("memo not found")

// Store is the persistence surface the service needs.
type Store interface {
	SaveMemo(ctx context.Context, memo *store.Memo) (string, error)
	SearchMemos(ctx context.Context, userID, query, category string, limit int) ([]*store.Memo, error)
	MemosByCategory(ctx context.Context, userID, category string, limit int) ([]*store.Memo, error)
	MemosByPeriod(ctx context.Context, userID, period string) ([]*store.Memo, error)
	RecentMemos(ctx context.Context, userID string, limit int) ([]*store.Memo, error)
	Stats(ctx context.Context, userID string, categories []string) (*store.Stats, error)
	DeleteMemo(ctx context.Context, userID, memoID string) (bool, error)
	MemoByID(ctx context.Context, userID, memoID string) (*store.Memo, error)
	MemoByShortID(ctx context.Context, userID, shortID string) (*store.Memo, error)
	GetOrCreateUser(ctx context.Context, kakaoID string) (*store.User, error)
	SetUserAccessToken(ctx context.Context, kakaoID, accessToken string) (*store.User, error)
	UserReminders(ctx context.Context, userID string, includeSent bool) ([]*store.Memo, error)
}

// Analyzer enriches memo content with a category, tags and a summary.
type Analyzer interface {
	AnalyzeMemo(ctx context.Context, content string, meta *metadata.Metadata) intent.Analysis
}

// Extractor fetches Open Graph metadata for a URL.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) *metadata.Metadata
}

// Service wires storage, analysis and metadata extraction together.
type Service struct {
	store     Store
	analyzer  Analyzer
	extractor Extractor
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(st Store, analyzer Analyzer, extractor Extractor, logger *zap.Logger) *Service {
	return &Service{
		store:     st,
		analyzer:  analyzer,
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveResult describes a saved memo for the response builder.
type SaveResult struct {
	MemoID     string
	Category   string
	Summary    string
	Tags       []string
	MemoType   string
	URL        string
	ReminderAt *time.Time
	Metadata   *metadata.Metadata
}

// Save stores content as a memo. Links get their metadata scraped, the
// analyzer picks category and summary, and a 할일 memo with a parseable
// time gets a reminder.
func (s *Service) Save(ctx context.Context, userID, content string) (*SaveResult, error) {
	urls := metadata.ExtractURLs(content)
	memoType := "text"
	var meta *metadata.Metadata
	var memoURL string
	if len(urls) > 0 {
		memoType = "link"
		memoURL = urls[0]
		meta = s.extractor.Extract(ctx, urls[0])
	}

	analysis := s.analyzer.AnalyzeMemo(ctx, content, meta)
	category := analysis.Category
	if category == "" {
		category = "기타"
	}
	summary := analysis.Summary
	if summary == "" {
		summary = truncate(content, 30)
	}

	// 할일이면 자연어 시간 표현에서 리마인더를 뽑는다
	var reminderAt *time.Time
	if category == "할일" {
		info := kdate.ExtractReminderInfo(content, s.now())
		if info.At != nil {
			reminderAt = info.At
			summary = fmt.Sprintf("%s (%s)", info.Text, kdate.FormatReminderTime(*info.At, s.now()))
		}
	}

	memo := &store.Memo{
		UserID:     userID,
		Content:    content,
		MemoType:   memoType,
		Category:   category,
		Tags:       analysis.Tags,
		Summary:    summary,
		URL:        memoURL,
		Metadata:   meta,
		ReminderAt: reminderAt,
	}
	memoID, err := s.store.SaveMemo(ctx, memo)
	if err != nil {
		return nil, fmt.Errorf("save memo: %w", err)
	}

	s.logger.Info("memo saved",
		zap.String("memo_id", memoID),
		zap.String("category", category),
		zap.String("type", memoType),
		zap.Bool("reminder", reminderAt != nil))

	return &SaveResult{
		MemoID:     memoID,
		Category:   category,
		Summary:    summary,
		Tags:       memo.Tags,
		MemoType:   memoType,
		URL:        memoURL,
		ReminderAt: reminderAt,
		Metadata:   meta,
	}, nil
}

// Search finds memos matching a keyword.
func (s *Service) Search(ctx context.Context, userID, keyword string) ([]*store.Memo, error) {
	return s.store.SearchMemos(ctx, userID, keyword, "", 5)
}

// SummaryResult is a period or category listing.
type SummaryResult struct {
	Memos      []*store.Memo
	PeriodName string
	ByCategory map[string][]*store.Memo
}

var periodNames = map[string]string{
	"today":      "오늘",
	"yesterday":  "어제",
	"week":       "이번 주",
	"last_week":  "지난 주",
	"month":      "이번 달",
	"last_month": "지난 달",
	"all":        "전체",
}

// Summary lists memos for a period, or for one category when category
// is set.
func (s *Service) Summary(ctx context.Context, userID, period, category string) (*SummaryResult, error) {
	var memos []*store.Memo
	var err error
	var periodName string

	if category != "" {
		memos, err = s.store.MemosByCategory(ctx, userID, category, 100)
		periodName = category
	} else {
		memos, err = s.store.MemosByPeriod(ctx, userID, period)
		periodName = periodNames[period]
		if periodName == "" {
			periodName = period
		}
	}
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]*store.Memo)
	for _, memo := range memos {
		cat := memo.Category
		if cat == "" {
			cat = "기타"
		}
		byCategory[cat] = append(byCategory[cat], memo)
	}

	return &SummaryResult{
		Memos:      memos,
		PeriodName: periodName,
		ByCategory: byCategory,
	}, nil
}

// Stats returns the user's memo counts across the fixed category set.
func (s *Service) Stats(ctx context.Context, userID string) (*store.Stats, error) {
	return s.store.Stats(ctx, userID, intent.Categories)
}

var defaultTopCategories = []string{"영상", "맛집", "쇼핑", "학습"}

// TopCategories returns the user's most used categories, padded with
// defaults when there is not enough data.
func (s *Service) TopCategories(ctx context.Context, userID string, limit int) ([]string, error) {
	stats, err := s.store.Stats(ctx, userID, intent.Categories)
	if err != nil {
		return nil, err
	}

	type catCount struct {
		name  string
		count int64
	}
	counts := make([]catCount, 0, len(stats.ByCategory))
	for cat, count := range stats.ByCategory {
		counts = append(counts, catCount{cat, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	top := make([]string, 0, limit)
	for _, c := range counts {
		if len(top) >= limit {
			break
		}
		top = append(top, c.name)
	}
	for _, d := range defaultTopCategories {
		if len(top) >= limit {
			break
		}
		if !contains(top, d) {
			top = append(top, d)
		}
	}
	return top, nil
}

// Recent returns the newest memos.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]*store.Memo, error) {
	return s.store.RecentMemos(ctx, userID, limit)
}

// Delete removes a memo by ID, or by the best keyword match when no ID
// is given. The deleted memo is returned for the confirmation message.
func (s *Service) Delete(ctx context.Context, userID, memoID, keyword string) (*store.Memo, error) {
	var memo *store.Memo
	var err error

	if memoID == "" && keyword != "" {
		memos, err := s.store.SearchMemos(ctx, userID, keyword, "", 1)
		if err != nil {
			return nil, err
		}
		if len(memos) == 0 {
			return nil, ErrNotFound
		}
		memo = memos[0]
		memoID = memo.ID
	} else {
		memo, err = s.store.MemoByID(ctx, userID, memoID)
		if err != nil {
			return nil, err
		}
		if memo == nil {
			return nil, ErrNotFound
		}
	}

	deleted, err := s.store.DeleteMemo(ctx, userID, memoID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrNotFound
	}
	return memo, nil
}

// Reminders lists the user's unsent reminders, soonest first.
func (s *Service) Reminders(ctx context.Context, userID string) ([]*store.Memo, error) {
	return s.store.UserReminders(ctx, userID, false)
}

// Detail resolves a memo by full ID or short-ID prefix.
func (s *Service) Detail(ctx context.Context, userID, memoID, shortID string) (*store.Memo, error) {
	var memo *store.Memo
	var err error
	if memoID != "" {
		memo, err = s.store.MemoByID(ctx, userID, memoID)
	} else {
		memo, err = s.store.MemoByShortID(ctx, userID, shortID)
	}
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, ErrNotFound
	}
	return memo, nil
}

// GetOrCreateUser resolves a messenger ID to the internal user.
func (s *Service) GetOrCreateUser(ctx context.Context, kakaoID string) (*store.User, error) {
	return s.store.GetOrCreateUser(ctx, kakaoID)
}

// SetUserAccessToken saves an OAuth token so reminders can be delivered
// over KakaoTalk.
func (s *Service) SetUserAccessToken(ctx context.Context, kakaoID, accessToken string) (*store.User, error) {
	return s.store.SetUserAccessToken(ctx, kakaoID, accessToken)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
