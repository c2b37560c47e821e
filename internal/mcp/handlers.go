package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/store"
)

const heavyDivider = "━━━━━━━━━━━━━━━━━━━━━━━━━━"

var periodNames = map[string]string{
	"today":      "오늘",
	"yesterday":  "어제",
	"week":       "이번 주",
	"last_week":  "지난 주",
	"month":      "이번 달",
	"last_month": "지난 달",
	"all":        "전체",
}

func (s *Server) toolSearchMemo(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	query := args.str("query", "")
	category := args.str("category", "")
	limit := args.num("limit", 5)

	memos, err := s.store.SearchMemos(ctx, userID, query, category, limit)
	if err != nil {
		return "", err
	}
	if len(memos) == 0 {
		return fmt.Sprintf("📭 '%s' 관련 메모가 없습니다.\n\n💡 다른 키워드로 검색해보세요!", query), nil
	}

	lines := []string{
		heavyDivider,
		fmt.Sprintf("🔍 검색: '%s' | %d건 발견", query, len(memos)),
		heavyDivider,
		"",
	}
	for _, m := range memos {
		lines = append(lines, memoBlock(m, 4)...)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolListByCategory(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	category := args.str("category", "기타")
	limit := args.num("limit", 10)

	memos, err := s.store.MemosByCategory(ctx, userID, category, limit)
	if err != nil {
		return "", err
	}
	emoji := intent.CategoryEmoji(category)
	if len(memos) == 0 {
		return fmt.Sprintf("📭 %s %s 카테고리가 비어있습니다.\n\n💡 메모를 저장해보세요!", emoji, category), nil
	}

	lines := []string{
		heavyDivider,
		fmt.Sprintf("%s %s | %d건", emoji, category, len(memos)),
		heavyDivider,
		"",
	}
	for i, m := range memos {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, m.Summary))
		if len(m.Tags) > 0 {
			lines = append(lines, "     🏷 "+tagLine(m.Tags, 3))
		}
		lines = append(lines, "     📅 "+m.CreatedAt.Format("2006-01-02"), "")
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolGetSummary(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	period := args.str("period", "today")
	category := args.str("category", "")

	var (
		memos []*store.Memo
		label string
		err   error
	)
	if category != "" {
		memos, err = s.store.MemosByCategory(ctx, userID, category, 10)
		label = category + " 카테고리"
	} else {
		memos, err = s.store.MemosByPeriod(ctx, userID, period)
		label = periodNames[period]
		if label == "" {
			label = period
		}
	}
	if err != nil {
		return "", err
	}
	if len(memos) == 0 {
		return fmt.Sprintf("📭 %s 저장된 메모가 없습니다.\n\n💡 메모를 저장해보세요!", label), nil
	}

	// 첫 등장 순서를 유지하며 카테고리별로 묶는다
	var cats []string
	byCategory := map[string][]*store.Memo{}
	for _, m := range memos {
		cat := m.Category
		if cat == "" {
			cat = "기타"
		}
		if _, seen := byCategory[cat]; !seen {
			cats = append(cats, cat)
		}
		byCategory[cat] = append(byCategory[cat], m)
	}

	counts := make([]string, len(cats))
	for i, cat := range cats {
		counts[i] = fmt.Sprintf("%s%d", intent.CategoryEmoji(cat), len(byCategory[cat]))
	}

	lines := []string{
		heavyDivider,
		fmt.Sprintf("📊 %s 요약 | 총 %d건", label, len(memos)),
		heavyDivider,
		"",
		"📈 " + strings.Join(counts, " | "),
		"",
	}
	for _, cat := range cats {
		items := byCategory[cat]
		lines = append(lines, fmt.Sprintf("┌─ %s %s (%d건)", intent.CategoryEmoji(cat), cat, len(items)))
		for i, item := range items {
			if i == 3 {
				lines = append(lines, fmt.Sprintf("│  + %d건 더...", len(items)-3))
				break
			}
			lines = append(lines, "│  • "+item.Summary)
		}
		lines = append(lines, "└─", "")
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolGetStats(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")

	stats, err := s.store.Stats(ctx, userID, intent.Categories)
	if err != nil {
		return "", err
	}

	lines := []string{
		heavyDivider,
		"📊 메모 통계",
		heavyDivider,
		"",
		fmt.Sprintf("📈 전체: %d개", stats.Total),
		fmt.Sprintf("📅 오늘: %d개", stats.Today),
		fmt.Sprintf("📆 이번 주: %d개", stats.Week),
		fmt.Sprintf("🗓️ 이번 달: %d개", stats.Month),
		"",
	}

	if len(stats.ByCategory) == 0 {
		lines = append(lines, "📭 아직 저장된 메모가 없습니다.")
		return strings.Join(lines, "\n"), nil
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

	lines = append(lines, "━━━━━━━━━━━━━━━", "📂 카테고리별")
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("  %s %s: %d개", intent.CategoryEmoji(c.name), c.name, c.count))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolGetRecent(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	limit := args.num("limit", 5)

	memos, err := s.store.RecentMemos(ctx, userID, limit)
	if err != nil {
		return "", err
	}
	if len(memos) == 0 {
		return "📭 저장된 메모가 없습니다.\n\n💡 '메모해줘'라고 말해보세요!", nil
	}

	lines := []string{
		heavyDivider,
		fmt.Sprintf("📋 최근 메모 | %d건", len(memos)),
		heavyDivider,
		"",
	}
	for _, m := range memos {
		lines = append(lines, memoBlock(m, 3)...)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolAddMemo(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	content := args.str("content", "")
	category := args.str("category", "기타")
	summary := args.str("summary", truncateRunes(content, 50))
	tags := args.strSlice("tags")

	urls := metadata.ExtractURLs(content)
	memoType := "text"
	var meta *metadata.Metadata
	if len(urls) > 0 {
		memoType = "link"
		meta = s.extractor.Extract(ctx, urls[0])
		if meta == nil {
			meta = &metadata.Metadata{}
		}
		meta.URL = urls[0]
		// 스크랩한 제목이 더 설명적이면 요약으로 쓴다
		if len(meta.Title) > len(summary) {
			summary = truncateRunes(meta.Title, 80)
		}
	}

	m := &store.Memo{
		UserID:   userID,
		Content:  content,
		MemoType: memoType,
		Category: category,
		Tags:     tags,
		Summary:  summary,
		Metadata: meta,
	}
	if meta != nil {
		m.URL = meta.URL
	}
	if _, err := s.store.SaveMemo(ctx, m); err != nil {
		return "", err
	}

	lines := []string{
		heavyDivider,
		"✅ 메모 저장 완료!",
		heavyDivider,
		"",
		fmt.Sprintf("┌─ %s %s", intent.CategoryEmoji(category), category),
		"│  " + summary,
	}
	if len(tags) > 0 {
		lines = append(lines, "│  🏷 "+tagLine(tags, len(tags)))
	}
	if memoType == "link" {
		if meta.SiteName != "" {
			lines = append(lines, "│  📍 "+meta.SiteName)
		}
		lines = append(lines, "│  🔗 "+meta.URL)
		if meta.Image != "" {
			lines = append(lines, "│  🖼 썸네일 저장됨")
		}
	}
	lines = append(lines, "└─", "", "💡 '최근 메모', '메모 검색' 등으로 확인하세요!")
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolDeleteMemo(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	memoID := args.str("memo_id", "")
	if memoID == "" {
		return "❌ 삭제할 메모 ID를 입력해주세요.", nil
	}

	memo, err := s.store.MemoByID(ctx, userID, memoID)
	if err != nil {
		return "", err
	}
	if memo == nil {
		return fmt.Sprintf("❌ 메모를 찾을 수 없습니다.\n\nID: %s\n\n💡 'search_memo'나 'get_recent'로 메모 ID를 확인하세요.", memoID), nil
	}

	ok, err := s.store.DeleteMemo(ctx, userID, memoID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "❌ 메모 삭제에 실패했습니다.", nil
	}

	lines := []string{
		heavyDivider,
		"🗑️ 메모 삭제 완료!",
		heavyDivider,
		"",
		"삭제된 메모:",
		fmt.Sprintf("  %s %s", intent.CategoryEmoji(memo.Category), memo.Summary),
		"  카테고리: " + memo.Category,
		"",
		"💡 '최근 메모'로 확인하세요!",
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Server) toolUpdateMemo(ctx context.Context, args toolArgs) (string, error) {
	userID := args.str("user_id", "anonymous")
	memoID := args.str("memo_id", "")
	newSummary := args.optStr("summary")
	newCategory := args.optStr("category")
	newTags := args.strSlice("tags")
	if len(newTags) == 0 {
		newTags = nil
	}

	if memoID == "" {
		return "❌ 수정할 메모 ID를 입력해주세요.", nil
	}

	old, err := s.store.MemoByID(ctx, userID, memoID)
	if err != nil {
		return "", err
	}
	if old == nil {
		return fmt.Sprintf("❌ 메모를 찾을 수 없습니다.\n\nID: %s\n\n💡 'search_memo'나 'get_recent'로 메모 ID를 확인하세요.", memoID), nil
	}
	if newSummary == nil && newCategory == nil && newTags == nil {
		return "❌ 수정할 내용을 입력해주세요. (summary, category, tags 중 하나 이상)", nil
	}

	updated, err := s.store.UpdateMemo(ctx, userID, memoID, newSummary, newCategory, newTags)
	if err != nil {
		return "", err
	}
	if updated == nil {
		return "❌ 메모 수정에 실패했습니다.", nil
	}

	lines := []string{
		heavyDivider,
		"✏️ 메모 수정 완료!",
		heavyDivider,
		"",
		"변경 내용:",
	}
	if newSummary != nil {
		lines = append(lines, fmt.Sprintf("  📝 요약: %s → %s", old.Summary, updated.Summary))
	}
	if newCategory != nil {
		lines = append(lines, fmt.Sprintf("  📁 카테고리: %s%s → %s%s",
			intent.CategoryEmoji(old.Category), old.Category,
			intent.CategoryEmoji(updated.Category), updated.Category))
	}
	if newTags != nil {
		oldTags := tagLine(old.Tags, len(old.Tags))
		if oldTags == "" {
			oldTags = "없음"
		}
		updatedTags := tagLine(updated.Tags, len(updated.Tags))
		if updatedTags == "" {
			updatedTags = "없음"
		}
		lines = append(lines, fmt.Sprintf("  🏷️ 태그: %s → %s", oldTags, updatedTags))
	}
	lines = append(lines, "", "💡 '최근 메모'로 확인하세요!")
	return strings.Join(lines, "\n"), nil
}

// memoBlock renders one memo as a boxed text block with up to maxTags
// tags.
func memoBlock(m *store.Memo, maxTags int) []string {
	cat := m.Category
	if cat == "" {
		cat = "기타"
	}
	lines := []string{
		fmt.Sprintf("┌─ %s %s", intent.CategoryEmoji(cat), cat),
		"│  " + m.Summary,
	}
	if len(m.Tags) > 0 {
		lines = append(lines, "│  🏷 "+tagLine(m.Tags, maxTags))
	}
	if m.URL != "" {
		lines = append(lines, "│  🔗 "+m.URL)
	}
	lines = append(lines,
		"│  📅 "+m.CreatedAt.Format("2006-01-02"),
		"└─ 🆔 "+m.ID,
		"")
	return lines
}

func tagLine(tags []string, limit int) string {
	if len(tags) > limit {
		tags = tags[:limit]
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
