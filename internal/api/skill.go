package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/kakao"
	"github.com/akfldk1028/chatnote/internal/kdate"
	"github.com/akfldk1028/chatnote/internal/memo"
	"github.com/akfldk1028/chatnote/internal/store"
)

// skillRequest is the subset of the Kakao skill payload we read.
type skillRequest struct {
	UserRequest struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Utterance string `json:"utterance"`
	} `json:"userRequest"`
}

// maxMessageLen keeps responses under Kakao's 1000-character limit.
const maxMessageLen = 950

const divider = "────────────────────"

// lowConfidence is the gate under which a non-save intent asks the user
// instead of acting.
const lowConfidence = 0.6

func (h *Handler) handleSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req skillRequest
	if err := decodeBody(r, &req); err != nil {
		h.logger.Warn("skill request parse failed", zap.Error(err))
		writeJSON(w, http.StatusOK, kakao.NewSimpleText("오류가 발생했습니다. 다시 시도해주세요.", nil))
		return
	}

	kakaoID := req.UserRequest.User.ID
	if kakaoID == "" {
		kakaoID = "unknown"
	}
	utterance := strings.TrimSpace(req.UserRequest.Utterance)

	user, err := h.svc.GetOrCreateUser(ctx, kakaoID)
	if err != nil {
		h.logger.Error("get or create user failed", zap.Error(err))
		writeJSON(w, http.StatusOK, kakao.NewSimpleText("오류가 발생했습니다. 다시 시도해주세요.", nil))
		return
	}

	result := h.classifier.Classify(ctx, utterance)
	h.logger.Info("utterance classified",
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence))

	// 분류기가 설정 오류를 알려오면 저장하지 않고 그대로 보여준다
	if result.Intent == intent.IntentError {
		msg := result.Reasoning
		if msg == "" {
			msg = "설정 오류가 발생했습니다."
		}
		writeJSON(w, http.StatusOK, kakao.NewSimpleText(msg, kakao.SubPageQuickReplies()))
		return
	}

	// 애매한 명령은 실행하지 않고 확인을 받는다
	if result.Confidence < lowConfidence && result.Intent != intent.IntentSave {
		writeJSON(w, http.StatusOK, kakao.NewSimpleText(
			fmt.Sprintf("'%s'를 어떻게 처리할까요?", utterance),
			[]kakao.QuickReply{
				{Label: "← 홈", Action: "message", MessageText: "홈"},
				{Label: "메모 저장", Action: "message", MessageText: utterance},
				{Label: "오늘", Action: "message", MessageText: "오늘 정리"},
				{Label: "검색", Action: "message", MessageText: "검색 " + utterance},
			}))
		return
	}

	var resp *kakao.Response
	switch result.Intent {
	case intent.IntentSummary:
		period := result.Period
		if period == "" && result.Category == "" {
			period = "today"
		}
		resp = h.handleSummary(ctx, user.ID, period, result.Category, result.ShowAll)
	case intent.IntentStats:
		resp = h.handleStats(ctx, user.ID)
	case intent.IntentSearch:
		resp = h.handleSearch(ctx, user.ID, result.Keyword)
	case intent.IntentDelete:
		resp = h.handleDelete(ctx, user.ID, result.MemoID, result.Keyword)
	case intent.IntentReminder:
		resp = h.handleReminders(ctx, user.ID)
	case intent.IntentDetail:
		resp = h.handleDetail(ctx, user.ID, result.MemoID, result.ShortID)
	case intent.IntentHelp:
		resp = h.handleHelp()
	case intent.IntentSaveWithAI:
		content := result.Content
		if content == "" {
			content = utterance
		}
		resp = h.handleSave(ctx, user, content)
	default:
		resp = h.handleSave(ctx, user, utterance)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSummary(ctx context.Context, userID, period, category string, showAll bool) *kakao.Response {
	result, err := h.svc.Summary(ctx, userID, period, category)
	if err != nil {
		h.logger.Error("summary failed", zap.Error(err))
		return h.errorResponse()
	}

	var quickReplies []kakao.QuickReply
	if category != "" {
		quickReplies = kakao.CategoryQuickReplies()
	} else {
		quickReplies = kakao.PeriodQuickReplies()
	}

	memos := result.Memos
	if len(memos) == 0 {
		msg := fmt.Sprintf("%s 저장된 메모가 없습니다.", result.PeriodName)
		if category != "" {
			msg = fmt.Sprintf("%s 카테고리에 저장된 메모가 없습니다.", category)
		}
		return kakao.NewSimpleText(msg, quickReplies)
	}

	totalCount := len(memos)
	display := memos
	if !showAll && len(display) > 10 {
		display = display[:10]
	}

	lines := []string{
		fmt.Sprintf("%s · %d/%d", result.PeriodName, len(display), totalCount),
		divider,
		"",
	}
	for _, m := range display {
		lines = append(lines, truncateRunes(m.Summary, 45))
		if m.URL != "" {
			lines = append(lines, m.URL)
		}
		if rel := kakao.FormatRelativeTime(m.CreatedAt, timeNow()); rel != "" {
			lines = append(lines, "└ "+rel)
		}
		lines = append(lines, "")
	}

	// 10건 넘게 남아있으면 전체보기 버튼을 붙인다
	if totalCount > 10 && !showAll {
		target := period
		if category != "" {
			target = category
		}
		quickReplies = append(quickReplies, kakao.QuickReply{
			Label:       fmt.Sprintf("▼ 전체 %d건", totalCount),
			Action:      "message",
			MessageText: "전체보기 " + target,
		})
	}

	return kakao.NewSimpleText(clampMessage(strings.Join(lines, "\n")), quickReplies)
}

// summary 검색어가 날짜 단어면 기간 정리로 돌린다
var dateKeywords = map[string]string{
	"오늘":   "today",
	"어제":   "yesterday",
	"이번주":  "week",
	"이번 주": "week",
	"이번달":  "month",
}

func (h *Handler) handleSearch(ctx context.Context, userID, keyword string) *kakao.Response {
	subQR := kakao.SubPageQuickReplies()

	if keyword == "" {
		return kakao.NewSimpleText("검색어를 입력해주세요.\n예: 검색 맛집", subQR)
	}
	if period, ok := dateKeywords[keyword]; ok {
		return h.handleSummary(ctx, userID, period, "", false)
	}

	memos, err := h.svc.Search(ctx, userID, keyword)
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		return h.errorResponse()
	}
	if len(memos) == 0 {
		return kakao.NewSimpleText(fmt.Sprintf("'%s' 관련 메모가 없습니다.", keyword), subQR)
	}

	lines := []string{
		fmt.Sprintf("검색 '%s' · %d건", keyword, len(memos)),
		divider,
		"",
	}
	for _, m := range memos {
		lines = append(lines, truncateRunes(m.Summary, 40))
		if m.URL != "" {
			lines = append(lines, m.URL)
		}
		lines = append(lines, "")
	}

	return kakao.NewSimpleText(clampMessage(strings.Join(lines, "\n")), subQR)
}

func (h *Handler) handleDelete(ctx context.Context, userID, memoID, keyword string) *kakao.Response {
	subQR := kakao.SubPageQuickReplies()

	if memoID == "" && keyword == "" {
		return kakao.NewSimpleText("삭제할 메모를 검색어로 알려주세요.\n예: 삭제 유튜브", subQR)
	}

	deleted, err := h.svc.Delete(ctx, userID, memoID, keyword)
	if err != nil {
		if errors.Is(err, memo.ErrNotFound) {
			if keyword != "" {
				return kakao.NewSimpleText(fmt.Sprintf("'%s' 관련 메모가 없습니다.", keyword), subQR)
			}
			return kakao.NewSimpleText("메모를 찾을 수 없습니다.", subQR)
		}
		h.logger.Error("delete failed", zap.Error(err))
		return h.errorResponse()
	}

	return kakao.NewSimpleText(
		fmt.Sprintf("삭제 완료\n%s\n%s", divider, truncateRunes(deleted.Summary, 40)),
		subQR)
}

func (h *Handler) handleReminders(ctx context.Context, userID string) *kakao.Response {
	subQR := kakao.SubPageQuickReplies()

	reminders, err := h.svc.Reminders(ctx, userID)
	if err != nil {
		h.logger.Error("reminders failed", zap.Error(err))
		return h.errorResponse()
	}
	if len(reminders) == 0 {
		return kakao.NewSimpleText(
			"리마인더 · 0건\n"+divider+"\n\n예정된 리마인더가 없습니다.\n\n할일 예시\n내일 3시 병원 예약\n다음주 금요일 회의",
			subQR)
	}

	lines := []string{
		fmt.Sprintf("리마인더 · %d건", len(reminders)),
		divider,
		"",
	}
	for _, m := range reminders {
		summary := m.Summary
		if summary == "" {
			summary = m.Content
		}
		lines = append(lines, truncateRunes(summary, 35))

		timeStr := "시간 미지정"
		if m.ReminderAt != nil {
			timeStr = kdate.FormatReminderTime(*m.ReminderAt, timeNow())
		}
		lines = append(lines, "└ "+timeStr, "")
	}

	return kakao.NewSimpleText(clampMessage(strings.Join(lines, "\n")), subQR)
}

func (h *Handler) handleStats(ctx context.Context, userID string) *kakao.Response {
	stats, err := h.svc.Stats(ctx, userID)
	if err != nil {
		h.logger.Error("stats failed", zap.Error(err))
		return h.errorResponse()
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

	catText := "데이터 없음"
	if len(counts) > 0 {
		parts := make([]string, len(counts))
		for i, c := range counts {
			parts[i] = fmt.Sprintf("%s %d", c.name, c.count)
		}
		catText = strings.Join(parts, " · ")
	}

	text := fmt.Sprintf("통계 · 전체 %d건\n%s\n\n오늘 %d · 이번주 %d · 이번달 %d\n\n카테고리별\n%s",
		stats.Total, divider, stats.Today, stats.Week, stats.Month, catText)

	return kakao.NewSimpleText(text, kakao.CategoryQuickReplies())
}

func (h *Handler) handleHelp() *kakao.Response {
	helpText := "챗노트 사용법\n" + divider + `

메모 저장
아무 텍스트나 URL을 보내면 자동 저장
"내일 3시 회의" 형식으로 리마인더 설정

메모 정리
오늘 정리 / 이번주 정리
영상 정리 / 맛집 정리

검색·삭제
검색 유튜브
삭제 유튜브

기타
통계 / 리마인더`

	return kakao.NewSimpleText(helpText, kakao.DefaultQuickReplies())
}

func (h *Handler) handleSave(ctx context.Context, user *store.User, content string) *kakao.Response {
	personalized := h.personalizedQuickReplies(ctx, user.ID)

	if content == "" {
		return kakao.NewSimpleText("저장할 내용을 입력해주세요.", personalized)
	}

	result, err := h.svc.Save(ctx, user.ID, content)
	if err != nil {
		h.logger.Error("save failed", zap.Error(err))
		return kakao.NewSimpleText("저장 실패\n다시 시도해주세요.", personalized)
	}

	if result.URL != "" {
		title := result.Summary
		var siteName string
		var thumbnail string
		if result.Metadata != nil {
			if result.Metadata.Title != "" {
				title = result.Metadata.Title
			}
			siteName = result.Metadata.SiteName
			thumbnail = result.Metadata.Image
		}

		desc := result.Category
		if siteName != "" {
			desc += " · " + siteName
		}

		return kakao.NewBasicCard(
			truncateRunes(title, 35),
			desc,
			thumbnail,
			[]kakao.Button{{Action: "webLink", Label: "바로가기", WebLinkURL: result.URL}},
			personalized)
	}

	extra := ""
	if result.ReminderAt != nil {
		extra = "\n└ 리마인더 설정됨"
	}
	return kakao.NewSimpleText(
		fmt.Sprintf("저장 완료 · %s\n%s\n%s%s", result.Category, divider, result.Summary, extra),
		personalized)
}

func (h *Handler) handleDetail(ctx context.Context, userID, memoID, shortID string) *kakao.Response {
	subQR := kakao.SubPageQuickReplies()

	m, err := h.svc.Detail(ctx, userID, memoID, shortID)
	if err != nil {
		if errors.Is(err, memo.ErrNotFound) {
			return kakao.NewSimpleText("메모를 찾을 수 없습니다.", subQR)
		}
		h.logger.Error("detail failed", zap.Error(err))
		return h.errorResponse()
	}

	title := fmt.Sprintf("%s %s", intent.CategoryEmoji(m.Category), m.Category)
	desc := m.Summary
	if desc == "" {
		desc = m.Content
	}

	buttons := []kakao.Button{
		{Action: "message", Label: "삭제", MessageText: "삭제 " + m.ID},
	}
	if m.URL != "" {
		buttons = append([]kakao.Button{{Action: "webLink", Label: "바로가기", WebLinkURL: m.URL}}, buttons...)
	}

	var thumbnail string
	if m.Metadata != nil {
		thumbnail = m.Metadata.Image
	}

	return kakao.NewBasicCard(title, desc, thumbnail, buttons, subQR)
}

func (h *Handler) personalizedQuickReplies(ctx context.Context, userID string) []kakao.QuickReply {
	top, err := h.svc.TopCategories(ctx, userID, 2)
	if err != nil {
		h.logger.Warn("top categories failed", zap.Error(err))
		top = nil
	}
	return kakao.PersonalizedQuickReplies(top)
}

func (h *Handler) errorResponse() *kakao.Response {
	return kakao.NewSimpleText("오류가 발생했습니다. 다시 시도해주세요.", kakao.SubPageQuickReplies())
}

func clampMessage(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return text
	}
	return string(runes[:maxMessageLen]) + "\n\n... (메시지 길이 제한)"
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
