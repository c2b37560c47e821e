package intent

import (
	"regexp"
	"strings"
)

// exactMatches resolves unambiguous commands in a single map lookup.
var exactMatches = map[string]Classified{
	// 리마인더
	"리마인더":  {Intent: IntentReminder, Confidence: 1.0},
	"알림":    {Intent: IntentReminder, Confidence: 1.0},
	"알림 목록": {Intent: IntentReminder, Confidence: 1.0},
	// 통계
	"통계": {Intent: IntentStats, Confidence: 1.0},
	// 도움말/홈
	"도움말": {Intent: IntentHelp, Confidence: 1.0},
	"홈":   {Intent: IntentHelp, Confidence: 1.0},
	"사용법": {Intent: IntentHelp, Confidence: 1.0},
	"?":   {Intent: IntentHelp, Confidence: 1.0},
	// AI 분류 저장
	"AI 분류": {Intent: IntentSaveWithAI, Confidence: 1.0},
	"ai 분류": {Intent: IntentSaveWithAI, Confidence: 1.0},
	"요약 저장": {Intent: IntentSaveWithAI, Confidence: 1.0},
	"분류 저장": {Intent: IntentSaveWithAI, Confidence: 1.0},
	// 기간별 정리
	"오늘 정리":   {Intent: IntentSummary, Confidence: 1.0, Period: PeriodToday},
	"오늘정리":    {Intent: IntentSummary, Confidence: 1.0, Period: PeriodToday},
	"어제 정리":   {Intent: IntentSummary, Confidence: 1.0, Period: PeriodYesterday},
	"이번주 정리":  {Intent: IntentSummary, Confidence: 1.0, Period: PeriodWeek},
	"이번 주 정리": {Intent: IntentSummary, Confidence: 1.0, Period: PeriodWeek},
	"지난주 정리":  {Intent: IntentSummary, Confidence: 1.0, Period: PeriodLastWeek},
	"지난 주 정리": {Intent: IntentSummary, Confidence: 1.0, Period: PeriodLastWeek},
	"이번달 정리":  {Intent: IntentSummary, Confidence: 1.0, Period: PeriodMonth},
	"이번 달 정리": {Intent: IntentSummary, Confidence: 1.0, Period: PeriodMonth},
	"지난달 정리":  {Intent: IntentSummary, Confidence: 1.0, Period: PeriodLastMonth},
	"전체 보여줘":  {Intent: IntentSummary, Confidence: 1.0, Period: PeriodAll},
	"전체보여줘":   {Intent: IntentSummary, Confidence: 1.0, Period: PeriodAll},
}

// uuidRe matches the canonical UUID string shape.
var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

var shortIDRe = regexp.MustCompile(`^[0-9a-f]{8}$`)

func init() {
	// 카테고리별 정리 + 전체보기 조합을 테이블에 전개한다.
	for _, cat := range Categories {
		exactMatches[cat+" 정리"] = Classified{Intent: IntentSummary, Confidence: 1.0, Category: cat}
		exactMatches["전체보기 "+cat] = Classified{Intent: IntentSummary, Confidence: 1.0, Category: cat, ShowAll: true}
	}
	for _, period := range []string{PeriodToday, PeriodYesterday, PeriodWeek, PeriodLastWeek, PeriodMonth, PeriodAll} {
		exactMatches["전체보기 "+period] = Classified{Intent: IntentSummary, Confidence: 1.0, Period: period, ShowAll: true}
	}
}

// FastRuleClassify classifies clear-cut commands without a network call.
// It returns nil when no rule fires, delegating to the remote classifier.
func FastRuleClassify(message string) *Classified {
	msg := strings.TrimSpace(message)
	msgLower := strings.ToLower(msg)

	if hit, ok := exactMatches[msg]; ok {
		return &hit
	}

	// 검색
	if keyword, ok := stripCommandPrefix(msg, "검색 "); ok && keyword != "" {
		return &Classified{Intent: IntentSearch, Confidence: 1.0, Keyword: keyword}
	}
	if keyword, ok := stripCommandSuffix(msg, " 검색"); ok && keyword != "" {
		return &Classified{Intent: IntentSearch, Confidence: 1.0, Keyword: keyword}
	}
	if strings.Contains(msg, "찾아줘") {
		if keyword := strings.TrimSpace(strings.ReplaceAll(msg, "찾아줘", "")); keyword != "" {
			return &Classified{Intent: IntentSearch, Confidence: 0.9, Keyword: keyword}
		}
	}

	// 삭제: UUID 모양이면 상세보기에서 온 삭제 버튼, 아니면 키워드 삭제
	if keyword, ok := stripCommandPrefix(msg, "삭제 "); ok && keyword != "" {
		if uuidRe.MatchString(keyword) {
			return &Classified{Intent: IntentDelete, Confidence: 1.0, MemoID: keyword}
		}
		return &Classified{Intent: IntentDelete, Confidence: 1.0, Keyword: keyword}
	}
	if keyword, ok := stripCommandSuffix(msg, " 삭제"); ok && keyword != "" {
		return &Classified{Intent: IntentDelete, Confidence: 1.0, Keyword: keyword}
	}
	if strings.Contains(msg, "지워줘") || strings.Contains(msg, "지워") {
		keyword := strings.ReplaceAll(msg, "지워줘", "")
		keyword = strings.TrimSpace(strings.ReplaceAll(keyword, "지워", ""))
		if keyword != "" {
			return &Classified{Intent: IntentDelete, Confidence: 0.9, Keyword: keyword}
		}
	}

	// 상세 보기
	if memoID, ok := stripCommandPrefix(msg, "상세 "); ok && memoID != "" {
		return &Classified{Intent: IntentDetail, Confidence: 1.0, MemoID: memoID}
	}
	if strings.HasPrefix(msg, "#") {
		if shortID := strings.ToLower(msg[1:]); shortIDRe.MatchString(shortID) {
			return &Classified{Intent: IntentDetail, Confidence: 1.0, ShortID: shortID}
		}
	}

	// URL은 무조건 저장
	if strings.HasPrefix(msgLower, "http://") || strings.HasPrefix(msgLower, "https://") || strings.HasPrefix(msgLower, "www.") {
		return &Classified{Intent: IntentSave, Confidence: 1.0, Reasoning: "URL 감지"}
	}

	// "AI:" 접두사는 명시적 AI 분류 저장 요청
	for _, prefix := range []string{"AI:", "ai:", "AI ", "ai "} {
		if strings.HasPrefix(msg, prefix) {
			content := strings.TrimSpace(msg[len(prefix):])
			return &Classified{Intent: IntentSaveWithAI, Confidence: 1.0, Content: content, Reasoning: "AI 분류 요청"}
		}
	}

	return nil
}

// stripCommandPrefix removes a command prefix, reporting whether it was
// present. The remainder is whitespace-trimmed.
func stripCommandPrefix(msg, prefix string) (string, bool) {
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimSpace(msg[len(prefix):]), true
}

// stripCommandSuffix removes a command suffix, reporting whether it was
// present.
func stripCommandSuffix(msg, suffix string) (string, bool) {
	if !strings.HasSuffix(msg, suffix) {
		return "", false
	}
	return strings.TrimSpace(msg[:len(msg)-len(suffix)]), true
}
