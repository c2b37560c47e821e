package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/provider"
)

// Analysis is the enrichment attached to a memo when it is saved.
type Analysis struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
}

// platformCategories maps a detected link platform to a memo category.
var platformCategories = map[string]string{
	"youtube": "영상", "instagram": "영상", "tiktok": "영상", "netflix": "영상",
	"spotify": "음악", "melon": "음악", "apple_music": "음악",
	"airbnb": "여행", "booking": "여행", "yanolja": "여행",
	"kakao_map": "맛집", "naver_map": "맛집", "mango_plate": "맛집",
	"coupang": "쇼핑", "musinsa": "쇼핑", "zigzag": "쇼핑",
	"inflearn": "학습", "udemy": "학습", "coursera": "학습",
	"github": "학습", "gitlab": "학습", "stackoverflow": "학습",
	"naver_blog": "읽을거리", "tistory": "읽을거리", "velog": "읽을거리",
}

// categoryKeywords drives the keyword fallback, checked in order.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"영상", []string{"youtube", "youtu.be", "영상", "동영상", "넷플릭스"}},
	{"음악", []string{"spotify", "멜론", "음악", "노래", "플레이리스트"}},
	{"맛집", []string{"맛집", "음식", "카페", "식당", "레스토랑"}},
	{"쇼핑", []string{"쇼핑", "구매", "상품", "쿠팡", "할인"}},
	{"여행", []string{"여행", "호텔", "항공", "숙소", "관광"}},
	{"할일", []string{"해야", "할일", "예약", "약속", "회의", "내일", "오전", "오후"}},
	{"학습", []string{"강의", "공부", "코딩", "tutorial", "교육"}},
	{"건강", []string{"운동", "헬스", "다이어트", "건강"}},
	{"읽을거리", []string{"블로그", "뉴스", "기사", "글"}},
}

// AnalyzeMemo classifies a memo into a category with tags and a short
// summary. The model is tried first; any failure falls back to the
// platform and keyword rules so a save never blocks on the API.
func (c *Classifier) AnalyzeMemo(ctx context.Context, content string, meta *metadata.Metadata) Analysis {
	if c.provider != nil {
		if analysis, err := c.remoteAnalyze(ctx, content, meta); err == nil {
			return analysis
		} else {
			c.logger.Warn("memo analysis failed", zap.Error(err))
		}
	}
	return RuleBasedAnalysis(content, meta)
}

func (c *Classifier) remoteAnalyze(ctx context.Context, content string, meta *metadata.Metadata) (Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	metaInfo := ""
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err == nil {
			metaInfo = "메타데이터: " + string(raw)
		}
	}

	resp, err := c.provider.Chat(ctx, &provider.ChatRequest{
		Model: c.model,
		Messages: []provider.Message{
			{Role: "user", Content: fmt.Sprintf(analyzePrompt, content, metaInfo)},
		},
		Temperature:    0.3,
		MaxTokens:      200,
		ResponseFormat: &provider.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("chat request: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(resp.Content), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("parse analysis: %w", err)
	}
	if analysis.Category == "" {
		analysis.Category = "기타"
	}
	return analysis, nil
}

// RuleBasedAnalysis classifies a memo without the model, first by link
// platform and then by keyword.
func RuleBasedAnalysis(content string, meta *metadata.Metadata) Analysis {
	if meta != nil && meta.Type != "" {
		if category, ok := platformCategories[meta.Type]; ok {
			summary := meta.Title
			if summary == "" {
				summary = content
			}
			return Analysis{
				Category: category,
				Tags:     []string{meta.Type},
				Summary:  truncate(summary, 30),
			}
		}
	}

	contentLower := strings.ToLower(content)
	for _, group := range categoryKeywords {
		for _, word := range group.words {
			if strings.Contains(contentLower, word) {
				return Analysis{
					Category: group.category,
					Tags:     []string{group.category},
					Summary:  truncate(content, 30),
				}
			}
		}
	}

	return Analysis{Category: "기타", Tags: []string{}, Summary: truncate(content, 30)}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
