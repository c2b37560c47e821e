package intent

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/provider"
)

type fakeProvider struct {
	content string
	err     error
	lastReq *provider.ChatRequest
}

func (f *fakeProvider) ID() string   { return "fake" }
func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) Chat(_ context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &provider.ChatResponse{Content: f.content}, nil
}

func TestClassifyFastPathSkipsProvider(t *testing.T) {
	fake := &fakeProvider{content: `{"intent":"search"}`}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	result := c.Classify(context.Background(), "오늘 정리")
	if result.Intent != IntentSummary {
		t.Fatalf("intent = %s, want summary", result.Intent)
	}
	if fake.lastReq != nil {
		t.Error("fast path should not call the provider")
	}
}

func TestClassifyRemoteFallback(t *testing.T) {
	fake := &fakeProvider{content: `{"intent":"stats","confidence":0.85,"reasoning":"통계 질문"}`}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	result := c.Classify(context.Background(), "몇 개 저장했어?")
	if result.Intent != IntentStats {
		t.Fatalf("intent = %s, want stats", result.Intent)
	}
	if result.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", result.Confidence)
	}

	if fake.lastReq == nil {
		t.Fatal("provider was not called")
	}
	if fake.lastReq.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", fake.lastReq.Temperature)
	}
	if fake.lastReq.MaxTokens != 200 {
		t.Errorf("maxTokens = %d, want 200", fake.lastReq.MaxTokens)
	}
	if fake.lastReq.ResponseFormat == nil || fake.lastReq.ResponseFormat.Type != "json_object" {
		t.Errorf("responseFormat = %+v, want json_object", fake.lastReq.ResponseFormat)
	}
}

func TestClassifyBackfillsMissingFields(t *testing.T) {
	fake := &fakeProvider{content: `{"reasoning":"불완전한 응답"}`}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	result := c.Classify(context.Background(), "애매한 문장입니다")
	if result.Intent != IntentSave {
		t.Errorf("intent = %s, want save backfill", result.Intent)
	}
	if result.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7 backfill", result.Confidence)
	}
}

func TestClassifyKeepsExplicitZeroConfidence(t *testing.T) {
	fake := &fakeProvider{content: `{"intent":"search","confidence":0,"keyword":"뭔가"}`}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	// 값 0은 모델의 답이지 필드 누락이 아니다
	result := c.Classify(context.Background(), "애매한 문장입니다")
	if result.Intent != IntentSearch {
		t.Errorf("intent = %s, want search", result.Intent)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", result.Confidence)
	}
}

func TestClassifyNilProviderDefaultsToSave(t *testing.T) {
	c := NewClassifier(nil, "", zap.NewNop())

	result := c.Classify(context.Background(), "애매한 문장입니다")
	if result.Intent != IntentSave {
		t.Errorf("intent = %s, want save", result.Intent)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.Confidence)
	}
}

func TestClassifyProviderErrorDefaultsToSave(t *testing.T) {
	fake := &fakeProvider{err: errors.New("rate limited")}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	result := c.Classify(context.Background(), "애매한 문장입니다")
	if result.Intent != IntentSave || result.Confidence != 0.5 {
		t.Errorf("got %+v, want save 0.5", result)
	}
}

func TestClassifyMalformedJSONDefaultsToSave(t *testing.T) {
	fake := &fakeProvider{content: "죄송합니다, JSON이 아닌 답변입니다"}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	result := c.Classify(context.Background(), "애매한 문장입니다")
	if result.Intent != IntentSave || result.Confidence != 0.5 {
		t.Errorf("got %+v, want save 0.5", result)
	}
}

func TestAnalyzeMemoRemote(t *testing.T) {
	fake := &fakeProvider{content: `{"category":"맛집","tags":["파스타"],"summary":"파스타집 발견"}`}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	analysis := c.AnalyzeMemo(context.Background(), "맛있는 파스타집 발견", nil)
	if analysis.Category != "맛집" {
		t.Errorf("category = %q, want 맛집", analysis.Category)
	}
	if analysis.Summary != "파스타집 발견" {
		t.Errorf("summary = %q", analysis.Summary)
	}
}

func TestAnalyzeMemoFallsBackOnError(t *testing.T) {
	fake := &fakeProvider{err: errors.New("unavailable")}
	c := NewClassifier(fake, "gpt-4o-mini", zap.NewNop())

	analysis := c.AnalyzeMemo(context.Background(), "운동 루틴 기록", nil)
	if analysis.Category != "건강" {
		t.Errorf("category = %q, want 건강 from keyword rules", analysis.Category)
	}
}

func TestRuleBasedAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		meta     *metadata.Metadata
		category string
	}{
		{"platform youtube", "https://youtube.com/watch?v=abc", &metadata.Metadata{Type: "youtube", Title: "고양이 영상"}, "영상"},
		{"platform github", "https://github.com/chi", &metadata.Metadata{Type: "github"}, "학습"},
		{"keyword meal", "강남 파스타 맛집", nil, "맛집"},
		{"keyword todo", "내일 오전 회의 준비", nil, "할일"},
		{"no match", "그냥 떠오른 생각", nil, "기타"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := RuleBasedAnalysis(tt.content, tt.meta)
			if analysis.Category != tt.category {
				t.Errorf("category = %q, want %q", analysis.Category, tt.category)
			}
		})
	}
}

func TestRuleBasedAnalysisTruncatesSummary(t *testing.T) {
	long := "아주 긴 메모 내용입니다 삼십자를 훌쩍 넘어가는 문장이라서 요약이 잘려야 합니다"
	analysis := RuleBasedAnalysis(long, nil)
	if got := len([]rune(analysis.Summary)); got > 30 {
		t.Errorf("summary rune length = %d, want <= 30", got)
	}
}

func TestClassifyCategoryFirstWordFallback(t *testing.T) {
	c := NewClassifier(nil, "", zap.NewNop())
	if got := c.ClassifyCategory(context.Background(), "건축사 층고제한규정"); got != "건축사" {
		t.Errorf("category = %q, want 건축사", got)
	}
	if got := c.ClassifyCategory(context.Background(), ""); got != "기타" {
		t.Errorf("empty content category = %q, want 기타", got)
	}
}
