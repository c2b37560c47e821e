package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/provider"
)

const classifyTimeout = 10 * time.Second

// Classifier turns a raw chat message into a Classified result. Clear
// commands resolve through the rule table; everything else goes to the
// model, and any model failure degrades to a save.
type Classifier struct {
	provider provider.Provider
	model    string
	logger   *zap.Logger
}

// NewClassifier creates a classifier. p may be nil, in which case every
// non-command message is treated as a save.
func NewClassifier(p provider.Provider, model string, logger *zap.Logger) *Classifier {
	return &Classifier{
		provider: p,
		model:    model,
		logger:   logger,
	}
}

// Classify never returns an error: when neither tier can produce an
// answer the message is classified as a save so nothing the user typed
// is lost.
func (c *Classifier) Classify(ctx context.Context, message string) *Classified {
	if result := FastRuleClassify(message); result != nil {
		c.logger.Debug("fast rule classified",
			zap.String("intent", string(result.Intent)),
			zap.Float64("confidence", result.Confidence))
		return result
	}

	if c.provider == nil {
		return &Classified{
			Intent:     IntentSave,
			Confidence: 0.5,
			Reasoning:  "API 키 없음, 기본 저장 처리",
		}
	}

	result, err := c.remoteClassify(ctx, message)
	if err != nil {
		c.logger.Warn("remote classification failed", zap.Error(err))
		return &Classified{
			Intent:     IntentSave,
			Confidence: 0.5,
			Reasoning:  "AI 분류 실패, 안전하게 저장 처리",
		}
	}
	return result
}

func (c *Classifier) remoteClassify(ctx context.Context, message string) (*Classified, error) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	resp, err := c.provider.Chat(ctx, &provider.ChatRequest{
		Model: c.model,
		Messages: []provider.Message{
			{Role: "system", Content: "의도 분류 AI입니다. JSON으로만 응답합니다."},
			{Role: "user", Content: fmt.Sprintf(intentPrompt, message)},
		},
		Temperature:    0.1,
		MaxTokens:      200,
		ResponseFormat: &provider.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}

	// confidence를 포인터로 받아 값 0과 필드 누락을 구분한다
	var raw struct {
		Classified
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &raw); err != nil {
		return nil, fmt.Errorf("parse classification: %w", err)
	}

	result := raw.Classified
	if result.Intent == "" {
		result.Intent = IntentSave
	}
	if raw.Confidence == nil {
		result.Confidence = 0.7
	} else {
		result.Confidence = *raw.Confidence
	}

	c.logger.Debug("remote classified",
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
		zap.String("reasoning", result.Reasoning))
	return &result, nil
}

// ClassifyCategory picks one category word for a memo, falling back to
// the memo's first word when the model is unavailable or fails.
func (c *Classifier) ClassifyCategory(ctx context.Context, content string) string {
	words := strings.Fields(content)
	firstWord := "기타"
	if len(words) > 0 {
		firstWord = words[0]
	}

	if c.provider == nil {
		return firstWord
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.provider.Chat(ctx, &provider.ChatRequest{
		Model: c.model,
		Messages: []provider.Message{
			{Role: "user", Content: fmt.Sprintf(categoryPrompt, content)},
		},
		Temperature: 0.1,
		MaxTokens:   20,
	})
	if err != nil {
		c.logger.Warn("category classification failed", zap.Error(err))
		return firstWord
	}

	if category := strings.TrimSpace(resp.Content); category != "" {
		return category
	}
	return firstWord
}
