// Package intent classifies chat utterances into structured intents.
//
// Classification is two-tier: a deterministic rule pass that resolves common
// commands without any network call, and a remote LLM fallback for ambiguous
// text. The facade's contract is total: it always returns a populated
// Classified value and never surfaces an error to the caller.
package intent

// Intent is the classified action a chat utterance represents.
type Intent string

const (
	IntentSummary    Intent = "summary"
	IntentSearch     Intent = "search"
	IntentDelete     Intent = "delete"
	IntentReminder   Intent = "reminder"
	IntentStats      Intent = "stats"
	IntentHelp       Intent = "help"
	IntentSave       Intent = "save"
	IntentSaveWithAI Intent = "save_with_ai"
	IntentDetail     Intent = "detail"
	IntentError      Intent = "error"
)

// Classified is the structured result of intent classification. Intent is
// always set and Confidence always populated; the remaining fields are
// intent-specific.
type Classified struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Keyword    string  `json:"keyword,omitempty"`
	Period     string  `json:"period,omitempty"`
	Category   string  `json:"category,omitempty"`
	ShowAll    bool    `json:"show_all,omitempty"`
	MemoID     string  `json:"memo_id,omitempty"`
	ShortID    string  `json:"short_id,omitempty"`
	Content    string  `json:"content,omitempty"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Periods accepted by the summary intent.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodLastWeek  = "last_week"
	PeriodMonth     = "month"
	PeriodLastMonth = "last_month"
	PeriodAll       = "all"
)

// Categories is the fixed memo category set.
var Categories = []string{
	"영상", "음악", "맛집", "쇼핑", "여행", "할일", "아이디어", "학습", "건강", "읽을거리", "기타",
}

var categoryEmojis = map[string]string{
	"영상":   "📺",
	"음악":   "🎵",
	"맛집":   "🍽️",
	"쇼핑":   "🛒",
	"여행":   "✈️",
	"할일":   "📅",
	"아이디어": "💡",
	"학습":   "📚",
	"건강":   "💪",
	"읽을거리": "📰",
	"기타":   "📌",
}

// CategoryEmoji returns the emoji for a category, defaulting to 기타's.
func CategoryEmoji(category string) string {
	if e, ok := categoryEmojis[category]; ok {
		return e
	}
	return "📌"
}
