package store

import (
	"time"

	"github.com/akfldk1028/chatnote/internal/metadata"
)

// Memo is the stored unit of the app. Memos live as JSON values under
// memo:{user}:{id}, indexed by a per-user ZSET (score = creation time)
// and a per-category SET.
type Memo struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Content        string             `json:"content"`
	MemoType       string             `json:"memo_type"` // "text" or "link"
	Category       string             `json:"category"`
	Tags           []string           `json:"tags"`
	Summary        string             `json:"summary"`
	URL            string             `json:"url,omitempty"`
	Metadata       *metadata.Metadata `json:"metadata,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at,omitempty"`
	ReminderAt     *time.Time         `json:"reminder_at,omitempty"`
	ReminderSent   bool               `json:"reminder_sent"`
	ReminderSentAt *time.Time         `json:"reminder_sent_at,omitempty"`
}

// ShortID returns the first 8 characters of the memo's UUID, used as a
// chat-friendly handle.
func (m *Memo) ShortID() string {
	if len(m.ID) < 8 {
		return m.ID
	}
	return m.ID[:8]
}

// User maps a messenger identity to an internal UUID.
type User struct {
	ID          string    `json:"id"`
	KakaoID     string    `json:"kakao_id"`
	AccessToken string    `json:"access_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats summarizes a user's memo counts.
type Stats struct {
	Total      int64            `json:"total"`
	Today      int64            `json:"today"`
	Week       int64            `json:"week"`
	Month      int64            `json:"month"`
	ByCategory map[string]int64 `json:"by_category"`
}

// PendingReminder is a due reminder pulled from the reminders:pending
// ZSET, resolved to its memo.
type PendingReminder struct {
	UserID string
	MemoID string
	Memo   *Memo
}
