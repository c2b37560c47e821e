package kakao

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a creation time the way the chat UI shows
// it: 방금, N시간 전, 어제, N일 전, N주 전.
func FormatRelativeTime(created, now time.Time) string {
	if created.IsZero() {
		return ""
	}

	diff := now.Sub(created)
	days := int(diff.Hours() / 24)

	switch {
	case days == 0:
		hours := int(diff.Hours())
		if hours == 0 {
			return "방금"
		}
		return fmt.Sprintf("%d시간 전", hours)
	case days == 1:
		return "어제"
	case days < 7:
		return fmt.Sprintf("%d일 전", days)
	default:
		return fmt.Sprintf("%d주 전", days/7)
	}
}
