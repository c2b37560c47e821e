package kdate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ReminderInfo is the result of extracting reminder scheduling data from a
// free-form phrase.
type ReminderInfo struct {
	At      *time.Time // nil when no date/time expression was found
	Text    string     // input with date/time phrases stripped, never empty
	HasTime bool       // true iff At is non-nil
}

// phrase patterns removed when recovering the clean reminder text.
var strippablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`오전|오후|아침|저녁|밤`),
	regexp.MustCompile(`\d{1,2}시\s*\d{0,2}분?`),
	regexp.MustCompile(`\d{1,2}시\s*반`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`오늘|내일|모레|글피`),
	regexp.MustCompile(`이번\s*주|다음\s*주|이번주|다음주`),
	regexp.MustCompile(`이번\s*달|다음\s*달|이번달|다음달`),
	regexp.MustCompile(`월요일|화요일|수요일|목요일|금요일|토요일|일요일`),
	regexp.MustCompile(`까지|전에|마감`),
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractReminderInfo parses a reminder time from text and strips the
// date/time phrases to recover the core content. When stripping leaves
// nothing, the original text is kept unmodified.
func ExtractReminderInfo(text string, now time.Time) ReminderInfo {
	info := ReminderInfo{Text: text}

	if at, ok := ParseDateTime(text, now); ok {
		info.At = &at
		info.HasTime = true
	}

	cleaned := text
	for _, pat := range strippablePatterns {
		cleaned = pat.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
	if cleaned != "" {
		info.Text = cleaned
	}
	return info
}

var weekdayLabels = map[time.Weekday]string{
	time.Monday: "월", time.Tuesday: "화", time.Wednesday: "수",
	time.Thursday: "목", time.Friday: "금", time.Saturday: "토", time.Sunday: "일",
}

// FormatReminderTime renders a timestamp as a compact Korean label, e.g.
// "내일 오전 9시" or "12월 25일 오후 2시 30분".
func FormatReminderTime(t, now time.Time) string {
	target := midnight(t)
	today := midnight(now)
	diffDays := int(target.Sub(today).Hours() / 24)

	var dateStr string
	switch {
	case diffDays == 0:
		dateStr = "오늘"
	case diffDays == 1:
		dateStr = "내일"
	case diffDays == 2:
		dateStr = "모레"
	case diffDays < 7:
		dateStr = weekdayLabels[t.Weekday()] + "요일"
	default:
		dateStr = fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
	}

	var timeStr string
	switch {
	case t.Hour() < 12:
		timeStr = fmt.Sprintf("오전 %d시", t.Hour())
	case t.Hour() == 12:
		timeStr = "낮 12시"
	default:
		timeStr = fmt.Sprintf("오후 %d시", t.Hour()-12)
	}
	if t.Minute() > 0 {
		timeStr += fmt.Sprintf(" %d분", t.Minute())
	}

	return dateStr + " " + timeStr
}
