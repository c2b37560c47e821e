// Package kdate parses Korean natural-language date and time expressions
// ("내일 3시", "다음주 금요일 오후 2시") into absolute timestamps.
//
// Every function takes the reference time explicitly so callers and tests
// resolve relative expressions deterministically. Unparseable input yields
// ok=false, never an error.
package kdate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// weekday names, full form first so "월요일" is consumed before "월".
var weekdayNames = []struct {
	name string
	day  int // Monday=0 .. Sunday=6
}{
	{"월요일", 0}, {"화요일", 1}, {"수요일", 2}, {"목요일", 3},
	{"금요일", 4}, {"토요일", 5}, {"일요일", 6},
	{"월", 0}, {"화", 1}, {"수", 2}, {"목", 3},
	{"금", 4}, {"토", 5}, {"일", 6},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`), // 1월 15일
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})`),      // 1/15
	regexp.MustCompile(`(\d{1,2})-(\d{1,2})`),      // 1-15
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})분`), // 3시 30분
	regexp.MustCompile(`(\d{1,2})시\s*반`),           // 3시 반
	regexp.MustCompile(`(\d{1,2})시`),                // 3시
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),         // 15:30
}

// ParseDateTime extracts a date and/or time-of-day from text and combines
// them. A date without a time defaults to 09:00. A time without a date
// resolves to today, rolling to tomorrow when the moment has already passed.
func ParseDateTime(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	date, hasDate := ParseDate(text, now)
	hour, minute, hasTime := ParseTime(text)

	switch {
	case hasDate && hasTime:
		return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), true
	case hasDate:
		return time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, now.Location()), true
	case hasTime:
		result := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !result.After(now) {
			result = result.AddDate(0, 0, 1)
		}
		return result, true
	}
	return time.Time{}, false
}

// ParseDate extracts a calendar date (at midnight) from text. Recognized, in
// priority order: relative-day words, weekday names with 이번주/다음주
// modifiers, bare week/month words, and explicit M월 D일 / M/D / M-D forms.
// The first matching rule wins; only one date is extracted per input.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	today := midnight(now)

	relative := []struct {
		word string
		days int
	}{
		{"오늘", 0}, {"내일", 1}, {"모레", 2}, {"글피", 3},
	}
	for _, r := range relative {
		if strings.Contains(text, r.word) {
			return today.AddDate(0, 0, r.days), true
		}
	}

	nextWeek := strings.Contains(text, "다음주") || strings.Contains(text, "다음 주")

	if day, ok := findWeekday(text); ok {
		ahead := day - koreanWeekday(today)
		if nextWeek {
			if ahead <= 0 {
				ahead += 7
			}
			ahead += 7
		} else if ahead < 0 {
			// already past within this week: roll to next week's occurrence
			ahead += 7
		}
		return today.AddDate(0, 0, ahead), true
	}

	if strings.Contains(text, "이번주") || strings.Contains(text, "이번 주") {
		// this week's Sunday
		return today.AddDate(0, 0, 6-koreanWeekday(today)), true
	}
	if nextWeek {
		// next week's Monday
		return today.AddDate(0, 0, 7-koreanWeekday(today)), true
	}
	if strings.Contains(text, "이번달") || strings.Contains(text, "이번 달") {
		// last day of this month
		return time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()), true
	}
	if strings.Contains(text, "다음달") || strings.Contains(text, "다음 달") {
		return time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location()), true
	}

	for _, pat := range datePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		result := time.Date(today.Year(), time.Month(month), day, 0, 0, 0, 0, today.Location())
		if int(result.Month()) != month || result.Day() != day {
			continue // normalized away, e.g. 2월 30일
		}
		if result.Before(today) {
			result = time.Date(today.Year()+1, time.Month(month), day, 0, 0, 0, 0, today.Location())
		}
		return result, true
	}

	return time.Time{}, false
}

// ParseTime extracts an hour/minute pair from text. 오후/저녁/밤 mark PM,
// 오전/아침 mark AM. With neither qualifier, bare hours 1-6 are assumed PM
// (afternoon bias for small hours).
func ParseTime(text string) (hour, minute int, ok bool) {
	isPM := strings.Contains(text, "오후") || strings.Contains(text, "저녁") || strings.Contains(text, "밤")
	isAM := strings.Contains(text, "오전") || strings.Contains(text, "아침")

	for i, pat := range timePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		hour, _ = strconv.Atoi(m[1])
		switch i {
		case 0, 3: // X시 X분, HH:MM
			minute, _ = strconv.Atoi(m[2])
		case 1: // X시 반
			minute = 30
		default:
			minute = 0
		}

		switch {
		case isPM && hour < 12:
			hour += 12
		case isAM && hour == 12:
			hour = 0
		case !isAM && !isPM && hour >= 1 && hour <= 6:
			hour += 12
		}
		return hour, minute, true
	}
	return 0, 0, false
}

// findWeekday looks for a weekday name in text. Single-character
// abbreviations are skipped when directly preceded by a digit so that "12월"
// or "25일" never read as 월요일/일요일.
func findWeekday(text string) (int, bool) {
	runes := []rune(text)
	for _, w := range weekdayNames {
		idx := strings.Index(text, w.name)
		if idx < 0 {
			continue
		}
		if len([]rune(w.name)) == 1 {
			pos := len([]rune(text[:idx]))
			if pos > 0 && runes[pos-1] >= '0' && runes[pos-1] <= '9' {
				continue
			}
		}
		return w.day, true
	}
	return 0, false
}

// koreanWeekday maps time.Weekday to Monday=0 .. Sunday=6.
func koreanWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
