package kdate

import (
	"testing"
	"time"
)

var seoul = time.FixedZone("KST", 9*60*60)

// Monday, 2024-01-15 10:00 KST, the fixed reference for all relative expressions.
var refNow = time.Date(2024, 1, 15, 10, 0, 0, 0, seoul)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, seoul)
}

func TestParseDateRelativeDays(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"오늘 정리해야지", date(2024, time.January, 15, 0, 0)},
		{"내일 병원", date(2024, time.January, 16, 0, 0)},
		{"모레 미팅", date(2024, time.January, 17, 0, 0)},
		{"글피 여행", date(2024, time.January, 18, 0, 0)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.text, refNow)
		if !ok {
			t.Fatalf("ParseDate(%q): no match", c.text)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParseDateWeekdays(t *testing.T) {
	// Reference day is a Monday.
	cases := []struct {
		text string
		want time.Time
	}{
		{"금요일 회의", date(2024, time.January, 19, 0, 0)},        // this week
		{"월요일 회의", date(2024, time.January, 15, 0, 0)},        // today stays today
		{"다음주 금요일 회의", date(2024, time.January, 26, 0, 0)},  // +7 on top of this week
		{"다음주 월요일", date(2024, time.January, 22, 0, 0)},       // same day next week
		{"다음주 금", date(2024, time.January, 26, 0, 0)},           // abbreviated form
		{"이번주 토요일 약속", date(2024, time.January, 20, 0, 0)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.text, refNow)
		if !ok {
			t.Fatalf("ParseDate(%q): no match", c.text)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParseDateWeekdayRollsPastDayForward(t *testing.T) {
	// From Wednesday, a bare "화요일" is already past: next week's Tuesday.
	wed := date(2024, time.January, 17, 10, 0)
	got, ok := ParseDate("화요일 점심", wed)
	if !ok {
		t.Fatal("no match")
	}
	want := date(2024, time.January, 23, 0, 0)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDateWeekAndMonthWords(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"이번주 안에", date(2024, time.January, 21, 0, 0)},  // this week's Sunday
		{"다음주 중으로", date(2024, time.January, 22, 0, 0)}, // next week's Monday
		{"이번달 마감", date(2024, time.January, 31, 0, 0)},  // last day of month
		{"다음달 초", date(2024, time.February, 1, 0, 0)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.text, refNow)
		if !ok {
			t.Fatalf("ParseDate(%q): no match", c.text)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParseDateExplicit(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"12월 25일 크리스마스", date(2024, time.December, 25, 0, 0)},
		{"3/1 휴가", date(2024, time.March, 1, 0, 0)},
		{"1월 1일 새해", date(2025, time.January, 1, 0, 0)}, // past date rolls to next year
		{"2-14 발렌타인", date(2024, time.February, 14, 0, 0)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.text, refNow)
		if !ok {
			t.Fatalf("ParseDate(%q): no match", c.text)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParseDateNoMatch(t *testing.T) {
	for _, text := range []string{"회의 자료 준비", "맛있는 파스타집 발견", ""} {
		if _, ok := ParseDate(text, refNow); ok {
			t.Errorf("ParseDate(%q): unexpected match", text)
		}
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		text         string
		hour, minute int
	}{
		{"오후 2시 30분", 14, 30},
		{"오후 2시 반", 14, 30},
		{"오전 9시", 9, 0},
		{"3시", 15, 0}, // bare small hour biases PM
		{"6시", 18, 0},
		{"7시", 7, 0}, // outside the 1-6 window, kept as-is
		{"15:30 회의", 15, 30},
		{"밤 11시", 23, 0},
		{"오전 12시", 0, 0},
		{"아침 6시 운동", 6, 0},
	}
	for _, c := range cases {
		hour, minute, ok := ParseTime(c.text)
		if !ok {
			t.Fatalf("ParseTime(%q): no match", c.text)
		}
		if hour != c.hour || minute != c.minute {
			t.Errorf("ParseTime(%q) = (%d, %d), want (%d, %d)", c.text, hour, minute, c.hour, c.minute)
		}
	}
}

func TestParseTimeNoMatch(t *testing.T) {
	if _, _, ok := ParseTime("보고서 제출"); ok {
		t.Error("unexpected match")
	}
}

func TestParseDateTimeCombinations(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"내일 3시 병원", date(2024, time.January, 16, 15, 0)},
		{"다음주 월요일 오후 2시 회의", date(2024, time.January, 22, 14, 0)},
		{"내일 회의", date(2024, time.January, 16, 9, 0)},     // date only → 09:00
		{"12월 25일", date(2024, time.December, 25, 9, 0)},
		{"오후 3시까지 제출", date(2024, time.January, 15, 15, 0)}, // time only, still ahead today
		{"오전 9시 운동", date(2024, time.January, 16, 9, 0)},      // 09:00 already passed → tomorrow
	}
	for _, c := range cases {
		got, ok := ParseDateTime(c.text, refNow)
		if !ok {
			t.Fatalf("ParseDateTime(%q): no match", c.text)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParseDateTimeNoExpression(t *testing.T) {
	if _, ok := ParseDateTime("회의 자료 준비", refNow); ok {
		t.Error("expected no match for text without date/time phrases")
	}
}

func TestExtractReminderInfo(t *testing.T) {
	info := ExtractReminderInfo("내일 3시 병원", refNow)
	if !info.HasTime || info.At == nil {
		t.Fatal("expected a reminder time")
	}
	want := date(2024, time.January, 16, 15, 0)
	if !info.At.Equal(want) {
		t.Errorf("At = %v, want %v", info.At, want)
	}
	if info.Text != "병원" {
		t.Errorf("Text = %q, want %q", info.Text, "병원")
	}
}

func TestExtractReminderInfoHasTimeInvariant(t *testing.T) {
	info := ExtractReminderInfo("회의 자료 준비", refNow)
	if info.HasTime || info.At != nil {
		t.Error("expected no reminder time")
	}
	if info.Text != "회의 자료 준비" {
		t.Errorf("Text = %q, want original input", info.Text)
	}
}

func TestExtractReminderInfoFallsBackToOriginal(t *testing.T) {
	// Stripping removes everything: the original text must survive.
	info := ExtractReminderInfo("내일 3시", refNow)
	if info.Text != "내일 3시" {
		t.Errorf("Text = %q, want original input", info.Text)
	}
	if !info.HasTime {
		t.Error("expected a reminder time")
	}
}

func TestFormatReminderTime(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{date(2024, time.January, 15, 15, 0), "오늘 오후 3시"},
		{date(2024, time.January, 16, 9, 0), "내일 오전 9시"},
		{date(2024, time.January, 17, 14, 30), "모레 오후 2시 30분"},
		{date(2024, time.January, 19, 12, 0), "금요일 낮 12시"},
		{date(2024, time.December, 25, 18, 0), "12월 25일 오후 6시"},
	}
	for _, c := range cases {
		if got := FormatReminderTime(c.at, refNow); got != c.want {
			t.Errorf("FormatReminderTime(%v) = %q, want %q", c.at, got, c.want)
		}
	}
}

// Feeding FormatReminderTime the output of ParseDateTime reproduces the
// original phrase.
func TestReminderRoundTrip(t *testing.T) {
	at, ok := ParseDateTime("내일 오전 9시", refNow)
	if !ok {
		t.Fatal("no match")
	}
	if got := FormatReminderTime(at, refNow); got != "내일 오전 9시" {
		t.Errorf("round trip = %q, want %q", got, "내일 오전 9시")
	}
}
