package kakao

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewSimpleText(t *testing.T) {
	resp := NewSimpleText("안녕하세요", DefaultQuickReplies())
	if resp.Version != "2.0" {
		t.Errorf("version = %q", resp.Version)
	}
	if len(resp.Template.Outputs) != 1 || resp.Template.Outputs[0].SimpleText == nil {
		t.Fatal("expected one simpleText output")
	}
	if resp.Template.Outputs[0].SimpleText.Text != "안녕하세요" {
		t.Errorf("text = %q", resp.Template.Outputs[0].SimpleText.Text)
	}
	if len(resp.Template.QuickReplies) != 7 {
		t.Errorf("quick replies = %d, want 7", len(resp.Template.QuickReplies))
	}
}

func TestNewBasicCardClampsLengths(t *testing.T) {
	longTitle := strings.Repeat("가", 60)
	longDesc := strings.Repeat("나", 100)
	resp := NewBasicCard(longTitle, longDesc, "https://img.example/1.png", nil, nil)

	card := resp.Template.Outputs[0].BasicCard
	if card == nil {
		t.Fatal("expected basicCard output")
	}
	if got := len([]rune(card.Title)); got != 40 {
		t.Errorf("title rune length = %d, want 40", got)
	}
	if got := len([]rune(card.Description)); got != 76 {
		t.Errorf("description rune length = %d, want 76", got)
	}
	if card.Thumbnail == nil || !card.Thumbnail.FixedRatio {
		t.Error("thumbnail should be set with fixedRatio")
	}
}

func TestNewListCardLimitsItems(t *testing.T) {
	items := make([]ListItem, 8)
	for i := range items {
		items[i] = ListItem{Title: "항목"}
	}
	resp := NewListCard("메모", items, nil, nil)
	if got := len(resp.Template.Outputs[0].ListCard.Items); got != 5 {
		t.Errorf("items = %d, want 5", got)
	}
}

func TestNewCarouselLimitsCards(t *testing.T) {
	cards := make([]BasicCard, 12)
	resp := NewCarousel(cards, nil)
	carousel := resp.Template.Outputs[0].Carousel
	if carousel.Type != "basicCard" {
		t.Errorf("type = %q", carousel.Type)
	}
	if len(carousel.Items) != 10 {
		t.Errorf("items = %d, want 10", len(carousel.Items))
	}
}

func TestResponseJSONShape(t *testing.T) {
	resp := NewSimpleText("메모", []QuickReply{msgReply("오늘", "오늘 정리")})
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{`"version":"2.0"`, `"simpleText"`, `"quickReplies"`, `"messageText":"오늘 정리"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshaled response missing %s: %s", key, data)
		}
	}
	// 빈 필드는 내보내지 않는다
	if strings.Contains(string(data), "basicCard") {
		t.Error("empty outputs should be omitted")
	}
}

func TestPersonalizedQuickReplies(t *testing.T) {
	replies := PersonalizedQuickReplies([]string{"영상", "맛집"})
	if replies[0].MessageText != "홈" {
		t.Errorf("first reply = %+v, want home", replies[0])
	}
	if len(replies) != 7 {
		t.Fatalf("got %d replies, want 7", len(replies))
	}
	if replies[3].Label != "영상" || replies[3].MessageText != "영상 정리" {
		t.Errorf("category reply = %+v", replies[3])
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		created time.Time
		want    string
	}{
		{"just now", now.Add(-30 * time.Minute), "방금"},
		{"hours ago", now.Add(-3 * time.Hour), "3시간 전"},
		{"yesterday", now.AddDate(0, 0, -1), "어제"},
		{"days ago", now.AddDate(0, 0, -3), "3일 전"},
		{"weeks ago", now.AddDate(0, 0, -15), "2주 전"},
		{"zero time", time.Time{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.created, now); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
