// Package kakao builds KakaoTalk skill responses (template v2.0) and
// talks to the Kakao REST API.
package kakao

// Response is the envelope every skill answer uses.
type Response struct {
	Version  string   `json:"version"`
	Template Template `json:"template"`
}

// Template carries the visible outputs plus optional quick replies.
type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// Output is one renderable block. Exactly one field is set.
type Output struct {
	SimpleText *SimpleText `json:"simpleText,omitempty"`
	BasicCard  *BasicCard  `json:"basicCard,omitempty"`
	ListCard   *ListCard   `json:"listCard,omitempty"`
	Carousel   *Carousel   `json:"carousel,omitempty"`
}

type SimpleText struct {
	Text string `json:"text"`
}

type BasicCard struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Buttons     []Button   `json:"buttons,omitempty"`
}

type Thumbnail struct {
	ImageURL   string `json:"imageUrl"`
	FixedRatio bool   `json:"fixedRatio,omitempty"`
}

type Button struct {
	Action      string `json:"action"`
	Label       string `json:"label"`
	WebLinkURL  string `json:"webLinkUrl,omitempty"`
	MessageText string `json:"messageText,omitempty"`
}

type ListCard struct {
	Header  ListHeader `json:"header"`
	Items   []ListItem `json:"items"`
	Buttons []Button   `json:"buttons,omitempty"`
}

type ListHeader struct {
	Title string `json:"title"`
}

type ListItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        *Link  `json:"link,omitempty"`
}

type Link struct {
	Web string `json:"web,omitempty"`
}

type Carousel struct {
	Type  string      `json:"type"`
	Items []BasicCard `json:"items"`
}

// QuickReply is a suggestion chip under the message.
type QuickReply struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText"`
}

// Display limits from the Kakao template reference.
const (
	maxCardTitle    = 40
	maxCardDesc     = 76
	maxListItems    = 5
	maxCarouselSize = 10
)

// truncateRunes cuts a string to at most limit runes.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// NewSimpleText builds a plain text response.
func NewSimpleText(text string, quickReplies []QuickReply) *Response {
	return &Response{
		Version: "2.0",
		Template: Template{
			Outputs:      []Output{{SimpleText: &SimpleText{Text: text}}},
			QuickReplies: quickReplies,
		},
	}
}

// NewBasicCard builds a single card response. Title and description are
// clamped to Kakao's display limits.
func NewBasicCard(title, description, thumbnailURL string, buttons []Button, quickReplies []QuickReply) *Response {
	card := &BasicCard{
		Title:       truncateRunes(title, maxCardTitle),
		Description: truncateRunes(description, maxCardDesc),
		Buttons:     buttons,
	}
	if thumbnailURL != "" {
		card.Thumbnail = &Thumbnail{ImageURL: thumbnailURL, FixedRatio: true}
	}
	return &Response{
		Version: "2.0",
		Template: Template{
			Outputs:      []Output{{BasicCard: card}},
			QuickReplies: quickReplies,
		},
	}
}

// NewListCard builds a list response, keeping at most five items.
func NewListCard(headerTitle string, items []ListItem, buttons []Button, quickReplies []QuickReply) *Response {
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	return &Response{
		Version: "2.0",
		Template: Template{
			Outputs: []Output{{ListCard: &ListCard{
				Header:  ListHeader{Title: headerTitle},
				Items:   items,
				Buttons: buttons,
			}}},
			QuickReplies: quickReplies,
		},
	}
}

// NewCarousel builds a basicCard carousel, keeping at most ten cards.
func NewCarousel(cards []BasicCard, quickReplies []QuickReply) *Response {
	if len(cards) > maxCarouselSize {
		cards = cards[:maxCarouselSize]
	}
	for i := range cards {
		cards[i].Title = truncateRunes(cards[i].Title, maxCardTitle)
		cards[i].Description = truncateRunes(cards[i].Description, maxCardDesc)
	}
	return &Response{
		Version: "2.0",
		Template: Template{
			Outputs:      []Output{{Carousel: &Carousel{Type: "basicCard", Items: cards}}},
			QuickReplies: quickReplies,
		},
	}
}
