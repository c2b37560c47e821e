package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	memoAPIURL     = "https://kapi.kakao.com/v2/api/talk/memo/default/send"
	tokenAPIURL    = "https://kauth.kakao.com/oauth/token"
	userAPIURL     = "https://kapi.kakao.com/v2/user/me"
	defaultLinkURL = "https://playmcp.kakao.com"
	requestTimeout = 10 * time.Second
)

// Client calls the Kakao REST and OAuth APIs.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
	logger       *zap.Logger

	// endpoints are fields so tests can point them at a local server
	memoURL  string
	tokenURL string
	userURL  string
}

func NewClient(clientID, clientSecret, redirectURI string, logger *zap.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: requestTimeout},
		logger:       logger,
		memoURL:      memoAPIURL,
		tokenURL:     tokenAPIURL,
		userURL:      userAPIURL,
	}
}

type textTemplate struct {
	ObjectType string       `json:"object_type"`
	Text       string       `json:"text"`
	Link       templateLink `json:"link"`
}

type templateLink struct {
	WebURL       string `json:"web_url"`
	MobileWebURL string `json:"mobile_web_url"`
}

// SendToMe delivers a text message to the user's own chat via the
// "나에게 보내기" API.
func (c *Client) SendToMe(ctx context.Context, accessToken, message, linkURL string) error {
	if accessToken == "" {
		return fmt.Errorf("no access token")
	}
	if linkURL == "" {
		linkURL = defaultLinkURL
	}

	template, err := json.Marshal(textTemplate{
		ObjectType: "text",
		Text:       message,
		Link:       templateLink{WebURL: linkURL, MobileWebURL: linkURL},
	})
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	form := url.Values{"template_object": {string(template)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.memoURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send to me: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send to me: status %d", resp.StatusCode)
	}

	c.logger.Debug("kakao message sent")
	return nil
}
