// Package metadata fetches Open Graph metadata for saved URLs and detects
// which platform a link points at.
package metadata

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Metadata describes a scraped URL.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	URL         string `json:"url"`
	Type        string `json:"type"`
}

var urlRe = regexp.MustCompile(`https?://\S+`)

// ExtractURLs returns all http/https URLs found in text.
func ExtractURLs(text string) []string {
	return urlRe.FindAllString(text, -1)
}

// HasURL reports whether text contains an http/https URL.
func HasURL(text string) bool {
	return urlRe.MatchString(text)
}

// platformDomains maps a platform key to the domains that identify it.
var platformDomains = map[string][]string{
	// 영상
	"youtube":   {"youtube.com", "youtu.be"},
	"instagram": {"instagram.com"},
	"tiktok":    {"tiktok.com"},
	"netflix":   {"netflix.com"},
	// 음악
	"spotify":     {"spotify.com", "open.spotify.com"},
	"melon":       {"melon.com"},
	"apple_music": {"music.apple.com"},
	"soundcloud":  {"soundcloud.com"},
	// 블로그/읽을거리
	"naver_blog": {"blog.naver.com", "m.blog.naver.com"},
	"tistory":    {"tistory.com"},
	"velog":      {"velog.io"},
	"brunch":     {"brunch.co.kr"},
	"medium":     {"medium.com"},
	// 쇼핑
	"coupang": {"coupang.com"},
	"musinsa": {"musinsa.com"},
	"zigzag":  {"zigzag.kr", "croquis.com"},
	// 여행
	"airbnb":     {"airbnb.com", "airbnb.co.kr"},
	"booking":    {"booking.com"},
	"yanolja":    {"yanolja.com"},
	"goodchoice": {"goodchoice.kr"},
	// 맛집
	"kakao_map":   {"map.kakao.com", "place.map.kakao.com"},
	"naver_map":   {"map.naver.com", "naver.me"},
	"mango_plate": {"mangoplate.com"},
	// 학습
	"inflearn": {"inflearn.com"},
	"udemy":    {"udemy.com"},
	"coursera": {"coursera.org"},
	"class101": {"class101.net"},
	"github":   {"github.com"},
	// 기타
	"naver": {"naver.com"},
	"kakao": {"kakao.com"},
}

// DetectPlatform identifies the platform behind a URL, or "link".
func DetectPlatform(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "link"
	}
	host := strings.ToLower(parsed.Host)
	for platform, domains := range platformDomains {
		for _, d := range domains {
			if strings.Contains(host, d) {
				return platform
			}
		}
	}
	return "link"
}

// Extractor scrapes Open Graph tags from URLs.
type Extractor struct {
	client *http.Client
	logger *zap.Logger
}

// NewExtractor creates a metadata extractor with a bounded HTTP timeout.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

// Extract fetches a URL and reads its OG tags. Best-effort: on any failure
// the result still carries the URL and detected platform.
func (e *Extractor) Extract(ctx context.Context, rawURL string) *Metadata {
	meta := &Metadata{URL: rawURL, Type: DetectPlatform(rawURL)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return meta
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ChatNoteBot/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("metadata fetch failed", zap.String("url", rawURL), zap.Error(err))
		return meta
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.logger.Debug("metadata parse failed", zap.String("url", rawURL), zap.Error(err))
		return meta
	}

	meta.Title = firstOf(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	meta.Description = firstOf(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	meta.Image = metaContent(doc, `meta[property="og:image"]`)
	meta.SiteName = metaContent(doc, `meta[property="og:site_name"]`)
	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
