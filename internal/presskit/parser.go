package presskit

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SocialLink is a social profile discovered on an artist's press page.
type SocialLink struct {
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	Followers *int   `json:"followers,omitempty"`
}

type PressKit struct {
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	SocialLinks []SocialLink `json:"social_links"`
	TotalReach  int          `json:"total_reach"`
	FetchedAt   time.Time    `json:"fetched_at"`
}

type Scanner struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewScanner(timeoutMS, maxRetries int, log *zap.Logger) *Scanner {
	return &Scanner{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// FetchAndParse downloads an artist press page and extracts its press kit.
// Retries transient failures with linear backoff.
func (s *Scanner) FetchAndParse(ctx context.Context, url string) (*PressKit, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	return ParseDocument(url, doc), nil
}

// ParseDocument extracts a press kit from an already-fetched page.
func ParseDocument(url string, doc *goquery.Document) *PressKit {
	kit := &PressKit{
		URL:       url,
		FetchedAt: time.Now(),
	}

	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && v != "" {
		kit.Title = strings.TrimSpace(v)
	} else {
		kit.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		kit.Description = strings.TrimSpace(v)
	} else if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		kit.Description = strings.TrimSpace(v)
	}

	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		platform := PlatformFromURL(href)
		if platform == "" || seen[platform] {
			return
		}
		seen[platform] = true

		link := SocialLink{Platform: platform, URL: href}

		// Follower counts, when published, sit in the link text or an
		// adjacent counter element ("12.5K followers").
		text := strings.TrimSpace(sel.Text())
		if n := ParseFollowerCount(text); n > 0 {
			link.Followers = &n
		} else if sib := strings.TrimSpace(sel.Next().Text()); sib != "" {
			if n := ParseFollowerCount(sib); n > 0 {
				link.Followers = &n
			}
		}

		kit.SocialLinks = append(kit.SocialLinks, link)
	})

	for _, l := range kit.SocialLinks {
		if l.Followers != nil {
			kit.TotalReach += *l.Followers
		}
	}

	return kit
}

var socialHosts = map[string]string{
	"instagram.com":  "instagram",
	"tiktok.com":     "tiktok",
	"youtube.com":    "youtube",
	"open.spotify.":  "spotify",
	"facebook.com":   "facebook",
	"twitter.com":    "twitter",
	"x.com":          "twitter",
	"soundcloud.com": "soundcloud",
}

// PlatformFromURL maps a link to a known social platform, or "" if none.
func PlatformFromURL(href string) string {
	href = strings.ToLower(href)
	for host, platform := range socialHosts {
		if strings.Contains(href, host) {
			return platform
		}
	}
	return ""
}

var followerCountRE = regexp.MustCompile(`[\d,.]+[KkMm]?`)

// ParseFollowerCount parses counts like "12.5K followers" or "1,234".
// Returns 0 when no count is present.
func ParseFollowerCount(text string) int {
	if !strings.Contains(strings.ToLower(text), "follower") &&
		!strings.Contains(strings.ToLower(text), "subscriber") &&
		!strings.Contains(strings.ToLower(text), "listener") &&
		!strings.Contains(strings.ToLower(text), "fan") {
		return 0
	}

	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", "")

	match := followerCountRE.FindString(text)
	if match == "" {
		return 0
	}

	multiplier := 1
	if strings.HasSuffix(match, "K") || strings.HasSuffix(match, "k") {
		multiplier = 1000
		match = match[:len(match)-1]
	} else if strings.HasSuffix(match, "M") || strings.HasSuffix(match, "m") {
		multiplier = 1000000
		match = match[:len(match)-1]
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return int(f * float64(multiplier))
}
