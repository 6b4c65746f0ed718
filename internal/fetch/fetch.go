// Package fetch retrieves page content for analysis. The primary path is a
// browser page session; a plain HTTP fetch with goquery-based text
// extraction serves as the fallback when no session is available or the
// session fails.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MaxContentChars caps how much text is kept per scraped page.
	MaxContentChars = 5000

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// nonContentSelector matches elements removed before text extraction.
const nonContentSelector = "script, style, nav, header, footer, aside, form, iframe, noscript, .sidebar, .ad, .advertisement, .cookie-banner"

// mainContentSelectors are tried in order when looking for the article body
// in fetched HTML.
var mainContentSelectors = []string{
	"article", "main", ".main-content", ".content", "#content",
	".post-content", ".entry-content", ".article-content", ".story-body",
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Fetcher retrieves pages over plain HTTP.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// NewFetcher creates a fetcher with a browser user agent and a request
// timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		maxChars: MaxContentChars,
	}
}

// Fetch downloads url and returns the extracted page text, truncated to the
// content cap.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", url, err)
	}

	return Truncate(text, f.maxChars), nil
}

// ExtractText strips non-content markup from HTML and returns the page
// text, preferring the main content containers over the whole body.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(nonContentSelector).Remove()

	var text string
	for _, selector := range mainContentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			text = selection.First().Text()
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}

	return CleanText(text), nil
}

// ExtractTitle pulls the page title from HTML, falling back to the
// OpenGraph title and the first heading.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content"); ogTitle != "" {
		return strings.TrimSpace(ogTitle)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// CleanText collapses all whitespace runs to single spaces.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// Truncate caps text at maxChars characters.
func Truncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
