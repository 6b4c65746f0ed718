package fetch

import (
	"context"
	"fmt"

	"scout/internal/logger"
	"scout/internal/quality"
)

// PageSession is the browser-automation capability. Implementations are
// expected to be unreliable: any error switches the scraper to the HTTP
// fallback for that URL.
type PageSession interface {
	// Navigate loads url in the session.
	Navigate(ctx context.Context, url string) error

	// ExtractText returns the visible text of the first element matching
	// the CSS selector. The selector "body" yields the whole page.
	ExtractText(ctx context.Context, selector string) (string, error)

	// Screenshot captures the current page for diagnostics.
	Screenshot(ctx context.Context) ([]byte, error)
}

// sessionSelectors is the prioritized list of extraction strategies run
// over a page session: first selector whose block passes the strict quality
// check wins.
var sessionSelectors = []string{
	"article", ".main-content", ".content", "#content",
	".post-content", ".entry-content", ".article-content", ".story-body",
	"main", ".container",
}

// Scraper retrieves page text, preferring a page session and falling back
// to plain HTTP. The two paths are mutually exclusive per URL.
type Scraper struct {
	session  PageSession // may be nil, in which case only HTTP is used
	fetcher  *Fetcher
	maxChars int
}

// NewScraper builds a scraper. session may be nil.
func NewScraper(session PageSession, fetcher *Fetcher) *Scraper {
	return &Scraper{
		session:  session,
		fetcher:  fetcher,
		maxChars: MaxContentChars,
	}
}

// Scrape returns the text content of url. Session errors are logged and
// trigger the HTTP fallback; an error is returned only when both paths
// fail.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	if s.session != nil {
		content, err := s.scrapeWithSession(ctx, url)
		if err == nil {
			return content, nil
		}
		logger.Warn("page session scrape failed, falling back to HTTP", "url", url, "error", err.Error())
	}

	content, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return content, nil
}

// scrapeWithSession runs the ordered extraction strategies over the page
// session. Each candidate block must pass the strict quality check; when
// none does, the whole page is taken with boilerplate lines stripped and
// judged by the looser fallback check.
func (s *Scraper) scrapeWithSession(ctx context.Context, url string) (string, error) {
	if err := s.session.Navigate(ctx, url); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	var content string
	for _, selector := range sessionSelectors {
		block, err := s.session.ExtractText(ctx, selector)
		if err != nil {
			continue
		}
		if quality.IsRich(block, quality.MinRichWords) {
			content = block
			logger.Debug("content block selected", "url", url, "selector", selector)
			break
		}
	}

	if content == "" {
		page, err := s.session.ExtractText(ctx, "body")
		if err != nil {
			return "", fmt.Errorf("failed to extract page text from %s: %w", url, err)
		}
		content = quality.StripBoilerplate(page)
	}

	if !quality.IsRich(content, quality.MinFallbackWords) {
		return "", fmt.Errorf("page content from %s not suitable for analysis", url)
	}

	return Truncate(content, s.maxChars), nil
}
