package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scout/internal/core"
	"scout/internal/logger"
)

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleProvider implements Provider using the Google Custom Search JSON API.
type GoogleProvider struct {
	apiKey    string
	searchID  string
	endpoint  string
	client    *http.Client
	rateLimit time.Duration
	lastCall  time.Time
}

// NewGoogleProvider creates a Google Custom Search provider.
func NewGoogleProvider(apiKey, searchID string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:    apiKey,
		searchID:  searchID,
		endpoint:  googleEndpoint,
		client:    &http.Client{Timeout: 30 * time.Second},
		rateLimit: 100 * time.Millisecond,
	}
}

// Name identifies this provider.
func (g *GoogleProvider) Name() string {
	return "Google Custom Search"
}

// Search queries the Custom Search API.
func (g *GoogleProvider) Search(ctx context.Context, query string, cfg Config) ([]core.SearchResult, error) {
	if elapsed := time.Since(g.lastCall); elapsed < g.rateLimit {
		time.Sleep(g.rateLimit - elapsed)
	}
	g.lastCall = time.Now()

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.searchID)
	params.Set("q", query)
	// The API caps a single request at 10 results.
	params.Set("num", strconv.Itoa(min(cfg.MaxResults, 10)))
	if cfg.Language != "" {
		params.Set("lr", "lang_"+cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google CSE request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute Google CSE request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google CSE request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Google CSE response: %w", err)
	}
	if apiResponse.Error.Code != 0 {
		return nil, fmt.Errorf("google CSE API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	var results []core.SearchResult
	for i, item := range apiResponse.Items {
		results = append(results, core.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Domain:  extractDomain(item.Link),
			Rank:    i + 1,
		})
	}

	logger.Info("Google Custom Search completed", "query", query, "results_found", len(results))
	return results, nil
}

// extractDomain returns the hostname of a URL without the www. prefix.
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
