package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scout/internal/core"
	"scout/internal/logger"
)

const serpAPIEndpoint = "https://serpapi.com/search"

// SerpAPIProvider implements Provider using the SerpAPI JSON API.
type SerpAPIProvider struct {
	apiKey    string
	endpoint  string
	client    *http.Client
	rateLimit time.Duration
	lastCall  time.Time
}

// NewSerpAPIProvider creates a SerpAPI search provider.
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey:    apiKey,
		endpoint:  serpAPIEndpoint,
		client:    &http.Client{Timeout: 30 * time.Second},
		rateLimit: 1 * time.Second,
	}
}

// Name identifies this provider.
func (s *SerpAPIProvider) Name() string {
	return "SerpAPI"
}

// Search queries SerpAPI's Google engine.
func (s *SerpAPIProvider) Search(ctx context.Context, query string, cfg Config) ([]core.SearchResult, error) {
	if elapsed := time.Since(s.lastCall); elapsed < s.rateLimit {
		time.Sleep(s.rateLimit - elapsed)
	}
	s.lastCall = time.Now()

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.apiKey)
	params.Set("num", strconv.Itoa(cfg.MaxResults))
	if cfg.Language != "" {
		params.Set("hl", cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SerpAPI request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		OrganicResults []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			Snippet  string `json:"snippet"`
			Position int    `json:"position"`
		} `json:"organic_results"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse SerpAPI response: %w", err)
	}
	if apiResponse.Error.Code != 0 {
		return nil, fmt.Errorf("SerpAPI error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	var results []core.SearchResult
	for _, item := range apiResponse.OrganicResults {
		results = append(results, core.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Domain:  extractDomain(item.Link),
			Rank:    item.Position,
		})
	}

	logger.Info("SerpAPI search completed", "query", query, "results_found", len(results))
	return results, nil
}
