package search

import (
	"context"

	"scout/internal/core"
)

// MockProvider implements Provider for tests and offline runs.
type MockProvider struct {
	name    string
	results []core.SearchResult
	err     error
}

// NewMockProvider creates a mock provider with a small fixed result set.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []core.SearchResult{
			{
				Title:   "Example Article 1",
				URL:     "https://example.com/article1",
				Snippet: "A mock search result for testing purposes.",
				Domain:  "example.com",
				Rank:    1,
			},
			{
				Title:   "Test Article 2",
				URL:     "https://test.org/article2",
				Snippet: "Another mock search result with different content.",
				Domain:  "test.org",
				Rank:    2,
			},
			{
				Title:   "Demo Article 3",
				URL:     "https://demo.net/article3",
				Snippet: "Third mock result to simulate multiple search results.",
				Domain:  "demo.net",
				Rank:    3,
			},
		},
	}
}

// Name identifies this provider.
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns the configured results, truncated to cfg.MaxResults.
func (m *MockProvider) Search(ctx context.Context, query string, cfg Config) ([]core.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	results := make([]core.SearchResult, maxResults)
	copy(results, m.results[:maxResults])
	return results, nil
}

// SetResults replaces the mock result set.
func (m *MockProvider) SetResults(results []core.SearchResult) {
	m.results = results
}

// SetError makes every subsequent Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.err = err
}
