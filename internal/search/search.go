// Package search wraps external web-search capabilities behind a single
// provider interface. Providers are JSON API clients; results come back in
// relevance order and are post-filtered by the classifier downstream.
package search

import (
	"context"

	"scout/internal/core"
)

// Provider is the external search capability.
type Provider interface {
	// Search returns up to cfg.MaxResults results for query, ordered by
	// relevance.
	Search(ctx context.Context, query string, cfg Config) ([]core.SearchResult, error)

	// Name identifies the provider in logs.
	Name() string
}

// Config holds per-request search options.
type Config struct {
	MaxResults int    // Maximum number of results to return
	Language   string // Language preference, e.g. "en"
}

// ProviderType selects a search backend.
type ProviderType string

const (
	ProviderTypeGoogle  ProviderType = "google"
	ProviderTypeSerpAPI ProviderType = "serpapi"
	ProviderTypeMock    ProviderType = "mock"
)

// NewProvider creates a search provider of the given type. Credentials come
// from the options map.
func NewProvider(providerType ProviderType, options map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeGoogle:
		apiKey, ok := options["api_key"]
		if !ok || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		searchID, ok := options["search_id"]
		if !ok || searchID == "" {
			return nil, ErrMissingSearchID
		}
		return NewGoogleProvider(apiKey, searchID), nil
	case ProviderTypeSerpAPI:
		apiKey, ok := options["api_key"]
		if !ok || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
