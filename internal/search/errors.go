package search

import "errors"

var (
	// ErrMissingAPIKey is returned when a required API key is not provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingSearchID is returned when a required search engine ID is not provided.
	ErrMissingSearchID = errors.New("search ID is required")

	// ErrUnsupportedProvider is returned for an unknown provider type.
	ErrUnsupportedProvider = errors.New("unsupported search provider")

	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no search results found")
)
