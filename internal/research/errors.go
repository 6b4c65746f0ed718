package research

import "errors"

var (
	// ErrNoSearchResults is returned when zero candidates survive
	// classification. The run ends without producing a report.
	ErrNoSearchResults = errors.New("no text-based search results found")

	// ErrNoUsableContent is returned when every surviving candidate failed
	// scraping or the content quality filter.
	ErrNoUsableContent = errors.New("no candidate produced analyzable content")
)
