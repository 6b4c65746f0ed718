package core

import "time"

// SearchResult represents a single candidate returned by a search provider.
type SearchResult struct {
	Title   string `json:"title"`   // Result title as reported by the provider
	URL     string `json:"url"`     // Target URL
	Snippet string `json:"snippet"` // Short excerpt shown with the result
	Domain  string `json:"domain"`  // Hostname without the www. prefix
	Rank    int    `json:"rank"`    // Position in the provider's result list
}

// ScrapedContent holds the raw text pulled from a page. It is transient:
// once the content has been quality-checked and analyzed it is discarded.
type ScrapedContent struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// SourceRecord is one accepted, scraped, and analyzed source contributing to
// a report. Records are only created for URLs that passed classification and
// whose content passed the quality filter.
type SourceRecord struct {
	ID        string    `json:"id"`         // Unique identifier for the record
	Title     string    `json:"title"`      // Source page title
	URL       string    `json:"url"`        // Source URL
	Content   string    `json:"content"`    // Scraped text, truncated for storage
	Analysis  string    `json:"analysis"`   // Model-generated analysis text
	FetchedAt time.Time `json:"fetched_at"` // When the source was scraped
}

// Report is the assembled research report. It is immutable once built: all
// six sections are concatenated in fixed order into Text, with Sources
// preserving the order in which records were analyzed.
type Report struct {
	Query       string         `json:"query"`
	GeneratedAt time.Time      `json:"generated_at"`
	Sources     []SourceRecord `json:"sources"`
	Text        string         `json:"report"`
}
