// Package research runs the end-to-end pipeline: search, classify, scrape,
// quality-filter, analyze, and assemble the report. Processing is strictly
// sequential; a failed source is skipped, never fatal for the run.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scout/internal/core"
	"scout/internal/llm"
	"scout/internal/logger"
	"scout/internal/quality"
	"scout/internal/report"
	"scout/internal/search"
)

const (
	// recordContentLength caps the scraped text stored on a SourceRecord.
	recordContentLength = 1000
	// resultOverfetch asks the search provider for extra results so the
	// classifier has room to reject candidates.
	resultOverfetch = 2
	// DefaultPause is the courtesy delay between consecutive source
	// scrapes.
	DefaultPause = 2 * time.Second
)

// URLFilter decides which search results are worth scraping. Satisfied by
// classify.Classifier and classify.Profile.
type URLFilter interface {
	IsTextURL(url, title string) bool
}

// Scraper retrieves the text content of a URL. Satisfied by fetch.Scraper.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Options tune a research run.
type Options struct {
	NumSources int           // How many sources to analyze (default 3)
	Pause      time.Duration // Delay between source scrapes (default DefaultPause)
	Language   string        // Search language preference
}

// Researcher wires the pipeline components together for one or more runs.
type Researcher struct {
	searcher  search.Provider
	filter    URLFilter
	scraper   Scraper
	invoker   *llm.Invoker
	assembler *report.Assembler
	writer    *report.Writer // nil disables artifact writing
	opts      Options
}

// NewResearcher builds a researcher. writer may be nil when the caller
// handles persistence itself.
func NewResearcher(searcher search.Provider, filter URLFilter, scraper Scraper, invoker *llm.Invoker, writer *report.Writer, opts Options) *Researcher {
	if opts.NumSources <= 0 {
		opts.NumSources = 3
	}
	if opts.Pause < 0 {
		opts.Pause = DefaultPause
	}
	return &Researcher{
		searcher:  searcher,
		filter:    filter,
		scraper:   scraper,
		invoker:   invoker,
		assembler: report.NewAssembler(invoker),
		writer:    writer,
		opts:      opts,
	}
}

// Run executes one complete research pass for query and returns the
// assembled report. A nil report with an error means no report could be
// produced; per-source failures only reduce the source count.
func (r *Researcher) Run(ctx context.Context, query string) (*core.Report, error) {
	logger.Info("starting research", "query", query, "num_sources", r.opts.NumSources)

	results, err := r.searcher.Search(ctx, query, search.Config{
		MaxResults: r.opts.NumSources * resultOverfetch,
		Language:   r.opts.Language,
	})
	if err != nil {
		logger.Error("search failed", err, "query", query)
		return nil, fmt.Errorf("search failed for %q: %w", query, err)
	}

	candidates := r.filterResults(results)
	if len(candidates) == 0 {
		logger.Warn("no candidates survived classification", "query", query, "raw_results", len(results))
		return nil, ErrNoSearchResults
	}

	records := r.analyzeCandidates(ctx, query, candidates)
	if len(records) == 0 {
		logger.Warn("no candidate produced analyzable content", "query", query)
		return nil, ErrNoUsableContent
	}

	rep := r.assembler.Assemble(ctx, query, records)
	logger.Info("research completed", "query", query, "sources_analyzed", len(records))

	if r.writer != nil {
		if _, err := r.writer.WriteAll(rep); err != nil {
			// The report was still produced; surface the write failure
			// alongside it.
			return &rep, fmt.Errorf("report produced but not fully saved: %w", err)
		}
	}

	return &rep, nil
}

// filterResults keeps the search results the classifier accepts,
// preserving provider order.
func (r *Researcher) filterResults(results []core.SearchResult) []core.SearchResult {
	var candidates []core.SearchResult
	for _, result := range results {
		if r.filter.IsTextURL(result.URL, result.Title) {
			candidates = append(candidates, result)
		} else {
			logger.Debug("search result filtered out", "url", result.URL, "title", result.Title)
		}
	}
	return candidates
}

// analyzeCandidates scrapes and analyzes candidates in order until enough
// records are accumulated. Scrape and quality failures skip the candidate.
func (r *Researcher) analyzeCandidates(ctx context.Context, query string, candidates []core.SearchResult) []core.SourceRecord {
	var records []core.SourceRecord

	for i, candidate := range candidates {
		if len(records) >= r.opts.NumSources {
			break
		}
		if i > 0 && r.opts.Pause > 0 {
			time.Sleep(r.opts.Pause)
		}

		logger.Info("processing source", "position", i+1, "total", len(candidates), "title", candidate.Title)

		content, err := r.scraper.Scrape(ctx, candidate.URL)
		if err != nil {
			logger.Warn("scrape failed, skipping source", "url", candidate.URL, "error", err.Error())
			continue
		}
		if !quality.IsRich(content, quality.MinFallbackWords) {
			logger.Warn("insufficient content, skipping source", "url", candidate.URL)
			continue
		}

		prompt := fmt.Sprintf(llm.AnalyzePromptTemplate, query, llm.Truncate(content, llm.AnalyzeContentBudget))
		analysis := r.invoker.Invoke(ctx, prompt, content)

		records = append(records, core.SourceRecord{
			ID:        uuid.NewString(),
			Title:     candidate.Title,
			URL:       candidate.URL,
			Content:   llm.Truncate(content, recordContentLength),
			Analysis:  analysis,
			FetchedAt: time.Now().UTC(),
		})
		logger.Info("source analyzed", "title", candidate.Title)
	}

	return records
}
