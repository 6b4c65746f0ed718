package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scout/internal/classify"
	"scout/internal/core"
	"scout/internal/llm"
	"scout/internal/search"
)

// fakeScraper serves canned content per URL.
type fakeScraper struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	if content, ok := f.pages[url]; ok {
		return content, nil
	}
	return "", errors.New("unknown url")
}

// answeringGenerator succeeds for one model and fails for the rest.
type answeringGenerator struct {
	workingModel string
}

func (g *answeringGenerator) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if model != g.workingModel {
		return "", errors.New("model '" + model + "' not found")
	}
	if strings.Contains(prompt, "executive summary") {
		return "Executive summary of the findings.", nil
	}
	if strings.Contains(prompt, "conclusions and") {
		return "Conclusion one. Conclusion two.", nil
	}
	return "Detailed analysis of the source. Key facts follow. The content is relevant.", nil
}

func realisticContent() string {
	return strings.Repeat("The study examined renewable energy adoption across several regions with detailed results. ", 25)
}

func newTestResearcher(provider search.Provider, scraper Scraper) *Researcher {
	invoker := llm.NewInvoker(&answeringGenerator{workingModel: "phi"}, llm.DefaultModels, "")
	return NewResearcher(provider, classify.NewClassifier(), scraper, invoker, nil, Options{
		NumSources: 3,
		Pause:      0,
	})
}

func TestRun_EndToEnd(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "Great video compilation", URL: "https://youtube.com/watch?v=1", Rank: 1},
		{Title: "Broken page", URL: "https://example.com/broken", Rank: 2},
		{Title: "Solid article", URL: "https://example.com/good", Rank: 3},
	})
	scraper := &fakeScraper{
		pages: map[string]string{
			"https://example.com/broken": "404 not found",
			"https://example.com/good":   realisticContent(),
		},
	}

	researcher := newTestResearcher(provider, scraper)
	rep, err := researcher.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rep.Sources) != 1 {
		t.Fatalf("expected exactly 1 analyzed source, got %d", len(rep.Sources))
	}
	if !strings.Contains(rep.Text, "Sources Analyzed: 1") {
		t.Error("expected header to report 1 source")
	}
	if strings.Count(rep.Text, "Source 1: Solid article") != 1 {
		t.Error("expected exactly one detailed analysis entry")
	}
	if !strings.Contains(rep.Text, "1. Solid article\n   URL: https://example.com/good") {
		t.Error("expected exactly one sources-and-references entry")
	}
	if strings.Contains(rep.Text, "youtube.com") {
		t.Error("expected the video result to be filtered out entirely")
	}
}

func TestRun_RecordInvariants(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "Solid article", URL: "https://example.com/good", Rank: 1},
	})
	scraper := &fakeScraper{pages: map[string]string{
		"https://example.com/good": realisticContent(),
	}}

	researcher := newTestResearcher(provider, scraper)
	rep, err := researcher.Run(context.Background(), "energy")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	record := rep.Sources[0]
	if record.ID == "" {
		t.Error("record ID should be set")
	}
	if record.FetchedAt.IsZero() {
		t.Error("record FetchedAt should be set")
	}
	if len(record.Content) > recordContentLength+3 {
		t.Errorf("record content should be truncated, got %d chars", len(record.Content))
	}
	if record.Analysis == "" {
		t.Error("record should carry the model analysis")
	}
}

func TestRun_NoSearchResults(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "Video only", URL: "https://youtube.com/watch?v=1", Rank: 1},
		{Title: "Image gallery photos", URL: "https://imgur.com/a/xyz", Rank: 2},
	})

	researcher := newTestResearcher(provider, &fakeScraper{})
	rep, err := researcher.Run(context.Background(), "test")
	if !errors.Is(err, ErrNoSearchResults) {
		t.Fatalf("expected ErrNoSearchResults, got %v", err)
	}
	if rep != nil {
		t.Error("expected no report when classification rejects everything")
	}
}

func TestRun_SearchProviderFailure(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetError(errors.New("provider unavailable"))

	researcher := newTestResearcher(provider, &fakeScraper{})
	rep, err := researcher.Run(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error when the search capability fails")
	}
	if rep != nil {
		t.Error("expected nil report on run-level failure")
	}
}

func TestRun_AllSourcesFailQuality(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "Broken A", URL: "https://example.com/a", Rank: 1},
		{Title: "Broken B", URL: "https://example.com/b", Rank: 2},
	})
	scraper := &fakeScraper{
		pages: map[string]string{"https://example.com/a": "404 not found"},
		errs:  map[string]error{"https://example.com/b": errors.New("timeout")},
	}

	researcher := newTestResearcher(provider, scraper)
	_, err := researcher.Run(context.Background(), "test")
	if !errors.Is(err, ErrNoUsableContent) {
		t.Fatalf("expected ErrNoUsableContent, got %v", err)
	}
}

func TestRun_ScrapeFailureSkipsSource(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "Unreachable", URL: "https://example.com/down", Rank: 1},
		{Title: "Reachable", URL: "https://example.com/up", Rank: 2},
	})
	scraper := &fakeScraper{
		pages: map[string]string{"https://example.com/up": realisticContent()},
		errs:  map[string]error{"https://example.com/down": errors.New("connection refused")},
	}

	researcher := newTestResearcher(provider, scraper)
	rep, err := researcher.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("one failed source must not fail the run: %v", err)
	}
	if len(rep.Sources) != 1 || rep.Sources[0].Title != "Reachable" {
		t.Errorf("expected only the reachable source, got %+v", rep.Sources)
	}
}

func TestRun_RespectsNumSources(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]core.SearchResult{
		{Title: "One", URL: "https://example.com/1", Rank: 1},
		{Title: "Two", URL: "https://example.com/2", Rank: 2},
		{Title: "Three", URL: "https://example.com/3", Rank: 3},
	})
	scraper := &fakeScraper{pages: map[string]string{
		"https://example.com/1": realisticContent(),
		"https://example.com/2": realisticContent(),
		"https://example.com/3": realisticContent(),
	}}

	invoker := llm.NewInvoker(&answeringGenerator{workingModel: "phi"}, llm.DefaultModels, "")
	researcher := NewResearcher(provider, classify.NewClassifier(), scraper, invoker, nil, Options{
		NumSources: 2,
		Pause:      0,
	})

	rep, err := researcher.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rep.Sources) != 2 {
		t.Errorf("expected analysis to stop at 2 sources, got %d", len(rep.Sources))
	}
}
