// Package report assembles per-source analyses into a fixed-structure
// research report and writes the output artifacts.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scout/internal/core"
	"scout/internal/llm"
	"scout/internal/logger"
	"scout/internal/textfmt"
)

const (
	sectionSeparator = "\n\n"
	bannerWidth      = 80
	maxDisplayURL    = 60
	maxKeySegments   = 3
)

// Assembler composes reports. The same invoker used for per-source
// analysis generates the executive summary and conclusions, so the whole
// run shares one model fallback chain.
type Assembler struct {
	invoker *llm.Invoker
	width   int
}

// NewAssembler creates an assembler wrapping invoker.
func NewAssembler(invoker *llm.Invoker) *Assembler {
	return &Assembler{invoker: invoker, width: textfmt.DefaultLineLength}
}

// Assemble builds the report for query from the accumulated records.
// Section order is fixed: header, executive summary, key findings,
// detailed analysis, sources and references, conclusions. Every section is
// always present; empty inputs produce placeholder text, never missing
// sections.
func (a *Assembler) Assemble(ctx context.Context, query string, records []core.SourceRecord) core.Report {
	generatedAt := time.Now().UTC()
	allAnalyses := joinAnalyses(records)

	sections := []string{
		a.header(query, generatedAt, len(records)),
		a.executiveSummary(ctx, query, records, allAnalyses),
		a.keyFindings(records),
		a.detailedAnalysis(records),
		a.sourcesAndReferences(records),
		a.conclusions(ctx, query, records, allAnalyses),
		a.footer(),
	}

	return core.Report{
		Query:       query,
		GeneratedAt: generatedAt,
		Sources:     records,
		Text:        strings.Join(sections, sectionSeparator),
	}
}

func (a *Assembler) header(query string, generatedAt time.Time, sourceCount int) string {
	banner := strings.Repeat("=", bannerWidth)
	return fmt.Sprintf("%s\nRESEARCH REPORT\n%s\n\nQuery: %s\nGenerated: %s\nSources Analyzed: %d\n\n%s",
		banner, banner, query, generatedAt.Format("2006-01-02 15:04:05"), sourceCount, banner)
}

func (a *Assembler) executiveSummary(ctx context.Context, query string, records []core.SourceRecord, allAnalyses string) string {
	heading := "EXECUTIVE SUMMARY\n-----------------\n"

	if len(records) == 0 {
		return heading + fmt.Sprintf("No sources could be analyzed for %s.", query)
	}

	prompt := fmt.Sprintf(llm.SummaryPromptTemplate, query, llm.Truncate(allAnalyses, llm.SummaryContentBudget))
	text, err := a.invoker.TryInvoke(ctx, prompt)
	if err != nil {
		logger.Warn("executive summary generation failed, using template", "query", query)
		text = fmt.Sprintf("This report analyzes %d sources related to %s.", len(records), query)
	}

	return heading + textfmt.Wrap(text, a.width)
}

func (a *Assembler) keyFindings(records []core.SourceRecord) string {
	heading := "KEY FINDINGS\n------------\n"

	if len(records) == 0 {
		return heading + "No key findings available."
	}

	var b strings.Builder
	for i, record := range records {
		finding := fmt.Sprintf("%d. %s", i+1, condense(record.Analysis))
		b.WriteString(textfmt.Wrap(finding, a.width))
		b.WriteString("\n\n")
	}

	return heading + strings.TrimRight(b.String(), "\n")
}

// condense keeps the first few sentence-delimited segments of an analysis
// as a one-bullet summary.
func condense(analysis string) string {
	if analysis == "" {
		return "No analysis available"
	}
	segments := strings.Split(analysis, ". ")
	if len(segments) <= maxKeySegments {
		return analysis
	}
	return strings.Join(segments[:maxKeySegments], ". ") + "."
}

func (a *Assembler) detailedAnalysis(records []core.SourceRecord) string {
	heading := "DETAILED ANALYSIS\n-----------------\n"

	if len(records) == 0 {
		return heading + "No sources were analyzed."
	}

	var b strings.Builder
	for i, record := range records {
		title := fmt.Sprintf("Source %d: %s", i+1, record.Title)
		underline := strings.Repeat("-", min(len(title), bannerWidth-2))
		analysis := record.Analysis
		if analysis == "" {
			analysis = "No analysis available"
		}

		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(underline)
		b.WriteString("\n")
		b.WriteString("URL: " + ellipsizeURL(record.URL))
		b.WriteString("\n\nAnalysis:\n")
		b.WriteString(textfmt.Wrap(analysis, a.width))
		b.WriteString("\n\n")
	}

	return heading + strings.TrimRight(b.String(), "\n")
}

// ellipsizeURL shortens long URLs for display; the full URL still appears
// in the sources section.
func ellipsizeURL(url string) string {
	if len(url) <= maxDisplayURL {
		return url
	}
	return url[:maxDisplayURL-3] + "..."
}

func (a *Assembler) sourcesAndReferences(records []core.SourceRecord) string {
	heading := "SOURCES AND REFERENCES\n----------------------\n"

	if len(records) == 0 {
		return heading + "No sources available."
	}

	var b strings.Builder
	for i, record := range records {
		b.WriteString(fmt.Sprintf("%d. %s\n   URL: %s\n\n", i+1, record.Title, record.URL))
	}

	return heading + strings.TrimRight(b.String(), "\n")
}

func (a *Assembler) conclusions(ctx context.Context, query string, records []core.SourceRecord, allAnalyses string) string {
	heading := "CONCLUSIONS\n-----------\n"

	if len(records) == 0 {
		return heading + fmt.Sprintf("Further research and analysis of %s is recommended.", query)
	}

	prompt := fmt.Sprintf(llm.ConclusionsPromptTemplate, query, llm.Truncate(allAnalyses, llm.ConclusionsContentBudget))
	text, err := a.invoker.TryInvoke(ctx, prompt)
	if err != nil {
		logger.Warn("conclusions generation failed, using template", "query", query)
		text = fmt.Sprintf("The research on %s reveals multiple important aspects that require further consideration.", query)
	}

	return heading + textfmt.Wrap(text, a.width)
}

func (a *Assembler) footer() string {
	banner := strings.Repeat("=", bannerWidth)
	return fmt.Sprintf("%s\nReport generated by scout\n%s", banner, banner)
}

func joinAnalyses(records []core.SourceRecord) string {
	analyses := make([]string, 0, len(records))
	for _, record := range records {
		analyses = append(analyses, record.Analysis)
	}
	return strings.Join(analyses, " ")
}
