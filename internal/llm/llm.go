// Package llm provides model invocation with an ordered fallback chain.
// Backends implement Generator; the Invoker walks a small-to-large candidate
// list until one model produces text, degrading to a truncated excerpt of
// the raw input when every candidate fails.
package llm

import (
	"context"
	"fmt"
	"strings"

	"scout/internal/logger"
)

const (
	// AnalyzePromptTemplate asks a model to analyze scraped content against
	// the research query. Arguments: query, truncated content.
	AnalyzePromptTemplate = `Analyze the following content related to the query: %q

Content:
%s

Please provide:
1. Key insights and main points
2. Important facts and statistics
3. Relevant conclusions
4. How this relates to the original query

Keep the analysis concise but comprehensive.`

	// SummaryPromptTemplate asks for a 2-3 sentence executive summary.
	// Arguments: query, truncated concatenated analyses.
	SummaryPromptTemplate = `Based on these research findings about %q, write a concise executive summary (2-3 sentences) highlighting the most important insights:

%s

Keep it brief and focus on key takeaways.`

	// ConclusionsPromptTemplate asks for actionable conclusions.
	// Arguments: query, truncated concatenated analyses.
	ConclusionsPromptTemplate = `Based on the research about %q, provide 2-3 key conclusions and recommendations in a concise format. Focus on actionable insights.

Research summary: %s`

	// AnalyzeContentBudget caps how much scraped content is embedded in an
	// analysis prompt.
	AnalyzeContentBudget = 2000
	// SummaryContentBudget caps the concatenated analyses embedded in the
	// executive summary prompt.
	SummaryContentBudget = 1500
	// ConclusionsContentBudget caps the analyses embedded in the
	// conclusions prompt.
	ConclusionsContentBudget = 1000

	// degradedExcerptLength is how much raw input survives into the
	// last-resort summary when every model fails.
	degradedExcerptLength = 500
)

// DefaultModels is the small-to-large fallback order tried before the
// caller's preferred model. Injected into the Invoker at construction so
// every call site shares one list.
var DefaultModels = []string{"tinyllama", "phi", "mistral:7b-instruct-q4_0"}

// Generator is the model inference capability: one prompt in, one text out.
type Generator interface {
	// Generate runs prompt against the named model and returns its text.
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// Invoker tries an ordered list of models until one succeeds.
type Invoker struct {
	gen       Generator
	defaults  []string
	preferred string
}

// NewInvoker builds an invoker over gen. The preferred model is tried last
// unless it already appears among the defaults.
func NewInvoker(gen Generator, defaults []string, preferred string) *Invoker {
	return &Invoker{gen: gen, defaults: defaults, preferred: preferred}
}

// Candidates returns the model names in try order: the default chain with
// the preferred model appended, deduplicated preserving first occurrence.
func (inv *Invoker) Candidates() []string {
	names := make([]string, 0, len(inv.defaults)+1)
	seen := make(map[string]bool)
	for _, name := range inv.defaults {
		if name != "" && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	if inv.preferred != "" && !seen[inv.preferred] {
		names = append(names, inv.preferred)
	}
	return names
}

// TryInvoke runs prompt through the fallback chain and returns the first
// success. Every failure kind continues the chain; ErrChainExhausted is
// returned only when all candidates fail.
func (inv *Invoker) TryInvoke(ctx context.Context, prompt string) (string, error) {
	for _, model := range inv.Candidates() {
		logger.Debug("trying model", "model", model)
		text, err := inv.gen.Generate(ctx, model, prompt)
		if err != nil {
			attempt := classifyAttempt(model, err)
			switch attempt.Kind {
			case FailureResourceExhausted:
				logger.Warn("model requires too many resources, trying smaller model", "model", model)
			case FailureNotFound:
				logger.Warn("model not found, trying next", "model", model)
			default:
				logger.Warn("model invocation failed, trying next", "model", model, "error", err.Error())
			}
			continue
		}
		logger.Debug("model invocation succeeded", "model", model)
		return text, nil
	}

	return "", ErrChainExhausted
}

// Invoke is TryInvoke with the exhaustion case converted into a
// clearly-marked degraded summary built from rawContent, so callers always
// receive a usable string.
func (inv *Invoker) Invoke(ctx context.Context, prompt string, rawContent string) string {
	text, err := inv.TryInvoke(ctx, prompt)
	if err != nil {
		logger.Warn("all models failed, returning degraded summary")
		return DegradedSummary(rawContent)
	}
	return text
}

// DegradedSummary produces the last-resort output used when the whole
// fallback chain is exhausted.
func DegradedSummary(rawContent string) string {
	return fmt.Sprintf("Unable to analyze with AI models. Content summary: %s", Truncate(rawContent, degradedExcerptLength))
}

// Truncate shortens s to at most n characters, appending an ellipsis when
// anything was cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// classifyAttempt wraps a generation error with the failure kind derived
// from its message.
func classifyAttempt(model string, err error) *ModelUnavailableError {
	msg := strings.ToLower(err.Error())

	kind := FailureOther
	switch {
	case strings.Contains(msg, "memory") || strings.Contains(msg, "system resources") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "quota"):
		kind = FailureResourceExhausted
	case strings.Contains(msg, "not found"):
		kind = FailureNotFound
	}

	return &ModelUnavailableError{Model: model, Kind: kind, Err: err}
}
