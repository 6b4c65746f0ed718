// Package quality judges whether scraped text is substantial enough to be
// worth sending to a language model. The heuristics are crude and
// English-oriented on purpose: they catch error pages, javascript shells,
// and markup-heavy scrapes, and anything borderline is resolved by the
// analysis step itself.
package quality

import (
	"strings"
	"unicode"

	"scout/internal/logger"
)

const (
	// MinRichWords is the word threshold for the strict pass used when
	// selecting an on-page content block.
	MinRichWords = 50
	// MinFallbackWords is the looser threshold applied to whole-page text
	// after boilerplate lines have been stripped.
	MinFallbackWords = 30

	// minContentLength is the minimum character count for any rich content.
	minContentLength = 100
	// minTextCharRatio is the minimum share of alphanumeric or whitespace
	// characters; below it the scrape is mostly markup or boilerplate.
	minTextCharRatio = 0.7
	// minBoilerplateLineLength is the shortest line kept when stripping
	// navigation and footer noise from whole-page text.
	minBoilerplateLineLength = 20
)

// lowQualityIndicators are phrases that mark error pages and placeholder
// content. Matched case-insensitively anywhere in the text.
var lowQualityIndicators = []string{
	"404", "not found", "page not found", "error",
	"access denied", "forbidden", "please enable javascript",
	"loading...", "please wait", "click here to continue",
}

// boilerplateKeywords mark navigation, footer, and consent lines that carry
// no article content.
var boilerplateKeywords = []string{
	"menu", "navigation", "nav", "header", "footer",
	"subscribe", "newsletter", "follow us", "social media",
	"cookie", "privacy policy", "terms", "copyright",
	"loading", "please wait", "javascript",
}

// IsRich reports whether content has enough meaningful text for analysis.
// All checks must pass: minimum length, minimum word count (only tokens
// longer than two characters count), no low-quality indicator phrase, and a
// high enough ratio of text characters.
func IsRich(content string, minWords int) bool {
	if content == "" || len(content) < minContentLength {
		return false
	}

	wordCount := 0
	for _, word := range strings.Fields(content) {
		if len(word) > 2 {
			wordCount++
		}
	}
	if wordCount < minWords {
		logger.Debug("content too short", "words", wordCount, "required", minWords)
		return false
	}

	contentLower := strings.ToLower(content)
	for _, indicator := range lowQualityIndicators {
		if strings.Contains(contentLower, indicator) {
			logger.Debug("low quality content detected", "indicator", indicator)
			return false
		}
	}

	textChars := 0
	for _, r := range content {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			textChars++
		}
	}
	if float64(textChars)/float64(len([]rune(content))) < minTextCharRatio {
		logger.Debug("content appears to be mostly non-text")
		return false
	}

	return true
}

// StripBoilerplate removes navigation, footer, and consent lines from
// whole-page text, keeping only lines long enough to carry content. The
// surviving lines are joined with single spaces.
func StripBoilerplate(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minBoilerplateLineLength {
			continue
		}
		if containsAny(strings.ToLower(line), boilerplateKeywords) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

func containsAny(s string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
