package quality

import (
	"strings"
	"testing"
)

func TestIsRich_ShortContent(t *testing.T) {
	if IsRich("", MinRichWords) {
		t.Error("empty content should not be rich")
	}
	if IsRich("short", MinRichWords) {
		t.Error("content under the length floor should not be rich")
	}
}

func TestIsRich_WordCount(t *testing.T) {
	// 60 tokens of "word" passes both the word and length thresholds.
	content := strings.Repeat("word ", 60)
	if !IsRich(content, MinRichWords) {
		t.Errorf("expected 60 words to satisfy minWords=%d", MinRichWords)
	}

	// 40 real words fails the strict pass but satisfies the fallback pass.
	content = strings.Repeat("substantial ", 40)
	if IsRich(content, MinRichWords) {
		t.Error("expected 40 words to fail the strict pass")
	}
	if !IsRich(content, MinFallbackWords) {
		t.Error("expected 40 words to satisfy the fallback pass")
	}
}

func TestIsRich_ShortTokensDoNotCount(t *testing.T) {
	// Tokens of one or two characters are ignored by the word count, so
	// the text must fail even though it is long enough.
	content := strings.Repeat("ab c d ", 60)
	if IsRich(content, MinRichWords) {
		t.Error("expected short tokens to be excluded from the word count")
	}
}

func TestIsRich_LowQualityIndicators(t *testing.T) {
	filler := strings.Repeat("meaningful content words here ", 20)

	testCases := []string{
		filler + " 404 " + filler,
		filler + " Page Not Found " + filler,
		filler + " please enable JavaScript " + filler,
		filler + " Access Denied " + filler,
	}

	for _, content := range testCases {
		if IsRich(content, MinRichWords) {
			t.Errorf("expected indicator phrase to reject content: %.60s...", content)
		}
	}
}

func TestIsRich_TextCharRatio(t *testing.T) {
	// Heavy markup noise pushes the alphanumeric ratio below 70%.
	noisy := strings.Repeat("word <<</>>{}[]##%%&&@@!! ", 40)
	if IsRich(noisy, MinRichWords) {
		t.Error("expected markup-heavy content to be rejected")
	}

	clean := strings.Repeat("perfectly ordinary sentence text ", 30)
	if !IsRich(clean, MinRichWords) {
		t.Error("expected clean prose to be accepted")
	}
}

func TestStripBoilerplate(t *testing.T) {
	page := strings.Join([]string{
		"Home",
		"Subscribe to our newsletter for weekly updates",
		"This paragraph carries the actual substance of the article being scraped.",
		"Accept cookies to continue browsing this site",
		"A second substantive paragraph that should also survive the filtering.",
		"Privacy Policy | Terms of Service | Copyright 2025",
		"tiny line",
	}, "\n")

	got := StripBoilerplate(page)

	if !strings.Contains(got, "actual substance of the article") {
		t.Error("expected substantive line to survive")
	}
	if !strings.Contains(got, "second substantive paragraph") {
		t.Error("expected second substantive line to survive")
	}
	if strings.Contains(got, "newsletter") || strings.Contains(got, "cookies") {
		t.Error("expected boilerplate lines to be removed")
	}
	if strings.Contains(got, "tiny line") {
		t.Error("expected short lines to be removed")
	}
	if strings.Contains(got, "\n") {
		t.Error("expected surviving lines to be joined with spaces")
	}
}
