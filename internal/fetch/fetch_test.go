package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Test Article Page</title><script>var tracked = true;</script></head>
<body>
<nav>Home | About | Contact</nav>
<article>
<h1>The Article Heading</h1>
<p>This is the substantive first paragraph of the article with plenty of words.</p>
<p>And a second paragraph carrying more of the actual content being tested.</p>
</article>
<footer>Copyright 2025 Example Corp</footer>
<script>console.log("noise");</script>
</body>
</html>`

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	f := NewFetcher()
	text, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(text, "substantive first paragraph") {
		t.Errorf("expected article text, got %q", text)
	}
	if strings.Contains(text, "tracked") || strings.Contains(text, "console.log") {
		t.Error("expected script content to be stripped")
	}
	if strings.Contains(text, "Home | About") {
		t.Error("expected nav content to be stripped")
	}
	if strings.Contains(text, "Copyright 2025") {
		t.Error("expected footer content to be stripped")
	}
}

func TestFetcher_Fetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	html := `<html><body><div><p>Loose text without a main content container, still worth extracting.</p></div></body></html>`

	text, err := ExtractText(html)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if !strings.Contains(text, "Loose text without a main content container") {
		t.Errorf("expected body fallback to return text, got %q", text)
	}
}

func TestExtractTitle(t *testing.T) {
	testCases := []struct {
		name string
		html string
		want string
	}{
		{"head title", `<html><head><title> My Page </title></head><body></body></html>`, "My Page"},
		{"og title fallback", `<html><head><meta property="og:title" content="OG Title"/></head><body></body></html>`, "OG Title"},
		{"h1 fallback", `<html><body><h1>Heading Title</h1></body></html>`, "Heading Title"},
		{"no title", `<html><body><p>text</p></body></html>`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTitle(tc.html); got != tc.want {
				t.Errorf("ExtractTitle = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 6000)
	if got := Truncate(long, MaxContentChars); len(got) != MaxContentChars {
		t.Errorf("expected %d chars, got %d", MaxContentChars, len(got))
	}
	if got := Truncate("short", MaxContentChars); got != "short" {
		t.Errorf("expected short text unchanged, got %q", got)
	}
}

// mockSession scripts per-selector extraction results.
type mockSession struct {
	navigateErr error
	blocks      map[string]string
	extracted   []string
}

func (m *mockSession) Navigate(ctx context.Context, url string) error {
	return m.navigateErr
}

func (m *mockSession) ExtractText(ctx context.Context, selector string) (string, error) {
	m.extracted = append(m.extracted, selector)
	block, ok := m.blocks[selector]
	if !ok {
		return "", errors.New("no such element")
	}
	return block, nil
}

func (m *mockSession) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, errors.New("not supported")
}

func richText(words int) string {
	return strings.Repeat("substantial content words here ", (words+3)/4)
}

func TestScraper_SelectorPriority(t *testing.T) {
	session := &mockSession{
		blocks: map[string]string{
			".content": richText(80),
			"article":  "too short",
		},
	}
	scraper := NewScraper(session, NewFetcher())

	content, err := scraper.Scrape(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if !strings.Contains(content, "substantial content words") {
		t.Errorf("expected rich block content, got %q", content)
	}
	// article was tried (and rejected as not rich) before .content matched.
	sawArticle := false
	for _, sel := range session.extracted {
		if sel == "article" {
			sawArticle = true
		}
		if sel == ".content" {
			break
		}
	}
	if !sawArticle {
		t.Errorf("expected article selector to be tried first, got order %v", session.extracted)
	}
}

func TestScraper_BodyFallbackStripsBoilerplate(t *testing.T) {
	page := strings.Join([]string{
		"Subscribe to our newsletter today",
		richText(120),
		"Accept all cookies to continue",
	}, "\n")
	session := &mockSession{
		blocks: map[string]string{"body": page},
	}
	scraper := NewScraper(session, NewFetcher())

	content, err := scraper.Scrape(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if strings.Contains(content, "newsletter") || strings.Contains(content, "cookies") {
		t.Error("expected boilerplate lines removed from body fallback")
	}
}

func TestScraper_SessionFailureFallsBackToHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	session := &mockSession{navigateErr: errors.New("browser crashed")}
	scraper := NewScraper(session, NewFetcher())

	content, err := scraper.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected HTTP fallback to succeed, got %v", err)
	}
	if !strings.Contains(content, "substantive first paragraph") {
		t.Errorf("expected fetched article text, got %q", content)
	}
}

func TestScraper_NoSessionUsesHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	scraper := NewScraper(nil, NewFetcher())
	content, err := scraper.Scrape(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if content == "" {
		t.Error("expected content from HTTP path")
	}
}
