package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProvider(t *testing.T) {
	testCases := []struct {
		name         string
		providerType ProviderType
		options      map[string]string
		wantErr      error
	}{
		{"mock needs no options", ProviderTypeMock, nil, nil},
		{"google with credentials", ProviderTypeGoogle, map[string]string{"api_key": "k", "search_id": "cx"}, nil},
		{"google missing api key", ProviderTypeGoogle, map[string]string{"search_id": "cx"}, ErrMissingAPIKey},
		{"google missing search id", ProviderTypeGoogle, map[string]string{"api_key": "k"}, ErrMissingSearchID},
		{"serpapi with key", ProviderTypeSerpAPI, map[string]string{"api_key": "k"}, nil},
		{"serpapi missing key", ProviderTypeSerpAPI, nil, ErrMissingAPIKey},
		{"unknown type", ProviderType("bing"), nil, ErrUnsupportedProvider},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider, err := NewProvider(tc.providerType, tc.options)
			if err != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && provider == nil {
				t.Fatal("expected a provider")
			}
		})
	}
}

func TestGoogleProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cx"); got != "test-cx" {
			t.Errorf("expected cx=test-cx, got %s", got)
		}
		if got := r.URL.Query().Get("num"); got != "2" {
			t.Errorf("expected num=2, got %s", got)
		}
		fmt.Fprint(w, `{"items":[
			{"title":"Go Testing","link":"https://www.example.com/go-testing","snippet":"About testing"},
			{"title":"Go Modules","link":"https://blog.example.org/modules","snippet":"About modules"}
		]}`)
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", "test-cx")
	provider.endpoint = server.URL

	results, err := provider.Search(context.Background(), "golang", Config{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Domain != "example.com" {
		t.Errorf("expected www. prefix stripped, got %s", results[0].Domain)
	}
	if results[0].Rank != 1 || results[1].Rank != 2 {
		t.Errorf("expected ranks 1,2, got %d,%d", results[0].Rank, results[1].Rank)
	}
}

func TestGoogleProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":403,"message":"quota exceeded"}}`)
	}))
	defer server.Close()

	provider := NewGoogleProvider("test-key", "test-cx")
	provider.endpoint = server.URL

	if _, err := provider.Search(context.Background(), "golang", Config{MaxResults: 5}); err == nil {
		t.Fatal("expected API error to surface")
	}
}

func TestSerpAPIProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("engine"); got != "google" {
			t.Errorf("expected engine=google, got %s", got)
		}
		fmt.Fprint(w, `{"organic_results":[
			{"title":"Result A","link":"https://a.example.com/page","snippet":"snippet a","position":1}
		]}`)
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.endpoint = server.URL
	provider.rateLimit = 0

	results, err := provider.Search(context.Background(), "query", Config{MaxResults: 5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Result A" || results[0].Rank != 1 {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestMockProvider_RespectsMaxResults(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "anything", Config{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
