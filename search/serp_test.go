package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"autoplay/internal/httpclient"
)

func newTestClient(serverURL, apiKey string) *Client {
	return &Client{
		base:   httpclient.NewBaseClient(serverURL),
		apiKey: apiKey,
	}
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"engine":  r.URL.Query().Get("engine"),
			"q":       r.URL.Query().Get("q"),
			"api_key": r.URL.Query().Get("api_key"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"organic_results": [
				{"title": "Gaming headline", "snippet": "big launch"},
				{"title": "Second", "snippet": "more news"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	results, err := client.Search(context.Background(), "Gaming latest news")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Gaming headline", results[0].Title)
	assert.Equal(t, "big launch", results[0].Snippet)

	assert.Equal(t, "google", gotQuery["engine"])
	assert.Equal(t, "Gaming latest news", gotQuery["q"])
	assert.Equal(t, "test-key", gotQuery["api_key"])
}

func TestSearchMissingAPIKey(t *testing.T) {
	client := newTestClient("http://unused", "")

	_, err := client.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	_, err := client.Search(context.Background(), "anything")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}
