package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"autoplay/internal/httpclient"
)

// Client is a thin client for the SerpAPI Google search endpoint. It is used
// to collect trending headlines per genre before drafting posts.
type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

var (
	// ErrMissingAPIKey means no SerpAPI key was configured. Callers treat
	// this as a blocking configuration error, not a transient failure.
	ErrMissingAPIKey = fmt.Errorf("serpapi: missing API key")
)

const defaultBaseURL = "https://serpapi.com"

func New(apiKey string) *Client {
	return &Client{
		base:   httpclient.NewBaseClient(defaultBaseURL),
		apiKey: apiKey,
	}
}

// NewFromEnv builds a client from SERPAPI_KEY. The key may be empty; Search
// reports ErrMissingAPIKey in that case.
func NewFromEnv() *Client {
	return New(os.Getenv("SERPAPI_KEY"))
}

// Result is one organic search result.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []Result `json:"organic_results"`
}

// Search runs a Google search for the query and returns the organic results.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("api_key", c.apiKey)

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/search", q, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("serpapi Search: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.OrganicResults, nil
}
