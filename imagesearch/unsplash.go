package imagesearch

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

// Client is a thin client for the Unsplash photo search API.
type Client struct {
	base      *httpclient.BaseClient
	accessKey string
}

var (
	// ErrMissingAccessKey means no Unsplash key was configured. Image lookup
	// is best effort, so callers downgrade this to a warning.
	ErrMissingAccessKey = fmt.Errorf("unsplash: missing access key")
	// ErrNoResults means the search matched no photos.
	ErrNoResults = fmt.Errorf("unsplash: no results")
)

const defaultBaseURL = "https://api.unsplash.com"

func New(accessKey string) *Client {
	return &Client{
		base:      httpclient.NewBaseClient(defaultBaseURL),
		accessKey: accessKey,
	}
}

// NewFromEnv builds a client from UNSPLASH_ACCESS_KEY.
func NewFromEnv() *Client {
	return New(os.Getenv("UNSPLASH_ACCESS_KEY"))
}

type photo struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

type searchPhotosResponse struct {
	Results []photo `json:"results"`
}

// SearchFirst returns the URL of the first photo matching the query.
func (c *Client) SearchFirst(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", ErrMissingAccessKey
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/search/photos", q, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("unsplash SearchFirst: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out searchPhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", ErrNoResults
	}
	return out.Results[0].URLs.Regular, nil
}
