package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"autoplay/internal/httpclient"
)

// Client uploads objects to a Supabase-compatible storage API and resolves
// their public URLs. Buckets are expected to exist and be public.
type Client struct {
	base       *httpclient.BaseClient
	serviceKey string
}

var (
	// ErrMissingConfig means the storage URL or service key is not set.
	ErrMissingConfig = fmt.Errorf("blobstore: missing storage URL or service key")
)

func New(baseURL, serviceKey string) *Client {
	return &Client{
		base:       httpclient.NewBaseClient(strings.TrimRight(baseURL, "/")),
		serviceKey: serviceKey,
	}
}

// NewFromEnv builds a client from SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY.
func NewFromEnv() *Client {
	return New(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
}

// Upload stores data under bucket/objectPath, overwriting any existing
// object, and returns the public URL.
func (c *Client) Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error) {
	if c.base.BaseURL == "" || c.serviceKey == "" {
		return "", ErrMissingConfig
	}

	relPath := path.Join("/storage/v1/object", bucket, objectPath)
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, nil, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("blobstore Upload: status=%d body=%s", resp.StatusCode, string(body))
	}
	return c.PublicURL(bucket, objectPath), nil
}

// PublicURL returns the public URL of an object in a public bucket.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return c.base.BaseURL + path.Join("/storage/v1/object/public", bucket, objectPath)
}
