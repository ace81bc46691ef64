package blobstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"autoplay/blobstore"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotContentType, gotUpsert string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"Key": "posts/post-1.png"}`))
	}))
	defer server.Close()

	client := blobstore.New(server.URL, "service-key")
	url, err := client.Upload(context.Background(), "posts", "post-1.png", "image/png", []byte("png bytes"))

	assert.NoError(t, err)
	assert.Equal(t, server.URL+"/storage/v1/object/public/posts/post-1.png", url)
	assert.Equal(t, "/storage/v1/object/posts/post-1.png", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, []byte("png bytes"), gotBody)
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bucket not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := blobstore.New(server.URL, "service-key")
	_, err := client.Upload(context.Background(), "missing", "obj.png", "image/png", []byte("x"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}

func TestUploadMissingConfig(t *testing.T) {
	client := blobstore.New("", "")

	_, err := client.Upload(context.Background(), "posts", "obj.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, blobstore.ErrMissingConfig)
}

func TestPublicURL(t *testing.T) {
	client := blobstore.New("https://project.supabase.co/", "service-key")

	url := client.PublicURL("profiles", "user-1.jpg")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/profiles/user-1.jpg", url)
}
