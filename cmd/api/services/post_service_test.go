package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"autoplay/models"
)

func newPostFixture() (*PostService, *fakePostStore, *fakeBlobs) {
	posts := newFakePostStore()
	blobs := &fakeBlobs{url: "https://storage.example/posts/post-9.jpg"}
	return NewPostService(posts, blobs, "posts"), posts, blobs
}

func seedPost(t *testing.T, posts *fakePostStore, userID string, isDraft bool) *models.Post {
	t.Helper()
	p, err := posts.Insert(context.Background(), &models.Post{
		UserID:   userID,
		Platform: models.PlatformTwitter,
		Content:  "seed content",
		IsDraft:  isDraft,
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return p
}

func TestListDraftsAndHistory(t *testing.T) {
	svc, posts, _ := newPostFixture()
	seedPost(t, posts, "user-1", true)
	seedPost(t, posts, "user-1", false)
	seedPost(t, posts, "user-2", true)

	drafts, err := svc.ListDrafts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 || !drafts[0].IsDraft {
		t.Fatalf("unexpected drafts: %v", drafts)
	}

	history, err := svc.ListHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].IsDraft {
		t.Fatalf("unexpected history: %v", history)
	}
}

func TestUpdateContent(t *testing.T) {
	svc, posts, _ := newPostFixture()
	p := seedPost(t, posts, "user-1", true)

	if err := svc.UpdateContent(context.Background(), "user-1", p.ID.Hex(), "new text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posts.posts[p.ID].Content != "new text" {
		t.Fatalf("content not updated: %q", posts.posts[p.ID].Content)
	}
	if !posts.posts[p.ID].IsDraft {
		t.Fatalf("content update must not touch the draft flag")
	}

	if err := svc.UpdateContent(context.Background(), "user-1", p.ID.Hex(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank content, got %v", err)
	}
	if err := svc.UpdateContent(context.Background(), "user-1", "not-an-id", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed id, got %v", err)
	}
	if err := svc.UpdateContent(context.Background(), "user-1", primitive.NewObjectID().Hex(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
	if err := svc.UpdateContent(context.Background(), "user-2", p.ID.Hex(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's post, got %v", err)
	}
}

func TestUpdateImage(t *testing.T) {
	svc, posts, blobs := newPostFixture()
	p := seedPost(t, posts, "user-1", false)

	url, err := svc.UpdateImage(context.Background(), "user-1", p.ID.Hex(), &Upload{
		Name:        "shot.JPG",
		ContentType: "image/jpeg",
		Data:        []byte("bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != blobs.url {
		t.Fatalf("expected %q, got %q", blobs.url, url)
	}
	if posts.posts[p.ID].Image != blobs.url {
		t.Fatalf("image not attached to post")
	}
	if posts.posts[p.ID].Content != "seed content" {
		t.Fatalf("image update must not touch the content")
	}
	if blobs.lastBucket != "posts" {
		t.Fatalf("expected posts bucket, got %q", blobs.lastBucket)
	}
	if !strings.HasPrefix(blobs.lastPath, "post-") || !strings.HasSuffix(blobs.lastPath, ".jpg") {
		t.Fatalf("unexpected object path %q", blobs.lastPath)
	}

	if _, err := svc.UpdateImage(context.Background(), "user-1", p.ID.Hex(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing file, got %v", err)
	}
}

func TestUpdateImageUploadFailure(t *testing.T) {
	svc, posts, blobs := newPostFixture()
	p := seedPost(t, posts, "user-1", false)
	blobs.err = errors.New("bucket unavailable")

	if _, err := svc.UpdateImage(context.Background(), "user-1", p.ID.Hex(), &Upload{
		Name: "shot.jpg",
		Data: []byte("bytes"),
	}); err == nil {
		t.Fatalf("expected upload error to surface")
	}
	if posts.posts[p.ID].Image != "" {
		t.Fatalf("failed upload must not attach an image")
	}
}

func TestPublishPost(t *testing.T) {
	svc, posts, _ := newPostFixture()
	p := seedPost(t, posts, "user-1", true)

	if err := svc.Publish(context.Background(), "user-1", p.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posts.posts[p.ID].IsDraft {
		t.Fatalf("publish must clear the draft flag")
	}

	// Publishing twice matches nothing the second time.
	if err := svc.Publish(context.Background(), "user-1", p.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for already published post, got %v", err)
	}
}

func TestDeletePostIsIdempotent(t *testing.T) {
	svc, posts, _ := newPostFixture()
	p := seedPost(t, posts, "user-1", true)

	if err := svc.Delete(context.Background(), "user-1", p.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := posts.posts[p.ID]; ok {
		t.Fatalf("post not deleted")
	}
	if err := svc.Delete(context.Background(), "user-1", p.ID.Hex()); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", "not-an-id"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed id, got %v", err)
	}
}
