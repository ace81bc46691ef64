package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"autoplay/models"
)

// postStore is the slice of the post repository this service needs.
type postStore interface {
	Insert(ctx context.Context, p *models.Post) (*models.Post, error)
	ListByUser(ctx context.Context, userID string, isDraft bool) ([]models.Post, error)
	UpdateContent(ctx context.Context, userID string, id primitive.ObjectID, content string) (int64, error)
	UpdateImage(ctx context.Context, userID string, id primitive.ObjectID, imageURL string) (int64, error)
	SetPublished(ctx context.Context, userID string, id primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, userID string, id primitive.ObjectID) (int64, error)
}

type PostService struct {
	posts      postStore
	blobs      BlobUploader
	postBucket string
}

func NewPostService(posts postStore, blobs BlobUploader, postBucket string) *PostService {
	return &PostService{
		posts:      posts,
		blobs:      blobs,
		postBucket: postBucket,
	}
}

func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid post id", ErrInvalidInput)
	}
	return oid, nil
}

// ListDrafts returns the user's drafts, newest first.
func (s *PostService) ListDrafts(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID, true)
}

// ListHistory returns the user's published posts, newest first.
func (s *PostService) ListHistory(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID, false)
}

// UpdateContent replaces a post's content. The draft flag is untouched.
func (s *PostService) UpdateContent(ctx context.Context, userID, postID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	oid, err := parsePostID(postID)
	if err != nil {
		return err
	}

	matched, err := s.posts.UpdateContent(ctx, userID, oid, content)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateImage stores the uploaded image and attaches its URL to the post.
// Only the image field changes.
func (s *PostService) UpdateImage(ctx context.Context, userID, postID string, image *Upload) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", fmt.Errorf("%w: image file is required", ErrInvalidInput)
	}
	oid, err := parsePostID(postID)
	if err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("post-%d%s", time.Now().UnixMilli(), strings.ToLower(filepath.Ext(image.Name)))
	url, err := s.blobs.Upload(ctx, s.postBucket, objectPath, image.ContentType, image.Data)
	if err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}

	matched, err := s.posts.UpdateImage(ctx, userID, oid, url)
	if err != nil {
		return "", err
	}
	if matched == 0 {
		return "", ErrNotFound
	}
	return url, nil
}

// Publish flips a draft to published. Posts that are missing or already
// published report ErrNotFound.
func (s *PostService) Publish(ctx context.Context, userID, postID string) error {
	oid, err := parsePostID(postID)
	if err != nil {
		return err
	}

	matched, err := s.posts.SetPublished(ctx, userID, oid)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post. Deleting an id that is already gone is a no-op.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	oid, err := parsePostID(postID)
	if err != nil {
		return err
	}

	_, err = s.posts.Delete(ctx, userID, oid)
	return err
}
