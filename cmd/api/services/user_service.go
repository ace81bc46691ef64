package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"autoplay/models"
)

// profileStore is the slice of the user repository profile management needs.
type profileStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpsertProfile(ctx context.Context, id, username string, age int, genres []string, profilePicture string) error
}

// BlobUploader stores an object and returns its public URL.
type BlobUploader interface {
	Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error)
}

type UserService struct {
	users         profileStore
	blobs         BlobUploader
	profileBucket string
}

func NewUserService(users profileStore, blobs BlobUploader, profileBucket string) *UserService {
	return &UserService{
		users:         users,
		blobs:         blobs,
		profileBucket: profileBucket,
	}
}

// GetUser loads a user row by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// CompleteOnboarding validates and stores the onboarding profile. The
// profile picture, when given, is stored under <userID>.<ext> so a re-run
// of onboarding overwrites the previous picture.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID, username string, age int, genres []string, picture *Upload) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if age < 13 {
		return nil, fmt.Errorf("%w: age must be at least 13", ErrInvalidInput)
	}
	if err := models.ValidateGenres(genres); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	pictureURL := ""
	if picture != nil {
		objectPath := userID + strings.ToLower(filepath.Ext(picture.Name))
		url, err := s.blobs.Upload(ctx, s.profileBucket, objectPath, picture.ContentType, picture.Data)
		if err != nil {
			return nil, fmt.Errorf("profile picture upload: %w", err)
		}
		pictureURL = url
	}

	if err := s.users.UpsertProfile(ctx, userID, username, age, genres, pictureURL); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

// UpdateProfile edits the profile after onboarding. Same fields, same rules;
// omitting the picture keeps the current one.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username string, age int, genres []string, picture *Upload) (*models.User, error) {
	return s.CompleteOnboarding(ctx, userID, username, age, genres, picture)
}
