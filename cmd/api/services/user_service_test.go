package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"autoplay/models"
)

type fakeProfileStore struct {
	user      *models.User
	upsertErr error
}

func (f *fakeProfileStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	return f.user, nil
}

func (f *fakeProfileStore) UpsertProfile(ctx context.Context, id, username string, age int, genres []string, profilePicture string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.user.Username = username
	f.user.Age = age
	f.user.Genres = genres
	if profilePicture != "" {
		f.user.ProfilePicture = profilePicture
	}
	return nil
}

func TestGetUser(t *testing.T) {
	store := &fakeProfileStore{user: &models.User{ID: "user-1", Email: "user@example.com"}}
	svc := NewUserService(store, &fakeBlobs{}, "profiles")

	u, err := svc.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "user@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.GetUser(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	store := &fakeProfileStore{user: &models.User{ID: "user-1"}}
	blobs := &fakeBlobs{url: "https://storage.example/profiles/user-1.png"}
	svc := NewUserService(store, blobs, "profiles")

	u, err := svc.CompleteOnboarding(context.Background(), "user-1", "casey", 27, []string{"Gaming"}, &Upload{
		Name:        "avatar.PNG",
		ContentType: "image/png",
		Data:        []byte("png"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "casey" || u.Age != 27 {
		t.Fatalf("profile not stored: %+v", u)
	}
	if u.ProfilePicture != blobs.url {
		t.Fatalf("picture URL not stored: %q", u.ProfilePicture)
	}
	if blobs.lastBucket != "profiles" {
		t.Fatalf("expected profiles bucket, got %q", blobs.lastBucket)
	}
	if blobs.lastPath != "user-1.png" {
		t.Fatalf("picture must be keyed by user id, got %q", blobs.lastPath)
	}
	if !u.Onboarded() {
		t.Fatalf("completed onboarding must mark the user onboarded")
	}
}

func TestCompleteOnboardingWithoutPicture(t *testing.T) {
	store := &fakeProfileStore{user: &models.User{ID: "user-1", ProfilePicture: "https://old.example/pic.png"}}
	svc := NewUserService(store, &fakeBlobs{}, "profiles")

	u, err := svc.CompleteOnboarding(context.Background(), "user-1", "casey", 27, []string{"Gaming"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ProfilePicture != "https://old.example/pic.png" {
		t.Fatalf("onboarding without a picture must keep the existing one, got %q", u.ProfilePicture)
	}
}

func TestCompleteOnboardingValidation(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		age      int
		genres   []string
	}{
		{name: "blank username", username: "  ", age: 27, genres: []string{"Gaming"}},
		{name: "zero age", username: "casey", age: 0, genres: []string{"Gaming"}},
		{name: "under thirteen", username: "casey", age: 12, genres: []string{"Gaming"}},
		{name: "no genres", username: "casey", age: 27},
		{name: "unknown genre", username: "casey", age: 27, genres: []string{"Nope"}},
	}

	store := &fakeProfileStore{user: &models.User{ID: "user-1"}}
	svc := NewUserService(store, &fakeBlobs{}, "profiles")

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.CompleteOnboarding(context.Background(), "user-1", testCase.username, testCase.age, testCase.genres, nil)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCompleteOnboardingUploadFailure(t *testing.T) {
	store := &fakeProfileStore{user: &models.User{ID: "user-1"}}
	blobs := &fakeBlobs{err: errors.New("bucket unavailable")}
	svc := NewUserService(store, blobs, "profiles")

	_, err := svc.CompleteOnboarding(context.Background(), "user-1", "casey", 27, []string{"Gaming"}, &Upload{
		Name: "avatar.png",
		Data: []byte("png"),
	})
	if err == nil {
		t.Fatalf("expected upload failure to block onboarding")
	}
	if store.user.Username != "" {
		t.Fatalf("failed upload must not store the profile")
	}
}
