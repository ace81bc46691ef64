package services

import (
	"context"
	"testing"
)

func TestSettingsDefaultToNotificationsOn(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsStore{})

	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.EmailNotifications {
		t.Fatalf("users without a stored row must default to notifications on")
	}
	if got.UserID != "user-1" {
		t.Fatalf("expected user id on defaults, got %q", got.UserID)
	}
}

func TestSettingsUpdateRoundTrip(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store)

	got, err := svc.Update(context.Background(), "user-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EmailNotifications {
		t.Fatalf("update to false not applied")
	}

	got, err = svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EmailNotifications {
		t.Fatalf("stored opt-out must survive a reload")
	}

	if _, err := svc.Update(context.Background(), "user-1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = svc.Get(context.Background(), "user-1")
	if !got.EmailNotifications {
		t.Fatalf("re-enabling notifications not applied")
	}
}
