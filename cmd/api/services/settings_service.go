package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"autoplay/models"
)

// settingsStore is the slice of the settings repository this service needs.
type settingsStore interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, userID string, emailNotifications bool) error
}

type SettingsService struct {
	settings settingsStore
}

func NewSettingsService(settings settingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the user's settings. Users without a stored row get the
// defaults: email notifications on.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.UserSettings{UserID: userID, EmailNotifications: true}, nil
		}
		return nil, err
	}
	return stored, nil
}

// Update stores the user's settings and returns the new state.
func (s *SettingsService) Update(ctx context.Context, userID string, emailNotifications bool) (*models.UserSettings, error) {
	if err := s.settings.Upsert(ctx, userID, emailNotifications); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
