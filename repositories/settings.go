package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autoplay/models"
)

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection("user_settings")}
}

// Get returns a user's settings row, or mongo.ErrNoDocuments when none exists.
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert creates or updates the settings row for a user.
func (r *SettingsRepository) Upsert(ctx context.Context, userID string, emailNotifications bool) error {
	update := bson.M{
		"$set": bson.M{
			"email_notifications": emailNotifications,
			"updated_at":          time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update, opts)
	return err
}
