package models

import "time"

// UserSettings holds per-user notification preferences.
// Collection: user_settings, keyed by user id, upserted independently of the
// profile.
type UserSettings struct {
	UserID             string    `bson:"_id" json:"user_id"`
	EmailNotifications bool      `bson:"email_notifications" json:"email_notifications"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}
