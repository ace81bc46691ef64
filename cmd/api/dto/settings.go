package dto

// SettingsDTO is the user's notification settings.
type SettingsDTO struct {
	EmailNotifications bool `json:"email_notifications"`
}

// UpdateSettingsRequest updates the notification settings.
type UpdateSettingsRequest struct {
	EmailNotifications *bool `json:"email_notifications" binding:"required"`
}
