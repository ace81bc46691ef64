package dto

import (
	"time"

	"autoplay/models"
)

// UserProfileDTO is the authenticated user's profile.
type UserProfileDTO struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Age            int       `json:"age"`
	Genres         []string  `json:"genres"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Onboarded      bool      `json:"onboarded"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserProfileDTO maps a user row onto the API shape.
func NewUserProfileDTO(u *models.User) UserProfileDTO {
	genres := u.Genres
	if genres == nil {
		genres = []string{}
	}
	return UserProfileDTO{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		Age:            u.Age,
		Genres:         genres,
		ProfilePicture: u.ProfilePicture,
		Onboarded:      u.Onboarded(),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// OnboardingRequest is the multipart onboarding form. The profile picture
// arrives as the optional "profile_picture" file part.
type OnboardingRequest struct {
	Username string   `form:"username" binding:"required"`
	Age      int      `form:"age" binding:"required"`
	Genres   []string `form:"genres" binding:"required"`
}
