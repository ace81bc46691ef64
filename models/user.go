package models

import "time"

// User represents an end user account plus onboarding profile.
// Collection: users
//
// The identity half (provider, provider_sub, email) is written at first login;
// the profile half (username, age, genres, profile_picture) at onboarding.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Provider       string    `bson:"provider" json:"provider"`
	ProviderSub    string    `bson:"provider_sub" json:"provider_sub"`
	Email          string    `bson:"email" json:"email"`
	Username       string    `bson:"username" json:"username"`
	Age            int       `bson:"age" json:"age"`
	Genres         []string  `bson:"genres" json:"genres"`
	ProfilePicture string    `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Onboarded reports whether the user has completed the onboarding profile.
func (u *User) Onboarded() bool {
	return u != nil && u.Username != ""
}
