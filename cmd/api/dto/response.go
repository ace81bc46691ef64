package dto

// ErrorResponseDTO is the common error payload. Redirect, when present,
// names the frontend route the client should move to (sign-in, onboarding).
type ErrorResponseDTO struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// MessageResponseDTO is a minimal success payload.
type MessageResponseDTO struct {
	Message string `json:"message"`
}
