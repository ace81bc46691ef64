package dto

import "autoplay/models"

// GenerateRequest is the multipart generation form. The reference image
// arrives as the optional "image" file part; genres and humor_types may be
// repeated. Omitting genres generates for the full profile selection.
type GenerateRequest struct {
	Platform   string   `form:"platform" binding:"required"`
	Genres     []string `form:"genres"`
	HumorTypes []string `form:"humor_types" binding:"required"`
}

// CandidateDTO is one generated post candidate.
type CandidateDTO struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
}

// GenerateResponse carries the generated candidates plus any non-fatal
// warnings collected along the way.
type GenerateResponse struct {
	Candidates []CandidateDTO `json:"candidates"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// NewCandidateDTO maps a candidate onto the API shape.
func NewCandidateDTO(p models.GeneratedPost) CandidateDTO {
	return CandidateDTO{
		ID:       p.ID,
		Platform: string(p.Platform),
		Content:  p.Content,
		Image:    p.Image,
	}
}

// EditCandidateRequest replaces a candidate's content.
type EditCandidateRequest struct {
	Content string `json:"content" binding:"required"`
}

// ShareResponseDTO tells the client how to hand the post to the platform.
// Method is "intent" with a URL to open, or "clipboard" with the content to
// copy before opening the platform manually.
type ShareResponseDTO struct {
	Method  string  `json:"method"`
	URL     string  `json:"url,omitempty"`
	Content string  `json:"content,omitempty"`
	Image   string  `json:"image,omitempty"`
	Post    PostDTO `json:"post"`
}
