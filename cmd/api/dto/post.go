package dto

import (
	"time"

	"autoplay/models"
)

// PostDTO is a persisted post, draft or published.
type PostDTO struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	IsDraft   bool      `json:"is_draft"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostDTO maps a post row onto the API shape.
func NewPostDTO(p *models.Post) PostDTO {
	return PostDTO{
		ID:        p.ID.Hex(),
		Platform:  string(p.Platform),
		Content:   p.Content,
		Image:     p.Image,
		IsDraft:   p.IsDraft,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPostListDTO maps a list of post rows.
func NewPostListDTO(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostDTO(&posts[i]))
	}
	return out
}

// PostListResponse wraps a post listing.
type PostListResponse struct {
	Total int       `json:"total"`
	Items []PostDTO `json:"items"`
}

// UpdatePostContentRequest replaces a post's content.
type UpdatePostContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePostImageResponse returns the new image URL after an upload.
type UpdatePostImageResponse struct {
	Image string `json:"image"`
}
