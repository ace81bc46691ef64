package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/dto"
	"autoplay/cmd/api/middleware"
	"autoplay/cmd/api/services"
)

// ListDraftsHandler godoc
// @Summary      List the current user's drafts
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.PostListResponse
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/drafts [get]
func ListDraftsHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := postSvc.ListDrafts(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.PostListResponse{Total: len(posts), Items: dto.NewPostListDTO(posts)})
	}
}

// ListHistoryHandler godoc
// @Summary      List the current user's published posts
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.PostListResponse
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/history [get]
func ListHistoryHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := postSvc.ListHistory(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.PostListResponse{Total: len(posts), Items: dto.NewPostListDTO(posts)})
	}
}

// UpdatePostContentHandler godoc
// @Summary      Update a post's content
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Post id"
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/content [put]
func UpdatePostContentHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdatePostContentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		if err := postSvc.UpdateContent(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Content); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "updated"})
	}
}

// UpdatePostImageHandler godoc
// @Summary      Replace a post's image
// @Description  Uploads the "image" file part to storage and attaches its public URL to the post. Content and draft state are untouched.
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Post id"
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.UpdatePostImageResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/image [put]
func UpdatePostImageHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, err := readUpload(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image"})
			return
		}

		url, err := postSvc.UpdateImage(c.Request.Context(), middleware.UserID(c), c.Param("id"), image)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.UpdatePostImageResponse{Image: url})
	}
}

// PublishPostHandler godoc
// @Summary      Publish a draft
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Post id"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/publish [post]
func PublishPostHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := postSvc.Publish(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "published"})
	}
}

// DeletePostHandler godoc
// @Summary      Delete a post
// @Description  Removes the post. Deleting an id that is already gone succeeds.
// @Tags         posts
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Post id"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [delete]
func DeletePostHandler(postSvc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := postSvc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
