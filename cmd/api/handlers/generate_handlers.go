package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/dto"
	"autoplay/cmd/api/middleware"
	"autoplay/cmd/api/services"
	"autoplay/internal/logger"
)

// GenerateHandler godoc
// @Summary      Generate post candidates
// @Description  Runs the generation pipeline: gathers trend context for the requested genres (the full profile selection when none are given), drafts posts, resolves an image and returns the candidate set. The optional "image" file overrides the automatic image lookup. Closing the request cancels the run.
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.GenerateResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /generate [post]
func GenerateHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		image, err := readUpload(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image"})
			return
		}

		userID := middleware.UserID(c)
		requestID := c.Request.Header.Get("X-Request-Id")
		progress := func(ph services.Phase) {
			logger.InfoWithFields("generation phase", logger.Fields{
				"user_id":    userID,
				"phase":      ph.String(),
				"request_id": requestID,
			})
		}

		result, err := genSvc.Generate(c.Request.Context(), userID, services.GenerateParams{
			Platform:   req.Platform,
			Genres:     splitMulti(req.Genres),
			HumorTypes: splitMulti(req.HumorTypes),
			Image:      image,
		}, progress)
		if err != nil {
			respondGenerationError(c, err)
			return
		}

		resp := dto.GenerateResponse{
			Candidates: make([]dto.CandidateDTO, 0, len(result.Candidates)),
			Warnings:   result.Warnings,
		}
		for _, cand := range result.Candidates {
			resp.Candidates = append(resp.Candidates, dto.NewCandidateDTO(cand))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListCandidatesHandler godoc
// @Summary      List the active candidate set
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.GenerateResponse
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /candidates [get]
func ListCandidatesHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := genSvc.Candidates(middleware.UserID(c))
		resp := dto.GenerateResponse{Candidates: make([]dto.CandidateDTO, 0, len(candidates))}
		for _, cand := range candidates {
			resp.Candidates = append(resp.Candidates, dto.NewCandidateDTO(cand))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DiscardCandidatesHandler godoc
// @Summary      Discard the active candidate set
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /candidates [delete]
func DiscardCandidatesHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		genSvc.DiscardCandidates(middleware.UserID(c))
		c.JSON(http.StatusOK, gin.H{"message": "discarded"})
	}
}

// EditCandidateHandler godoc
// @Summary      Edit a candidate's content
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Candidate id"
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.CandidateDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /candidates/{id} [put]
func EditCandidateHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.EditCandidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		candidate, err := genSvc.EditCandidate(middleware.UserID(c), c.Param("id"), req.Content)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewCandidateDTO(*candidate))
	}
}

// SaveDraftHandler godoc
// @Summary      Save a candidate as a draft
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Candidate id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /candidates/{id}/draft [post]
func SaveDraftHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := genSvc.SaveDraft(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewPostDTO(post))
	}
}

// PublishCandidateHandler godoc
// @Summary      Publish a candidate
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Candidate id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /candidates/{id}/publish [post]
func PublishCandidateHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := genSvc.PublishCandidate(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewPostDTO(post))
	}
}

// ShareCandidateHandler godoc
// @Summary      Share a candidate to its platform
// @Description  Publishes the candidate and returns the share instructions: an intent URL for Twitter, or clipboard content for Instagram.
// @Tags         generate
// @Param        Authorization  header  string  true  "Bearer access token"
// @Param        id  path  string  true  "Candidate id"
// @Produce      json
// @Success      200  {object}  dto.ShareResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /candidates/{id}/share [post]
func ShareCandidateHandler(genSvc *services.GenerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		share, err := genSvc.ShareCandidate(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ShareResponseDTO{
			Method:  share.Method,
			URL:     share.URL,
			Content: share.Content,
			Image:   share.Image,
			Post:    dto.NewPostDTO(share.Post),
		})
	}
}
