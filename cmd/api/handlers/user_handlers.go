package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/dto"
	"autoplay/cmd/api/middleware"
	"autoplay/cmd/api/services"
)

// GetMeHandler godoc
// @Summary      Get the current user's profile
// @Tags         users
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /users/me [get]
func GetMeHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userSvc.GetUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewUserProfileDTO(user))
	}
}

// OnboardingHandler godoc
// @Summary      Complete onboarding
// @Description  Stores the username, age and genres from the multipart form, plus the optional profile_picture file. Re-running onboarding overwrites the profile.
// @Tags         users
// @Param        Authorization  header  string  true  "Bearer access token"
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /users/onboarding [post]
func OnboardingHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.OnboardingRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		picture, err := readUpload(c, "profile_picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_profile_picture"})
			return
		}

		user, err := userSvc.CompleteOnboarding(
			c.Request.Context(),
			middleware.UserID(c),
			req.Username,
			req.Age,
			splitMulti(req.Genres),
			picture,
		)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewUserProfileDTO(user))
	}
}

// UpdateProfileHandler godoc
// @Summary      Update the profile
// @Description  Edits the username, age and genres; the optional profile_picture file replaces the stored picture, otherwise the current one is kept.
// @Tags         users
// @Param        Authorization  header  string  true  "Bearer access token"
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /users/profile [put]
func UpdateProfileHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.OnboardingRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		picture, err := readUpload(c, "profile_picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_profile_picture"})
			return
		}

		user, err := userSvc.UpdateProfile(
			c.Request.Context(),
			middleware.UserID(c),
			req.Username,
			req.Age,
			splitMulti(req.Genres),
			picture,
		)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewUserProfileDTO(user))
	}
}
