package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/dto"
	"autoplay/cmd/api/middleware"
	"autoplay/cmd/api/services"
)

// GetSettingsHandler godoc
// @Summary      Get the current user's settings
// @Tags         settings
// @Param        Authorization  header  string  true  "Bearer access token"
// @Produce      json
// @Success      200  {object}  dto.SettingsDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /settings [get]
func GetSettingsHandler(settingsSvc *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := settingsSvc.Get(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SettingsDTO{EmailNotifications: settings.EmailNotifications})
	}
}

// UpdateSettingsHandler godoc
// @Summary      Update the current user's settings
// @Tags         settings
// @Param        Authorization  header  string  true  "Bearer access token"
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.SettingsDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /settings [put]
func UpdateSettingsHandler(settingsSvc *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}

		settings, err := settingsSvc.Update(c.Request.Context(), middleware.UserID(c), *req.EmailNotifications)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SettingsDTO{EmailNotifications: settings.EmailNotifications})
	}
}
