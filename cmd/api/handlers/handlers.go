package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/services"
)

// statusClientClosedRequest mirrors the nginx convention for requests the
// client abandoned mid-flight.
const statusClientClosedRequest = 499

const maxUploadBytes = 10 << 20

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// respondServiceError maps service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
	case errors.Is(err, services.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "configuration_error"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(statusClientClosedRequest, gin.H{"error": "request_cancelled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

// respondGenerationError is respondServiceError for the generation pipeline,
// where an unclassified failure means an upstream service broke mid-run.
func respondGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotConfigured),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		respondServiceError(c, err)
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation_failed"})
	}
}

// readUpload decodes one optional multipart file field into memory.
// A missing field yields (nil, nil).
func readUpload(c *gin.Context, field string) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size > maxUploadBytes {
		return nil, errors.New("file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	return &services.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// splitMulti flattens repeated form values, also splitting each value on
// commas so both genres=a&genres=b and genres=a,b work.
func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
