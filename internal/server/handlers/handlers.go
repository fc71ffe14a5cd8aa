// Package handlers contains the gin handlers for the JRN API. Every failure
// is translated here: validation reasons and not-found messages go to the
// client, store and upstream detail goes to the log only.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jrnhq/jrn/internal/apperrors"
)

func writeError(c *gin.Context, log zerolog.Logger, err error, notFoundMessage string) {
	var validationErr *apperrors.ValidationError
	var upstreamErr *apperrors.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	case errors.As(err, &upstreamErr):
		log.Error().Int("status", upstreamErr.Status).Str("body", upstreamErr.Body).Msg("AI service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Service Error"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
