package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to a status code and a JSON body.
// Validation messages are safe to show; storage details are only logged.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found while "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error("Storage unavailable while "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage is unavailable, please retry later"})
	case errors.Is(err, apperrors.ErrStorageCorrupt):
		logger.Error("Corrupt storage while "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored ledger data is corrupt"})
	default:
		logger.Error("Failed "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
