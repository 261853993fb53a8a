package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/service/calculations"
	"github.com/mamadbah2/railtools/internal/service/gallery"
	"github.com/mamadbah2/railtools/internal/service/inventory"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is a 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *calculations.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.Is(err, calculations.ErrUnknownTheme),
		errors.Is(err, calculations.ErrUnknownMode),
		errors.Is(err, gallery.ErrNoImages),
		errors.Is(err, gallery.ErrImageNotFound),
		errors.Is(err, inventory.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, gallery.ErrBundledImage):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrMissingFields),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidUnit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
