package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/service/gallery"
)

// GalleryHandler serves schematic lookups and user image management.
type GalleryHandler struct {
	svc    *gallery.Service
	logger *zap.Logger
}

// NewGalleryHandler constructs the HTTP handler adapter.
func NewGalleryHandler(svc *gallery.Service, logger *zap.Logger) *GalleryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryHandler{svc: svc, logger: logger}
}

type userImagesBody struct {
	URIs []string `json:"uris" binding:"required,min=1"`
}

// All returns the full schemas grid.
func (h *GalleryHandler) All(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.All())
}

// Theme returns the schematics of a calculation theme.
func (h *GalleryHandler) Theme(c *gin.Context) {
	refs, err := h.svc.ResolveTheme(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// Category returns the schematics of a category followed by user images.
func (h *GalleryHandler) Category(c *gin.Context) {
	refs, err := h.svc.ResolveCategory(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// AddUserImages appends user images.
func (h *GalleryHandler) AddUserImages(c *gin.Context) {
	var body userImagesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uris must be a non-empty list"})
		return
	}
	c.JSON(http.StatusCreated, h.svc.AddUserImages(c.Request.Context(), body.URIs...))
}

// ClearUserImages removes every user image.
func (h *GalleryHandler) ClearUserImages(c *gin.Context) {
	h.svc.ClearUserImages(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// DeleteImage removes one image of a category, addressed by ?uri= or by
// ?index= in the combined sequence. Without a category the full grid is used.
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	category := c.Param("id")
	ctx := c.Request.Context()

	var err error
	switch {
	case c.Query("uri") != "":
		err = h.svc.DeleteUserImage(ctx, category, c.Query("uri"))
	case c.Query("index") != "":
		index, convErr := strconv.Atoi(c.Query("index"))
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
			return
		}
		err = h.svc.DeleteAt(ctx, category, index)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "uri or index is required"})
		return
	}

	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
