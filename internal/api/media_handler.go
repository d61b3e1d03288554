package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftlist-backend-go/internal/storage"
)

// MediaHandler handles cover-photo uploads.
type MediaHandler struct {
	covers *storage.CoverPhotoStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(covers *storage.CoverPhotoStore) *MediaHandler {
	return &MediaHandler{covers: covers}
}

// UploadCoverPhoto handles POST /media/cover-photo. Expects a multipart form
// with a single "file" part and returns the durable display URL plus the
// storage handle for the detail step.
func (h *MediaHandler) UploadCoverPhoto(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'file' form field is required", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file", Details: err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, path, err := h.covers.Upload(c.Request.Context(), userID.(string), fileHeader.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cover photo must be an image"})
			return
		}
		log.Printf("Cover photo upload failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Could not upload cover photo, please try again"})
		return
	}

	c.JSON(http.StatusCreated, CoverPhotoResponse{URL: url, Path: path})
}
