package main

import (
	"net/http"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/repository"
	"github.com/essomba/schoolhub/storage"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps multipart uploads at 8 MiB.
const maxUploadSize = 8 << 20

type UploadHandler struct {
	uploader storage.Uploader
	users    repository.UserRepository
	store    cache.Store
}

func NewUploadHandler(uploader storage.Uploader, users repository.UserRepository, store cache.Store) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		users:    users,
		store:    store,
	}
}

// Upload stores a multipart file and returns its durable URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file field is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		badRequest(c, "file exceeds the 8 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       result.URL,
		"public_id": result.PublicID,
	})
}

// Delete removes a previously uploaded file by its public ID.
func (h *UploadHandler) Delete(c *gin.Context) {
	publicID := c.Param("publicId")
	if publicID == "" {
		badRequest(c, "publicId is required")
		return
	}

	if err := h.uploader.Delete(c.Request.Context(), publicID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// UploadUserPhoto stores a profile photo and records its URL on the user.
func (h *UploadHandler) UploadUserPhoto(c *gin.Context) {
	userID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file field is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		badRequest(c, "file exceeds the 8 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.users.UpdateUserPhoto(userID, result.URL); err != nil {
		handleError(c, err)
		return
	}

	if !invalidateOrAbort(c, h.store,
		cache.Key("user", userID),
		cache.ListPattern("users"),
	) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": result.URL})
}
