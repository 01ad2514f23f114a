package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pod-portal/internal/logger"
	"pod-portal/internal/media"
	"pod-portal/internal/middleware"
	"pod-portal/internal/model"
)

const maxBatchFiles = 100

// DocumentSync is the sync-service collaborator: per-file boolean
// success, nothing else.
type DocumentSync interface {
	Upload(user *model.User, file *media.File) bool
}

type UploadHandler struct {
	sync DocumentSync
}

func NewUploadHandler(sync DocumentSync) *UploadHandler {
	return &UploadHandler{sync: sync}
}

// Batch handles POST /upload: cap the batch, push each scan to the sync
// service, report how many made it. A failed file is counted, not fatal.
func (h *UploadHandler) Batch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		respondUploadError(c, "No files selected.")
		return
	}
	files := form.File["scans"]
	if len(files) == 0 || files[0].Filename == "" {
		respondUploadError(c, "No files selected.")
		return
	}
	if len(files) > maxBatchFiles {
		respondUploadError(c, fmt.Sprintf("Batch exceeds %d file limit.", maxBatchFiles))
		return
	}

	successCount := 0
	for _, fh := range files {
		file, err := readFormFile(fh)
		if err != nil {
			logger.Warn("skipping unreadable scan", "file", fh.Filename, "err", err)
			continue
		}
		if h.sync.Upload(user, file) {
			successCount++
		}
	}

	logger.Info("batch upload done", "user_id", user.ID, "files", len(files), "ok", successCount)

	// Lightweight JSON for sequential client-side uploads.
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success_count": successCount})
		return
	}
	flashAndRedirect(c, fmt.Sprintf("Successfully uploaded %d documents.", successCount), "/history")
}

func respondUploadError(c *gin.Context, msg string) {
	if wantsJSON(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	flashAndRedirect(c, msg, "/upload")
}
