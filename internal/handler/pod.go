package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"pod-portal/internal/logger"
	"pod-portal/internal/media"
	"pod-portal/internal/middleware"
	"pod-portal/internal/service"
)

type PODHandler struct {
	pod *service.PODService
}

func NewPODHandler(pod *service.PODService) *PODHandler {
	return &PODHandler{pod: pod}
}

// Capture handles POST /pod/event. The guard already vetted the user;
// this only shapes input for the service and the response for the
// caller. Failure kinds map one-to-one onto response codes.
func (h *PODHandler) Capture(c *gin.Context) {
	user := middleware.CurrentUser(c)

	photo, err := formPhoto(c)
	if err != nil {
		respondCaptureError(c, http.StatusBadRequest, "Could not read the photo upload.")
		return
	}

	event, err := h.pod.Capture(c.Request.Context(), service.CaptureInput{
		User:        user,
		ReferenceID: c.PostForm("reference_id"),
		EventType:   c.PostForm("event_type"),
		Latitude:    c.PostForm("latitude"),
		Longitude:   c.PostForm("longitude"),
		Photo:       photo,
		Signature:   c.PostForm("signature_base64"),
	})
	if err != nil {
		var ce *service.CaptureError
		if !errors.As(err, &ce) {
			logger.Error("capture failed", "err", err)
			respondCaptureError(c, http.StatusInternalServerError, "Event could not be saved.")
			return
		}
		switch ce.Kind {
		case service.FailureDecode:
			respondCaptureError(c, http.StatusBadRequest, "Signature payload is malformed.")
		case service.FailureUpload:
			logger.Error("capture upload failed", "err", ce.Err)
			respondCaptureError(c, http.StatusInternalServerError, "Media upload failed; event not saved.")
		default:
			logger.Error("capture persist failed", "err", ce.Err)
			respondCaptureError(c, http.StatusInternalServerError, "Event could not be saved.")
		}
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event logged.", "event_id": event.ID})
		return
	}
	flashAndRedirect(c, "POD Event logged.", "/pod/event")
}

func respondCaptureError(c *gin.Context, status int, msg string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"error": msg})
		return
	}
	flashAndRedirect(c, msg, "/pod/event")
}

// formPhoto reads the optional native photo file into memory, keeping
// its submitted filename and content type for the upload path.
func formPhoto(c *gin.Context) (*media.File, error) {
	fh, err := c.FormFile("pod_photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return readFormFile(fh)
}

func readFormFile(fh *multipart.FileHeader) (*media.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
