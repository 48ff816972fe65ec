// Upload HTTP handlers.
//
// File bytes never pass through this API: the client requests a signed PUT
// URL here, uploads directly to the object store, and references the returned
// storage path in its submission payload.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/services"
	"github.com/skatsaros/go-forms-backend/internal/storage"
)

// UploadURLRequest asks for a signed upload slot for one file.
type UploadURLRequest struct {
	Filename string `json:"filename" binding:"required" example:"resume.pdf"`
}

// UploadURLResponse carries the signed slot plus both filename forms, so the
// client can show the user what the stored object will be called.
type UploadURLResponse struct {
	URL               string `json:"url"`
	Path              string `json:"path"`
	OriginalFileName  string `json:"originalFileName"`
	SanitizedFileName string `json:"sanitizedFileName"`
}

// CreateUploadURL godoc
// @ID          createUploadURL
// @Summary     Issue a signed upload URL for a form attachment
// @Description Sanitizes the filename, derives a unique storage path, and
// @Description returns a short-lived signed PUT URL for it.
// @Tags        Submit
// @Accept      json
// @Produce     json
// @Param       body body handlers.UploadURLRequest true "Filename"
// @Success     201 {object} handlers.UploadURLResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing filename"
// @Failure     503 {object} handlers.ErrorResponse "Storage not configured"
// @Router      /api/upload-url [post]
func (h *Handlers) CreateUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "filename is required")
		return
	}

	up, err := h.uploadSvc.PresignUpload(c.Request.Context(), req.Filename)
	if err != nil {
		if errors.Is(err, services.ErrStorageUnconfigured) {
			fail(c, http.StatusServiceUnavailable, ErrCodeUploadDisabled, "file uploads are not configured on this server")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not create upload URL")
		return
	}
	ok(c, http.StatusCreated, UploadURLResponse{
		URL:               up.URL,
		Path:              up.Path,
		OriginalFileName:  req.Filename,
		SanitizedFileName: storage.SanitizeFilename(req.Filename),
	})
}
