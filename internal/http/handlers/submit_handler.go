// Public submission HTTP handlers.
//
// This file exposes the anonymous endpoints behind a shared form link:
//   - GET  /api/submit/{id}  (fetch the form definition for rendering)
//   - POST /api/submit/{id}  (submit answers)
//
// These routes carry no authentication: anyone with the link can read the
// definition of an active form and post to it. The owner's email settings are
// never exposed on this surface.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/services"
)

// PublicFormResponse is the sanitized form shape served to visitors.
type PublicFormResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Fields      []domain.FormField `json:"fields"`
}

// SubmitRequest is the JSON payload for posting a submission.
type SubmitRequest struct {
	// Data maps field IDs to answers.
	Data map[string]any `json:"data" binding:"required"`
	// Files lists storage paths of pre-uploaded attachments.
	Files []string `json:"files,omitempty"`
}

// SubmitResponse reports a stored submission.
type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	// Warning is present when the answer was stored but the owner
	// notification could not be delivered.
	Warning string `json:"warning,omitempty"`
}

// GetPublicForm godoc
// @ID          getPublicForm
// @Summary     Fetch a form for public rendering
// @Description Returns the fields of an active form without owner settings.
// @Tags        Submit
// @Produce     json
// @Param       id path string true "Form ID (UUID)"
// @Success     200 {object} handlers.PublicFormResponse
// @Failure     404 {object} handlers.ErrorResponse "Form not found or inactive"
// @Router      /api/submit/{id} [get]
func (h *Handlers) GetPublicForm(c *gin.Context) {
	form, err := h.subSvc.GetPublicForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not fetch form")
		return
	}
	ok(c, http.StatusOK, PublicFormResponse{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Fields:      form.Fields,
	})
}

// Submit godoc
// @ID          submitForm
// @Summary     Submit answers to a form
// @Description Validates required fields, stores the submission, and relays
// @Description it to the form owner by email with uploaded files attached.
// @Tags        Submit
// @Accept      json
// @Produce     json
// @Param       id   path string                 true "Form ID (UUID)"
// @Param       body body handlers.SubmitRequest true "Submission payload"
// @Success     201 {object} handlers.SubmitResponse
// @Failure     400 {object} handlers.ErrorResponse "Required fields missing"
// @Failure     404 {object} handlers.ErrorResponse "Form not found or inactive"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /api/submit/{id} [post]
func (h *Handlers) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	res, err := h.subSvc.Submit(c.Request.Context(), c.Param("id"), req.Data, req.Files, ip, requestLang(c))
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			failValidation(c, ve)
		case errors.Is(err, services.ErrFormNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, "could not process submission")
		}
		return
	}

	resp := SubmitResponse{SubmissionID: res.SubmissionID}
	if res.EmailWarning {
		resp.Warning = "submission saved, but the notification email could not be sent"
	}
	ok(c, http.StatusCreated, resp)
}
