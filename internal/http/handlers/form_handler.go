// Form HTTP handlers.
//
// This file exposes the owner-facing REST endpoints for form definitions:
//   - POST   /api/forms                    (create)
//   - GET    /api/forms                    (list own forms)
//   - GET    /api/forms/{id}               (fetch one)
//   - PUT    /api/forms/{id}               (update)
//   - DELETE /api/forms/{id}               (delete)
//   - GET    /api/forms/{id}/submissions   (stored submissions)
//   - GET    /api/forms/{id}/qr            (share QR code as PNG)
//
// All routes require authentication; ownership is enforced in the service
// layer, so a foreign form id yields 404 rather than 403.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/services"
	"github.com/skatsaros/go-forms-backend/internal/utils"
)

// FormRequest is the JSON payload for creating or updating a form.
type FormRequest struct {
	Title          string             `json:"title" example:"Job Application"`
	Description    string             `json:"description,omitempty" example:"Apply for our open roles"`
	Fields         []domain.FormField `json:"fields"`
	EmailRecipient string             `json:"email_recipient" example:"owner@example.com"`
	EmailSubject   string             `json:"email_subject,omitempty" example:"New applicant"`
}

func (r FormRequest) toDomain() domain.Form {
	return domain.Form{
		Title:          r.Title,
		Description:    r.Description,
		Fields:         r.Fields,
		EmailRecipient: r.EmailRecipient,
		EmailSubject:   r.EmailSubject,
	}
}

// CreateForm godoc
// @ID          createForm
// @Summary     Create a form
// @Description Validates and stores a new form definition owned by the caller.
// @Tags        Forms
// @Accept      json
// @Produce     json
// @Param       body body handlers.FormRequest true "Form definition"
// @Success     201 {object} domain.Form
// @Failure     400 {object} handlers.ErrorResponse "Validation failed"
// @Failure     401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /api/forms [post]
func (h *Handlers) CreateForm(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	form, err := h.formSvc.Create(c.Request.Context(), userID(c), req.toDomain())
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, ve)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create form")
		return
	}
	ok(c, http.StatusCreated, form)
}

// ListForms godoc
// @ID          listForms
// @Summary     List own forms
// @Tags        Forms
// @Produce     json
// @Success     200 {array} domain.Form
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /api/forms [get]
func (h *Handlers) ListForms(c *gin.Context) {
	forms, err := h.formSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list forms")
		return
	}
	ok(c, http.StatusOK, forms)
}

// GetForm godoc
// @ID          getForm
// @Summary     Fetch one owned form
// @Tags        Forms
// @Produce     json
// @Param       id path string true "Form ID (UUID)"
// @Success     200 {object} domain.Form
// @Failure     404 {object} handlers.ErrorResponse "Form not found"
// @Router      /api/forms/{id} [get]
func (h *Handlers) GetForm(c *gin.Context) {
	form, err := h.formSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not fetch form")
		return
	}
	ok(c, http.StatusOK, form)
}

// UpdateForm godoc
// @ID          updateForm
// @Summary     Update a form definition
// @Tags        Forms
// @Accept      json
// @Produce     json
// @Param       id   path string              true "Form ID (UUID)"
// @Param       body body handlers.FormRequest true "New definition"
// @Success     200 {object} domain.Form
// @Failure     400 {object} handlers.ErrorResponse "Validation failed"
// @Failure     404 {object} handlers.ErrorResponse "Form not found"
// @Router      /api/forms/{id} [put]
func (h *Handlers) UpdateForm(c *gin.Context) {
	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	form, err := h.formSvc.Update(c.Request.Context(), userID(c), c.Param("id"), req.toDomain())
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			failValidation(c, ve)
		case errors.Is(err, services.ErrFormNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update form")
		}
		return
	}
	ok(c, http.StatusOK, form)
}

// DeleteForm godoc
// @ID          deleteForm
// @Summary     Delete a form
// @Tags        Forms
// @Param       id path string true "Form ID (UUID)"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Form not found"
// @Router      /api/forms/{id} [delete]
func (h *Handlers) DeleteForm(c *gin.Context) {
	if err := h.formSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete form")
		return
	}
	noContent(c)
}

// ListFormSubmissions godoc
// @ID          listFormSubmissions
// @Summary     List submissions for an owned form
// @Tags        Forms
// @Produce     json
// @Param       id path string true "Form ID (UUID)"
// @Success     200 {array} domain.Submission
// @Failure     404 {object} handlers.ErrorResponse "Form not found"
// @Router      /api/forms/{id}/submissions [get]
func (h *Handlers) ListFormSubmissions(c *gin.Context) {
	subs, err := h.subSvc.ListSubmissions(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list submissions")
		return
	}
	ok(c, http.StatusOK, subs)
}

// qrSizeBounds clamp the ?size= query so a caller cannot request absurd
// bitmap dimensions.
const (
	qrDefaultSize = 256
	qrMinSize     = 64
	qrMaxSize     = 1024
)

// FormQR godoc
// @ID          formQR
// @Summary     Render the share link of an owned form as a QR code
// @Description Returns a PNG encoding the public submission URL. Size is
// @Description clamped to 64..1024 pixels.
// @Tags        Forms
// @Produce     png
// @Param       id   path  string true  "Form ID (UUID)"
// @Param       size query int    false "Edge length in pixels" default(256)
// @Success     200 {string} binary "PNG image"
// @Failure     404 {object} handlers.ErrorResponse "Form not found"
// @Router      /api/forms/{id}/qr [get]
func (h *Handlers) FormQR(c *gin.Context) {
	form, err := h.formSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "form not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not fetch form")
		return
	}

	size := utils.AtoiDefault(c.Query("size"), qrDefaultSize)
	if size < qrMinSize {
		size = qrMinSize
	}
	if size > qrMaxSize {
		size = qrMaxSize
	}

	link := h.appBaseURL + "/submit/" + form.ID
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not render QR code")
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
