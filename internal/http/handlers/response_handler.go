// Response (thread) HTTP handlers.
//
// This file exposes the comment thread endpoints:
//   - GET  /api/comments/{id}/responses  (thread, oldest first)
//   - POST /api/comments/{id}/responses  (append a response)
//
// Threads are append-only: responses cannot be edited or removed once
// posted, matching the audit expectations of an issue discussion.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/services"
)

// ResponseRequest is the JSON payload for posting a thread response.
type ResponseRequest struct {
	Content string `json:"content" binding:"required" example:"Fixed in the next release"`
}

// ListCommentResponses godoc
// @ID          listCommentResponses
// @Summary     List a comment's thread
// @Tags        Comments
// @Produce     json
// @Param       id path string true "Comment ID (UUID)"
// @Success     200 {array} domain.CommentResponse
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Router      /api/comments/{id}/responses [get]
func (h *Handlers) ListCommentResponses(c *gin.Context) {
	out, err := h.commentSvc.ListResponses(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list responses")
		return
	}
	ok(c, http.StatusOK, out)
}

// CreateCommentResponse godoc
// @ID          createCommentResponse
// @Summary     Respond in a comment's thread
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       id   path string                   true "Comment ID (UUID)"
// @Param       body body handlers.ResponseRequest true "Response payload"
// @Success     201 {object} domain.CommentResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing content"
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Router      /api/comments/{id}/responses [post]
func (h *Handlers) CreateCommentResponse(c *gin.Context) {
	var req ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		return
	}

	created, err := h.commentSvc.Respond(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			failValidation(c, ve)
		case errors.Is(err, services.ErrCommentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create response")
		}
		return
	}
	ok(c, http.StatusCreated, created)
}
