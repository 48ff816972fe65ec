// Comment board HTTP handlers.
//
// This file exposes the community board endpoints:
//   - GET    /api/comments        (filtered/sorted listing with stats)
//   - POST   /api/comments        (create)
//   - GET    /api/comments/{id}   (fetch one with stats)
//   - PUT    /api/comments/{id}   (update own comment)
//   - DELETE /api/comments/{id}   (delete own comment)
//
// Every authenticated user can read the whole board; only the author can
// modify or delete a comment. A missing comment reports 404 before the
// ownership check reports 403.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/repo"
	"github.com/skatsaros/go-forms-backend/internal/services"
)

// CommentRequest is the JSON payload for creating or updating a comment.
// Absent fields are left unchanged on update.
type CommentRequest struct {
	Title    *string `json:"title,omitempty" example:"Export button broken"`
	Content  *string `json:"content,omitempty" example:"Clicking export does nothing on Safari"`
	Category *string `json:"category,omitempty" example:"bug"`
	Priority *string `json:"priority,omitempty" example:"high"`
	Status   *string `json:"status,omitempty" example:"resolved"`
}

func (r CommentRequest) toInput() services.CommentInput {
	return services.CommentInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Priority: r.Priority,
		Status:   r.Status,
	}
}

// ListComments godoc
// @ID          listComments
// @Summary     List board comments
// @Description Returns comments with like/response statistics for the caller.
// @Description Filters accept "all" or empty for no constraint.
// @Tags        Comments
// @Produce     json
// @Param       category query string false "Filter by category"
// @Param       status   query string false "Filter by status"
// @Param       priority query string false "Filter by priority"
// @Param       user_id  query string false "Only comments by this user"
// @Param       sort     query string false "newest|oldest|priority|status" default(newest)
// @Success     200 {array} repo.CommentWithStats
// @Router      /api/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	f := repo.CommentFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		UserID:   c.Query("user_id"),
		Sort:     c.DefaultQuery("sort", "newest"),
	}
	out, err := h.commentSvc.List(c.Request.Context(), f, userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list comments")
		return
	}
	ok(c, http.StatusOK, out)
}

// CreateComment godoc
// @ID          createComment
// @Summary     Create a board comment
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       body body handlers.CommentRequest true "Comment payload"
// @Success     201 {object} domain.Comment
// @Failure     400 {object} handlers.ErrorResponse "Validation failed"
// @Router      /api/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	created, err := h.commentSvc.Create(c.Request.Context(), userID(c), req.toInput())
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			failValidation(c, ve)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create comment")
		return
	}
	ok(c, http.StatusCreated, created)
}

// GetComment godoc
// @ID          getComment
// @Summary     Fetch one comment with statistics
// @Tags        Comments
// @Produce     json
// @Param       id path string true "Comment ID (UUID)"
// @Success     200 {object} repo.CommentWithStats
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Router      /api/comments/{id} [get]
func (h *Handlers) GetComment(c *gin.Context) {
	out, err := h.commentSvc.Get(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not fetch comment")
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateComment godoc
// @ID          updateComment
// @Summary     Update an own comment
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       id   path string                  true "Comment ID (UUID)"
// @Param       body body handlers.CommentRequest true "Fields to change"
// @Success     200 {object} domain.Comment
// @Failure     400 {object} handlers.ErrorResponse "Validation failed"
// @Failure     403 {object} handlers.ErrorResponse "Not the author"
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Router      /api/comments/{id} [put]
func (h *Handlers) UpdateComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	updated, err := h.commentSvc.Update(c.Request.Context(), userID(c), c.Param("id"), req.toInput())
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			failValidation(c, ve)
		case errors.Is(err, services.ErrCommentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
		case errors.Is(err, services.ErrNotCommentOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author can modify this comment")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update comment")
		}
		return
	}
	ok(c, http.StatusOK, updated)
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete an own comment
// @Tags        Comments
// @Param       id path string true "Comment ID (UUID)"
// @Success     204 {string} string "No Content"
// @Failure     403 {object} handlers.ErrorResponse "Not the author"
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Router      /api/comments/{id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	if err := h.commentSvc.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
		case errors.Is(err, services.ErrNotCommentOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author can delete this comment")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete comment")
		}
		return
	}
	noContent(c)
}
