// Like HTTP handlers.
//
// This file exposes the like toggle for board comments:
//   - POST   /api/comments/{id}/like  (like; 409 on repeat)
//   - DELETE /api/comments/{id}/like  (unlike; idempotent)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/services"
)

// LikeComment godoc
// @ID          likeComment
// @Summary     Like a comment
// @Tags        Comments
// @Param       id path string true "Comment ID (UUID)"
// @Success     201 {string} string "Created"
// @Failure     404 {object} handlers.ErrorResponse "Comment not found"
// @Failure     409 {object} handlers.ErrorResponse "Already liked"
// @Router      /api/comments/{id}/like [post]
func (h *Handlers) LikeComment(c *gin.Context) {
	if err := h.commentSvc.Like(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
		case errors.Is(err, services.ErrAlreadyLiked):
			fail(c, http.StatusConflict, ErrCodeConflict, "comment already liked")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not like comment")
		}
		return
	}
	c.Status(http.StatusCreated)
}

// UnlikeComment godoc
// @ID          unlikeComment
// @Summary     Remove a like from a comment
// @Description Unliking a comment that was never liked succeeds silently.
// @Tags        Comments
// @Param       id path string true "Comment ID (UUID)"
// @Success     204 {string} string "No Content"
// @Router      /api/comments/{id}/like [delete]
func (h *Handlers) UnlikeComment(c *gin.Context) {
	if err := h.commentSvc.Unlike(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not remove like")
		return
	}
	noContent(c)
}
