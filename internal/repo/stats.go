// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries for
// the comment board. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// CommentStats bundles the aggregate numbers for one comment as seen by a
// specific viewer.
type CommentStats struct {
	LikeCount     int64
	ResponseCount int64
	IsLikedByUser bool
}

// GetCommentStats returns like/response counts and the viewer's like state
// for commentID in one round trip using correlated subqueries. On error the
// caller is expected to fall back to CountLikes + CountResponses + HasLiked
// run concurrently.
func GetCommentStats(ctx context.Context, db *gorm.DB, commentID, viewerID string) (*CommentStats, error) {
	var row struct {
		LikeCount     int64
		ResponseCount int64
		IsLikedByUser bool
	}
	err := db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM comment_likes     WHERE comment_id = ?) AS like_count,
			(SELECT COUNT(*) FROM comment_responses WHERE comment_id = ?) AS response_count,
			EXISTS(SELECT 1 FROM comment_likes WHERE comment_id = ? AND user_id = ?) AS is_liked_by_user`,
		commentID, commentID, commentID, viewerID,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &CommentStats{
		LikeCount:     row.LikeCount,
		ResponseCount: row.ResponseCount,
		IsLikedByUser: row.IsLikedByUser,
	}, nil
}
