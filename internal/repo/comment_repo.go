// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model, including the filtered/sorted listing used by the board.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

// CommentFilter narrows a board listing. Empty (or "all") values mean
// "no constraint" for that dimension.
type CommentFilter struct {
	Category string
	Status   string
	Priority string
	UserID   string
	Sort     string // newest|oldest|priority|status
}

// applyFilter composes the WHERE clauses shared by the listing paths.
func applyFilter(q *gorm.DB, f CommentFilter) *gorm.DB {
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	return q
}

// orderExpr maps a sort name to an ORDER BY expression. Columns are
// table-qualified because the aggregate listing joins likes and responses,
// both of which also carry created_at. Priority sorts by severity rank
// (urgent first) rather than by the raw text column.
func orderExpr(sort string) string {
	switch sort {
	case "oldest":
		return "comments.created_at asc"
	case "priority":
		return "CASE comments.priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, comments.created_at desc"
	case "status":
		return "comments.status asc, comments.created_at desc"
	default: // newest
		return "comments.created_at desc"
	}
}

// CreateComment inserts a new board comment for userID. Status always starts
// as "open" regardless of input.
func CreateComment(ctx context.Context, db *gorm.DB, userID, title, content, category, priority string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Category:  category,
		Priority:  priority,
		Status:    domain.StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by ID, regardless of owner: the board is
// readable by every authenticated user. Missing rows return ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComments returns comments matching f in the requested order, without
// any like/response statistics. This is the plain fallback listing; prefer
// ListCommentsWithStats when the aggregate query is available.
func ListComments(ctx context.Context, db *gorm.DB, f CommentFilter) ([]domain.Comment, error) {
	var out []domain.Comment
	err := applyFilter(db.WithContext(ctx).Model(&domain.Comment{}), f).
		Order(orderExpr(f.Sort)).
		Find(&out).Error
	return out, err
}

// CommentWithStats is a comment row joined with its like/response counts and
// the viewing user's like state.
type CommentWithStats struct {
	domain.Comment
	LikeCount     int64 `json:"like_count"`
	ResponseCount int64 `json:"response_count"`
	IsLikedByUser bool  `json:"is_liked_by_user"`
}

// ListCommentsWithStats returns comments matching f with counts and the
// caller's like state pre-joined in a single query. This is the aggregate
// path; if it errors the service layer falls back to ListComments plus
// per-comment stat queries.
func ListCommentsWithStats(ctx context.Context, db *gorm.DB, f CommentFilter, viewerID string) ([]CommentWithStats, error) {
	var out []CommentWithStats
	q := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select(`comments.*,
			COUNT(DISTINCT comment_likes.id) AS like_count,
			COUNT(DISTINCT comment_responses.id) AS response_count,
			MAX(CASE WHEN comment_likes.user_id = ? THEN 1 ELSE 0 END) = 1 AS is_liked_by_user`, viewerID).
		Joins("LEFT JOIN comment_likes ON comment_likes.comment_id = comments.id").
		Joins("LEFT JOIN comment_responses ON comment_responses.comment_id = comments.id").
		Group("comments.id")
	err := applyFilter(q, f).
		Order(orderExpr(f.Sort)).
		Find(&out).Error
	return out, err
}

// UpdateComment applies the non-nil fields of patch to an existing comment.
// Ownership is checked by the service layer first; this function only
// persists. Returns ErrNotFound if the row vanished in between.
func UpdateComment(ctx context.Context, db *gorm.DB, id string, patch map[string]any) (*domain.Comment, error) {
	patch["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetComment(ctx, db, id)
}

// DeleteComment removes a comment together with its likes and responses.
// The children are deleted explicitly in the same transaction; SQLite only
// honors FK cascades when the pragma is set per connection.
func DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("comment_id = ?", id).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ?", id).Delete(&domain.CommentResponse{}).Error
	})
}
