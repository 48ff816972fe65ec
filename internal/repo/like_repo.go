// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for comment likes.
//
// Likes are keyed by (comment_id, user_id) with a unique index enforced by
// the store; the repository surfaces duplicate inserts as ErrDuplicate so the
// service can map a double-click to a conflict instead of a second row.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// CreateLike inserts a like for (commentID, userID). The unique index makes
// the operation effectively idempotent: the first call wins, every later one
// returns ErrDuplicate. A missing parent comment surfaces the foreign-key
// error as ErrNotFound.
func CreateLike(ctx context.Context, db *gorm.DB, commentID, userID string) (*domain.CommentLike, error) {
	l := &domain.CommentLike{
		ID:        uuid.NewString(),
		CommentID: commentID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
			return nil, ErrDuplicate
		case errors.Is(err, gorm.ErrForeignKeyViolated) || isFKViolation(err):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// DeleteLike removes the like keyed by (commentID, userID). Deleting a like
// that does not exist is not an error; unlike is idempotent.
func DeleteLike(ctx context.Context, db *gorm.DB, commentID, userID string) error {
	return db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&domain.CommentLike{}).Error
}

// CountLikes returns the number of likes on commentID.
func CountLikes(ctx context.Context, db *gorm.DB, commentID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&total).Error
	return total, err
}

// HasLiked reports whether userID has liked commentID.
func HasLiked(ctx context.Context, db *gorm.DB, commentID, userID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&total).Error
	return total > 0, err
}

// isUniqueViolation detects unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isFKViolation detects foreign-key violations across drivers.
func isFKViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
