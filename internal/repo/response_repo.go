// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for comment
// responses (threaded replies). Responses are append-only: create and list.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

// CreateResponse appends a reply to commentID authored by userID.
func CreateResponse(ctx context.Context, db *gorm.DB, commentID, userID, content string) (*domain.CommentResponse, error) {
	r := &domain.CommentResponse{
		ID:        uuid.NewString(),
		CommentID: commentID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListResponses returns all replies to commentID ordered by creation time
// ascending, so a thread reads top to bottom.
func ListResponses(ctx context.Context, db *gorm.DB, commentID string) ([]domain.CommentResponse, error) {
	var out []domain.CommentResponse
	err := db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// CountResponses returns the number of replies on commentID.
func CountResponses(ctx context.Context, db *gorm.DB, commentID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.CommentResponse{}).
		Where("comment_id = ?", commentID).
		Count(&total).Error
	return total, err
}
