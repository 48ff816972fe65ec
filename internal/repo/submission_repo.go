// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Submission rows.
//
// Submissions are append-only: there is no update path, and deletion only
// happens transitively when the parent form is removed.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

// CreateSubmission inserts one filled-out instance of formID. The submission
// row must be persisted before any email delivery is attempted; callers rely
// on the returned row's ID and CreatedAt for the notification body.
func CreateSubmission(ctx context.Context, db *gorm.DB, formID string, data map[string]any, files []string, ipAddress string) (*domain.Submission, error) {
	s := &domain.Submission{
		ID:        uuid.NewString(),
		FormID:    formID,
		Data:      data,
		Files:     files,
		IPAddress: ipAddress,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubmissions returns all submissions for formID, newest first.
func ListSubmissions(ctx context.Context, db *gorm.DB, formID string) ([]domain.Submission, error) {
	var out []domain.Submission
	err := db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountSubmissions returns the total number of submissions for formID.
func CountSubmissions(ctx context.Context, db *gorm.DB, formID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("form_id = ?", formID).
		Count(&total).Error
	return total, err
}
