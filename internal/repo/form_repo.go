// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Form model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - Ownership is part of the query itself (id = ? AND user_id = ?), so a
//     form that exists but belongs to someone else is indistinguishable from
//     a missing one: both return ErrNotFound. The HTTP layer relies on this
//     to avoid leaking form existence to non-owners.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateForm inserts a new Form row owned by userID. The form ID is a
// randomly generated UUID (string), and the form starts active.
func CreateForm(ctx context.Context, db *gorm.DB, userID string, f domain.Form) (*domain.Form, error) {
	f.ID = uuid.NewString()
	f.UserID = userID
	f.IsActive = true
	f.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// ListForms returns all forms belonging to userID, ordered by creation time
// descending (most recent first). It returns an empty slice if the user has
// no forms.
func ListForms(ctx context.Context, db *gorm.DB, userID string) ([]domain.Form, error) {
	var out []domain.Form
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetForm fetches a single form by its ID and owner (userID). If the record
// does not exist or is owned by someone else, it returns ErrNotFound.
func GetForm(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Form, error) {
	var f domain.Form
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetActiveForm fetches a form by ID regardless of owner, but only when it is
// active. Used by the public submission path, where the caller is anonymous.
// Inactive and missing forms both return ErrNotFound.
func GetActiveForm(ctx context.Context, db *gorm.DB, id string) (*domain.Form, error) {
	var f domain.Form
	err := db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateForm overwrites the editable attributes of a form identified by id
// and owned by userID. If no rows are affected (form missing or not owned),
// it returns ErrNotFound.
func UpdateForm(ctx context.Context, db *gorm.DB, id, userID string, f domain.Form) error {
	res := db.WithContext(ctx).
		Model(&domain.Form{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"title":           f.Title,
			"description":     f.Description,
			"fields":          f.Fields,
			"email_recipient": f.EmailRecipient,
			"email_subject":   f.EmailSubject,
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForm hard-deletes a form identified by id and owned by userID,
// together with its submissions. Returns ErrNotFound when nothing was
// deleted. Submissions are removed explicitly rather than via the FK
// cascade, which SQLite only honors when the pragma is set per connection.
func DeleteForm(ctx context.Context, db *gorm.DB, id, userID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Form{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("form_id = ?", id).Delete(&domain.Submission{}).Error
	})
}
