// Package services – FormService
//
// This file implements the FormService, which manages the lifecycle of form
// definitions. It validates titles, field lists, and recipient addresses,
// enforces ownership, and coordinates repository operations. Validation
// failures surface as *ValidationError values carrying a stable code plus the
// i18n key for the user-facing message, so handlers can render both without
// re-deriving them.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/repo"
)

// FormRepo defines the repository contract required by FormService.
type FormRepo interface {
	CreateForm(ctx context.Context, db *gorm.DB, userID string, form domain.Form) (*domain.Form, error)
	ListForms(ctx context.Context, db *gorm.DB, userID string) ([]domain.Form, error)
	GetForm(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Form, error)
	UpdateForm(ctx context.Context, db *gorm.DB, id, userID string, form domain.Form) error
	DeleteForm(ctx context.Context, db *gorm.DB, id, userID string) error
}

// gormFormRepo adapts the free functions in repo to the FormRepo interface.
type gormFormRepo struct{}

func (gormFormRepo) CreateForm(ctx context.Context, db *gorm.DB, userID string, form domain.Form) (*domain.Form, error) {
	return repo.CreateForm(ctx, db, userID, form)
}
func (gormFormRepo) ListForms(ctx context.Context, db *gorm.DB, userID string) ([]domain.Form, error) {
	return repo.ListForms(ctx, db, userID)
}
func (gormFormRepo) GetForm(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Form, error) {
	return repo.GetForm(ctx, db, id, userID)
}
func (gormFormRepo) UpdateForm(ctx context.Context, db *gorm.DB, id, userID string, form domain.Form) error {
	return repo.UpdateForm(ctx, db, id, userID, form)
}
func (gormFormRepo) DeleteForm(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteForm(ctx, db, id, userID)
}

// FormService provides form-level operations: creating, listing, fetching,
// updating, and deleting form definitions. Ownership is enforced at the
// repository layer, so a foreign form is indistinguishable from a missing one.
type FormService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the form repository used by this service.
	Repo FormRepo

	// TitleMaxLen caps form titles by rune length.
	TitleMaxLen int
}

// NewFormService constructs a FormService with default limits.
func NewFormService(db *gorm.DB) *FormService {
	return &FormService{DB: db, Repo: gormFormRepo{}, TitleMaxLen: 100}
}

// emailRE is deliberately loose: one @, no spaces, a dot in the domain.
// The mail provider is the real arbiter of deliverability.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Create validates and persists a new form owned by userID. New forms start
// active.
func (s *FormService) Create(ctx context.Context, userID string, form domain.Form) (*domain.Form, error) {
	if err := s.validate(&form); err != nil {
		return nil, err
	}
	return s.Repo.CreateForm(ctx, s.DB, userID, form)
}

// List returns all forms owned by userID, newest first.
func (s *FormService) List(ctx context.Context, userID string) ([]domain.Form, error) {
	return s.Repo.ListForms(ctx, s.DB, userID)
}

// Get fetches a single form, enforcing ownership. Missing and foreign forms
// both yield ErrFormNotFound.
func (s *FormService) Get(ctx context.Context, userID, formID string) (*domain.Form, error) {
	f, err := s.Repo.GetForm(ctx, s.DB, formID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return f, nil
}

// Update validates the new definition and applies it to an owned form,
// returning the stored result.
func (s *FormService) Update(ctx context.Context, userID, formID string, form domain.Form) (*domain.Form, error) {
	if err := s.validate(&form); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateForm(ctx, s.DB, formID, userID, form); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return s.Repo.GetForm(ctx, s.DB, formID, userID)
}

// Delete removes an owned form along with its submissions (cascading at the
// schema level).
func (s *FormService) Delete(ctx context.Context, userID, formID string) error {
	if err := s.Repo.DeleteForm(ctx, s.DB, formID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFormNotFound
		}
		return err
	}
	return nil
}

// validate normalizes and checks a form definition in place.
func (s *FormService) validate(form *domain.Form) error {
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		return &ValidationError{Code: CodeTitleRequired, Key: "validation.titleRequired"}
	}
	if utf8.RuneCountInString(form.Title) > s.TitleMaxLen {
		return &ValidationError{Code: CodeTitleTooLong, Key: "validation.titleTooLong"}
	}
	if len(form.Fields) == 0 {
		return &ValidationError{Code: CodeFieldsRequired, Key: "validation.fieldsRequired"}
	}
	for _, f := range form.Fields {
		if strings.TrimSpace(f.Label) == "" {
			return &ValidationError{Code: CodeFieldLabelRequired, Key: "validation.fieldLabelRequired"}
		}
		if !f.Type.Valid() {
			return &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
		}
	}
	form.EmailRecipient = strings.TrimSpace(form.EmailRecipient)
	if !emailRE.MatchString(form.EmailRecipient) {
		return &ValidationError{Code: CodeEmailInvalid, Key: "validation.emailInvalid"}
	}
	return nil
}
