// Package services – SubmissionService
//
// This file implements the public submission flow: fetch the active form,
// validate required answers, persist the submission, then relay it to the
// form owner by email with any uploaded files attached. Persistence is the
// only hard dependency; a failed attachment download degrades to a mail
// without that attachment, and a failed delivery leaves the submission stored
// and surfaces as a warning, never as a lost answer.
package services

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/email"
	"github.com/skatsaros/go-forms-backend/internal/repo"
	"github.com/skatsaros/go-forms-backend/internal/storage"
)

// SubmitResult reports the outcome of one submission.
type SubmitResult struct {
	SubmissionID string
	// EmailWarning is set when the submission was stored but the
	// notification could not be delivered.
	EmailWarning bool
}

// SubmissionService coordinates the submit pipeline for public form posts.
type SubmissionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store is the object store holding uploaded attachments. May be nil
	// when the deployment has no storage configured.
	Store storage.ObjectStore
	// Mailer delivers the owner notification.
	Mailer email.Sender
	// CleanupTimeout bounds the post-delivery attachment removal pass.
	CleanupTimeout time.Duration
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(db *gorm.DB, store storage.ObjectStore, mailer email.Sender) *SubmissionService {
	return &SubmissionService{DB: db, Store: store, Mailer: mailer, CleanupTimeout: 30 * time.Second}
}

// GetPublicForm returns the form definition shown to anonymous visitors.
// Only active forms are visible on this path; the owner's email settings are
// stripped by the handler's response shape, not here.
func (s *SubmissionService) GetPublicForm(ctx context.Context, formID string) (*domain.Form, error) {
	f, err := repo.GetActiveForm(ctx, s.DB, formID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return f, nil
}

// Submit validates and stores a submission for formID, then relays it.
//
// Order of operations, and what each failure means:
//  1. Load the active form; inactive or unknown forms yield ErrFormNotFound.
//  2. Recompute required fields server-side; a gap yields *ValidationError
//     listing the missing labels. Client-side checks are advisory only.
//  3. Persist the submission. This is the point of no return: any error
//     after it leaves the answer safely stored.
//  4. Download each referenced attachment. A file that cannot be fetched is
//     skipped and the mail notes fewer attachments.
//  5. Deliver the notification. Failure sets EmailWarning on the result.
//  6. After successful delivery, remove the attachments from storage in the
//     background; they have served their purpose.
func (s *SubmissionService) Submit(ctx context.Context, formID string, data map[string]any, files []string, ipAddress, lang string) (*SubmitResult, error) {
	form, err := s.GetPublicForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	if missing := form.MissingRequired(data); len(missing) > 0 {
		return nil, &ValidationError{Code: CodeMissingRequired, Key: "validation.generic", Fields: missing}
	}

	sub, err := repo.CreateSubmission(ctx, s.DB, formID, data, files, ipAddress)
	if err != nil {
		return nil, err
	}

	attachments := s.downloadAttachments(ctx, files)

	subject, html, err := email.Compose(form, data, files, lang)
	if err == nil {
		err = s.Mailer.Send(ctx, email.Message{
			To:          form.EmailRecipient,
			Subject:     subject,
			HTML:        html,
			Attachments: attachments,
			Lang:        lang,
		})
	}
	if err != nil {
		log.Warn().Err(err).Str("form_id", formID).Str("submission_id", sub.ID).
			Msg("submission stored but notification failed")
		return &SubmitResult{SubmissionID: sub.ID, EmailWarning: true}, nil
	}

	s.cleanupAttachments(files)
	return &SubmitResult{SubmissionID: sub.ID}, nil
}

// ListSubmissions returns the stored submissions for an owned form.
func (s *SubmissionService) ListSubmissions(ctx context.Context, userID, formID string) ([]domain.Submission, error) {
	// Ownership gate first; listing is owner-only.
	if _, err := repo.GetForm(ctx, s.DB, formID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return repo.ListSubmissions(ctx, s.DB, formID)
}

// downloadAttachments fetches each referenced object. Unfetchable files are
// logged and skipped so one broken reference cannot block the relay.
func (s *SubmissionService) downloadAttachments(ctx context.Context, files []string) []email.Attachment {
	if s.Store == nil || len(files) == 0 {
		return nil
	}
	out := make([]email.Attachment, 0, len(files))
	for _, p := range files {
		if !storage.ValidObjectPath(p) {
			log.Warn().Str("path", p).Msg("skipping attachment outside upload prefix")
			continue
		}
		content, err := s.Store.Download(ctx, p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skipping unfetchable attachment")
			continue
		}
		out = append(out, email.Attachment{Filename: attachmentName(p), Content: content})
	}
	return out
}

// cleanupAttachments removes delivered files from storage. Runs detached
// from the request so a slow store cannot delay the response.
func (s *SubmissionService) cleanupAttachments(files []string) {
	if s.Store == nil || len(files) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.CleanupTimeout)
		defer cancel()
		for _, p := range files {
			if !storage.ValidObjectPath(p) {
				continue
			}
			if err := s.Store.Remove(ctx, p); err != nil {
				log.Warn().Err(err).Str("path", p).Msg("attachment cleanup failed")
			}
		}
	}()
}

// attachmentName recovers the client-facing filename from an object key of
// the form form-attachments/{ts}_{token}_{name}.
func attachmentName(objectPath string) string {
	base := path.Base(objectPath)
	seen := 0
	for i, r := range base {
		if r == '_' {
			seen++
			if seen == 2 {
				return base[i+1:]
			}
		}
	}
	return base
}
