// Package handlers provides HTTP handler implementations for the public API.
//
// This file declares the service contracts the handlers depend on and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate input, delegate to application services, and translate service
// errors into HTTP results. Keeping the dependencies as small interfaces
// lets tests exercise each endpoint against stubs.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/auth"
	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/repo"
	"github.com/skatsaros/go-forms-backend/internal/services"
	"github.com/skatsaros/go-forms-backend/internal/storage"
)

// FormService defines form definition operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FormService interface {
	// Create validates and stores a new form owned by userID.
	Create(ctx context.Context, userID string, form domain.Form) (*domain.Form, error)
	// List returns all forms owned by userID, newest first.
	List(ctx context.Context, userID string) ([]domain.Form, error)
	// Get fetches one owned form.
	Get(ctx context.Context, userID, formID string) (*domain.Form, error)
	// Update replaces an owned form's definition.
	Update(ctx context.Context, userID, formID string, form domain.Form) (*domain.Form, error)
	// Delete removes an owned form and its submissions.
	Delete(ctx context.Context, userID, formID string) error
}

// SubmissionService defines the public submission flow.
type SubmissionService interface {
	// GetPublicForm returns an active form as shown to anonymous visitors.
	GetPublicForm(ctx context.Context, formID string) (*domain.Form, error)
	// Submit validates, stores, and relays one submission.
	Submit(ctx context.Context, formID string, data map[string]any, files []string, ipAddress, lang string) (*services.SubmitResult, error)
	// ListSubmissions returns stored submissions for an owned form.
	ListSubmissions(ctx context.Context, userID, formID string) ([]domain.Submission, error)
}

// UploadService issues signed upload URLs for attachments.
type UploadService interface {
	PresignUpload(ctx context.Context, filename string) (*storage.SignedUpload, error)
}

// CommentService defines the community board operations.
type CommentService interface {
	Create(ctx context.Context, userID string, in services.CommentInput) (*domain.Comment, error)
	List(ctx context.Context, f repo.CommentFilter, viewerID string) ([]repo.CommentWithStats, error)
	Get(ctx context.Context, commentID, viewerID string) (*repo.CommentWithStats, error)
	Update(ctx context.Context, userID, commentID string, in services.CommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, userID, commentID string) error
	Like(ctx context.Context, userID, commentID string) error
	Unlike(ctx context.Context, userID, commentID string) error
	Respond(ctx context.Context, userID, commentID, content string) (*domain.CommentResponse, error)
	ListResponses(ctx context.Context, commentID string) ([]domain.CommentResponse, error)
}

//
// Handler wiring
//

// Handlers bundles all endpoint implementations with their dependencies.
type Handlers struct {
	formSvc    FormService
	subSvc     SubmissionService
	uploadSvc  UploadService
	commentSvc CommentService
	provider   auth.Provider

	// appBaseURL is the public origin the QR codes and share links point at.
	appBaseURL string
}

// New constructs and returns a Handlers instance bound to the given services.
func New(formSvc FormService, subSvc SubmissionService, uploadSvc UploadService, commentSvc CommentService, provider auth.Provider, appBaseURL string) *Handlers {
	return &Handlers{
		formSvc:    formSvc,
		subSvc:     subSvc,
		uploadSvc:  uploadSvc,
		commentSvc: commentSvc,
		provider:   provider,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// userID extracts the authenticated user id from Gin context (set by the auth
// middleware). If absent, it falls back to the "X-User-ID" header (tests use
// it). It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}
