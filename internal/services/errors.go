// Package services defines the business logic for forms, submissions, and the
// comment board. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Form and submission errors.
var (
	// ErrFormNotFound indicates that the requested form does not exist or is
	// not accessible to the current user. Deactivated forms on the public
	// path collapse into the same error so visitors learn nothing extra.
	ErrFormNotFound = errors.New("form not found")

	// ErrStorageUnconfigured is returned when an upload URL is requested but
	// the deployment has no object store credentials.
	ErrStorageUnconfigured = errors.New("file upload storage is not configured")
)

// Comment board errors.
var (
	// ErrCommentNotFound indicates that the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotCommentOwner is returned when a user attempts to modify or delete
	// a comment they did not author.
	ErrNotCommentOwner = errors.New("not the comment owner")

	// ErrAlreadyLiked is returned when a user likes a comment twice.
	ErrAlreadyLiked = errors.New("comment already liked")
)

// ValidationError reports a rejected form definition or submission payload.
// Code is a stable machine-readable identifier and Key the i18n lookup path
// for the user-facing message.
type ValidationError struct {
	Code   string
	Key    string
	Fields []string
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Code }

// Validation codes for form definitions and board comments.
const (
	CodeTitleRequired      = "TITLE_REQUIRED"
	CodeTitleTooLong       = "TITLE_TOO_LONG"
	CodeFieldsRequired     = "FIELDS_REQUIRED"
	CodeFieldLabelRequired = "FIELD_LABEL_REQUIRED"
	CodeEmailInvalid       = "EMAIL_INVALID"
	CodeFieldTypeInvalid   = "FIELD_TYPE_INVALID"
	CodeMissingRequired    = "MISSING_REQUIRED_FIELDS"
	CodeContentTooShort    = "CONTENT_TOO_SHORT"
	CodeContentTooLong     = "CONTENT_TOO_LONG"
)
