// Package storage abstracts the object store that holds form attachments.
// Uploads never pass through the API: clients receive a short-lived signed
// PUT URL and talk to the store directly. The backend only reads objects
// back when relaying a submission by email, and removes them afterwards.
package storage

import (
	"context"
	"time"
)

// SignedUpload is what a client needs to upload one attachment.
type SignedUpload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// ObjectStore is the minimal surface the submission flow needs.
type ObjectStore interface {
	// PresignUpload returns a signed PUT URL for path, valid for the
	// store's configured TTL.
	PresignUpload(ctx context.Context, path string) (*SignedUpload, error)

	// Download fetches the object at path into memory.
	Download(ctx context.Context, path string) ([]byte, error)

	// Remove deletes the object at path. Removing an absent object is
	// not an error.
	Remove(ctx context.Context, path string) error
}

// DefaultUploadTTL bounds how long a signed upload URL stays valid when
// the deployment does not configure one.
const DefaultUploadTTL = 10 * time.Minute
