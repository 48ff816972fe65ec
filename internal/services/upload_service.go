// Package services – UploadService
//
// Clients never stream file bytes through the API. They ask this service for
// a short-lived signed PUT URL, upload directly to the object store, and pass
// the resulting storage path along with the submission payload.
package services

import (
	"context"

	"github.com/skatsaros/go-forms-backend/internal/storage"
)

// UploadService issues signed upload URLs for form attachments.
type UploadService struct {
	// Store is nil when the deployment has no object store configured; in
	// that state every request yields ErrStorageUnconfigured.
	Store storage.ObjectStore
}

// NewUploadService constructs an UploadService. store may be nil.
func NewUploadService(store storage.ObjectStore) *UploadService {
	return &UploadService{Store: store}
}

// PresignUpload sanitizes filename, derives a collision-free object path,
// and returns a signed PUT URL for it.
func (s *UploadService) PresignUpload(ctx context.Context, filename string) (*storage.SignedUpload, error) {
	if s.Store == nil {
		return nil, ErrStorageUnconfigured
	}
	objectPath, err := storage.ObjectPath(filename)
	if err != nil {
		return nil, err
	}
	return s.Store.PresignUpload(ctx, objectPath)
}
