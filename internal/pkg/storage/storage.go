package storage

import "context"

// FileStorage delivers named byte blobs to the end user. The archive
// pipeline only needs write-and-link semantics; where the files physically
// land (local disk, object store) is an implementation detail.
type FileStorage interface {
	// Save writes data under path and returns a URL the caller can hand
	// to the user.
	Save(ctx context.Context, path string, data []byte, contentType string) (string, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
