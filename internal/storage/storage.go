package storage

import (
	"context"
	"io"
)

// PhotoStorage abstracts where equipment photos live. The local
// implementation writes to disk; a cloud backend can replace it without
// touching the services.
type PhotoStorage interface {
	// Save stores the photo under a generated key and returns that key.
	// ext is the file extension including the dot, e.g. ".jpg".
	Save(ctx context.Context, ext string, reader io.Reader) (string, error)

	// Open returns the photo for reading. Callers close the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the photo. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Config holds photo storage configuration
type Config struct {
	Dir string `yaml:"dir"`
}
