package storage

import "io"

// StorageInterface abstracts where car images live. The local implementation
// writes to disk; a cloud backend (S3 etc.) satisfies the same contract.
type StorageInterface interface {
	// Save writes the object under key, replacing any previous content.
	Save(key string, reader io.Reader) error

	// Open returns the object for reading. Callers close the reader.
	Open(key string) (io.ReadCloser, error)

	// URL returns the public URL the object is served from.
	URL(key string) string

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(key string) error
}
