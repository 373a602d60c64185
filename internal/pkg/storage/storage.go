package storage

import (
	"context"
	"io"
)

// Progress is a snapshot of an in-flight upload.
type Progress struct {
	BytesTransferred int64 `json:"bytes_transferred"`
	TotalBytes       int64 `json:"total_bytes"`
}

// ProgressFunc receives progress snapshots while an upload streams.
// It is called from the uploading goroutine; implementations must be fast.
type ProgressFunc func(Progress)

// Storage defines the minimal interface for file storage backends.
// Intentionally simple: put a file, delete a file, get its URL.
type Storage interface {
	// Put stores a file under key, reporting progress as bytes stream.
	// onProgress may be nil.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, onProgress ProgressFunc) error

	// Delete removes a file by its key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for a file given its key.
	GetURL(key string) string
}

// Config holds settings shared by storage backends.
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	LocalDir     string
	LocalBaseURL string
}
