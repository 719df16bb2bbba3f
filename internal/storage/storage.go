// Package storage contains object storage abstractions for S3-compatible stores.
// Implementations stream uploads and never touch local disk.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	URL          string
	LastModified time.Time
}

// Storage is a bucket-scoped, S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the anonymous-read URL of key.
	PublicURL(key string) string
}

// IsImage reports whether a content type names an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// objectURL joins base, bucket and key into a path-style object URL.
func objectURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(key, "/")
}
