package service

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"menucup/internal/storage"
)

// Upload is an image received from a client.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

func (u Upload) validate() error {
	if u.Reader == nil {
		return ErrReaderNil
	}
	if !storage.IsImage(u.ContentType) {
		return invalid("content type %q is not an image", u.ContentType)
	}
	return nil
}

// objectKey builds "{dir}/{prefix}{uuid}{ext}" keeping the client's extension.
func objectKey(dir, prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return dir + "/" + prefix + uuid.New().String() + ext
}
