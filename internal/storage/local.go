// Package storage persists uploaded media attachments on the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"homiee/internal/models"
	"homiee/internal/observability"
)

// Attachment describes a stored media file.
type Attachment struct {
	// URL is the public path clients use to fetch the file.
	URL string
	// Path is the filesystem location, used for compensating deletes.
	Path string
	// Name is the original client-provided filename.
	Name string
	// MimeType is the client-reported content type.
	MimeType string
	Size     int64
}

// Store saves and removes media attachments.
type Store interface {
	Save(field, filename, contentType string, data []byte) (*Attachment, error)
	Remove(att *Attachment)
}

// LocalStore writes attachments under a base directory served at /uploads.
type LocalStore struct {
	baseDir  string
	maxBytes int64
}

// NewLocalStore creates the base directory if needed and returns the store.
func NewLocalStore(baseDir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir, maxBytes: maxBytes}, nil
}

// Save writes the attachment to disk under a collision-free name and returns
// its public URL and filesystem path. Oversized payloads are rejected.
func (s *LocalStore) Save(field, filename, contentType string, data []byte) (*Attachment, error) {
	if int64(len(data)) > s.maxBytes {
		observability.UploadRejectionsTotal.Inc()
		return nil, models.NewUploadError(
			fmt.Sprintf("file exceeds the maximum allowed size of %d bytes", s.maxBytes), nil)
	}

	ext := filepath.Ext(filename)
	// Sanitize: only keep a short plain extension, drop anything suspicious.
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}

	stored := fmt.Sprintf("%s-%s%s", field, uuid.NewString(), ext)
	path := filepath.Join(s.baseDir, stored)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, models.NewUploadError("failed to store file", err)
	}

	observability.RecordUpload(field, int64(len(data)))

	return &Attachment{
		URL:      "/uploads/" + stored,
		Path:     path,
		Name:     filename,
		MimeType: contentType,
		Size:     int64(len(data)),
	}, nil
}

// Remove deletes a previously stored attachment. Used to compensate when a
// database write fails after the file has already been persisted.
func (s *LocalStore) Remove(att *Attachment) {
	if att == nil || att.Path == "" {
		return
	}
	_ = os.Remove(att.Path)
}

// BaseDir returns the directory attachments are written to.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}
