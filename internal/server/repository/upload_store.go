// Package repository provides the transient upload store: attachments are written to disk
// for the lifetime of one request and deleted exactly once afterwards.
package repository

import (
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/constant"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Recorder receives upload and cleanup events, typically a metrics collector.
type Recorder interface {
	RecordUpload(field string, size int64)
	RecordCleanup(result string)
}

// UploadStore persists incoming attachments under a single directory.
// It tracks every file it wrote so that each one is removed at most once.
type UploadStore struct {
	dir      string              // Directory holding transient files
	maxBytes int64               // Maximum accepted attachment size, 0 disables the check
	recorder Recorder            // Optional event sink
	live     map[string]struct{} // Paths written and not yet deleted
	failed   map[string]struct{} // Paths whose removal failed, left on disk
	mu       sync.Mutex          // Protects live and failed
}

// NewUploadStore creates the upload directory if needed and returns a store writing into it.
// Arguments:
//   - dir: the directory for transient files.
//   - maxBytes: the largest accepted attachment in bytes (0 means unlimited).
//   - recorder: an optional Recorder, may be nil.
//
// Returns a pointer to an UploadStore or an error if the directory cannot be created.
func NewUploadStore(dir string, maxBytes int64, recorder Recorder) (*UploadStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory can't be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &UploadStore{
		dir:      dir,
		maxBytes: maxBytes,
		recorder: recorder,
		live:     make(map[string]struct{}),
		failed:   make(map[string]struct{}),
	}, nil
}

// Save copies the multipart file to a uniquely named transient file.
// The MIME type is taken from the part header; when the client sent none (or a generic
// octet-stream) it is detected from the file content.
// A file above the configured limit is refused with models.ErrUploadTooLarge.
func (s *UploadStore) Save(field string, fh *multipart.FileHeader) (*models.Upload, error) {
	if fh == nil {
		return nil, &models.ClientInputError{Message: "no file provided", Err: models.ErrMissingAttachment}
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, fmt.Errorf("file %s exceeds the %d bytes limit: %w", fh.Filename, s.maxBytes, models.ErrUploadTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, uuid.NewString()+filepath.Ext(sanitizeName(fh.Filename)))
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create transient file: %w", err)
	}
	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write transient file: %w", err)
	}

	mimeType := normalizeMIME(fh.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == constant.MIME_TYPE_OCTET_STREAM {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			logrus.WithError(err).Warnf("failed to detect MIME type of %s", fh.Filename)
			mimeType = constant.MIME_TYPE_OCTET_STREAM
		} else {
			mimeType = normalizeMIME(detected.String())
		}
	}

	s.mu.Lock()
	s.live[path] = struct{}{}
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.RecordUpload(field, size)
	}
	logrus.WithFields(logrus.Fields{
		"field": field,
		"name":  fh.Filename,
		"mime":  mimeType,
		"size":  size,
	}).Debug("upload stored")

	return &models.Upload{
		Field:        field,
		OriginalName: fh.Filename,
		Path:         path,
		MIMEType:     mimeType,
		Size:         size,
	}, nil
}

// Read returns the full content of a stored upload.
func (s *UploadStore) Read(upload *models.Upload) ([]byte, error) {
	if upload == nil {
		return nil, errors.New("upload can't be nil")
	}
	data, err := os.ReadFile(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", upload.OriginalName, err)
	}
	return data, nil
}

// Delete removes the transient file of an upload. Only the first call for a given upload
// touches the filesystem; later calls are no-ops. A file that is already gone or cannot be
// removed is logged and reported, never fatal. Files that could not be removed stay
// counted by Pending.
func (s *UploadStore) Delete(upload *models.Upload) error {
	if upload == nil {
		return nil
	}

	s.mu.Lock()
	_, ok := s.live[upload.Path]
	delete(s.live, upload.Path)
	s.mu.Unlock()
	if !ok {
		logrus.Debugf("upload %s already cleaned up", upload.Path)
		return nil
	}

	err := os.Remove(upload.Path)
	switch {
	case err == nil:
		s.record("deleted")
		return nil
	case errors.Is(err, os.ErrNotExist):
		s.record("missing")
		logrus.WithError(err).Debugf("transient file %s was already absent", upload.Path)
		return nil
	default:
		s.mu.Lock()
		s.failed[upload.Path] = struct{}{}
		s.mu.Unlock()
		s.record("failed")
		logrus.WithError(err).Warnf("failed to delete transient file %s", upload.Path)
		return fmt.Errorf("delete upload %s: %w", upload.OriginalName, err)
	}
}

// Pending returns the number of uploads still on disk: written and not yet deleted,
// or whose deletion failed.
func (s *UploadStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live) + len(s.failed)
}

func (s *UploadStore) record(result string) {
	if s.recorder != nil {
		s.recorder.RecordCleanup(result)
	}
}

func normalizeMIME(v string) string {
	mt, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func sanitizeName(n string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, n)
}
