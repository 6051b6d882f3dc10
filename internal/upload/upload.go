package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"school-directory/internal/infrastructure/storage"
)

// Only image files are accepted; extension and declared content type must
// both match this set.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

var (
	ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, gif)")
	ErrFileTooLarge    = errors.New("image exceeds the maximum allowed size")
)

// Handler validates one optional image per submission and hands the bytes
// to the configured storage backend.
type Handler struct {
	store   storage.ImageStorage
	maxSize int64
}

func NewHandler(store storage.ImageStorage, maxSize int64) *Handler {
	return &Handler{
		store:   store,
		maxSize: maxSize,
	}
}

// Validate checks extension, declared content type and size without
// touching the file contents.
func (h *Handler) Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedType
	}

	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if !allowedContentTypes[contentType] {
		return ErrUnsupportedType
	}

	if fh.Size > h.maxSize {
		return ErrFileTooLarge
	}

	return nil
}

// Store validates the upload, assigns a unique filename and persists the
// file. Returns the reference path recorded on the school record.
func (h *Handler) Store(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if err := h.Validate(fh); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// The size limit is enforced again while reading; the header size is
	// client-declared.
	data, err := io.ReadAll(io.LimitReader(src, h.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(data)) > h.maxSize {
		return "", ErrFileTooLarge
	}

	name := NewImageFilename(fh.Filename)
	ref, err := h.store.Save(ctx, name, data, fh.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("store uploaded file: %w", err)
	}

	return ref, nil
}

// NewImageFilename combines the current timestamp, a random suffix and the
// original extension: school-<unix-ms>-<random>.<ext>. Practically unique,
// no collision check.
func NewImageFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("school-%d-%d%s", time.Now().UnixMilli(), rand.Int64N(1_000_000_000), ext)
}
