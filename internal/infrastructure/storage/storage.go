package storage

import "context"

// ImageStorage persists validated upload bytes and returns the reference
// stored on the record and used by clients to fetch the image back.
type ImageStorage interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}
