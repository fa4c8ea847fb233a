package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"realty-backend/internal/pkg/validation"

	"github.com/google/uuid"
)

var (
	ErrPropertyIDRequired = errors.New("Property ID is required")
	ErrFileRequired       = errors.New("File not found or incorrect format")
	ErrNotImage           = errors.New("Only image files are allowed")
	ErrFileTooLarge       = errors.New("File is too large")
)

// ImageSetter records the image of a property.
type ImageSetter interface {
	SetImageURL(ctx context.Context, id uuid.UUID, url string) error
}

// Service stores property images and links them to their property.
type Service struct {
	Storage    Storage
	Properties ImageSetter
	MaxBytes   int64
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey is where an image for propertyID is stored. The timestamp
// prefix keeps re-uploads of the same file name from overwriting each other.
func ObjectKey(propertyID uuid.UUID, filename string, now time.Time) string {
	name := unsafeChars.ReplaceAllString(filepath.Base(filename), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s/%d-%s", propertyID, now.UnixMilli(), name)
}

// UploadPropertyImage validates and stores fh, then points the property at
// it. Returns the public path of the image.
func (s *Service) UploadPropertyImage(ctx context.Context, propertyID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if propertyID == uuid.Nil {
		return "", ErrPropertyIDRequired
	}
	if fh == nil || fh.Filename == "" {
		return "", ErrFileRequired
	}
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", ErrFileTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if !validation.IsImage(contentType, fh.Filename) {
		return "", ErrNotImage
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.MaxBytes > 0 {
		r = io.LimitReader(f, s.MaxBytes)
	}
	url, err := s.Storage.Put(ctx, ObjectKey(propertyID, fh.Filename, time.Now()), contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Properties.SetImageURL(ctx, propertyID, url); err != nil {
		return "", err
	}
	return url, nil
}
