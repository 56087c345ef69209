package utils

import (
	"crypto/rand"
	"errors"
	"image"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrFileTooLarge = errors.New("file size exceeds limit")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewFileToken() string
	ValidateImage(contentType string, size int64) error
	DecodeImage(r io.Reader, contentType string) (image.Image, error)
	EncodeImage(w io.Writer, img image.Image, ext string) error
}

type utils struct {
	maxFileSize int64
}

// New returns utils without an upload size cap; the HTTP body limit bounds uploads.
func New() IUtils {
	return &utils{}
}

// NewWithMaxFileSize caps uploads at maxFileSize bytes; zero or less means no cap.
func NewWithMaxFileSize(maxFileSize int64) IUtils {
	return &utils{
		maxFileSize: maxFileSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewFileToken returns 32 lowercase hex characters from a random UUID.
func (u *utils) NewFileToken() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")
}

// ValidateImage checks the declared content type of an upload part and its size.
func (u *utils) ValidateImage(contentType string, size int64) error {
	if !isImageContentType(contentType) {
		return ErrNotAnImage
	}

	if u.maxFileSize > 0 && size > u.maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}

func isImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
