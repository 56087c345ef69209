package storage

import (
	"VyapaarAI/pkg/utils"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	UploadDir       = "uploaded_images"
	ProcessedDir    = "processed_images"
	ProcessedPrefix = "processed_"
)

type IStorage interface {
	Root() string
	EnsureDirs() error
	NewUploadName(originalFilename string) string
	SaveUpload(name string, src io.Reader) (string, error)
	OpenUpload(name string) (*os.File, error)
	SaveAnnotated(name string, img image.Image) (string, error)
	AnnotatedPath(relPath string) string
	OpenAnnotated(relPath string) (*os.File, error)
	Sweep(olderThan time.Duration) (int, error)
}

type localStorage struct {
	root  string
	utils utils.IUtils
	log   *logrus.Logger
}

func New(root string, u utils.IUtils, log *logrus.Logger) IStorage {
	return &localStorage{
		root:  root,
		utils: u,
		log:   log,
	}
}

func (s *localStorage) Root() string {
	return s.root
}

func (s *localStorage) EnsureDirs() error {
	for _, dir := range []string{UploadDir, ProcessedDir} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (s *localStorage) NewUploadName(originalFilename string) string {
	return s.utils.NewFileToken() + utils.Ext(originalFilename)
}

func (s *localStorage) SaveUpload(name string, src io.Reader) (string, error) {
	p := filepath.Join(s.root, UploadDir, name)

	dst, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return p, nil
}

func (s *localStorage) OpenUpload(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.root, UploadDir, name))
}

// SaveAnnotated writes processed_<name> and returns its path relative to the
// static root, using forward slashes so it can be appended to the /static URL.
// Uploads whose format has no encoder are written as JPEG under a .jpg name.
func (s *localStorage) SaveAnnotated(name string, img image.Image) (string, error) {
	ext := utils.Ext(name)
	fileName := ProcessedPrefix + strings.TrimSuffix(name, ext) + utils.EncodedExt(ext)
	p := filepath.Join(s.root, ProcessedDir, fileName)

	dst, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create annotated file: %w", err)
	}

	if err := s.utils.EncodeImage(dst, img, ext); err != nil {
		dst.Close()
		return "", fmt.Errorf("encode annotated image: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close annotated file: %w", err)
	}

	return path.Join(ProcessedDir, fileName), nil
}

func (s *localStorage) AnnotatedPath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

func (s *localStorage) OpenAnnotated(relPath string) (*os.File, error) {
	return os.Open(s.AnnotatedPath(relPath))
}

// Sweep removes stored images whose modification time is older than olderThan.
func (s *localStorage) Sweep(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	var errs []error

	for _, dir := range []string{UploadDir, ProcessedDir} {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(s.root, dir, entry.Name())); err != nil {
				errs = append(errs, err)
				continue
			}
			removed++
		}
	}

	return removed, errors.Join(errs...)
}

// Janitor sweeps on every tick until ctx is done. A zero retention disables it.
func Janitor(ctx context.Context, s IStorage, log *logrus.Logger, every, retention time.Duration) {
	if retention <= 0 || every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(retention)
			if err != nil {
				log.WithFields(logrus.Fields{
					"error":   err.Error(),
					"removed": removed,
				}).Warn("Image sweep finished with errors")
				continue
			}
			if removed > 0 {
				log.WithField("removed", removed).Info("Expired images removed")
			}
		}
	}
}
