package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"letter-extractor/internal/domain"

	"github.com/google/uuid"
)

const fallbackStagingName = "upload"

// LocalStaging writes uploads under root, one fresh directory per upload, so
// concurrent uploads sharing a filename never touch the same path.
type LocalStaging struct {
	root   string
	logger domain.Logger
}

func NewLocalStaging(root string, logger domain.Logger) *LocalStaging {
	return &LocalStaging{
		root:   root,
		logger: logger,
	}
}

// Stage copies doc to <root>/<uuid>/<base name>. On failure nothing is left on disk.
func (s *LocalStaging) Stage(doc *domain.UploadedDocument) (*domain.StagedFile, error) {
	if doc == nil || doc.Content == nil {
		return nil, domain.ErrInvalidFile
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create staging root %s: %w", domain.ErrStaging, s.root, err)
	}

	dir := filepath.Join(s.root, uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create staging dir: %w", domain.ErrStaging, err)
	}

	staged := &domain.StagedFile{
		Dir:  dir,
		Path: filepath.Join(dir, StagingName(doc.Filename)),
	}

	size, err := writeFile(staged.Path, doc.Content)
	if err != nil {
		if rmErr := s.Remove(staged); rmErr != nil {
			s.logger.Warn("Failed to remove partial staging dir", "dir", dir, "error", rmErr)
		}
		return nil, fmt.Errorf("%w: write %s: %w", domain.ErrStaging, staged.Path, err)
	}
	staged.Size = size

	s.logger.Debug("Staged upload", "path", staged.Path, "bytes", size)
	return staged, nil
}

// Remove deletes the staged artifact and its directory. Removing an already
// removed artifact is not an error.
func (s *LocalStaging) Remove(file *domain.StagedFile) error {
	if file == nil {
		return nil
	}
	target := file.Dir
	if target == "" {
		target = file.Path
	}
	if target == "" {
		return nil
	}
	return os.RemoveAll(target)
}

// StagingName reduces a client supplied filename to a safe base name.
func StagingName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return fallbackStagingName
	}
	return name
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
