package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/gsc-identity/internal/logger"
)

// localFileStorage keeps artifacts under a root directory. References are
// slash-separated paths relative to the root; they can never resolve
// outside of it.
type localFileStorage struct {
	root   string
	logger *logger.Logger
}

func NewLocalFileStorage(root string, logger *logger.Logger) FileStorage {
	logger.Debug().Str("root", root).Msg("creating local file storage")
	return &localFileStorage{
		root:   root,
		logger: logger,
	}
}

func (s *localFileStorage) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(ref)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("error deleting artifact %q: %w", ref, err)
}

func (s *localFileStorage) resolve(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", ErrInvalidArtifactRef
	}

	cleaned := filepath.Clean("/" + filepath.FromSlash(trimmed))
	if cleaned == string(filepath.Separator) {
		return "", ErrInvalidArtifactRef
	}

	return filepath.Join(s.root, cleaned), nil
}
