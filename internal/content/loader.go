package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"totem-quiz-bot/internal/domain"
)

// FileLoader reads a YAML catalog from disk, or the embedded one when no path is set.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) LoadCatalog(_ context.Context) (*domain.Catalog, error) {
	if l.path == "" {
		return Default()
	}
	raw, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}
