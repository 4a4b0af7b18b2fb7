package stores

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/salecaption/internal/models"
)

// FileSource loads custom stores from a JSON, YAML or TOML document on disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the document.
func (f *FileSource) Load(ctx context.Context) ([]models.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(f.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", f.Path, err)
	}
	stores, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return stores, nil
}

// StaticSource serves stores held in memory, such as definitions entered in a session.
type StaticSource struct {
	Stores []models.Store
}

// Load returns a copy of the held stores.
func (s StaticSource) Load(ctx context.Context) ([]models.Store, error) {
	return cloneStores(s.Stores), nil
}
