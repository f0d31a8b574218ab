package loader

import (
	"context"
	"os"

	"logias/internal/models"
)

// FileSource reads the dataset document from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Describe() string { return s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]models.Logia, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError("read %s: %w", s.path, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, loadError("open %s: %w", s.path, err)
	}
	defer f.Close()
	return decode(f)
}
