// Package loader fetches the lodge dataset from its single external
// resource. Sources only parse; they never validate, dedupe or normalize
// records.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"logias/internal/models"
)

// ErrLoad marks a failed fetch or parse. A successful fetch of zero
// records is not an ErrLoad.
var ErrLoad = errors.New("load failed")

// Source fetches the full record set.
type Source interface {
	Fetch(ctx context.Context) ([]models.Logia, error)
	// Describe names the resource for logs.
	Describe() string
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]models.Logia, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]models.Logia, error) { return f(ctx) }

func (f SourceFunc) Describe() string { return "func" }

// loadError wraps ErrLoad; causes passed with %w stay visible to errors.Is.
func loadError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrLoad}, args...)...)
}

// decode reads a JSON array of lodges. A JSON null is zero records. The
// document must end after the array.
func decode(r io.Reader) ([]models.Logia, error) {
	dec := json.NewDecoder(r)
	var logias []models.Logia
	if err := dec.Decode(&logias); err != nil {
		return nil, loadError("decode lodges: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, loadError("decode lodges: trailing data after array")
	}
	if logias == nil {
		logias = []models.Logia{}
	}
	return logias, nil
}
