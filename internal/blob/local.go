package blob

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jatinm79/Real-Estate-App/internal/adapters/observability"
)

// Local writes uploads under dir and returns site-relative URLs
// (/uploads/<category>/<name>) served by the static file handler.
type Local struct{ dir string }

func NewLocal(dir string) *Local {
	if dir == "" {
		dir = "uploads"
	}
	return &Local{dir: dir}
}

func (l *Local) Store(ctx context.Context, data []byte, category string) (string, error) {
	target := filepath.Join(l.dir, filepath.FromSlash(category))
	if err := os.MkdirAll(target, 0o755); err != nil {
		observability.ObserveBlob("local", "store", "error")
		return "", fmt.Errorf("local storage: %w", err)
	}

	name := uuid.NewString() + extFor(data)
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		observability.ObserveBlob("local", "store", "error")
		return "", fmt.Errorf("local storage: %w", err)
	}
	observability.ObserveBlob("local", "store", "ok")
	return path.Join("/uploads", category, name), nil
}

// Remove deletes by the relative URL returned from Store. A missing file
// is not an error: deletes are idempotent.
func (l *Local) Remove(ctx context.Context, ref string) error {
	rel := strings.TrimPrefix(ref, "/uploads/")
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("local storage: refusing to delete %q", ref)
	}
	err := os.Remove(filepath.Join(l.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		observability.ObserveBlob("local", "remove", "error")
		return fmt.Errorf("local storage: %w", err)
	}
	observability.ObserveBlob("local", "remove", "ok")
	return nil
}

func extFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".jpg"
}
