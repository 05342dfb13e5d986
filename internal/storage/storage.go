// Package storage persists uploaded files on local disk under
// uploads/{category}/{filename}, the same path they are later served
// from.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize caps a single upload.
const MaxFileSize = 5 * 1024 * 1024

// Store writes uploads below a root directory, one subdirectory per
// logical category ("background", "banner", "file", "image").
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Save writes src under category using a sanitized form of filename and
// returns the name the file can be retrieved by. An existing file with
// the same name is overwritten.
func (s *Store) Save(ctx context.Context, category, filename string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := Sanitize(filename)
	if name == "" {
		return "", fmt.Errorf("unusable filename %q", filename)
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	if n > MaxFileSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxFileSize)
	}
	return name, nil
}

// Sanitize strips path components from a client-supplied filename and
// normalizes the rest to a safe character set. Returns "" when nothing
// usable remains.
func Sanitize(filename string) string {
	// Client path separators vary; take the last segment of either kind.
	filename = filename[strings.LastIndexByte(filename, '/')+1:]
	filename = filename[strings.LastIndexByte(filename, '\\')+1:]
	filename = filepath.Base(filename)

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}
