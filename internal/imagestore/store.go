// Package imagestore is a filesystem-backed object store for uploaded
// images. Objects are addressed by slash-separated keys such as
// "images/<uuid>.png" and served publicly under a fixed URL prefix.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkordes/travel-planner/internal/domain"
)

// MediaPrefix is the URL path under which objects are served.
const MediaPrefix = "/media/"

// FS stores objects below a root directory.
type FS struct {
	root    string
	baseURL string
}

// New returns a store rooted at dir. baseURL is the externally visible
// origin used to build public URLs, e.g. "http://localhost:8080".
func New(dir, baseURL string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore.New: %w", err)
	}
	return &FS{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FS) resolve(key string) (string, error) {
	clean := path.Clean(key)
	if key == "" || clean != key || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: invalid object key %q", domain.ErrValidation, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Put writes r under key and returns the number of bytes stored. Existing
// objects are never overwritten: a taken key yields domain.ErrConflict.
func (s *FS) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return 0, fmt.Errorf("imagestore.FS.Put: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("imagestore.FS.Put: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("imagestore.FS.Put: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("imagestore.FS.Put: %w: %s exists", domain.ErrConflict, key)
		}
		return 0, fmt.Errorf("imagestore.FS.Put: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("imagestore.FS.Put: write %s: %w", key, err)
	}
	return n, nil
}

// Delete removes the object at key. Missing objects yield domain.ErrNotFound.
func (s *FS) Delete(_ context.Context, key string) error {
	dst, err := s.resolve(key)
	if err != nil {
		return fmt.Errorf("imagestore.FS.Delete: %w", err)
	}
	if err := os.Remove(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("imagestore.FS.Delete: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("imagestore.FS.Delete: %w", err)
	}
	return nil
}

// PublicURL is the address at which Handler serves key.
func (s *FS) PublicURL(key string) string {
	return s.baseURL + MediaPrefix + key
}

// Handler serves stored objects. Mount it at MediaPrefix.
func (s *FS) Handler() http.Handler {
	return http.StripPrefix(MediaPrefix, http.FileServer(noDirFS{http.Dir(s.root)}))
}

// noDirFS hides directory listings.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
