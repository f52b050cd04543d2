package static

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const DefaultDocument = "/index.html"

var ErrNotFound = errors.New("file not found")

type File struct {
	ContentType string
	Bytes       []byte
}

// Resolver serves files strictly from beneath a document root. It is safe
// for concurrent use.
type Resolver struct {
	root *os.Root
	dir  string
}

func NewResolver(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("couldn't resolve document root %s: %w", dir, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("couldn't open document root %s: %w", abs, err)
	}

	return &Resolver{root: root, dir: abs}, nil
}

func (r *Resolver) Dir() string {
	return r.dir
}

func (r *Resolver) Close() error {
	return r.root.Close()
}

// relativeName maps a request target onto a slash separated name relative to the root.
// ok is false when the target climbs above the root.
func relativeName(target string) (name string, ok bool) {
	if target == "/" {
		target = DefaultDocument
	}

	cleaned := path.Clean(strings.TrimLeft(target, "/"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}

	return cleaned, true
}

// Resolve returns ErrNotFound when the target is missing, not a regular file,
// or would land outside the document root. Any other error is an I/O failure.
func (r *Resolver) Resolve(target string) (*File, error) {
	rel, ok := relativeName(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is outside the document root", ErrNotFound, target)
	}
	name := filepath.FromSlash(rel)

	// symlinks pointing outside the root fail here as well
	info, err := r.root.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, target)
	}

	f, err := r.root.Open(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", target, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", target, err)
	}

	return &File{
		ContentType: ContentType(name),
		Bytes:       data,
	}, nil
}
