package static

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/benbjohnson/hashfs"
)

// HashFSResolver serves names through hashfs, so a file that exists in the
// static directories resolves to its content-hashed name
// (app.css -> app-<sha256>.css). Unknown files keep their name.
type HashFSResolver struct {
	BaseURL string
	FS      *hashfs.FS
}

// Ensure HashFSResolver implements URLResolver
var _ URLResolver = (*HashFSResolver)(nil)

// NewHashFSResolver wraps fsys in a hashfs.FS
func NewHashFSResolver(baseURL string, fsys fs.FS) *HashFSResolver {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &HashFSResolver{
		BaseURL: baseURL,
		FS:      hashfs.NewFS(fsys),
	}
}

// URL returns BaseURL + the hashed name
func (r *HashFSResolver) URL(name string) (string, error) {
	return join(r.BaseURL, r.FS.HashName(strings.TrimLeft(name, "/"))), nil
}

// Dirs layers several directories into one fs.FS. Open tries each
// directory in order and returns the first hit.
type Dirs []string

// Ensure Dirs implements fs.FS
var _ fs.FS = Dirs(nil)

// Open opens name from the first directory that has it
func (d Dirs) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, dir := range d {
		f, err := os.DirFS(dir).Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
