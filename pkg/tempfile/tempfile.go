// Package tempfile manages secret-bearing temporary files. Files are
// created owner-only and removed exactly once; callers can invoke Remove
// from any number of cleanup paths without caring which one runs first.
package tempfile

import (
	"os"

	"github.com/agentstation/vaultsync/pkg/errors"
)

// File is a secret-bearing temporary file.
type File struct {
	f       *os.File
	closed  bool
	removed bool
}

// Create makes a new temporary file in dir following pattern, as
// os.CreateTemp does. The file is created 0600; nothing loosens that for
// its lifetime. An empty dir means the OS default temp directory.
func Create(dir, pattern string) (*File, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	return &File{f: f}, nil
}

// Name returns the file's path.
func (f *File) Name() string {
	return f.f.Name()
}

// Write writes p to the file.
func (f *File) Write(p []byte) (int, error) {
	return f.f.Write(p)
}

// Close closes the underlying handle. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if err := f.f.Close(); err != nil {
		return errors.WrapIO("close", f.f.Name(), err)
	}
	return nil
}

// Remove closes the file if needed and unlinks it. Only the first call
// does work; later calls return nil. A file already gone from disk counts
// as removed.
func (f *File) Remove() error {
	if f.removed {
		return nil
	}
	f.removed = true

	// The unlink is what matters here; a close error on an already
	// flushed handle does not block cleanup.
	_ = f.Close()

	if err := os.Remove(f.f.Name()); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("remove", f.f.Name(), err)
	}
	return nil
}
