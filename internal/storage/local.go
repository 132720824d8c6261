package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores files in a directory on the local filesystem. Every stored
// file gets its own random subdirectory so that file names never collide.
type Local struct {
	dir string
}

// NewLocal initializes the storage directory and returns a backend
// writing into it.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to initialize storage directory: %w", err)
	}

	return &Local{dir: dir}, nil
}

func (l *Local) Store(name string, r io.Reader) (string, error) {
	// Strip any path a client might have put into the file name
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		name = "file"
	}

	locator := path.Join(uuid.NewString(), name)

	if err := os.MkdirAll(filepath.Dir(l.path(locator)), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(l.path(locator))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return locator, nil
}

func (l *Local) Open(locator string) (io.ReadCloser, error) {
	if err := validateLocator(locator); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(locator))
	if os.IsNotExist(err) {
		return nil, ErrFileNotFound
	}

	return f, err
}

func (l *Local) Delete(locator string) error {
	if err := validateLocator(locator); err != nil {
		return err
	}

	err := os.Remove(l.path(locator))
	if os.IsNotExist(err) {
		return ErrFileNotFound
	}
	if err != nil {
		return err
	}

	// The per-file directory is empty now, removing it is best effort
	_ = os.Remove(filepath.Dir(l.path(locator)))

	return nil
}

func (l *Local) path(locator string) string {
	return filepath.Join(l.dir, filepath.FromSlash(locator))
}

// validateLocator rejects locators that could escape the storage
// directory.
func validateLocator(locator string) error {
	if locator == "" || path.IsAbs(locator) || path.Clean(locator) != locator || strings.Contains(locator, "..") {
		return ErrInvalidLocator
	}

	return nil
}
