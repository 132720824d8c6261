// Package storage holds the files attached to spese. The database only
// keeps the opaque locator a backend returns, so backends can be swapped
// without touching the documento metadata.
package storage

import (
	"errors"
	"io"
)

var (
	ErrInvalidLocator = errors.New("the storage locator is not valid")
	ErrFileNotFound   = errors.New("there is no stored file with this locator")
)

// Backend stores and retrieves file contents addressed by opaque locators.
type Backend interface {
	// Store writes the contents of r under a new locator. The name is
	// only a hint for the backend, the locator is what has to be kept.
	Store(name string, r io.Reader) (string, error)

	// Open returns the contents stored under the locator.
	Open(locator string) (io.ReadCloser, error)

	// Delete removes the contents stored under the locator.
	Delete(locator string) error
}
