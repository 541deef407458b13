// Package validators holds the checks ran against uploads before they
// touch disk or the database
package validators

import (
	"errors"
)

var (
	ErrNoFilename   = errors.New("no filename provided")
	ErrEmptyFile    = errors.New("empty file is not allowed")
	ErrFileTooLarge = errors.New("file too large")
)

// UploadFile checks an upload before any side effect happens. Checks run
// in a fixed order and the first failure wins: missing filename, empty
// content, content over the configured maximum.
func UploadFile(filename string, size, maxSize int64) error {
	if filename == "" {
		return ErrNoFilename
	}

	if size == 0 {
		return ErrEmptyFile
	}

	if size > maxSize {
		return ErrFileTooLarge
	}

	return nil
}
