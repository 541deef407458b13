// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	"path"

	"github.com/google/uuid"
)

// StorageName turns an untrusted client filename into the name the file
// is kept under on disk. The name is a freshly generated UUIDv4 with the
// original extension (dot included) appended, so two uploads never end up
// under the same path and names can't be guessed or enumerated. Files
// without an extension get none appended.
func StorageName(originalName string) string {
	return uuid.NewString() + path.Ext(originalName)
}
