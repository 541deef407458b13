// Package storage handles the on-disk side of uploads. Every file lives
// directly under a single upload root, named by util.StorageName
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type LocalStore struct {
	root string
}

// NewLocal returns a store rooted at dir, creating the directory first
// if it doesn't exist yet.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s, %w", dir, err)
	}

	return &LocalStore{root: dir}, nil
}

// Save writes content to a new file under the upload root. The create is
// exclusive, so a name collision surfaces as an error instead of
// silently overwriting another upload.
func (s *LocalStore) Save(name string, content []byte) error {
	f, err := os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s, %w", name, err)
	}

	_, err = f.Write(content)
	if err != nil {
		f.Close()
		os.Remove(s.Path(name))
		return fmt.Errorf("failed to write file %s, %w", name, err)
	}

	return f.Close()
}

// Delete removes a stored file. A file that's already gone is not an
// error, the end state is the same.
func (s *LocalStore) Delete(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s, %w", name, err)
	}

	return nil
}

// Exists reports whether a stored file is present on disk
func (s *LocalStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// List returns the names of every file under the upload root
func (s *LocalStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory, %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}

	return names, nil
}

func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.root, name)
}
