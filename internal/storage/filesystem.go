package storage

import (
	"fmt"
	"os"
)

// Filesystem keeps every file inside its root directory; names that
// traverse outside it are rejected by os.Root.
type Filesystem struct {
	root *os.Root
}

func newFiles(dir string) (*Filesystem, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open output directory: %w", err)
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Close() error {
	return f.root.Close()
}

func (f *Filesystem) Open(name string) (File, error) {
	return f.root.Open(name)
}

func (f *Filesystem) Create(name string) (File, error) {
	return f.root.Create(name)
}

func (f *Filesystem) Remove(name string) error {
	return f.root.Remove(name)
}
