package infrastructure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSaver writes payloads into a local save directory. It stands in for
// the presentation layer's save mechanism (browser download or equivalent).
type FileSaver struct {
	dir string
}

// NewFileSaver creates a saver rooted at dir
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

// Save implements domain.Saver
func (s *FileSaver) Save(filename string, payload io.Reader) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create save directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(file, payload)
	if err != nil {
		file.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write payload: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize file: %w", err)
	}
	return path, size, nil
}
