package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterDocument = "# Untitled\n\nStart writing.\n"

// FileStore handles markdown file persistence
type FileStore struct {
	FilePath string
}

// NewFileStore creates a new store for the given file path
func NewFileStore(filePath string) *FileStore {
	return &FileStore{
		FilePath: filePath,
	}
}

// Load reads the markdown document. A missing file yields a starter
// document instead of an error.
func (s *FileStore) Load() (string, error) {
	if s.FilePath == "" {
		return starterDocument, nil
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return starterDocument, nil
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// Save writes the markdown document to disk
func (s *FileStore) Save(markdown string) error {
	if s.FilePath == "" {
		return fmt.Errorf("no file path set")
	}

	// Ensure directory exists
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(s.FilePath, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists
func (s *FileStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
