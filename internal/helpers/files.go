// Package helpers provides file handling utilities.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// FileCleanup is a resource manager for temporary files
type FileCleanup struct {
	files []string
}

// Add registers a file for cleanup
func (fc *FileCleanup) Add(path string) {
	fc.files = append(fc.files, path)
}

// Cleanup removes all registered files
func (fc *FileCleanup) Cleanup() error {
	var lastErr error
	for _, f := range fc.files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) && lastErr == nil {
			lastErr = err
		}
	}
	return lastErr
}

// NewFileCleanup creates a new FileCleanup manager
func NewFileCleanup() *FileCleanup {
	return &FileCleanup{
		files: make([]string, 0),
	}
}

// WriteFileLocked replaces path with data while holding path+".lock". The data is written to a
// temporary file in the same directory first, so readers never observe a partial file.
func WriteFileLocked(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	cleanup := NewFileCleanup()
	tempFileName := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	cleanup.Add(tempFileName)
	defer func() { _ = cleanup.Cleanup() }()

	if err := os.WriteFile(tempFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFileName, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// VerifyFileNotEmpty checks that a file exists and has content
func VerifyFileNotEmpty(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}

	return nil
}

// GetFileSize returns the size of a file, or -1 if it doesn't exist
func GetFileSize(path string) int64 {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return fileInfo.Size()
}
