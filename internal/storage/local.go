package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore stores attachment blobs on the local filesystem under a base
// upload directory.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a disk-backed blob store rooted at basePath.
func NewLocalStore(basePath string) *LocalStore {
	_ = os.MkdirAll(basePath, 0755)
	return &LocalStore{basePath: basePath}
}

// containedPath resolves the full path and verifies it stays within basePath.
// Returns an error if the path escapes the storage directory.
func (s *LocalStore) containedPath(path string) (string, error) {
	fullPath := filepath.Join(s.basePath, path)
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve full path: %w", err)
	}
	if !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) && absFull != absBase {
		return "", fmt.Errorf("path traversal detected")
	}
	return absFull, nil
}

// Put writes the content to a file at key relative to the base directory.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64) (BlobRef, error) {
	fullPath, err := s.containedPath(key)
	if err != nil {
		return BlobRef{}, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return BlobRef{}, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return BlobRef{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return BlobRef{}, fmt.Errorf("failed to write file: %w", err)
	}
	return BlobRef{Path: key}, nil
}

// Get reads back the full content of a stored file.
func (s *LocalStore) Get(ctx context.Context, ref BlobRef) ([]byte, error) {
	fullPath, err := s.containedPath(ref.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalStore) Delete(ctx context.Context, ref BlobRef) error {
	fullPath, err := s.containedPath(ref.Path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
