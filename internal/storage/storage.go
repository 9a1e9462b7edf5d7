// Package storage provides the pluggable blob-storage strategy for uploaded
// attachments. The backend is selected once at startup; the handler only sees
// the BlobStore interface.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// BlobRef references stored content: either the bytes themselves (inline
// strategy, co-located with the record) or a path in an external backend.
type BlobRef struct {
	Inline []byte
	Path   string
}

// BlobStore abstracts where attachment content lives.
type BlobStore interface {
	// Put stores the content read from r under key and returns a reference.
	Put(ctx context.Context, key string, r io.Reader, size int64) (BlobRef, error)

	// Get retrieves the full content for a previously returned reference.
	Get(ctx context.Context, ref BlobRef) ([]byte, error)

	// Delete removes stored content. Used to roll back blobs when the record
	// insert fails, so no partial submission survives.
	Delete(ctx context.Context, ref BlobRef) error
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips path separators and unsafe characters from an
// uploaded filename before it is used in a storage key.
func SanitizeFilename(name string) string {
	if idx := strings.LastIndexAny(name, `/\`); idx != -1 {
		name = name[idx+1:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "file"
	}
	return name
}

// InlineStore keeps attachment bytes in memory so they can be embedded
// directly in the submission record.
type InlineStore struct{}

// NewInlineStore creates an inline blob store.
func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

// Put buffers the content; the reference carries the bytes themselves.
func (s *InlineStore) Put(ctx context.Context, key string, r io.Reader, size int64) (BlobRef, error) {
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return BlobRef{}, fmt.Errorf("failed to buffer content: %w", err)
	}
	return BlobRef{Inline: buf.Bytes()}, nil
}

// Get returns the inline bytes.
func (s *InlineStore) Get(ctx context.Context, ref BlobRef) ([]byte, error) {
	if ref.Inline == nil {
		return nil, fmt.Errorf("reference carries no inline content")
	}
	return ref.Inline, nil
}

// Delete is a no-op: inline content lives and dies with the record.
func (s *InlineStore) Delete(ctx context.Context, ref BlobRef) error {
	return nil
}
