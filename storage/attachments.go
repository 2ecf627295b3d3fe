// Package storage keeps uploaded attachments on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mentconnect/domain"
)

// Attachment is a stored upload. Path is relative to the store root and is
// what a message of kind image/file carries as content.
type Attachment struct {
	Path string
	Mime string
	Kind domain.MessageKind
	Size int64
}

type AttachmentStore struct {
	root string
}

func NewAttachmentStore(root string) (*AttachmentStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("attachment root: %w", err)
	}
	return &AttachmentStore{root: root}, nil
}

// Save writes the upload under a generated name, keeping only the original
// extension, and sniffs the MIME type from content rather than trusting the
// client's filename.
func (s *AttachmentStore) Save(conversationID uuid.UUID, originalName string, r io.Reader) (Attachment, error) {
	dir := filepath.Join(s.root, conversationID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Attachment{}, err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	fullPath := filepath.Join(dir, name)
	file, err := os.Create(fullPath)
	if err != nil {
		return Attachment{}, err
	}
	size, err := io.Copy(file, r)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return Attachment{}, err
	}

	mime, err := mimetype.DetectFile(fullPath)
	if err != nil {
		_ = os.Remove(fullPath)
		return Attachment{}, err
	}

	kind := domain.KindFile
	if strings.HasPrefix(mime.String(), "image/") {
		kind = domain.KindImage
	}
	return Attachment{
		Path: filepath.Join(conversationID.String(), name),
		Mime: mime.String(),
		Kind: kind,
		Size: size,
	}, nil
}

// Open returns the stored file for serving. The path must be one previously
// returned by Save.
func (s *AttachmentStore) Open(relPath string) (*os.File, error) {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid attachment path %q", relPath)
	}
	return os.Open(filepath.Join(s.root, clean))
}
