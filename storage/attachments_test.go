package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain"
)

// Smallest valid PNG header; enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func Test_Save_Detects_Image(t *testing.T) {
	req := require.New(t)
	store, err := NewAttachmentStore(t.TempDir())
	req.NoError(err)

	conversationID := uuid.New()
	attachment, err := store.Save(conversationID, "screenshot.png", bytes.NewReader(pngBytes))
	req.NoError(err)
	req.Equal(domain.KindImage, attachment.Kind)
	req.Equal("image/png", attachment.Mime)
	req.Equal(int64(len(pngBytes)), attachment.Size)
	req.True(strings.HasPrefix(attachment.Path, conversationID.String()))
	req.True(strings.HasSuffix(attachment.Path, ".png"))
}

func Test_Save_Plain_File(t *testing.T) {
	req := require.New(t)
	store, err := NewAttachmentStore(t.TempDir())
	req.NoError(err)

	attachment, err := store.Save(uuid.New(), "notes.txt", strings.NewReader("plain notes"))
	req.NoError(err)
	req.Equal(domain.KindFile, attachment.Kind)
}

func Test_Open_RoundTrip(t *testing.T) {
	req := require.New(t)
	store, err := NewAttachmentStore(t.TempDir())
	req.NoError(err)

	attachment, err := store.Save(uuid.New(), "notes.txt", strings.NewReader("hello attachment"))
	req.NoError(err)

	file, err := store.Open(attachment.Path)
	req.NoError(err)
	defer file.Close()

	content, err := io.ReadAll(file)
	req.NoError(err)
	req.Equal("hello attachment", string(content))
}

func Test_Open_Rejects_Traversal(t *testing.T) {
	req := require.New(t)
	store, err := NewAttachmentStore(t.TempDir())
	req.NoError(err)

	_, err = store.Open("../../etc/passwd")
	req.Error(err)
	_, err = store.Open("/etc/passwd")
	req.Error(err)
}
