package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mentconnect/domain"
)

func newMessage(conversationID uuid.UUID, sender, content string, at time.Time) domain.Message {
	return domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       sender,
		Content:        content,
		Kind:           domain.KindText,
		Direction:      domain.LTR,
		CreatedAt:      at,
	}
}

func Test_Store_Multiple_Messages_Chronological(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default(), nil)
	conversationID := uuid.New()
	at := time.Now().UTC().Truncate(time.Millisecond)
	messages := []domain.Message{
		newMessage(conversationID, "alice", "first", at),
		newMessage(conversationID, "bob", "second", at.Add(1*time.Minute)),
		newMessage(conversationID, "alice", "third", at.Add(2*time.Minute)),
	}
	// Insertion order must not matter; the key carries the timestamp.
	for _, i := range []int{2, 0, 1} {
		req.NoError(repository.StoreMessage(messages[i]))
	}

	fetched, cursor, err := repository.ListMessages(conversationID, nil)
	req.NoError(err)
	req.Len(fetched, len(messages))
	for i, message := range messages {
		req.Equal(message.ID, fetched[i].ID)
		req.Equal(message.Content, fetched[i].Content)
	}
	req.NotNil(cursor)
	req.Equal(Cursor(messages[2]), *cursor)
}

func Test_ListMessages_Resumes_After_Cursor(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default(), nil)
	conversationID := uuid.New()
	at := time.Now().UTC()
	messages := []domain.Message{
		newMessage(conversationID, "alice", "a", at),
		newMessage(conversationID, "bob", "b", at.Add(1*time.Second)),
		newMessage(conversationID, "alice", "c", at.Add(2*time.Second)),
	}
	for _, message := range messages {
		req.NoError(repository.StoreMessage(message))
	}

	watermark := Cursor(messages[0])
	fetched, cursor, err := repository.ListMessages(conversationID, &watermark)
	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal(messages[1].ID, fetched[0].ID)
	req.Equal(messages[2].ID, fetched[1].ID)
	req.Equal(Cursor(messages[2]), *cursor)

	// Resuming from the tail yields nothing and no new cursor.
	fetched, cursor, err = repository.ListMessages(conversationID, cursor)
	req.NoError(err)
	req.Empty(fetched)
	req.Nil(cursor)
}

func Test_ListMessages_Respects_Limit(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	limit := 2
	repository := NewMessageRepository(db, slog.Default(), &limit)
	conversationID := uuid.New()
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repository.StoreMessage(
			newMessage(conversationID, "alice", "msg", at.Add(time.Duration(i)*time.Second))))
	}

	fetched, _, err := repository.ListMessages(conversationID, nil)
	req.NoError(err)
	req.Len(fetched, limit)
}

func Test_ListMessages_Isolated_Per_Conversation(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default(), nil)
	first := uuid.New()
	second := uuid.New()
	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(newMessage(first, "alice", "one", at)))
	req.NoError(repository.StoreMessage(newMessage(second, "bob", "two", at)))

	fetched, _, err := repository.ListMessages(first, nil)
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("one", fetched[0].Content)
}

func Test_CountBySender(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default(), nil)
	first := uuid.New()
	second := uuid.New()
	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(newMessage(first, "alice", "a", at)))
	req.NoError(repository.StoreMessage(newMessage(second, "alice", "b", at)))
	req.NoError(repository.StoreMessage(newMessage(first, "bob", "c", at)))

	count, err := repository.CountBySender("alice")
	req.NoError(err)
	req.Equal(2, count)
}
