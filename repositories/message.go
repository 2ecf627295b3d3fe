//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"mentconnect/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	ListMessages(conversationID uuid.UUID, after *string) ([]domain.Message, *string, error)
	CountBySender(senderID string) (int, error)
}

type MessageRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limit *int) MessageRepository {
	return MessageRepository{db: db, log: log, limit: limit}
}

// StoreMessage persists a message row.
// The key is "message:{conversation_id}:{timestamp_padded}:{uuid}" so that:
//  1. A prefix scan per conversation yields chronological order for free
//     (19-digit zero padding keeps lexicographic = numeric order).
//  2. Two messages committed in the same nanosecond cannot collide thanks
//     to the trailing UUID.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := messageKey(message)
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// ListMessages returns a conversation's history in ascending creation order,
// together with the cursor of the last row read. Passing a previous cursor
// resumes strictly after it, which is the watermark a live feed dedupes
// against when switching from snapshot to tail.
func (m MessageRepository) ListMessages(conversationID uuid.UUID, after *string) ([]domain.Message, *string, error) {
	prefixStr := fmt.Sprintf("message:%s:", conversationID)
	prefix := []byte(prefixStr)

	var rows [][]byte
	var lastCursor string
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := prefix
		if after != nil {
			seekKey = append([]byte(prefixStr), []byte(*after)...)
		}
		it.Seek(seekKey)

		// The cursor names the last row already seen; skip it.
		if after != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limit != nil && len(rows) == *m.limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limit))
				break
			}
			item := it.Item()
			lastCursor = string(item.Key()[len(prefixStr):])
			if err := item.Value(func(val []byte) error {
				rows = append(rows, append([]byte(nil), val...))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.Message, 0, len(rows))
	for _, raw := range rows {
		var message domain.Message
		if err = json.Unmarshal(raw, &message); err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	if lastCursor == "" {
		return messages, nil, nil
	}
	return messages, &lastCursor, nil
}

// CountBySender scans all message rows and counts those sent by the user.
// Analytics-only; the scan is bounded by the embedded store's size.
func (m MessageRepository) CountBySender(senderID string) (int, error) {
	count := 0
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("message:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var message domain.Message
				if err := json.Unmarshal(val, &message); err != nil {
					return err
				}
				if message.SenderID == senderID {
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return count, err
}

// Cursor returns the storage cursor of a message, usable as the `after`
// watermark of ListMessages.
func Cursor(message domain.Message) string {
	return fmt.Sprintf("%019d:%s", message.CreatedAt.UnixNano(), message.ID)
}

func messageKey(message domain.Message) []byte {
	return []byte(fmt.Sprintf("message:%s:%s", message.ConversationID, Cursor(message)))
}
