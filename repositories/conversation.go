//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
)

type IConversationRepository interface {
	GetOrCreate(menteeID, mentorID, title string) (domain.Conversation, bool, error)
	GetByID(id uuid.UUID) (domain.Conversation, error)
	TouchLastMessage(id uuid.UUID, at time.Time) error
	Deactivate(id uuid.UUID) error
}

type ConversationRepository struct {
	db *badger.DB
}

func NewConversationRepository(db *badger.DB) ConversationRepository {
	return ConversationRepository{db: db}
}

// Two keys per conversation:
//   - "conversation:id:{uuid}"          -> JSON row
//   - "conversation:pair:{mentee}:{mentor}" -> conversation id, present only
//     while the conversation is active.
//
// The pair key is the uniqueness constraint: get-or-create runs inside one
// badger transaction, so two concurrent first opens for the same pair commit
// exactly one conversation and both callers observe the same id.
func idKey(id uuid.UUID) []byte {
	return []byte("conversation:id:" + id.String())
}

func pairKey(menteeID, mentorID string) []byte {
	return []byte(fmt.Sprintf("conversation:pair:%s:%s", menteeID, mentorID))
}

// GetOrCreate resolves the single active conversation for the pair, creating
// it when absent. The second return value reports whether a row was created.
// Concurrent first opens race on the pair key; the loser's transaction
// conflicts and is retried, so it observes the winner's row.
func (r ConversationRepository) GetOrCreate(menteeID, mentorID, title string) (domain.Conversation, bool, error) {
	for {
		conversation, created, err := r.getOrCreateOnce(menteeID, mentorID, title)
		if err == badger.ErrConflict {
			continue
		}
		return conversation, created, err
	}
}

func (r ConversationRepository) getOrCreateOnce(menteeID, mentorID, title string) (domain.Conversation, bool, error) {
	var conversation domain.Conversation
	var created bool

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(menteeID, mentorID))
		if err == nil {
			var existingID string
			if err = item.Value(func(val []byte) error {
				existingID = string(val)
				return nil
			}); err != nil {
				return err
			}
			parsed, err := uuid.Parse(existingID)
			if err != nil {
				return err
			}
			conversation, err = getConversation(txn, parsed)
			return err
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		now := time.Now().UTC()
		conversation = domain.Conversation{
			ID:            uuid.New(),
			MenteeID:      menteeID,
			MentorID:      mentorID,
			Title:         title,
			IsActive:      true,
			LastMessageAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		data, err := json.Marshal(conversation)
		if err != nil {
			return err
		}
		if err = txn.Set(idKey(conversation.ID), data); err != nil {
			return err
		}
		if err = txn.Set(pairKey(menteeID, mentorID), []byte(conversation.ID.String())); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return conversation, created, nil
}

func (r ConversationRepository) GetByID(id uuid.UUID) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		conversation, err = getConversation(txn, id)
		return err
	})
	return conversation, err
}

// TouchLastMessage bumps the advisory last_message_at timestamp. It is a
// separate write from the message insert; the timestamp is used only for
// sorting conversation lists.
func (r ConversationRepository) TouchLastMessage(id uuid.UUID, at time.Time) error {
	return r.updateConversation(id, func(c *domain.Conversation) {
		c.LastMessageAt = at
		c.UpdatedAt = at
	})
}

// Deactivate flips the active flag and releases the pair key, allowing a
// future open to start a fresh conversation. Rows are never hard-deleted.
func (r ConversationRepository) Deactivate(id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		conversation, err := getConversation(txn, id)
		if err != nil {
			return err
		}
		conversation.IsActive = false
		conversation.UpdatedAt = time.Now().UTC()
		data, err := json.Marshal(conversation)
		if err != nil {
			return err
		}
		if err = txn.Set(idKey(id), data); err != nil {
			return err
		}
		return txn.Delete(pairKey(conversation.MenteeID, conversation.MentorID))
	})
}

func (r ConversationRepository) updateConversation(id uuid.UUID, mutate func(*domain.Conversation)) error {
	return r.db.Update(func(txn *badger.Txn) error {
		conversation, err := getConversation(txn, id)
		if err != nil {
			return err
		}
		mutate(&conversation)
		data, err := json.Marshal(conversation)
		if err != nil {
			return err
		}
		return txn.Set(idKey(id), data)
	})
}

func getConversation(txn *badger.Txn, id uuid.UUID) (domain.Conversation, error) {
	var conversation domain.Conversation
	item, err := txn.Get(idKey(id))
	if err == badger.ErrKeyNotFound {
		return conversation, apperrors.ErrConversationNotFound
	}
	if err != nil {
		return conversation, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &conversation)
	})
	return conversation, err
}
