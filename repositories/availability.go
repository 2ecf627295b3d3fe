package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"mentconnect/domain"
)

type IAvailabilityRepository interface {
	SaveSlot(slot domain.AvailabilitySlot) error
	DeleteSlot(mentorID string, slotID uuid.UUID) error
	ListSlots(mentorID string) ([]domain.AvailabilitySlot, error)
}

type AvailabilityRepository struct {
	db *badger.DB
}

func NewAvailabilityRepository(db *badger.DB) AvailabilityRepository {
	return AvailabilityRepository{db: db}
}

func slotKey(mentorID string, slotID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("slot:%s:%s", mentorID, slotID))
}

func (r AvailabilityRepository) SaveSlot(slot domain.AvailabilitySlot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey(slot.MentorID, slot.ID), data)
	})
}

func (r AvailabilityRepository) DeleteSlot(mentorID string, slotID uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(slotKey(mentorID, slotID))
	})
}

func (r AvailabilityRepository) ListSlots(mentorID string) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("slot:" + mentorID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var slot domain.AvailabilitySlot
				if err := json.Unmarshal(val, &slot); err != nil {
					return err
				}
				slots = append(slots, slot)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return slots, err
}
