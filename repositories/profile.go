//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"mentconnect/domain"
	apperrors "mentconnect/errors"
)

type IProfileRepository interface {
	Upsert(profile domain.Profile) error
	Get(userID string) (domain.Profile, error)
	ListMentors() ([]domain.Profile, error)
}

type ProfileRepository struct {
	db *badger.DB
}

func NewProfileRepository(db *badger.DB) ProfileRepository {
	return ProfileRepository{db: db}
}

func profileKey(userID string) []byte {
	return []byte("profile:" + userID)
}

func (r ProfileRepository) Upsert(profile domain.Profile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.UserID), data)
	})
}

func (r ProfileRepository) Get(userID string) (domain.Profile, error) {
	var profile domain.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(userID))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrProfileNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	return profile, err
}

func (r ProfileRepository) ListMentors() ([]domain.Profile, error) {
	var mentors []domain.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("profile:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var profile domain.Profile
				if err := json.Unmarshal(val, &profile); err != nil {
					return err
				}
				if profile.UserType == domain.Mentor {
					mentors = append(mentors, profile)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return mentors, err
}
