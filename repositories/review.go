package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"mentconnect/domain"
)

type IReviewRepository interface {
	Create(review domain.Review) error
	ListByMentor(mentorID string) ([]domain.Review, error)
}

type ReviewRepository struct {
	db *badger.DB
}

func NewReviewRepository(db *badger.DB) ReviewRepository {
	return ReviewRepository{db: db}
}

func (r ReviewRepository) Create(review domain.Review) error {
	data, err := json.Marshal(review)
	if err != nil {
		return err
	}
	key := []byte(fmt.Sprintf("review:%s:%s", review.MentorID, review.ID))
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (r ReviewRepository) ListByMentor(mentorID string) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("review:" + mentorID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var review domain.Review
				if err := json.Unmarshal(val, &review); err != nil {
					return err
				}
				reviews = append(reviews, review)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return reviews, err
}
