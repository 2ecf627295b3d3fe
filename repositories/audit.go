package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// AuditEntry is one security-audit row. Rows are append-only.
type AuditEntry struct {
	ID        uuid.UUID         `json:"id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id"`
	Details   map[string]string `json:"event_details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type IAuditRepository interface {
	Append(entry AuditEntry) error
	ListRecent(limit int) ([]AuditEntry, error)
}

type AuditRepository struct {
	db *badger.DB
}

func NewAuditRepository(db *badger.DB) AuditRepository {
	return AuditRepository{db: db}
}

// Append writes under "audit:{timestamp_padded}:{uuid}" so reverse scans
// return the newest entries first.
func (r AuditRepository) Append(entry AuditEntry) error {
	key := []byte(fmt.Sprintf("audit:%019d:%s", entry.CreatedAt.UnixNano(), entry.ID))
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (r AuditRepository) ListRecent(limit int) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("audit:")
		// Reverse iteration: seek past the newest possible key.
		seekKey := append([]byte("audit:"), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(entries) == limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var entry AuditEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return entries, err
}
