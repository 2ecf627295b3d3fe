// Command inspect dumps conversation, message and audit rows from a badger
// store. Meant for debugging a live database; opens read-only.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"mentconnect/domain"
	"mentconnect/repositories"
)

func main() {
	dbPath := flag.String("db", "/tmp/mentconnect", "Path to badger DB")
	prefix := flag.String("prefix", "message:", "Prefix to scan (conversation:, message:, audit:)")
	plain := flag.Bool("plain", false, "Disable colored section headers")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := fmt.Sprintf("  ====== %s ======", *prefix)
	if !*plain {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Who", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Pair index entries hold only a conversation id, not a row.
			if strings.HasPrefix(key, "conversation:pair:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				table.Append(mapRow(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func mapRow(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "message:"):
		var m domain.Message
		if err := json.Unmarshal(val, &m); err != nil {
			return unreadable(key, err)
		}
		detail := m.Content
		if len(detail) > 60 {
			detail = detail[:60] + "..."
		}
		return []string{key, string(m.Kind), m.CreatedAt.Format("15:04:05"), shortID(m.SenderID), detail}

	case strings.HasPrefix(key, "conversation:"):
		var c domain.Conversation
		if err := json.Unmarshal(val, &c); err != nil {
			return unreadable(key, err)
		}
		state := "CLOSED"
		if c.IsActive {
			state = "ACTIVE"
		}
		who := fmt.Sprintf("%s/%s", shortID(c.MenteeID), shortID(c.MentorID))
		return []string{key, state, c.LastMessageAt.Format("15:04:05"), who, c.Title}

	case strings.HasPrefix(key, "audit:"):
		var e repositories.AuditEntry
		if err := json.Unmarshal(val, &e); err != nil {
			return unreadable(key, err)
		}
		return []string{key, e.EventType, e.CreatedAt.Format("15:04:05"), shortID(e.UserID), fmt.Sprint(e.Details)}
	}

	return []string{key, "RAW", "", "", fmt.Sprintf("%d bytes", len(val))}
}

func unreadable(key string, err error) []string {
	return []string{key, "ERROR", "", "", err.Error()}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			// Open in write mode once so badger can truncate, then retry.
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
