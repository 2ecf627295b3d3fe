// Package search maintains the mentor discovery index.
package search

import (
	"context"
	"strings"

	"github.com/blugelabs/bluge"

	"mentconnect/domain"
)

// MentorIndex is a Bluge full-text index over mentor profiles. The badger
// rows stay authoritative; the index is rebuilt from them on demand.
type MentorIndex struct {
	writer *bluge.Writer
}

// Open creates or opens the index at path. An empty path keeps the index in
// memory, which tests rely on.
func Open(path string) (*MentorIndex, error) {
	config := bluge.InMemoryOnlyConfig()
	if path != "" {
		config = bluge.DefaultConfig(path)
	}
	writer, err := bluge.OpenWriter(config)
	if err != nil {
		return nil, err
	}
	return &MentorIndex{writer: writer}, nil
}

func (i *MentorIndex) Close() error {
	return i.writer.Close()
}

// Index upserts one mentor profile document.
func (i *MentorIndex) Index(profile domain.Profile) error {
	doc := bluge.NewDocument(profile.UserID).
		AddField(bluge.NewTextField("display_name", profile.DisplayName).StoreValue()).
		AddField(bluge.NewTextField("title", profile.Title)).
		AddField(bluge.NewTextField("bio", profile.Bio)).
		AddField(bluge.NewTextField("specializations", strings.Join(profile.Specializations, " "))).
		AddField(bluge.NewTextField("languages", strings.Join(profile.Languages, " "))).
		AddField(bluge.NewTextField("location", profile.Location))
	return i.writer.Update(doc.ID(), doc)
}

// Search matches the query against name, title, bio and specializations and
// returns mentor user ids ranked by score.
func (i *MentorIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	boolean := bluge.NewBooleanQuery()
	for _, field := range []string{"display_name", "title", "bio", "specializations", "languages", "location"} {
		boolean.AddShould(bluge.NewMatchQuery(query).SetField(field))
	}

	request := bluge.NewTopNSearch(limit, boolean)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		innerErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if innerErr != nil {
			return nil, innerErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
