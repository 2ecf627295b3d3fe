package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mentconnect/domain"
)

func Test_Index_And_Search(t *testing.T) {
	req := require.New(t)
	index, err := Open("")
	req.NoError(err)
	defer index.Close()

	req.NoError(index.Index(domain.Profile{
		UserID:          "mentor-1",
		DisplayName:     "Dana Levy",
		Title:           "Senior Backend Engineer",
		Bio:             "Distributed systems and Go",
		Specializations: []string{"backend", "databases"},
		Languages:       []string{"Hebrew", "English"},
		Location:        "Tel Aviv",
	}))
	req.NoError(index.Index(domain.Profile{
		UserID:      "mentor-2",
		DisplayName: "Yossi Cohen",
		Title:       "Product Designer",
		Bio:         "Design systems and UX research",
	}))

	ids, err := index.Search(context.Background(), "backend", 10)
	req.NoError(err)
	req.Equal([]string{"mentor-1"}, ids)

	ids, err = index.Search(context.Background(), "design", 10)
	req.NoError(err)
	req.Equal([]string{"mentor-2"}, ids)
}

func Test_Index_Upsert_Replaces(t *testing.T) {
	req := require.New(t)
	index, err := Open("")
	req.NoError(err)
	defer index.Close()

	req.NoError(index.Index(domain.Profile{UserID: "mentor-1", DisplayName: "Dana", Bio: "databases"}))
	req.NoError(index.Index(domain.Profile{UserID: "mentor-1", DisplayName: "Dana", Bio: "frontend"}))

	ids, err := index.Search(context.Background(), "databases", 10)
	req.NoError(err)
	req.Empty(ids)

	ids, err = index.Search(context.Background(), "frontend", 10)
	req.NoError(err)
	req.Equal([]string{"mentor-1"}, ids)
}

func Test_Search_No_Match(t *testing.T) {
	req := require.New(t)
	index, err := Open("")
	req.NoError(err)
	defer index.Close()

	ids, err := index.Search(context.Background(), "anything", 10)
	req.NoError(err)
	req.Empty(ids)
}
