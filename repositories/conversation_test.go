package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "mentconnect/errors"
)

func Test_GetOrCreate_Creates_Once(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	first, created, err := repository.GetOrCreate("mentee-1", "mentor-1", "שיחה עם דנה")
	req.NoError(err)
	req.True(created)
	req.True(first.IsActive)
	req.Equal("שיחה עם דנה", first.Title)
	req.Equal("mentee-1", first.MenteeID)
	req.Equal("mentor-1", first.MentorID)

	second, created, err := repository.GetOrCreate("mentee-1", "mentor-1", "ignored title")
	req.NoError(err)
	req.False(created)
	req.Equal(first.ID, second.ID)
	req.Equal(first.Title, second.Title)
}

func Test_GetOrCreate_Concurrent_Single_Winner(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	const openers = 10
	results := make(chan struct {
		id      uuid.UUID
		created bool
		err     error
	}, openers)

	var ready sync.WaitGroup
	ready.Add(openers)
	start := make(chan struct{})
	for i := 0; i < openers; i++ {
		go func() {
			ready.Done()
			<-start
			conversation, created, err := repository.GetOrCreate("mentee-1", "mentor-1", "race")
			results <- struct {
				id      uuid.UUID
				created bool
				err     error
			}{conversation.ID, created, err}
		}()
	}
	ready.Wait()
	close(start)

	ids := map[uuid.UUID]struct{}{}
	creations := 0
	for i := 0; i < openers; i++ {
		result := <-results
		req.NoError(result.err)
		ids[result.id] = struct{}{}
		if result.created {
			creations++
		}
	}
	req.Len(ids, 1)
	req.Equal(1, creations)
}

func Test_GetOrCreate_Distinct_Pairs(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	a, _, err := repository.GetOrCreate("mentee-1", "mentor-1", "a")
	req.NoError(err)
	b, _, err := repository.GetOrCreate("mentee-1", "mentor-2", "b")
	req.NoError(err)
	c, _, err := repository.GetOrCreate("mentee-2", "mentor-1", "c")
	req.NoError(err)

	req.NotEqual(a.ID, b.ID)
	req.NotEqual(a.ID, c.ID)
	req.NotEqual(b.ID, c.ID)
}

func Test_Deactivate_Releases_Pair(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	first, _, err := repository.GetOrCreate("mentee-1", "mentor-1", "a")
	req.NoError(err)
	req.NoError(repository.Deactivate(first.ID))

	// The inactive row survives but no longer resolves through the pair.
	stored, err := repository.GetByID(first.ID)
	req.NoError(err)
	req.False(stored.IsActive)

	fresh, created, err := repository.GetOrCreate("mentee-1", "mentor-1", "b")
	req.NoError(err)
	req.True(created)
	req.NotEqual(first.ID, fresh.ID)
}

func Test_TouchLastMessage(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	conversation, _, err := repository.GetOrCreate("mentee-1", "mentor-1", "a")
	req.NoError(err)

	at := time.Now().UTC().Add(1 * time.Hour).Truncate(time.Millisecond)
	req.NoError(repository.TouchLastMessage(conversation.ID, at))

	stored, err := repository.GetByID(conversation.ID)
	req.NoError(err)
	req.Equal(at, stored.LastMessageAt.UTC())
	req.Equal(at, stored.UpdatedAt.UTC())
}

func Test_GetByID_Unknown(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewConversationRepository(db)

	_, err = repository.GetByID(uuid.New())
	req.ErrorIs(err, apperrors.ErrConversationNotFound)
}
