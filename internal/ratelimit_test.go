package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_RateLimiter_Blocks_Over_Max(t *testing.T) {
	req := require.New(t)
	limiter := NewRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		req.True(limiter.Allow("alice", "message_send"))
	}
	req.False(limiter.Allow("alice", "message_send"))

	// Other users and operations have their own windows.
	req.True(limiter.Allow("bob", "message_send"))
	req.True(limiter.Allow("alice", "conversation_open"))
}

func Test_RateLimiter_Resets_After_Window(t *testing.T) {
	req := require.New(t)
	limiter := NewRateLimiter(time.Minute, 1)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	req.True(limiter.Allow("alice", "message_send"))
	req.False(limiter.Allow("alice", "message_send"))

	current = current.Add(61 * time.Second)
	req.True(limiter.Allow("alice", "message_send"))
}
