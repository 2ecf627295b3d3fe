package errors

import "fmt"

var (
	// Spec'd failure surface of the conversation manager. None of these are
	// retried automatically; callers present them and wait for the user.
	ErrLoadFailed         = fmt.Errorf("conversation load failed")
	ErrSendFailed         = fmt.Errorf("message send failed")
	ErrSubscriptionFailed = fmt.Errorf("live feed subscription failed")

	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrProfileNotFound      = fmt.Errorf("profile not found")
	ErrGoalNotFound         = fmt.Errorf("goal not found")
	ErrNotParticipant       = fmt.Errorf("user is not a participant of this conversation")
	ErrInvalidInput         = fmt.Errorf("invalid input")
	ErrRateLimited          = fmt.Errorf("rate limit exceeded")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
