package notify

import (
	"errors"
	"fmt"
	"time"
)

// ErrForbidden reports a chat that blocked the bot or no longer exists.
var ErrForbidden = errors.New("forbidden")

// RateLimitedError asks the caller to wait RetryAfter before sending again.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
