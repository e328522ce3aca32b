// Package kilroyretry classifies transient dial errors and applies
// exponential backoff. It is not wired into the core call path — spec.md
// lists reconnection/retry policy as an explicit Non-goal — and exists
// only for cmd/kilroyctl's reconnect loop, which redials and starts a
// fresh chat one Subscribe call at a time.
package kilroyretry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kilroybot/kilroyws/transport"
)

const (
	// InitialDelay is the backoff duration before the first retry.
	InitialDelay = 1 * time.Second
	// MaxDelay is the upper bound for the exponential backoff duration.
	MaxDelay = 60 * time.Second
)

// Policy bounds a dial-retry loop.
type Policy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
}

// DefaultPolicy retries a handful of times with the package's default
// backoff bounds.
var DefaultPolicy = Policy{
	InitialDelay: InitialDelay,
	MaxDelay:     MaxDelay,
	MaxAttempts:  5,
}

// retryablePatterns are substrings of err.Error() that indicate a
// transient dial failure worth retrying.
var retryablePatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"timeout",
	"eof",
	"no such host",
	"network is unreachable",
}

// IsRetryable reports whether err looks like a transient network failure
// rather than a permanent one.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	lower := strings.ToLower(err.Error())
	for _, p := range retryablePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Wrap returns a Dialer that retries Dial under p's backoff policy
// whenever IsRetryable(err) is true, and returns the first non-retryable
// (or final) error otherwise. It retries the dial step only, never a chat
// already in progress.
func Wrap(d transport.Dialer, p Policy) transport.Dialer {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	return transport.DialerFunc(func(ctx context.Context, url string) (transport.Conn, error) {
		delay := p.InitialDelay
		if delay <= 0 {
			delay = InitialDelay
		}

		var lastErr error
		for attempt := 0; attempt < p.MaxAttempts; attempt++ {
			conn, err := d.Dial(ctx, url)
			if err == nil {
				return conn, nil
			}
			lastErr = err
			if !IsRetryable(err) {
				return nil, err
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
		return nil, lastErr
	})
}
