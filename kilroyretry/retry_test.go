package kilroyretry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kilroybot/kilroyws/kilroyretry"
	"github.com/kilroybot/kilroyws/transport"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	require.True(t, kilroyretry.IsRetryable(errors.New("dial tcp: connection refused")))
	require.False(t, kilroyretry.IsRetryable(nil))
	require.False(t, kilroyretry.IsRetryable(context.Canceled))
	require.False(t, kilroyretry.IsRetryable(errors.New("invalid api key")))
}

func TestWrap_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	attempts := 0
	fake := transport.DialerFunc(func(ctx context.Context, url string) (transport.Conn, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return nil, nil
	})

	policy := kilroyretry.Policy{InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, MaxAttempts: 5}
	_, err := kilroyretry.Wrap(fake, policy).Dial(context.Background(), "ws://example")
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestWrap_StopsOnNonRetryableError(t *testing.T) {
	t.Parallel()

	attempts := 0
	fake := transport.DialerFunc(func(ctx context.Context, url string) (transport.Conn, error) {
		attempts++
		return nil, errors.New("unauthorized")
	})

	policy := kilroyretry.Policy{InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, MaxAttempts: 5}
	_, err := kilroyretry.Wrap(fake, policy).Dial(context.Background(), "ws://example")
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}
