package receiver_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
	"github.com/kilroybot/kilroyws/protocol/receiver"
)

// queueReader replays a fixed queue of frames, blocking forever once
// exhausted so a test can control exactly when the sender would be
// cancelled.
type queueReader struct {
	mu    sync.Mutex
	items [][]byte
	pos   int
}

func newQueueReader(items ...[]byte) *queueReader {
	return &queueReader{items: items}
}

func (q *queueReader) Read(ctx context.Context) ([]byte, error) {
	q.mu.Lock()
	if q.pos < len(q.items) {
		item := q.items[q.pos]
		q.pos++
		q.mu.Unlock()
		return item, nil
	}
	q.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func mustFrame(t *testing.T, v any) []byte {
	t.Helper()
	data, err := frame.Serialize(v)
	require.NoError(t, err)
	return data
}

func TestSingle_Receive_VerifiesChatID(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	other := uuid.New()
	r := newQueueReader(mustFrame(t, frame.NewData(other, frame.JSON(`1`))))

	_, err := receiver.Single{}.Receive(context.Background(), r, chatID)
	require.ErrorIs(t, err, kilroyerr.ErrConversationMismatch)
}

func TestSingle_Chain_AbsorbsCancellationOfSlowSender(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader(mustFrame(t, frame.NewData(chatID, frame.JSON(`{"foo":"bar"}`))))

	slowSend := func(ctx context.Context) error {
		select {
		case <-time.After(time.Hour):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	value, err := receiver.Single{}.Chain(context.Background(), slowSend, r, chatID)
	require.NoError(t, err)
	require.JSONEq(t, `{"foo":"bar"}`, string(value))
}

func TestSingle_Chain_SurfacesSenderError(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader(mustFrame(t, frame.NewData(chatID, frame.JSON(`1`))))

	failingSend := func(ctx context.Context) error {
		return context.DeadlineExceeded
	}

	_, err := receiver.Single{}.Chain(context.Background(), failingSend, r, chatID)
	require.Error(t, err)
}

func TestStream_Receive_YieldsInOrderUntilStreamEnd(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader(
		mustFrame(t, frame.NewData(chatID, frame.JSON(`{"foo":"bar"}`))),
		mustFrame(t, frame.NewData(chatID, frame.JSON(`{"bar":"foo"}`))),
		mustFrame(t, frame.NewStreamEnd(chatID)),
	)

	var values []string
	for res := range (receiver.Stream{}).Receive(context.Background(), r, chatID) {
		require.NoError(t, res.Err)
		values = append(values, string(res.Value))
	}

	require.Len(t, values, 2)
	require.JSONEq(t, `{"foo":"bar"}`, values[0])
	require.JSONEq(t, `{"bar":"foo"}`, values[1])
}

func TestStream_Receive_ReRaisesOriginalErrorOnStrayFrame(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader(mustFrame(t, frame.NewAppError(chatID, 7, "bad")))

	var last receiver.Result
	for res := range (receiver.Stream{}).Receive(context.Background(), r, chatID) {
		last = res
	}

	var appErr *kilroyerr.AppError
	require.ErrorAs(t, last.Err, &appErr)
	require.Equal(t, 7, appErr.Code)
}

func TestNull_Receive_ReturnsImmediately(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader()

	value, err := receiver.Null{}.Receive(context.Background(), r, chatID)
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestNull_Chain_AwaitsSenderToCompletion(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader()

	var sent bool
	send := func(ctx context.Context) error {
		sent = true
		return nil
	}

	value, err := receiver.Null{}.Chain(context.Background(), send, r, chatID)
	require.NoError(t, err)
	require.Nil(t, value)
	require.True(t, sent)
}

func TestNull_Chain_SurfacesSenderError(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	r := newQueueReader()

	failingSend := func(ctx context.Context) error {
		return context.DeadlineExceeded
	}

	_, err := receiver.Null{}.Chain(context.Background(), failingSend, r, chatID)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
