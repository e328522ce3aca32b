package frame_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

func TestParseData_RoundTrip(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	original := frame.NewData(chatID, frame.JSON(`{"foo":"bar"}`))

	data, err := frame.Serialize(original)
	require.NoError(t, err)

	parsed, err := frame.ParseData(data)
	require.NoError(t, err)
	require.Equal(t, original.ChatID, parsed.ChatID)
	require.JSONEq(t, `{"foo":"bar"}`, string(parsed.Payload))
}

func TestParseData_PromotesAppError(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	errFrame := frame.NewAppError(chatID, 123, "foo")
	data, err := frame.Serialize(errFrame)
	require.NoError(t, err)

	_, err = frame.ParseData(data)
	var appErr *kilroyerr.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 123, appErr.Code)
	require.Equal(t, "foo", appErr.Reason)
}

func TestParseData_PromotesProtocolError(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	errFrame := frame.NewProtocolError(&chatID, "something broke")
	data, err := frame.Serialize(errFrame)
	require.NoError(t, err)

	_, err = frame.ParseData(data)
	var protoErr *kilroyerr.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	require.Equal(t, "something broke", protoErr.Reason)
}

func TestParseData_InvalidTextYieldsInvalidMessage(t *testing.T) {
	t.Parallel()

	_, err := frame.ParseData([]byte(`"foo"`))
	require.ErrorIs(t, err, kilroyerr.ErrInvalidMessage)
}

func TestParseStreamEnd_RejectsData(t *testing.T) {
	t.Parallel()

	chatID := uuid.New()
	data, err := frame.Serialize(frame.NewData(chatID, frame.JSON(`1`)))
	require.NoError(t, err)

	_, err = frame.ParseStreamEnd(data)
	require.Error(t, err)
}
