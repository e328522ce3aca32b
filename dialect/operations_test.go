package dialect

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kilroybot/kilroyws/kilroyerr"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

// queueConn is an in-memory transport.Conn fake: Write records frames
// sent, Read drains a pre-seeded queue and blocks on ctx.Done() once
// exhausted.
type queueConn struct {
	sent  [][]byte
	queue [][]byte
	pos   int
}

func (c *queueConn) Write(_ context.Context, data []byte) error {
	c.sent = append(c.sent, append([]byte(nil), data...))
	return nil
}

func (c *queueConn) Read(ctx context.Context) ([]byte, error) {
	if c.pos >= len(c.queue) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	data := c.queue[c.pos]
	c.pos++
	return data, nil
}

func (c *queueConn) Close(int, string) error { return nil }

// echoConn replies to each request with a fixed payload correlated to the
// id of the last request written, so tests don't need to predict a fresh
// uuid.New() value up front.
type echoConn struct {
	queueConn
	replyPayload frame.JSON
}

func (c *echoConn) Read(ctx context.Context) ([]byte, error) {
	if c.pos < len(c.queue) {
		return c.queueConn.Read(ctx)
	}
	if len(c.sent) == 0 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	var req Request
	if err := json.Unmarshal(c.sent[len(c.sent)-1], &req); err != nil {
		return nil, err
	}
	return Serialize(Reply{Type: KindReply, Request: req.ID, Payload: c.replyPayload})
}

func TestGet_ReadsOneDataFrame(t *testing.T) {
	msg := frame.Data{Type: frame.KindData, ID: uuid.New(), ChatID: uuid.New(), Payload: frame.JSON(`{"n":1}`)}
	data, err := frame.Serialize(msg)
	require.NoError(t, err)

	conn := &queueConn{queue: [][]byte{data}}
	got, err := Get(context.Background(), conn)
	require.NoError(t, err)
	require.JSONEq(t, `{"n":1}`, string(got))
}

func TestGetStream_EndsCleanlyOnStreamEnd(t *testing.T) {
	d1, err := frame.Serialize(frame.Data{Type: frame.KindData, ID: uuid.New(), ChatID: uuid.New(), Payload: frame.JSON(`1`)})
	require.NoError(t, err)
	d2, err := Serialize(StreamEnd{Type: KindStreamEnd})
	require.NoError(t, err)

	conn := &queueConn{queue: [][]byte{d1, d2}}
	ch := GetStream(context.Background(), conn)

	first := <-ch
	require.NoError(t, first.Err)
	require.JSONEq(t, `1`, string(first.Value))

	_, ok := <-ch
	require.False(t, ok)
}

func TestGetStream_AppErrorNeverFallsBackToStreamEnd(t *testing.T) {
	d1, err := frame.Serialize(frame.AppError{Type: frame.KindAppError, ID: uuid.New(), ChatID: uuid.New(), Code: 7, Reason: "boom"})
	require.NoError(t, err)

	conn := &queueConn{queue: [][]byte{d1}}
	ch := GetStream(context.Background(), conn)

	res := <-ch
	var appErr *kilroyerr.AppError
	require.ErrorAs(t, res.Err, &appErr)
	require.Equal(t, 7, appErr.Code)
}

func TestRequest_CorrelatesReplyByID(t *testing.T) {
	conn := &echoConn{replyPayload: frame.JSON(`{"a":1}`)}

	got, err := Request(context.Background(), conn, frame.JSON(`{"q":1}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(got))
}

func TestRequest_MismatchedReplyIsProtocolError(t *testing.T) {
	replyData, err := Serialize(Reply{Type: KindReply, Request: uuid.New(), Payload: frame.JSON(`1`)})
	require.NoError(t, err)

	conn := &queueConn{queue: [][]byte{replyData}}
	_, err = Request(context.Background(), conn, frame.JSON(`1`))
	var protoErr *kilroyerr.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestRequestStreamIn_EmptySourceIsProtocolError(t *testing.T) {
	conn := &queueConn{}
	_, err := RequestStreamIn(context.Background(), conn, &sliceSource{})
	var protoErr *kilroyerr.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

func TestRequestStreamIn_CorrelatesReplyToLastRequest(t *testing.T) {
	conn := &echoConn{replyPayload: frame.JSON(`"done"`)}
	src := &sliceSource{items: []frame.JSON{frame.JSON(`1`), frame.JSON(`2`)}}

	got, err := RequestStreamIn(context.Background(), conn, src)
	require.NoError(t, err)
	require.JSONEq(t, `"done"`, string(got))
	require.Len(t, conn.sent, 2)
}

func TestRequestStreamInOut_YieldsUntilStreamEnd(t *testing.T) {
	conn := &queueConn{}
	src := &sliceSource{items: []frame.JSON{frame.JSON(`1`)}}

	// The reply must carry the id of a request generated inside the call,
	// so drive RequestStreamInOut against a streamEchoConn that answers
	// the last request sent with one value, then ends the stream.
	echo := &streamEchoConn{queueConn: *conn, payloads: []frame.JSON{frame.JSON(`"x"`)}}
	ch := RequestStreamInOut(context.Background(), echo, src)

	first := <-ch
	require.NoError(t, first.Err)
	require.JSONEq(t, `"x"`, string(first.Value))

	_, ok := <-ch
	require.False(t, ok)
}

// streamEchoConn answers successive Reads after a request is sent with
// each of payloads in turn, correlated to the last request id, then with
// a stream-end frame.
type streamEchoConn struct {
	queueConn
	payloads []frame.JSON
	sentIdx  int
}

func (c *streamEchoConn) Read(ctx context.Context) ([]byte, error) {
	if len(c.sent) == 0 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	var req Request
	if err := json.Unmarshal(c.sent[len(c.sent)-1], &req); err != nil {
		return nil, err
	}
	if c.sentIdx < len(c.payloads) {
		p := c.payloads[c.sentIdx]
		c.sentIdx++
		return Serialize(Reply{Type: KindReply, Request: req.ID, Payload: p})
	}
	return Serialize(StreamEnd{Type: KindStreamEnd})
}

type sliceSource struct {
	items []frame.JSON
	pos   int
}

func (s *sliceSource) Next(_ context.Context) (frame.JSON, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}
