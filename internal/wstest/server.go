// Package wstest is an in-process reference WebSocket server used only by
// this module's own tests. It speaks both wire dialects well enough to
// exercise a real client end to end, grounded on the scripted fixture the
// original Python test suite drives its client tests against
// (kilroy_ws_client_py_sdk's test_client.py TestServer/chat fixture).
package wstest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"

	"github.com/coder/websocket"

	"github.com/kilroybot/kilroyws/dialect"
	"github.com/kilroybot/kilroyws/protocol/frame"
)

// Script drives one connection's worth of server behavior: it reads the
// frames the client sends and writes the server's replies through conn.
// The returned error is ignored by the server.
type Script func(ctx context.Context, conn Conn) error

// Conn is the narrow read/write surface a Script needs; it hides the
// underlying *websocket.Conn so scripts stay dialect-agnostic.
type Conn interface {
	ReadText(ctx context.Context) ([]byte, error)
	WriteText(ctx context.Context, data []byte) error
}

// Server is an httptest server that runs a fresh Script for every
// WebSocket connection it accepts.
type Server struct {
	httpServer *httptest.Server
	mu         sync.Mutex
	script     Script
}

// New starts a server. Use SetScript to install the behavior each test
// wants before dialing.
func New() *Server {
	s := &Server{}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL is the ws:// base URL clients should dial.
func (s *Server) URL() string {
	return "ws" + s.httpServer.URL[len("http"):]
}

// SetScript installs the behavior used for connections accepted from now
// on.
func (s *Server) SetScript(script Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = script
}

// Close shuts down the underlying httptest.Server.
func (s *Server) Close() {
	s.httpServer.Close()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	script := s.script
	s.mu.Unlock()
	if script == nil {
		http.Error(w, "no script installed", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	_ = script(r.Context(), wsConn{conn})
}

type wsConn struct {
	conn *websocket.Conn
}

func (c wsConn) ReadText(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c wsConn) WriteText(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// ChatScript adapts a per-chat-id callback into a Script for dialect A:
// it reads the initial start frame and invokes fn with the chat id and the
// connection. Sending the closing stop frame, if any, is left to fn.
func ChatScript(fn func(ctx context.Context, chatID uuid.UUID, conn Conn) error) Script {
	return func(ctx context.Context, conn Conn) error {
		data, err := conn.ReadText(ctx)
		if err != nil {
			return err
		}
		start, err := frame.ParseStart(data)
		if err != nil {
			return err
		}
		return fn(ctx, start.ChatID, conn)
	}
}

// RequestScript adapts a per-request-id callback into a Script for
// dialect B: it reads the first request frame, invokes fn with the
// request id, its payload, and the connection.
func RequestScript(fn func(ctx context.Context, requestID uuid.UUID, payload frame.JSON, conn Conn) error) Script {
	return func(ctx context.Context, conn Conn) error {
		data, err := conn.ReadText(ctx)
		if err != nil {
			return err
		}
		req, ok := decodeRequest(data)
		if !ok {
			return nil
		}
		return fn(ctx, req.ID, req.Payload, conn)
	}
}

func decodeRequest(data []byte) (dialect.Request, bool) {
	var req dialect.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return dialect.Request{}, false
	}
	if req.Type != dialect.KindRequest {
		return dialect.Request{}, false
	}
	return req, true
}
