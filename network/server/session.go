/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/network/frame"
	"github.com/kcenon/messaging-system/network/session"
)

// clientSession is the server-side record of one connected client, grounded
// on messaging_server.py's ClientSession: the socket plus the handshake
// state a session accumulates over its lifetime.
type clientSession struct {
	sessionID string
	conn      net.Conn
	address   string

	mu                      sync.Mutex
	clientID                string
	clientSubID             string
	connectionKey           []byte
	autoEcho                bool
	autoEchoIntervalSeconds int8
	lastEchoAt              time.Time
	echoCount               uint32
	fsm                     session.ServerState

	// scratch holds auxiliary per-session state that doesn't belong in
	// ValueContainer's fixed six-slot header, e.g. the snipping_targets
	// sub-container carried by request_connection.
	scratch *core.ValueStore

	writeMu sync.Mutex
}

func newClientSession(sessionID string, conn net.Conn) *clientSession {
	return &clientSession{
		sessionID: sessionID,
		conn:      conn,
		address:   conn.RemoteAddr().String(),
		scratch:   core.NewValueStore(),
	}
}

// rememberSnippingTargets stashes the snipping_targets value from a
// request_connection in the session's scratch store, if present.
func (s *clientSession) rememberSnippingTargets(v core.Value) {
	if v == nil || v.IsNull() {
		return
	}
	s.scratch.Add("snipping_targets", v)
}

// sessionDiagnostics is the shape msgpack-encoded by Describe.
type sessionDiagnostics struct {
	SessionID   string `msgpack:"session_id"`
	ClientID    string `msgpack:"client_id"`
	ClientSubID string `msgpack:"client_sub_id"`
	Address     string `msgpack:"address"`
	AutoEcho    bool   `msgpack:"auto_echo"`
	EchoCount   uint32 `msgpack:"echo_count"`
	State       string `msgpack:"state"`
}

// Describe msgpack-encodes a diagnostic snapshot of the session, intended
// for operational tooling rather than the wire protocol itself.
func (s *clientSession) Describe() ([]byte, error) {
	s.mu.Lock()
	d := sessionDiagnostics{
		SessionID:   s.sessionID,
		ClientID:    s.clientID,
		ClientSubID: s.clientSubID,
		Address:     s.address,
		AutoEcho:    s.autoEcho,
		EchoCount:   s.echoCount,
		State:       s.fsm.String(),
	}
	s.mu.Unlock()
	return msgpack.Marshal(&d)
}

// send frames and writes wire under the session's write lock so concurrent
// senders (application code, the echo scheduler) never interleave frames.
func (s *clientSession) send(codec *frame.Codec, wire string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.conn.Write(codec.Encode([]byte(wire)))
	return err
}

func (s *clientSession) close() error {
	s.mu.Lock()
	s.fsm = s.fsm.OnClose()
	s.mu.Unlock()
	return s.conn.Close()
}

// state returns the session's current per-session state machine position
// (spec.md §4.4's NEW/ACTIVE/CLOSED).
func (s *clientSession) state() session.ServerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm
}

// identity returns the id a lookup/broadcast should key this session by:
// the client-asserted client_id, falling back to the server-generated
// session id when the client never set one. This resolves the
// `client_id = session.client_id or session_session_id` typo in
// MessagingServer's disconnect path — read as "fall back to the session
// id," a copy/paste doubling of the identifier.
func (s *clientSession) identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clientID != "" {
		return s.clientID
	}
	return s.sessionID
}

// setClient records the handshake fields from a request_connection and
// transitions the session's state machine NEW -> ACTIVE (spec.md §4.4).
func (s *clientSession) setClient(clientID, clientSubID string, connectionKey []byte, autoEcho bool, interval int8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientID = clientID
	s.clientSubID = clientSubID
	s.connectionKey = connectionKey
	s.autoEcho = autoEcho
	s.autoEchoIntervalSeconds = interval
	s.fsm = s.fsm.OnRequestConnection()
	s.lastEchoAt = time.Now()
}

func (s *clientSession) dueForEcho(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fsm != session.ServerActive || !s.autoEcho {
		return false
	}
	interval := time.Duration(s.autoEchoIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	return now.Sub(s.lastEchoAt) >= interval
}

func (s *clientSession) recordEcho(now time.Time) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEchoAt = now
	s.echoCount++
	return s.echoCount
}

// Info is the read-only snapshot returned by Server.GetConnectedClients.
type Info struct {
	ClientID    string
	ClientSubID string
	SessionID   string
	Address     string
}

func (s *clientSession) info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ClientID:    s.clientID,
		ClientSubID: s.clientSubID,
		SessionID:   s.sessionID,
		Address:     s.address,
	}
}

// decodeLoop reads frames off the session's connection, handing each decoded
// container to handle. Frames rejected with frame.ErrProtocol are skipped;
// any other read error (the connection closing included) ends the loop.
func (s *clientSession) decodeLoop(codec *frame.Codec, handle func(wire string)) {
	reader := frame.NewReader(s.conn, codec)
	for {
		payload, err := reader.ReadFrame()
		if err != nil {
			if errors.Is(err, frame.ErrProtocol) {
				continue
			}
			return
		}
		handle(string(payload))
	}
}
