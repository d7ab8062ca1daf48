/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package server implements the server runtime: the session registry,
// accept loop, per-session receive goroutines, and the 100ms echo
// scheduler. Grounded on
// original_source/python/messaging_system/network/messaging_server.py.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/wireprotocol"
	"github.com/kcenon/messaging-system/internal/logging"
	"github.com/kcenon/messaging-system/network/frame"
	"github.com/kcenon/messaging-system/network/session"
)

// ServerVersion is reported to clients in confirm_connection.
const ServerVersion = "1.0.0"

// ErrNoSuchClient is returned by SendToClient when clientID is not
// connected, matching MessagingServer.send_to_client's "client not found"
// path.
var ErrNoSuchClient = errors.New("server: no such client")

// Server is a messaging server: one listener, a session registry, and the
// request_connection/echo handling loop.
type Server struct {
	id     string
	opts   *Options
	codec  *frame.Codec
	logger *logrus.Entry

	registry *registry
	handlers *session.HandlerTable

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	group    *errgroup.Group
}

// New creates a Server identified by id (used as the source_id on every
// message the server originates).
func New(id string, opts ...Option) *Server {
	o := defaultOptions()
	for _, apply := range opts {
		apply(o)
	}
	s := &Server{
		id:       id,
		opts:     o,
		codec:    frame.NewCodec(o.startByte, o.endByte, o.maxFrameSize),
		logger:   logging.For("MessagingServer", id),
		registry: newRegistry(),
		handlers: session.NewHandlerTable(),
	}
	return s
}

// Handlers exposes the server's message_type dispatch table so callers can
// register application-level handlers alongside the built-in
// request_connection handling.
func (s *Server) Handlers() *session.HandlerTable {
	return s.handlers
}

// Start listens on address and spawns the accept loop and echo scheduler.
// It returns once the listener is bound; Start does not block.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", address, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s.mu.Lock()
	s.listener = listener
	s.cancel = cancel
	s.group = group
	s.mu.Unlock()

	s.logger.Infof("starting messaging server on %s", listener.Addr())
	group.Go(func() error { return s.acceptLoop(ctx) })
	group.Go(func() error { return s.echoLoop(ctx) })
	return nil
}

// Stop closes the listener, disconnects every session, and joins both
// background goroutines, abandoning them after stopTimeout if they have not
// exited by then (spec's "each join uses a timeout, after which the task is
// abandoned").
func (s *Server) Stop() error {
	s.mu.Lock()
	listener := s.listener
	cancel := s.cancel
	group := s.group
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if listener != nil {
		_ = listener.Close()
	}
	for _, sess := range s.registry.all() {
		s.disconnect(sess)
	}

	if group != nil {
		done := make(chan error, 1)
		go func() { done <- group.Wait() }()
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-time.After(s.opts.stopTimeout):
			s.logger.Warn("accept loop / echo scheduler did not stop within timeout; abandoning")
		}
	}
	s.logger.Info("stopped messaging server")
	return nil
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.WithError(err).Warn("accept failed")
			continue
		}
		go s.handleNewConnection(conn)
	}
}

func (s *Server) handleNewConnection(conn net.Conn) {
	sess := newClientSession(uuid.NewString(), conn)
	s.registry.add(sess)
	s.logger.Infof("new connection from %s, session %s", sess.address, sess.sessionID)

	sess.decodeLoop(s.codec, func(wire string) {
		message, err := wireprotocol.Decode(wire)
		if err != nil {
			s.logger.WithError(err).Warn("failed to decode message")
			return
		}
		s.logger.WithField("wire", wire).Debug("[RECEIVED]")
		s.handleMessage(sess, message)
	})

	s.disconnect(sess)
}

func (s *Server) handleMessage(sess *clientSession, message *core.ValueContainer) {
	switch message.MessageType() {
	case session.MessageRequestConnection:
		s.handleRequestConnection(sess, message)
		return
	}
	// spec.md §4.4's per-session state machine only dispatches application
	// messages once NEW has transitioned to ACTIVE via request_connection.
	if sess.state() != session.ServerActive {
		s.logger.Warnf("dropping %q from %s: handshake not yet complete",
			message.MessageType(), sess.identity())
		return
	}
	if s.handlers.Dispatch(sess.identity(), message) {
		return
	}
	if s.opts.onReceive != nil {
		s.opts.onReceive(sess.identity(), message)
		return
	}
	s.logger.Warnf("unrecognized message_type %q from %s", message.MessageType(), sess.identity())
	errResponse := session.BuildError(s.id, message.SourceID(), message.SourceSubID(),
		fmt.Sprintf("unrecognized message_type: %s", message.MessageType()))
	s.sendTo(sess, errResponse)
}

func (s *Server) handleRequestConnection(sess *clientSession, message *core.ValueContainer) {
	req := session.ParseRequestConnection(message)
	clientID := message.SourceID()
	clientSubID := message.SourceSubID()
	if clientID == "" {
		clientID = sess.sessionID
	}
	sess.setClient(clientID, clientSubID, req.ConnectionKey, req.AutoEcho, req.AutoEchoIntervalSeconds)
	sess.rememberSnippingTargets(message.GetValue("snipping_targets", 0))
	s.registry.reindex(sess)

	confirm := session.BuildConfirmConnection(s.id, clientID, clientSubID, sess.sessionID, ServerVersion)
	if s.opts.threadSafeResponses {
		confirm.EnableThreadSafe()
	}
	if err := s.sendTo(sess, confirm); err != nil {
		s.logger.WithError(err).Error("failed to send confirm_connection")
		return
	}
	s.logger.Infof("client %s confirmed as session %s", sess.identity(), sess.sessionID)
	if s.opts.onConnect != nil {
		s.opts.onConnect(clientID, clientSubID, true)
	}
}

func (s *Server) echoLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.echoTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, sess := range s.registry.all() {
				if !sess.dueForEcho(now) {
					continue
				}
				count := sess.recordEcho(now)
				info := sess.info()
				echo := session.BuildEcho(s.id, info.ClientID, info.ClientSubID, now.Unix(), count)
				if s.opts.threadSafeResponses {
					echo.EnableThreadSafe()
				}
				if err := s.sendTo(sess, echo); err != nil {
					s.logger.WithError(err).Debugf("echo failed for %s", sess.identity())
				}
			}
		}
	}
}

// SendToClient sends container to the session identified by clientID,
// grounded on MessagingServer.send_to_client.
func (s *Server) SendToClient(clientID string, container *core.ValueContainer) error {
	sess := s.registry.byClientID(clientID)
	if sess == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchClient, clientID)
	}
	return s.sendTo(sess, container)
}

// Broadcast sends container to every connected, handshake-confirmed
// session except those named in exclude, returning the number of
// recipients. Grounded on MessagingServer.broadcast.
func (s *Server) Broadcast(container *core.ValueContainer, exclude map[string]bool) int {
	sent := 0
	for _, sess := range s.registry.all() {
		if sess.state() != session.ServerActive {
			continue
		}
		identity := sess.identity()
		if exclude != nil && exclude[identity] {
			continue
		}
		if err := s.sendTo(sess, container); err != nil {
			s.logger.WithError(err).Debugf("broadcast failed for %s", identity)
			continue
		}
		sent++
	}
	return sent
}

// GetConnectedClients returns a snapshot of every connected session,
// grounded on MessagingServer.get_connected_clients.
func (s *Server) GetConnectedClients() map[string]Info {
	out := make(map[string]Info)
	for _, sess := range s.registry.all() {
		out[sess.identity()] = sess.info()
	}
	return out
}

func (s *Server) sendTo(sess *clientSession, container *core.ValueContainer) error {
	wire, err := wireprotocol.Encode(container)
	if err != nil {
		return fmt.Errorf("server: encode: %w", err)
	}
	if err := sess.send(s.codec, wire); err != nil {
		return err
	}
	s.logger.WithField("wire", wire).Debug("[SENT]")
	return nil
}

func (s *Server) disconnect(sess *clientSession) {
	// remove returns nil on a second call for the same session, so a session
	// torn down by Stop and by its own receive loop still reports exactly one
	// disconnect.
	if s.registry.remove(sess.sessionID) == nil {
		return
	}
	_ = sess.close()
	s.logger.Infof("disconnected session %s (%s)", sess.sessionID, sess.address)
	if s.opts.onDisconnect != nil {
		s.opts.onDisconnect(sess.identity())
	}
}
