/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package client implements the client runtime: one socket, one receive
// goroutine, and the request_connection/confirm_connection handshake.
// Grounded on
// original_source/python/messaging_system/network/messaging_client.py.
package client

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/wireprotocol"
	"github.com/kcenon/messaging-system/internal/logging"
	"github.com/kcenon/messaging-system/network/frame"
	"github.com/kcenon/messaging-system/network/session"
)

// ErrNotConnected is returned by SendPacket when the client has not started
// or has already stopped.
var ErrNotConnected = errors.New("client: not connected")

// ErrInvalidArgument is returned by SendPacket when the container has no
// target_id.
var ErrInvalidArgument = errors.New("client: invalid argument")

// Client is a messaging client: one TCP connection, one receive goroutine,
// and the connection/message callbacks configured at construction.
type Client struct {
	sourceID      string
	sourceSubID   string
	connectionKey []byte
	opts          *Options
	codec         *frame.Codec
	logger        *logrus.Entry

	mu    sync.Mutex
	state session.ClientState
	conn  net.Conn

	writeMu sync.Mutex

	wg sync.WaitGroup
}

// New creates a Client identified by sourceID, authenticating with
// connectionKey (an arbitrary byte string the server may check).
func New(sourceID string, connectionKey []byte, opts ...Option) *Client {
	o := defaultOptions()
	for _, apply := range opts {
		apply(o)
	}
	return &Client{
		sourceID:      sourceID,
		connectionKey: connectionKey,
		opts:          o,
		codec:         frame.NewCodec(o.startByte, o.endByte, o.maxFrameSize),
		state:         session.ClientConnecting,
		logger:        logging.For("MessagingClient", sourceID),
	}
}

// Start connects to the server, spawns the receive goroutine, and sends the
// initial request_connection. It returns once the socket is connected; the
// handshake outcome itself is asynchronous and surfaces through the
// connection callback, matching MessagingClient.start.
func (c *Client) Start(address string, autoEcho bool, autoEchoIntervalSeconds int) error {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		c.logger.WithError(err).Error("failed to connect")
		return fmt.Errorf("client: dial %s: %w", address, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.state = c.state.OnDial()
	c.mu.Unlock()

	c.logger.Info("starting messaging client")
	c.wg.Add(1)
	go c.receiveLoop()

	req := session.ConnectionRequest{
		ConnectionKey:           c.connectionKey,
		AutoEcho:                autoEcho,
		AutoEchoIntervalSeconds: int8(autoEchoIntervalSeconds),
		SessionType:             '1',
		BridgeMode:              false,
	}
	requestContainer := session.BuildRequestConnection(c.sourceID, c.sourceSubID, req)
	return c.SendPacket(requestContainer)
}

// Stop shuts the connection down in both directions and joins the receive
// goroutine, abandoning it after stopTimeout if it has not exited by then
// (spec's "each join uses a timeout, after which the task is abandoned").
func (c *Client) Stop() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = c.state.OnClose()
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}
	err := conn.Close()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.opts.stopTimeout):
		c.logger.Warn("receive goroutine did not stop within timeout; abandoning")
	}
	return err
}

// SendPacket serializes, frames, and writes container in a single locked
// write, filling in source_id/source_sub_id from the client's current
// identity when absent. Concurrent callers are serialized internally.
func (c *Client) SendPacket(container *core.ValueContainer) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	if container.TargetID() == "" {
		return fmt.Errorf("%w: empty target_id", ErrInvalidArgument)
	}
	if container.SourceID() == "" {
		c.mu.Lock()
		sourceID, sourceSubID := c.sourceID, c.sourceSubID
		c.mu.Unlock()
		container.SetSource(sourceID, sourceSubID)
	}

	wire, err := wireprotocol.Encode(container)
	if err != nil {
		return fmt.Errorf("client: encode: %w", err)
	}
	frameBytes := c.codec.Encode([]byte(wire))

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err = conn.Write(frameBytes)
	if err != nil {
		c.logger.WithError(err).Error("failed to send packet")
		return err
	}
	c.logger.WithField("wire", wire).Debug("[SENT]")
	return nil
}

// SendMessage is a convenience wrapper around SendPacket for a freshly built
// container.
func (c *Client) SendMessage(targetID, messageType string, values ...core.Value) error {
	container := core.NewValueContainerWithTarget(targetID, "", messageType, values...)
	return c.SendPacket(container)
}

func (c *Client) receiveLoop() {
	defer c.wg.Done()

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}
	reader := frame.NewReader(conn, c.codec)

	for {
		payload, err := reader.ReadFrame()
		if err != nil {
			if errors.Is(err, frame.ErrProtocol) {
				continue
			}
			c.logger.Info("stopping messaging client")
			return
		}

		message, err := wireprotocol.Decode(string(payload))
		if err != nil {
			continue
		}
		c.logger.WithField("wire", string(payload)).Debug("[RECEIVED]")
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(message *core.ValueContainer) {
	if message.MessageType() == session.MessageConfirmConnection {
		c.handleConfirmConnection(message)
		return
	}
	if c.opts.onReceive != nil {
		c.opts.onReceive(message)
	}
}

func (c *Client) handleConfirmConnection(message *core.ValueContainer) {
	sessionID, err := session.ParseConfirmConnection(message)
	if err != nil {
		c.logger.WithError(err).Errorf("invalid confirm message from %s", message.SourceID())
		if c.opts.onConnect != nil {
			c.opts.onConnect(message.SourceID(), message.SourceSubID(), false)
		}
		return
	}

	// Adopt the server-assigned identity, matching
	// MessagingClient._handle_connection_confirmation.
	c.mu.Lock()
	c.sourceID = message.TargetID()
	c.sourceSubID = message.TargetSubID()
	c.state = c.state.OnConfirmed()
	c.mu.Unlock()

	c.logger.Infof("connection confirmed from %s: %s", message.SourceID(), sessionID)
	if c.opts.onConnect != nil {
		c.opts.onConnect(message.SourceID(), message.SourceSubID(), true)
	}
}
