/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package session implements the handshake/liveness protocol layered on top
// of container/wireprotocol: the three message types request_connection,
// confirm_connection, and echo, plus the per-side state machines and a
// message-type dispatch table. Grounded on
// original_source/python/messaging_system/network/connection_handler.py and
// the request/confirm/echo payloads built in messaging_client.py /
// messaging_server.py.
package session

import (
	"errors"
	"fmt"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/messaging"
	"github.com/kcenon/messaging-system/container/values"
)

const (
	// MessageRequestConnection is sent client -> server to begin a session.
	MessageRequestConnection = "request_connection"
	// MessageConfirmConnection is sent server -> client to complete the
	// handshake.
	MessageConfirmConnection = "confirm_connection"
	// MessageEcho is sent server -> client as a liveness heartbeat.
	MessageEcho = "echo"
	// MessageError is sent server -> client in response to an unrecognized
	// message_type.
	MessageError = "error"
)

// ErrHandshake reports a malformed or rejected handshake message.
var ErrHandshake = errors.New("session: handshake error")

// ConnectionRequest is the client's initial request_connection payload.
type ConnectionRequest struct {
	ConnectionKey           []byte
	AutoEcho                bool
	AutoEchoIntervalSeconds int8
	SessionType             byte
	BridgeMode              bool
}

// BuildRequestConnection builds the request_connection container a client
// sends immediately after connecting, grounded on
// MessagingClient._send_connection_request.
func BuildRequestConnection(sourceID, sourceSubID string, req ConnectionRequest) *core.ValueContainer {
	container, _ := messaging.NewContainerBuilder().
		WithSource(sourceID, sourceSubID).
		WithTarget("server", "").
		WithType(MessageRequestConnection).
		WithValues(
			values.NewBytesValue("connection_key", req.ConnectionKey),
			values.NewBoolValue("auto_echo", req.AutoEcho),
			values.NewInt8Value("auto_echo_interval_seconds", req.AutoEchoIntervalSeconds),
			values.NewCharValue("session_type", req.SessionType),
			values.NewBoolValue("bridge_mode", req.BridgeMode),
			values.NewArrayValue("snipping_targets"),
		).
		Build()
	return container
}

// ParseRequestConnection extracts the fields of a request_connection
// container. Unrecognized or missing fields default to their zero value;
// the server records connection_key, auto_echo, and the echo interval and
// accepts-but-ignores everything else, matching
// MessagingServer._handle_connection_request.
func ParseRequestConnection(c *core.ValueContainer) ConnectionRequest {
	var req ConnectionRequest
	if v := first(c, "connection_key"); v != nil {
		req.ConnectionKey = v.Data()
	}
	req.AutoEcho, _ = c.GetValueTyped("auto_echo", false).(bool)
	interval, _ := c.GetValueTyped("auto_echo_interval_seconds", int64(0)).(int64)
	req.AutoEchoIntervalSeconds = int8(interval)
	return req
}

// BuildConfirmConnection builds the confirm_connection container a server
// sends in reply to a request_connection. Header target is the client's
// source identity; header source is the server's identity.
func BuildConfirmConnection(serverID, clientID, clientSubID, sessionID, serverVersion string) *core.ValueContainer {
	container, _ := messaging.NewContainerBuilder().
		WithSource(serverID, "").
		WithTarget(clientID, clientSubID).
		WithType(MessageConfirmConnection).
		WithValues(
			values.NewBoolValue("confirm", true),
			values.NewStringValue("session_id", sessionID),
			values.NewStringValue("server_version", serverVersion),
		).
		Build()
	return container
}

// ParseConfirmConnection validates a confirm_connection container and
// returns the session id it carries. An error is returned when the
// mandatory confirm value is absent, matching
// MessagingClient._handle_connection_confirmation's rejection path.
func ParseConfirmConnection(c *core.ValueContainer) (sessionID string, err error) {
	confirm := first(c, "confirm")
	if confirm == nil {
		return "", fmt.Errorf("%w: missing confirm value", ErrHandshake)
	}
	ok, convErr := confirm.ToBool()
	if convErr != nil || !ok {
		return "", fmt.Errorf("%w: confirm value false or invalid", ErrHandshake)
	}
	sessionID, _ = c.GetValueTyped("session_id", "").(string)
	return sessionID, nil
}

// BuildEcho builds a liveness echo container.
func BuildEcho(serverID, clientID, clientSubID string, timestampUnix int64, echoCount uint32) *core.ValueContainer {
	container, _ := messaging.NewContainerBuilder().
		WithSource(serverID, "").
		WithTarget(clientID, clientSubID).
		WithType(MessageEcho).
		WithValues(
			values.NewInt64Value("timestamp", timestampUnix),
			values.NewUInt32Value("echo_count", echoCount),
		).
		Build()
	return container
}

// BuildError builds the error response sent for an unrecognized
// message_type.
func BuildError(serverID, clientID, clientSubID, message string) *core.ValueContainer {
	container, _ := messaging.NewContainerBuilder().
		WithSource(serverID, "").
		WithTarget(clientID, clientSubID).
		WithType(MessageError).
		WithValues(values.NewStringValue("error", message)).
		Build()
	return container
}

// CreateResponse builds a response container that swaps source and target
// relative to original, grounded on ConnectionHandler.create_response.
func CreateResponse(original *core.ValueContainer, responseType string, vals ...core.Value) *core.ValueContainer {
	return core.NewValueContainerFull(
		original.TargetID(), original.TargetSubID(),
		original.SourceID(), original.SourceSubID(),
		responseType,
		vals...,
	)
}

func first(c *core.ValueContainer, name string) core.Value {
	v := c.GetValue(name, 0)
	if v == nil || v.IsNull() {
		return nil
	}
	return v
}
