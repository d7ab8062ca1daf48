/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package server

import (
	"time"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/network/frame"
)

// ConnectionCallback is invoked once per handshake outcome for a newly
// connected client.
type ConnectionCallback func(clientID, clientSubID string, ok bool)

// ReceiveCallback is invoked once per application message received from a
// connected client, after its handshake completed.
type ReceiveCallback func(clientID string, message *core.ValueContainer)

// DisconnectCallback is invoked exactly once per session after it has been
// removed from the registry.
type DisconnectCallback func(clientID string)

// Options configures a Server, following the same functional-options idiom
// as network/client.Options.
type Options struct {
	startByte           byte
	endByte             byte
	maxFrameSize        uint32
	echoTick            time.Duration
	stopTimeout         time.Duration
	threadSafeResponses bool
	onConnect           ConnectionCallback
	onReceive           ReceiveCallback
	onDisconnect        DisconnectCallback
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		startByte:    frame.DefaultStart,
		endByte:      frame.DefaultEnd,
		maxFrameSize: frame.DefaultMaxFrameSize,
		echoTick:     100 * time.Millisecond,
		stopTimeout:  5 * time.Second,
	}
}

// WithSentinels overrides the default start/end framing bytes.
func WithSentinels(startByte, endByte byte) Option {
	return func(o *Options) {
		o.startByte = startByte
		o.endByte = endByte
	}
}

// WithMaxFrameSize overrides the default maximum accepted frame payload size.
func WithMaxFrameSize(n uint32) Option {
	return func(o *Options) { o.maxFrameSize = n }
}

// WithEchoTick overrides the default 100ms echo scheduler wake interval.
func WithEchoTick(d time.Duration) Option {
	return func(o *Options) { o.echoTick = d }
}

// WithStopTimeout overrides how long Stop waits for the accept loop and echo
// scheduler to exit before abandoning them.
func WithStopTimeout(d time.Duration) Option {
	return func(o *Options) { o.stopTimeout = d }
}

// WithThreadSafeContainers makes response/echo containers built by the
// server opt into ValueContainer's thread-safe mode.
func WithThreadSafeContainers(enabled bool) Option {
	return func(o *Options) { o.threadSafeResponses = enabled }
}

// WithConnectionCallback installs the connection-state callback.
func WithConnectionCallback(cb ConnectionCallback) Option {
	return func(o *Options) { o.onConnect = cb }
}

// WithReceiveCallback installs the message-received callback.
func WithReceiveCallback(cb ReceiveCallback) Option {
	return func(o *Options) { o.onReceive = cb }
}

// WithDisconnectCallback installs the disconnect callback.
func WithDisconnectCallback(cb DisconnectCallback) Option {
	return func(o *Options) { o.onDisconnect = cb }
}
