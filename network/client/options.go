/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package client

import (
	"time"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/network/frame"
)

// ConnectionCallback is invoked once per handshake outcome with the peer's
// identity and whether the handshake succeeded.
type ConnectionCallback func(peerID, peerSubID string, ok bool)

// ReceiveCallback is invoked once per application message received after
// the handshake completes.
type ReceiveCallback func(message *core.ValueContainer)

// Options configures a Client, following the fluent functional-options idiom
// already established by container/messaging.ContainerBuilder.
type Options struct {
	startByte    byte
	endByte      byte
	maxFrameSize uint32
	stopTimeout  time.Duration
	onConnect    ConnectionCallback
	onReceive    ReceiveCallback
}

// Option mutates Options; see With... constructors below.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		startByte:    frame.DefaultStart,
		endByte:      frame.DefaultEnd,
		maxFrameSize: frame.DefaultMaxFrameSize,
		stopTimeout:  5 * time.Second,
	}
}

// WithSentinels overrides the default start/end framing bytes. Both peers
// of a connection must agree on these.
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

// WithStopTimeout overrides how long Stop waits for the receive goroutine to
// exit before abandoning it.
func WithStopTimeout(d time.Duration) Option {
	return func(o *Options) { o.stopTimeout = d }
}

// WithConnectionCallback installs the connection-state callback.
func WithConnectionCallback(cb ConnectionCallback) Option {
	return func(o *Options) { o.onConnect = cb }
}

// WithReceiveCallback installs the message-received callback.
func WithReceiveCallback(cb ReceiveCallback) Option {
	return func(o *Options) { o.onReceive = cb }
}
