/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package session

import (
	"sync"

	"github.com/kcenon/messaging-system/container/core"
)

// HandlerFunc handles one dispatched message for a given peer.
type HandlerFunc func(peerID string, message *core.ValueContainer)

// HandlerTable routes containers by message_type, grounded on
// ConnectionHandler.register_handler/unregister_handler/handle_message.
type HandlerTable struct {
	mu       sync.Mutex
	handlers map[string]HandlerFunc
}

// NewHandlerTable creates an empty handler table.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{handlers: make(map[string]HandlerFunc)}
}

// Register installs (or replaces) the handler for messageType.
func (t *HandlerTable) Register(messageType string, handler HandlerFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[messageType] = handler
}

// Unregister removes the handler for messageType, if any.
func (t *HandlerTable) Unregister(messageType string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.handlers, messageType)
}

// Dispatch routes message to its registered handler and reports whether one
// was found and invoked.
func (t *HandlerTable) Dispatch(peerID string, message *core.ValueContainer) bool {
	t.mu.Lock()
	handler, ok := t.handlers[message.MessageType()]
	t.mu.Unlock()
	if !ok {
		return false
	}
	handler(peerID, message)
	return true
}
