/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package di provides Wire provider sets for the network/client and
// network/server runtimes, following the same pattern as container/di.
package di

import (
	"github.com/google/wire"

	"github.com/kcenon/messaging-system/network/client"
	"github.com/kcenon/messaging-system/network/server"
)

// ServerID is the wire-injectable source_id a Server reports on every
// message it originates.
type ServerID string

// ClientID is the wire-injectable source_id a Client uses until the server
// assigns it a confirmed identity.
type ClientID string

// ConnectionKey is the wire-injectable authentication key a Client presents
// in its request_connection.
type ConnectionKey []byte

func provideServer(id ServerID) *server.Server {
	return server.New(string(id))
}

func provideClient(id ClientID, key ConnectionKey) *client.Client {
	return client.New(string(id), []byte(key))
}

// ServerProviderSet wires a *server.Server from a ServerID.
//
//	wire.Build(di.ServerProviderSet, di.ServerID("chat-server"))
var ServerProviderSet = wire.NewSet(provideServer)

// ClientProviderSet wires a *client.Client from a ClientID and
// ConnectionKey.
//
//	wire.Build(di.ClientProviderSet, di.ClientID("client-1"), di.ConnectionKey("secret"))
var ClientProviderSet = wire.NewSet(provideClient)
