/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package server

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kcenon/messaging-system/container/core"
	"github.com/kcenon/messaging-system/container/values"
	"github.com/kcenon/messaging-system/network/client"
	"github.com/kcenon/messaging-system/network/session"
)

func startTestServer(t *testing.T, opts ...Option) (*Server, string) {
	t.Helper()
	srv := New("server", opts...)
	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = srv.Stop() })

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		srv.mu.Lock()
		l := srv.listener
		srv.mu.Unlock()
		if l != nil {
			return srv, l.Addr().String()
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("server never bound a listener")
	return nil, ""
}

var testClientSeq int

func nextTestClientID() string {
	testClientSeq++
	return fmt.Sprintf("client-%d", testClientSeq)
}

func connectTestClient(t *testing.T, addr string, opts ...client.Option) (*client.Client, chan bool) {
	t.Helper()
	confirmed := make(chan bool, 1)
	allOpts := append([]client.Option{
		client.WithConnectionCallback(func(peerID, peerSubID string, ok bool) {
			confirmed <- ok
		}),
	}, opts...)
	c := client.New(nextTestClientID(), []byte("key"), allOpts...)
	if err := c.Start(addr, false, 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = c.Stop() })
	return c, confirmed
}

func TestHandshakeAssignsServerIdentity(t *testing.T) {
	_, addr := startTestServer(t)
	_, confirmed := connectTestClient(t, addr)

	select {
	case ok := <-confirmed:
		if !ok {
			t.Fatalf("handshake reported failure")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for handshake confirmation")
	}
}

func TestEchoScheduler(t *testing.T) {
	srv, addr := startTestServer(t, WithEchoTick(20*time.Millisecond))

	var mu sync.Mutex
	echoes := 0
	received := make(chan struct{}, 8)
	c := client.New(nextTestClientID(), []byte("key"),
		client.WithReceiveCallback(func(message *core.ValueContainer) {
			mu.Lock()
			echoes++
			mu.Unlock()
			received <- struct{}{}
		}),
	)
	if err := c.Start(addr, true, 1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = c.Stop() })

	select {
	case <-received:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for an echo")
	}

	mu.Lock()
	got := echoes
	mu.Unlock()
	if got == 0 {
		t.Fatalf("expected at least one echo, got %d", got)
	}
	_ = srv
}

func TestBroadcastExcludesGivenClient(t *testing.T) {
	srv, addr := startTestServer(t)

	receivedA := make(chan *core.ValueContainer, 1)
	receivedB := make(chan *core.ValueContainer, 1)

	clientA, confirmA := connectTestClient(t, addr, client.WithReceiveCallback(func(m *core.ValueContainer) {
		receivedA <- m
	}))
	clientB, confirmB := connectTestClient(t, addr, client.WithReceiveCallback(func(m *core.ValueContainer) {
		receivedB <- m
	}))
	waitConfirmed(t, confirmA)
	waitConfirmed(t, confirmB)

	clients := srv.GetConnectedClients()
	if len(clients) != 2 {
		t.Fatalf("expected 2 connected clients, got %d", len(clients))
	}

	var excludeID string
	for id := range clients {
		excludeID = id
		break
	}

	broadcast := core.NewValueContainerWithType("announcement", values.NewStringValue("text", "hello"))
	sent := srv.Broadcast(broadcast, map[string]bool{excludeID: true})
	if sent != 1 {
		t.Fatalf("expected exactly 1 recipient, got %d", sent)
	}

	select {
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for broadcast delivery")
	case <-firstOf(receivedA, receivedB):
	}

	_ = clientA
	_ = clientB
}

func waitConfirmed(t *testing.T, ch chan bool) {
	t.Helper()
	select {
	case ok := <-ch:
		if !ok {
			t.Fatalf("handshake reported failure")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for handshake confirmation")
	}
}

func firstOf(a, b chan *core.ValueContainer) chan *core.ValueContainer {
	out := make(chan *core.ValueContainer, 1)
	go func() {
		select {
		case v := <-a:
			out <- v
		case v := <-b:
			out <- v
		}
	}()
	return out
}

// A "broadcast" request is application protocol layered on the core: a
// handler registered on the server's dispatch table relays the message to
// every other session and confirms back to the sender. The sender must see
// only its confirmation; the other clients only the relayed message.
func TestBroadcastRequestRelaysToOthers(t *testing.T) {
	srv, addr := startTestServer(t)
	srv.Handlers().Register("broadcast", func(peerID string, message *core.ValueContainer) {
		text, _ := message.GetValueTyped("message", "").(string)
		includeSender, _ := message.GetValueTyped("include_sender", true).(bool)

		relay := core.NewValueContainerWithType("broadcast_message",
			values.NewStringValue("from", peerID),
			values.NewStringValue("message", text),
		)
		exclude := map[string]bool{}
		if !includeSender {
			exclude[peerID] = true
		}
		count := srv.Broadcast(relay, exclude)

		confirm := session.CreateResponse(message, "broadcast_sent",
			values.NewInt32Value("recipients", int32(count)))
		if err := srv.SendToClient(peerID, confirm); err != nil {
			t.Errorf("SendToClient: %v", err)
		}
	})

	type delivery struct {
		messageType string
		from        string
	}
	mailbox := func() (chan delivery, client.Option) {
		ch := make(chan delivery, 4)
		return ch, client.WithReceiveCallback(func(m *core.ValueContainer) {
			from, _ := m.GetValueTyped("from", "").(string)
			ch <- delivery{messageType: m.MessageType(), from: from}
		})
	}

	senderBox, senderOpt := mailbox()
	peerBBox, peerBOpt := mailbox()
	peerCBox, peerCOpt := mailbox()

	sender, confirmSender := connectTestClient(t, addr, senderOpt)
	_, confirmB := connectTestClient(t, addr, peerBOpt)
	_, confirmC := connectTestClient(t, addr, peerCOpt)
	waitConfirmed(t, confirmSender)
	waitConfirmed(t, confirmB)
	waitConfirmed(t, confirmC)

	if err := sender.SendMessage("server", "broadcast",
		values.NewStringValue("message", "hello everyone"),
		values.NewBoolValue("include_sender", false),
	); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	var senderID string
	for _, box := range []chan delivery{peerBBox, peerCBox} {
		select {
		case d := <-box:
			if d.messageType != "broadcast_message" {
				t.Fatalf("peer received %q, want broadcast_message", d.messageType)
			}
			if senderID == "" {
				senderID = d.from
			} else if d.from != senderID {
				t.Fatalf("from mismatch across peers: %q vs %q", d.from, senderID)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for relayed broadcast")
		}
	}

	select {
	case d := <-senderBox:
		if d.messageType != "broadcast_sent" {
			t.Fatalf("sender received %q, want broadcast_sent", d.messageType)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for broadcast confirmation")
	}
	select {
	case d := <-senderBox:
		t.Fatalf("sender received unexpected extra message %q", d.messageType)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnrecognizedMessageTypeGetsErrorResponse(t *testing.T) {
	_, addr := startTestServer(t)

	confirmed := make(chan bool, 1)
	errs := make(chan *core.ValueContainer, 1)
	c := client.New(nextTestClientID(), []byte("key"),
		client.WithConnectionCallback(func(peerID, peerSubID string, ok bool) { confirmed <- ok }),
		client.WithReceiveCallback(func(m *core.ValueContainer) {
			if m.MessageType() == "error" {
				errs <- m
			}
		}),
	)
	if err := c.Start(addr, false, 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = c.Stop() })
	waitConfirmed(t, confirmed)

	if err := c.SendMessage("server", "totally_unknown"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for error response")
	}
}
