/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package session

import "testing"

func TestServerStateTransitions(t *testing.T) {
	s := ServerNew
	s = s.OnRequestConnection()
	if s != ServerActive {
		t.Fatalf("expected active, got %s", s)
	}
	s = s.OnClose()
	if s != ServerClosed {
		t.Fatalf("expected closed, got %s", s)
	}
	if s.OnRequestConnection() != ServerClosed {
		t.Fatalf("closed must be terminal")
	}
}

func TestClientStateTransitions(t *testing.T) {
	c := ClientConnecting
	c = c.OnDial()
	if c != ClientAwaitingConfirm {
		t.Fatalf("expected awaiting_confirm, got %s", c)
	}
	c = c.OnConfirmed()
	if c != ClientActive {
		t.Fatalf("expected active, got %s", c)
	}
	c = c.OnClose()
	if c != ClientClosed {
		t.Fatalf("expected closed, got %s", c)
	}
}
