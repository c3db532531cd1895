// File: protocol/codec_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// End-to-end: the WebSocket codec driven through a real link over the
// scripted transport.

package protocol_test

import (
	"bytes"
	"testing"

	"github.com/momentics/wen/api"
	"github.com/momentics/wen/fake"
	"github.com/momentics/wen/link"
	"github.com/momentics/wen/protocol"
)

const sampleRequest = "GET /chat HTTP/1.1\r\n" +
	"Host: server.example.com\r\n" +
	"Upgrade: websocket\r\n" +
	"Connection: Upgrade\r\n" +
	"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n" +
	"Sec-WebSocket-Version: 13\r\n\r\n"

func pollNext(t *testing.T, l *link.Link) api.Event {
	t.Helper()
	for i := 0; i < 64; i++ {
		if ev, ok := l.Poll(); ok {
			return ev
		}
	}
	t.Fatal("no event after 64 polls")
	return api.Event{}
}

func TestWebSocketSession(t *testing.T) {
	ft := fake.NewTransport()
	l, err := link.New(ft)
	if err != nil {
		t.Fatalf("link init: %v", err)
	}
	l.AttachCodec(protocol.WebSocket, nil)

	// Upgrade.
	ft.Feed([]byte(sampleRequest))
	ev := pollNext(t, l)
	if ev.Type != api.EventOpen {
		t.Fatalf("expected OPEN, got %v", ev.Type)
	}

	// The 101 response sits in TX until the next poll flushes it.
	if l.TXLen() == 0 {
		t.Fatal("handshake response not queued")
	}
	if _, ok := l.Poll(); ok {
		t.Fatal("flush poll must not produce an event")
	}
	resp := ft.Written()
	if !bytes.Contains(resp, []byte("Sec-WebSocket-Accept: s3pPLMBiTxaQ9kYGzzhZRbK+xOo=\r\n")) {
		t.Fatalf("handshake response: %q", resp)
	}
	ft.ClearWritten()

	// One masked text frame becomes FRAME then SLICE; the slice carries
	// the raw frame and the application unmasks it.
	key := [4]byte{0x21, 0x43, 0x65, 0x87}
	ft.FeedMaskedFrame(protocol.OpcodeText, []byte("hello"), key)

	ev = pollNext(t, l)
	if ev.Type != api.EventFrame {
		t.Fatalf("expected FRAME, got %v", ev.Type)
	}
	if ev.Frame.Opcode != protocol.OpcodeText || ev.Frame.Length != 5 || !ev.Frame.Fin {
		t.Fatalf("frame metadata %+v", ev.Frame)
	}

	ev = pollNext(t, l)
	if ev.Type != api.EventSlice {
		t.Fatalf("expected SLICE, got %v", ev.Type)
	}
	opcode, fin, payload, kind := protocol.UnmaskFrame(ev.Slice.Data)
	if kind != api.ErrNone || opcode != protocol.OpcodeText || !fin || string(payload) != "hello" {
		t.Fatalf("unmasked %d/%v/%q/%v", opcode, fin, payload, kind)
	}
	l.Release(ev.Slice)

	// Echo back and verify the unmasked server frame on the wire.
	if err := l.Send(protocol.OpcodeText, []byte("hello")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, ok := l.Poll(); ok {
		t.Fatal("flush poll must not produce an event")
	}
	if !bytes.Equal(ft.Written(), []byte{0x81, 0x05, 'h', 'e', 'l', 'l', 'o'}) {
		t.Fatalf("echo wire %x", ft.Written())
	}

	// Peer goes away: exactly one CLOSE.
	ft.CloseRemote()
	ev = pollNext(t, l)
	if ev.Type != api.EventClose {
		t.Fatalf("expected CLOSE, got %v", ev.Type)
	}
	if _, ok := l.Poll(); ok {
		t.Fatal("poll after CLOSED produced an event")
	}
}

func TestWebSocketPing(t *testing.T) {
	ft := fake.NewTransport()
	l, err := link.New(ft)
	if err != nil {
		t.Fatalf("link init: %v", err)
	}
	l.AttachCodec(protocol.WebSocket, nil)
	ft.Feed([]byte(sampleRequest))
	if ev := pollNext(t, l); ev.Type != api.EventOpen {
		t.Fatalf("expected OPEN, got %v", ev.Type)
	}

	key := [4]byte{1, 2, 3, 4}
	ft.FeedMaskedFrame(protocol.OpcodePing, []byte("hi"), key)

	// FRAME, PING, then the slice with the raw ping frame.
	if ev := pollNext(t, l); ev.Type != api.EventFrame {
		t.Fatalf("expected FRAME, got %v", ev.Type)
	}
	if ev := pollNext(t, l); ev.Type != api.EventPing {
		t.Fatalf("expected PING, got %v", ev.Type)
	}
	ev := pollNext(t, l)
	if ev.Type != api.EventSlice {
		t.Fatalf("expected SLICE, got %v", ev.Type)
	}
	opcode, _, payload, kind := protocol.UnmaskFrame(ev.Slice.Data)
	if kind != api.ErrNone || opcode != protocol.OpcodePing || string(payload) != "hi" {
		t.Fatalf("ping payload %q (%v)", payload, kind)
	}
	l.Release(ev.Slice)
}

func TestWebSocketProtocolErrorSurfaces(t *testing.T) {
	ft := fake.NewTransport()
	l, err := link.New(ft)
	if err != nil {
		t.Fatalf("link init: %v", err)
	}
	l.AttachCodec(protocol.WebSocket, nil)
	ft.Feed([]byte(sampleRequest))
	if ev := pollNext(t, l); ev.Type != api.EventOpen {
		t.Fatalf("expected OPEN, got %v", ev.Type)
	}

	// Unmasked client frame: the decoder reports PROTOCOL and the link
	// turns it into an event on the same poll.
	ft.FeedFrame(protocol.OpcodeText, []byte("abc"))
	ev := pollNext(t, l)
	if ev.Type != api.EventError || ev.Err != api.ErrProtocol {
		t.Fatalf("expected ERROR(protocol), got %v/%v", ev.Type, ev.Err)
	}
}
