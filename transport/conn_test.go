// File: transport/conn_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"io"
	"net"
	"testing"
)

func TestConnRoundTrip(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	ta := NewConn(a)

	go func() {
		b.Write([]byte("ping"))
		b.Close()
	}()

	buf := make([]byte, 16)
	n, err := ta.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("read %q", buf[:n])
	}

	if _, err := ta.Read(buf); err != io.EOF {
		t.Fatalf("expected EOF after peer close, got %v", err)
	}
}
