// File: transport/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"net"

	"github.com/momentics/wen/api"
)

// Ensure the transport contract is met.
var _ api.Transport = (*Conn)(nil)

// Conn adapts a net.Conn to the link transport contract. Reads and
// writes block; io.EOF from the connection is the EOF signal the link
// expects, so nothing needs translating.
type Conn struct {
	c net.Conn
}

// NewConn wraps c. The caller keeps ownership: closing the connection is
// what makes the link observe EOF and wind down.
func NewConn(c net.Conn) *Conn {
	return &Conn{c: c}
}

func (t *Conn) Read(p []byte) (int, error)  { return t.c.Read(p) }
func (t *Conn) Write(p []byte) (int, error) { return t.c.Write(p) }

// Underlying returns the wrapped connection.
func (t *Conn) Underlying() net.Conn { return t.c }
