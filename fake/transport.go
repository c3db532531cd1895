// Package fake
// Author: momentics <momentics@gmail.com>
//
// Scripted in-memory transport for tests and development. Provides
// predictable, controllable behavior for the wen transport contract:
// reads drain a pre-fed input script, writes accumulate into an output
// buffer, and an exhausted or remotely-closed script reads as EOF, the
// way a closed socket would.

package fake

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/momentics/wen/api"
)

// Ensure the transport contract is met.
var _ api.Transport = (*Transport)(nil)

// Transport is a scripted byte stream.
type Transport struct {
	mu sync.Mutex

	in  []byte
	pos int

	out []byte

	closed     bool
	writeErr   error
	writeLimit int // per-call write ceiling; 0 means unlimited
}

// NewTransport creates an empty transport. Reads return EOF until Feed
// supplies data.
func NewTransport() *Transport {
	return &Transport{}
}

// Read drains up to len(p) bytes of the remaining script. An empty or
// closed script reads as (0, io.EOF).
func (t *Transport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.pos >= len(t.in) {
		return 0, io.EOF
	}
	n := copy(p, t.in[t.pos:])
	t.pos += n
	return n, nil
}

// Write appends p to the output buffer, honoring the configured error
// and short-write ceiling.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writeErr != nil {
		return 0, t.writeErr
	}
	n := len(p)
	if t.writeLimit > 0 && n > t.writeLimit {
		n = t.writeLimit
	}
	t.out = append(t.out, p[:n]...)
	return n, nil
}

// Feed appends raw bytes to the read script.
func (t *Transport) Feed(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.in = append(t.in, b...)
}

// FeedFrame appends a minimal unmasked frame: FIN set, a 7-bit length,
// then the payload verbatim.
func (t *Transport) FeedFrame(opcode byte, payload []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.in = append(t.in, 0x80|opcode, byte(len(payload)))
	t.in = append(t.in, payload...)
}

// FeedMaskedFrame appends a client-style masked frame with the given mask
// key, choosing the 7/16/64-bit length form by payload size.
func (t *Transport) FeedMaskedFrame(opcode byte, payload []byte, key [4]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.in = append(t.in, 0x80|opcode)
	switch {
	case len(payload) <= 125:
		t.in = append(t.in, 0x80|byte(len(payload)))
	case len(payload) <= 0xFFFF:
		t.in = append(t.in, 0x80|126)
		t.in = binary.BigEndian.AppendUint16(t.in, uint16(len(payload)))
	default:
		t.in = append(t.in, 0x80|127)
		t.in = binary.BigEndian.AppendUint64(t.in, uint64(len(payload)))
	}
	t.in = append(t.in, key[:]...)
	for i, b := range payload {
		t.in = append(t.in, b^key[i%4])
	}
}

// CloseRemote makes every further read report EOF, as if the peer closed
// the connection.
func (t *Transport) CloseRemote() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// SetWriteError makes every further write fail with err.
func (t *Transport) SetWriteError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeErr = err
}

// SetWriteLimit caps the bytes accepted per Write call, forcing short
// writes. Zero removes the cap.
func (t *Transport) SetWriteLimit(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeLimit = n
}

// Written returns a copy of everything written so far.
func (t *Transport) Written() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]byte, len(t.out))
	copy(out, t.out)
	return out
}

// ClearWritten discards the accumulated output.
func (t *Transport) ClearWritten() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out = t.out[:0]
}
