// File: api/codec.go
// Package api defines the codec contract binding a wire protocol to a link.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// HandshakeStatus is the tri-state outcome of a codec handshake step.
type HandshakeStatus int

const (
	// HandshakeIncomplete: more input is needed; the link keeps
	// accumulating RX bytes.
	HandshakeIncomplete HandshakeStatus = iota
	// HandshakeComplete: the link transitions to OPEN and emits OPEN.
	HandshakeComplete
	// HandshakeFailed: the link surfaces ERROR(PROTOCOL) and stays in
	// HANDSHAKE; abandoning the link is the caller's decision.
	HandshakeFailed
)

// DecodeSink is the narrow capability a link hands to Decode instead of a
// back-pointer: an event out-queue and a frame-length setter. *link.Link
// implements it.
type DecodeSink interface {
	// PushEvent enqueues a metadata event (FRAME, PING, PONG) into the
	// link's event queue. Returns false when the queue is full; the
	// codec may drop metadata in that case.
	PushEvent(ev Event) bool

	// SetFrameLen records how many buffered bytes, header included,
	// belong to the frame the codec just recognised.
	SetFrameLen(n int)
}

// Codec is the handshake/decode/encode trio interpreting a wire protocol
// on behalf of a link. A Codec value is immutable and may be shared across
// links; per-link mutable state travels in the opaque state argument,
// owned by the caller.
type Codec interface {
	// Name identifies the codec for diagnostics.
	Name() string

	// Handshake inspects the accumulated RX prefix in and may write a
	// response prefix into out. It reports how many input bytes it
	// consumed, how many output bytes it produced, and the step outcome.
	Handshake(state any, in, out []byte) (consumed, produced int, status HandshakeStatus)

	// Decode inspects, but does not consume, the RX prefix data. It may
	// push metadata events into sink and record a frame boundary via
	// sink.SetFrameLen. The link decides how much input to advance.
	// A non-ErrNone result becomes an ERROR event.
	Decode(state any, sink DecodeSink, data []byte) ErrKind

	// Encode serialises one outbound message into out, returning the
	// encoded length. ErrOverflow means out was too small.
	Encode(state any, opcode byte, data, out []byte) (n int, kind ErrKind)
}
