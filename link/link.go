// File: link/link.go
// Package link implements the wen link runtime: one bidirectional
// byte-stream connection driven through a protocol state machine by the
// pull-based poll engine in poll.go.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A link owns its RX/TX buffers, arena and event queue; the codec is
// borrowed and may be shared across links. A link is confined to a single
// goroutine for its whole lifetime and performs no background work: the
// only calls that may block are the transport's Read and Write, at most
// one of each per Poll.

package link

import (
	"github.com/momentics/wen/api"
	"github.com/momentics/wen/arena"
	"github.com/momentics/wen/internal/evq"
)

// State is the lifecycle position of a link.
type State int

const (
	StateInit State = iota
	StateHandshake
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHandshake:
		return "handshake"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Link is a single wire connection.
type Link struct {
	state State
	io    api.Transport

	rx    []byte
	rxLen int
	tx    []byte
	txLen int

	// frameLen counts the buffered bytes still belonging to the frame
	// the codec last recognised, header and mask included.
	frameLen int

	codec      api.Codec
	codecState any

	arena  *arena.Arena
	events *evq.Queue

	maxSlice int

	sliceOutstanding bool
	closeQueued      bool
	closeCode        uint16
}

// Compile-time check of the decode capability.
var _ api.DecodeSink = (*Link)(nil)

// New initializes a link over t with the default Config.
func New(t api.Transport) (*Link, error) {
	return NewWithConfig(t, DefaultConfig())
}

// NewWithConfig initializes a link over t. All buffers, the arena and the
// event queue are allocated here; the link allocates nothing afterwards.
func NewWithConfig(t api.Transport, cfg *Config) (*Link, error) {
	if t == nil {
		return nil, api.ErrState
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Link{
		state:    StateInit,
		io:       t,
		rx:       make([]byte, c.RXBuffer),
		tx:       make([]byte, c.TXBuffer),
		arena:    arena.New(c.RXBuffer + c.TXBuffer),
		events:   evq.New(c.EventQueueCap),
		maxSlice: c.MaxSlice,
	}, nil
}

// AttachCodec binds the protocol codec and its per-link state to the
// link and moves a fresh link into HANDSHAKE. Must be called before
// polling.
func (l *Link) AttachCodec(c api.Codec, state any) {
	if c == nil {
		return
	}
	l.codec = c
	l.codecState = state
	if l.state == StateInit {
		l.state = StateHandshake
	}
}

// State reports the current lifecycle position.
func (l *Link) State() State { return l.state }

// TXLen reports the number of unflushed transmit bytes.
func (l *Link) TXLen() int { return l.txLen }

// RXLen reports the number of buffered unprocessed receive bytes.
func (l *Link) RXLen() int { return l.rxLen }

// PushEvent implements api.DecodeSink: the codec's out-queue capability.
func (l *Link) PushEvent(ev api.Event) bool {
	return l.events.Enqueue(ev)
}

// SetFrameLen implements api.DecodeSink: records the total byte length of
// the frame the codec recognised in the RX prefix.
func (l *Link) SetFrameLen(n int) {
	l.frameLen = n
}

// Release returns a slice previously produced by Poll. The arena rolls
// back to the slice's snapshot, which frees the payload because no newer
// allocation can exist while the slice was outstanding. Releasing when no
// slice is outstanding is a caller bug.
func (l *Link) Release(s api.Slice) {
	if !l.sliceOutstanding {
		panic("wen: release without outstanding slice")
	}
	l.arena.Reset(s.Snap)
	l.sliceOutstanding = false
}

// Send encodes one outbound message into the tail of the TX buffer. The
// transport is not touched; the next Poll flushes. ErrOverflow reports a
// TX buffer that is full or too small for the encoding.
func (l *Link) Send(opcode byte, data []byte) error {
	if l.codec == nil {
		return api.ErrState
	}
	if l.state == StateClosed {
		return api.ErrClosed
	}
	if l.txLen >= len(l.tx) {
		return api.ErrOverflow
	}
	n, kind := l.codec.Encode(l.codecState, opcode, data, l.tx[l.txLen:])
	if kind != api.ErrNone {
		return kind
	}
	l.txLen += n
	return nil
}

// Close initiates a clean protocol-level shutdown carrying code. The
// protocol close frame must be the next thing on the wire, so pending TX
// refuses with ErrState. The codec is asked to encode a close frame with
// the given opcode; if it declines the frame is omitted and the state
// transition holds regardless. The CLOSE event is delivered by a later
// Poll, after the frame (if any) has been flushed.
func (l *Link) Close(code uint16, opcode byte) error {
	if l.state == StateClosed {
		return nil
	}
	if l.txLen != 0 {
		return api.ErrState
	}
	l.state = StateClosing
	l.closeCode = code
	if l.codec != nil {
		payload := [2]byte{byte(code >> 8), byte(code)}
		if n, kind := l.codec.Encode(l.codecState, opcode, payload[:], l.tx[:]); kind == api.ErrNone {
			l.txLen = n
		}
	}
	return nil
}

// queueClose enqueues the single CLOSE event of the link's lifetime.
// Enqueue can only fail on a full ring; the flag stays clear so a later
// poll retries.
func (l *Link) queueClose() {
	if l.events.Enqueue(api.Event{Type: api.EventClose, CloseCode: l.closeCode}) {
		l.closeQueued = true
	}
}

func errorEvent(kind api.ErrKind) api.Event {
	return api.Event{Type: api.EventError, Err: kind}
}
