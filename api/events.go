// File: api/events.go
// Package api defines the event records produced by the link runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "github.com/momentics/wen/arena"

// EventType tags an Event produced by Poll.
type EventType int

const (
	EventNone EventType = iota
	EventOpen
	EventSlice
	EventFrame
	EventPing
	EventPong
	EventClose
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventNone:
		return "none"
	case EventOpen:
		return "open"
	case EventSlice:
		return "slice"
	case EventFrame:
		return "frame"
	case EventPing:
		return "ping"
	case EventPong:
		return "pong"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// SliceFlags indicate where a slice lies within a message stream.
type SliceFlags uint

const (
	SliceBegin SliceFlags = 1 << iota
	SliceCont
	SliceEnd
)

// Slice is a zero-copy view of received bytes backed by the link's arena.
//
// The memory stays valid until the slice is passed to Link.Release; the
// embedded snapshot is the handle the link uses to roll the arena back.
type Slice struct {
	Data  []byte
	Flags SliceFlags
	Snap  arena.Snapshot
}

// Frame carries the metadata of a just-decoded wire frame. It is emitted
// by framed codecs (WebSocket) and is not required by the core.
type Frame struct {
	Fin    bool
	Masked bool
	Opcode byte
	Length int64
}

// Event is the tagged record returned by Poll. Only the field matching
// Type is meaningful.
type Event struct {
	Type      EventType
	Slice     Slice   // EventSlice
	Frame     Frame   // EventFrame
	CloseCode uint16  // EventClose
	Err       ErrKind // EventError
}
