// File: link/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The poll step is the entire engine. Ordering is load-bearing: drain the
// event queue, flush TX, read RX once, then run the handshake or the
// decoder. Flushing before reading bounds write latency and keeps pending
// handshake responses, control frames and close frames from being starved
// by inbound traffic.

package link

import (
	"io"

	"github.com/momentics/wen/api"
)

// Poll advances the link by one step and returns the next event, if any.
// Callers loop: a false second return means "no event this step", not
// end of stream. After CLOSE has been delivered every Poll returns false.
func (l *Link) Poll() (api.Event, bool) {
	// Drain first: events already queued go out one per poll, in order.
	if ev, ok := l.events.Dequeue(); ok {
		if ev.Type == api.EventClose && l.state != StateClosed {
			l.state = StateClosed
			l.arena.Release()
		}
		return ev, true
	}

	if l.state == StateClosed {
		return api.Event{}, false
	}

	if l.codec == nil {
		return errorEvent(api.ErrUnsupported), true
	}

	// Flush TX before any read.
	if l.txLen > 0 {
		n, err := l.io.Write(l.tx[:l.txLen])
		if err != nil || n < 0 {
			return errorEvent(api.ErrIO), true
		}
		if n < l.txLen {
			copy(l.tx, l.tx[n:l.txLen])
			l.txLen -= n
		} else {
			l.txLen = 0
		}
		if l.txLen == 0 {
			l.maybeQueueClose()
		}
		return api.Event{}, false
	}

	// A closing link only waits for its slice to come home and its
	// CLOSE to be queued; it reads nothing further.
	if l.state == StateClosing {
		l.maybeQueueClose()
		return api.Event{}, false
	}

	// One bounded read into the RX tail.
	if room := len(l.rx) - l.rxLen; room > 0 {
		n, err := l.io.Read(l.rx[l.rxLen:])
		if err != nil && err != io.EOF {
			return errorEvent(api.ErrIO), true
		}
		if n == 0 {
			// EOF: the peer is gone. CLOSE is delivered by a later
			// drain so pending events keep their order.
			l.state = StateClosing
			l.maybeQueueClose()
			return api.Event{}, false
		}
		l.rxLen += n
	}

	if l.state == StateHandshake {
		return l.pollHandshake()
	}
	return l.pollDecode()
}

// maybeQueueClose queues the lifetime's single CLOSE event once the link
// is closing, nothing remains to flush, and no slice is outstanding.
func (l *Link) maybeQueueClose() {
	if l.state == StateClosing && !l.closeQueued && !l.sliceOutstanding {
		l.queueClose()
	}
}

// pollHandshake feeds the accumulated RX prefix to the codec handshake.
// Produced output lands in the TX buffer (flushed on the next poll) and
// consumed input is compacted out of RX.
func (l *Link) pollHandshake() (api.Event, bool) {
	consumed, produced, status := l.codec.Handshake(l.codecState, l.rx[:l.rxLen], l.tx[l.txLen:])
	if produced > 0 {
		l.txLen += produced
	}
	if consumed > 0 {
		copy(l.rx, l.rx[consumed:l.rxLen])
		l.rxLen -= consumed
	}
	switch status {
	case api.HandshakeComplete:
		l.state = StateOpen
		return api.Event{Type: api.EventOpen}, true
	case api.HandshakeFailed:
		// Stay in HANDSHAKE; abandoning the link is the caller's call.
		return errorEvent(api.ErrProtocol), true
	default:
		return api.Event{}, false
	}
}

// pollDecode asks the codec about the RX prefix, then emits at most one
// slice drawn from it.
func (l *Link) pollDecode() (api.Event, bool) {
	var sliceLen int
	if l.frameLen > 0 {
		// Mid-frame: the prefix is known payload, nothing to decode.
		sliceLen = min(l.frameLen, l.maxSlice)
	} else {
		sliceLen = min(l.rxLen, l.maxSlice)
		if sliceLen == 0 {
			return api.Event{}, false
		}
		if kind := l.codec.Decode(l.codecState, l, l.rx[:sliceLen]); kind != api.ErrNone {
			return errorEvent(kind), true
		}
		if l.frameLen > 0 {
			// The codec recognised a frame boundary; the slice stops
			// at it.
			sliceLen = min(l.frameLen, l.maxSlice)
		}
	}
	sliceLen = min(sliceLen, l.rxLen)
	if sliceLen == 0 {
		return api.Event{}, false
	}

	if l.sliceOutstanding {
		panic("wen: poll would emit a slice while one is outstanding")
	}

	snap := l.arena.Mark()
	buf := l.arena.Alloc(sliceLen)
	if buf == nil {
		return errorEvent(api.ErrOverflow), true
	}
	copy(buf, l.rx[:sliceLen])

	ev := api.Event{
		Type: api.EventSlice,
		Slice: api.Slice{
			Data:  buf,
			Flags: api.SliceBegin | api.SliceEnd,
			Snap:  snap,
		},
	}
	if !l.events.Enqueue(ev) {
		l.arena.Reset(snap)
		return errorEvent(api.ErrOverflow), true
	}

	copy(l.rx, l.rx[sliceLen:l.rxLen])
	l.rxLen -= sliceLen
	l.sliceOutstanding = true
	if l.frameLen > 0 {
		l.frameLen -= sliceLen
	}

	// Deliver directly. Metadata the decoder queued ahead of the slice
	// (FRAME, PING, PONG) comes out first; the rest drains on later
	// polls.
	out, _ := l.events.Dequeue()
	return out, true
}
