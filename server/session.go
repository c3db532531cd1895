// File: server/session.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A session wraps one link for handler code. Outbound messages that do
// not fit the link's TX buffer wait in a FIFO and drain as later polls
// free room, so a bursty handler sees backpressure instead of hard
// failure.

package server

import (
	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/wen/api"
	"github.com/momentics/wen/link"
)

type pendingMsg struct {
	opcode  byte
	payload []byte
}

// Session is the per-connection handle passed to handlers.
type Session struct {
	srv     *Server
	link    *link.Link
	log     *zap.Logger
	pending *queue.Queue
	max     int
}

// Link exposes the underlying link for state inspection.
func (s *Session) Link() *link.Link { return s.link }

// Send encodes one outbound message. When the TX buffer is full the
// message is queued (payload copied) and written once flushing makes
// room; a queue past its cap refuses with ErrOverflow.
func (s *Session) Send(opcode byte, payload []byte) error {
	if s.pending == nil || s.pending.Length() == 0 {
		err := s.link.Send(opcode, payload)
		if err != api.ErrOverflow {
			if err == nil && s.srv.metrics != nil {
				s.srv.metrics.ObserveSend(len(payload))
			}
			return err
		}
	}
	if s.pending == nil {
		s.pending = queue.New()
	}
	if s.max > 0 && s.pending.Length() >= s.max {
		return api.ErrOverflow
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.pending.Add(pendingMsg{opcode: opcode, payload: buf})
	return nil
}

// Close initiates a clean protocol close.
func (s *Session) Close(code uint16, opcode byte) error {
	return s.link.Close(code, opcode)
}

// drainPending retries queued sends while the TX buffer accepts them.
func (s *Session) drainPending() {
	if s.pending == nil {
		return
	}
	for s.pending.Length() > 0 {
		m := s.pending.Peek().(pendingMsg)
		err := s.link.Send(m.opcode, m.payload)
		if err == api.ErrOverflow {
			return
		}
		s.pending.Remove()
		if err != nil {
			s.log.Warn("queued send dropped", zap.Error(err))
			continue
		}
		if s.srv.metrics != nil {
			s.srv.metrics.ObserveSend(len(m.payload))
		}
	}
}
