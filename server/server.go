// File: server/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The server owns the pieces the link runtime scopes out: the listening
// socket, one goroutine per accepted connection, and logging. Each link
// stays confined to its goroutine for its whole lifetime, polled to
// completion the way the runtime requires; nothing here touches a link
// from outside.

package server

import (
	"net"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/wen/api"
	"github.com/momentics/wen/control"
	"github.com/momentics/wen/link"
	"github.com/momentics/wen/protocol"
	"github.com/momentics/wen/transport"
)

// Server is the accept-and-serve facade around the link runtime.
type Server struct {
	cfg     *Config
	codec   api.Codec
	log     *zap.Logger
	metrics *control.LinkMetrics

	listener net.Listener
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// New binds the listening socket and builds the facade.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:      cfg,
		codec:    protocol.WebSocket,
		log:      zap.NewNop(),
		shutdown: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", cfg.ListenAddr)
	}
	s.listener = ln
	return s, nil
}

// Addr reports the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections and drives one link per connection until
// Shutdown. It blocks.
func (s *Server) Serve(handler Handler) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				s.wg.Wait()
				return nil
			default:
			}
			s.log.Warn("accept failed", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn, handler)
		}()
	}
}

// Shutdown stops accepting by closing the listener and returns without
// waiting; Serve then waits for in-flight links, which wind down as their
// peers disconnect.
func (s *Server) Shutdown() error {
	var err error
	s.once.Do(func() {
		close(s.shutdown)
		err = s.listener.Close()
	})
	return errors.Wrap(err, "close listener")
}

// serveConn runs one link to completion.
func (s *Server) serveConn(conn net.Conn, handler Handler) {
	defer conn.Close()

	log := s.log.With(zap.String("remote", conn.RemoteAddr().String()))

	l, err := link.NewWithConfig(transport.NewConn(conn), s.cfg.Link)
	if err != nil {
		log.Error("link init failed", zap.Error(err))
		return
	}
	l.AttachCodec(s.codec, nil)

	sess := &Session{
		srv:  s,
		link: l,
		log:  log,
		max:  s.cfg.PendingSends,
	}

	for {
		ev, ok := l.Poll()
		if !ok {
			if l.State() == link.StateClosed {
				return
			}
			sess.drainPending()
			continue
		}
		if s.metrics != nil {
			s.metrics.ObserveEvent(ev)
		}

		switch ev.Type {
		case api.EventOpen:
			log.Info("link open", zap.String("codec", s.codec.Name()))
		case api.EventClose:
			log.Info("link closed", zap.Uint16("code", ev.CloseCode))
		case api.EventError:
			log.Warn("link error", zap.Error(ev.Err))
		}

		if handler != nil {
			if err := handler.Handle(sess, ev); err != nil {
				log.Warn("handler failed", zap.Error(err))
			}
		}

		// The handler borrowed the slice; give the arena its memory
		// back before the next poll.
		if ev.Type == api.EventSlice {
			l.Release(ev.Slice)
		}

		if ev.Type == api.EventClose || ev.Type == api.EventError {
			return
		}
	}
}
