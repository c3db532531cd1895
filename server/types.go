// File: server/types.go
// Package server drives wen links over accepted TCP connections.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"github.com/momentics/wen/api"
	"github.com/momentics/wen/link"
)

// Config holds the server-side parameters.
type Config struct {
	ListenAddr   string       // TCP bind address, e.g. ":9000"
	Link         *link.Config // per-link buffer configuration, nil = defaults
	PendingSends int          // overflow sends queued per session before Send refuses
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:   ":9000",
		Link:         link.DefaultConfig(),
		PendingSends: 64,
	}
}

// Handler processes the events a link produces. Slice payloads are only
// valid for the duration of the call: the serving loop releases the slice
// when the handler returns.
type Handler interface {
	Handle(s *Session, ev api.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(s *Session, ev api.Event) error

func (f HandlerFunc) Handle(s *Session, ev api.Event) error { return f(s, ev) }
