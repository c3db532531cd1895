// File: server/options.go
// Package server defines functional options for the Server facade.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"go.uber.org/zap"

	"github.com/momentics/wen/api"
	"github.com/momentics/wen/control"
)

// Option customizes server initialization.
type Option func(*Server)

// WithLogger attaches a structured logger; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics attaches link telemetry collectors.
func WithMetrics(m *control.LinkMetrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCodec overrides the wire codec; the default is the WebSocket
// server codec.
func WithCodec(c api.Codec) Option {
	return func(s *Server) {
		if c != nil {
			s.codec = c
		}
	}
}
