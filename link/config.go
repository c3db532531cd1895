// File: link/config.go
// Package link holds the construction-time configuration of a link.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package link

import "github.com/momentics/wen/api"

// Resource bounds. All memory a link will ever use is sized by these at
// initialization; nothing is allocated afterwards.
const (
	// RXBufferSize is the default receive buffer capacity.
	RXBufferSize = 8192
	// TXBufferSize is the default transmit buffer capacity.
	TXBufferSize = 8192
	// MaxSlice bounds the length of a single slice handed to the caller.
	MaxSlice = 4096
	// EventQueueCap is the default event ring cell count.
	EventQueueCap = 16

	// minBufferSize is the floor for either stream buffer.
	minBufferSize = 1024
)

// Config bounds a link's resource use. Zero-value fields fall back to the
// package defaults; buffer sizes below the floor are rejected at init.
type Config struct {
	RXBuffer      int // receive buffer capacity
	TXBuffer      int // transmit buffer capacity
	MaxSlice      int // per-slice length ceiling
	EventQueueCap int // event ring cell count
}

// DefaultConfig returns the package defaults.
func DefaultConfig() *Config {
	return &Config{
		RXBuffer:      RXBufferSize,
		TXBuffer:      TXBufferSize,
		MaxSlice:      MaxSlice,
		EventQueueCap: EventQueueCap,
	}
}

// normalize fills zero fields and validates the floors.
func (c *Config) normalize() (Config, error) {
	out := *c
	if out.RXBuffer == 0 {
		out.RXBuffer = RXBufferSize
	}
	if out.TXBuffer == 0 {
		out.TXBuffer = TXBufferSize
	}
	if out.MaxSlice == 0 {
		out.MaxSlice = MaxSlice
	}
	if out.EventQueueCap == 0 {
		out.EventQueueCap = EventQueueCap
	}
	if out.RXBuffer < minBufferSize || out.TXBuffer < minBufferSize {
		return out, api.ErrState
	}
	if out.MaxSlice <= 0 || out.EventQueueCap < 2 {
		return out, api.ErrState
	}
	return out, nil
}
