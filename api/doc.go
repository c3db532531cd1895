// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared contracts of the wen link runtime: events, error kinds, the
// codec trio (handshake/decode/encode), the byte transport, and the
// bounded ring contract the event queue implements.
//
// The package is dependency-free apart from the arena snapshot type;
// concrete implementations live in link, protocol, transport and
// internal/evq.
package api
