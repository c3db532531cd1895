// Package transport
// Author: momentics <momentics@gmail.com>
//
// Transport adapters for the wen link runtime. The core consumes only a
// blocking read/write pair; this package supplies the common backings —
// a net.Conn wrapper and, on Linux, a raw file descriptor wrapper — so
// callers do not have to write the glue themselves.
package transport
