// File: transport/fd_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw file descriptor transport for callers that own their sockets
// outside the net package (accept loops built on x/sys, inherited
// descriptors). Blocking semantics are the descriptor's; the link treats
// any error as IO and a zero read as EOF.

//go:build linux

package transport

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/momentics/wen/api"
)

// Ensure the transport contract is met.
var _ api.Transport = (*FD)(nil)

// FD is a transport over a raw descriptor.
type FD struct {
	fd int
}

// NewFD wraps an open descriptor. Ownership stays with the caller.
func NewFD(fd int) *FD {
	return &FD{fd: fd}
}

func (t *FD) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(t.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, errors.Wrap(err, "fd read")
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (t *FD) Write(p []byte) (int, error) {
	for {
		n, err := unix.Write(t.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, errors.Wrap(err, "fd write")
		}
		return n, nil
	}
}

// Close releases the descriptor.
func (t *FD) Close() error {
	return errors.Wrap(unix.Close(t.fd), "fd close")
}
