// File: protocol/handshake.go
// Package protocol implements the WebSocket side of the wen codec trio.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Server-side RFC 6455 HTTP Upgrade processing over the raw request
// prefix. The handshake works on the bytes the link has accumulated so
// far, with no request parser behind it: the link hands over whatever
// prefix it has, and the handshake either recognises a complete upgrade,
// asks for more, or fails. Everything received is treated as the request.

package protocol

import (
	"crypto/sha1"
	"encoding/base64"

	"github.com/momentics/wen/api"
)

const (
	// WebSocketGUID is the fixed accept-token suffix from RFC 6455.
	WebSocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

	// handshakeScratch bounds the request prefix the handshake will
	// look at; a prefix of this length or longer fails.
	handshakeScratch = 2048

	headerSecWebSocketKey = "Sec-WebSocket-Key:"
)

var (
	responsePrefix = []byte("HTTP/1.1 101 Switching Protocols\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Accept: ")
	responseSuffix = []byte("\r\n\r\n")
)

// handshake validates the upgrade request in the prefix and, when the key
// header has arrived, writes the 101 response into out. Consumed always
// covers the whole prefix on success.
func handshake(in, out []byte) (consumed, produced int, status api.HandshakeStatus) {
	if len(in) >= handshakeScratch {
		return 0, 0, api.HandshakeFailed
	}

	if index(in, "GET ") < 0 {
		return 0, 0, api.HandshakeFailed
	}
	if indexFold(in, "Upgrade: websocket") < 0 {
		return 0, 0, api.HandshakeFailed
	}
	if indexFold(in, "Connection: Upgrade") < 0 {
		return 0, 0, api.HandshakeFailed
	}
	if index(in, "Sec-WebSocket-Version: 13") < 0 {
		return 0, 0, api.HandshakeFailed
	}

	key := headerValue(in, headerSecWebSocketKey)
	if key == nil {
		// The key header has not arrived yet; keep accumulating.
		return 0, 0, api.HandshakeIncomplete
	}

	// Accept token: SHA-1 over key||GUID, then plain Base64.
	h := sha1.New()
	h.Write(key)
	h.Write([]byte(WebSocketGUID))
	var digest [sha1.Size]byte
	sum := h.Sum(digest[:0])

	var accept [28]byte // base64 of 20 bytes
	base64.StdEncoding.Encode(accept[:], sum)

	need := len(responsePrefix) + len(accept) + len(responseSuffix)
	if need > len(out) {
		return 0, 0, api.HandshakeFailed
	}
	n := copy(out, responsePrefix)
	n += copy(out[n:], accept[:])
	n += copy(out[n:], responseSuffix)

	return len(in), n, api.HandshakeComplete
}

// headerValue extracts the value of the named header from the raw prefix:
// leading spaces stripped, terminated at CR or LF. Nil when the header is
// absent or its line is still incomplete.
func headerValue(in []byte, name string) []byte {
	i := indexFold(in, name)
	if i < 0 {
		return nil
	}
	v := in[i+len(name):]
	for len(v) > 0 && v[0] == ' ' {
		v = v[1:]
	}
	for j := 0; j < len(v); j++ {
		if v[j] == '\r' || v[j] == '\n' {
			return v[:j]
		}
	}
	// No line terminator yet; the value may still be arriving.
	return nil
}

// index finds the case-sensitive substring pat in b, or -1.
func index(b []byte, pat string) int {
	for i := 0; i+len(pat) <= len(b); i++ {
		if matchAt(b[i:], pat, false) {
			return i
		}
	}
	return -1
}

// indexFold finds pat in b ignoring ASCII case, or -1.
func indexFold(b []byte, pat string) int {
	for i := 0; i+len(pat) <= len(b); i++ {
		if matchAt(b[i:], pat, true) {
			return i
		}
	}
	return -1
}

func matchAt(b []byte, pat string, fold bool) bool {
	for j := 0; j < len(pat); j++ {
		c, p := b[j], pat[j]
		if fold {
			c, p = lowerASCII(c), lowerASCII(p)
		}
		if c != p {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
