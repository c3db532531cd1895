// File: protocol/codec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "github.com/momentics/wen/api"

// Codec is the WebSocket server codec. It is stateless: every call works
// off the prefix it is handed, so one value serves any number of links.
type Codec struct{}

// Ensure the codec contract is met.
var _ api.Codec = Codec{}

// WebSocket is the shared codec instance.
var WebSocket = Codec{}

func (Codec) Name() string { return "websocket" }

func (Codec) Handshake(_ any, in, out []byte) (int, int, api.HandshakeStatus) {
	return handshake(in, out)
}

func (Codec) Decode(_ any, sink api.DecodeSink, data []byte) api.ErrKind {
	return decode(sink, data)
}

func (Codec) Encode(_ any, opcode byte, data, out []byte) (int, api.ErrKind) {
	return encode(opcode, data, out)
}
