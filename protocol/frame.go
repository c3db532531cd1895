// File: protocol/frame.go
// Package protocol implements RFC 6455 framing for the wen codec trio.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The decoder is pure inspection: it parses the frame header out of the
// RX prefix, reports metadata through the sink, and records the frame
// boundary on the link. It neither consumes input nor unmasks payload;
// the slice handed to the application starts at the raw frame bytes, mask
// key included, and UnmaskFrame performs the XOR on the application side.

package protocol

import (
	"encoding/binary"

	"github.com/momentics/wen/api"
)

// decode inspects one frame in the buffer prefix. An incomplete header or
// payload returns ErrNone without recording a boundary, so the link keeps
// accumulating.
func decode(sink api.DecodeSink, data []byte) api.ErrKind {
	if len(data) < 2 {
		return api.ErrNone
	}

	fin := data[0]&FinBit != 0
	opcode := data[0] & 0x0F
	masked := data[1]&MaskBit != 0
	length := int64(data[1] & 0x7F)
	header := 2

	// Client frames must be masked on a server-side codec.
	if !masked {
		return api.ErrProtocol
	}

	switch length {
	case 126:
		if len(data) < header+2 {
			return api.ErrNone
		}
		length = int64(binary.BigEndian.Uint16(data[header:]))
		header += 2
	case 127:
		if len(data) < header+8 {
			return api.ErrNone
		}
		length = int64(binary.BigEndian.Uint64(data[header:]))
		header += 8
	}

	total := int64(header) + 4 + length
	if int64(len(data)) < total {
		return api.ErrNone
	}

	if isControl(opcode) && (!fin || length > MaxControlPayloadLen) {
		return api.ErrProtocol
	}

	sink.PushEvent(api.Event{
		Type: api.EventFrame,
		Frame: api.Frame{
			Fin:    fin,
			Masked: true,
			Opcode: opcode,
			Length: length,
		},
	})
	switch opcode {
	case OpcodePing:
		sink.PushEvent(api.Event{Type: api.EventPing})
	case OpcodePong:
		sink.PushEvent(api.Event{Type: api.EventPong})
	}
	sink.SetFrameLen(int(total))
	return api.ErrNone
}

// encode serialises one unmasked server-to-client frame, FIN always set.
func encode(opcode byte, data, out []byte) (int, api.ErrKind) {
	if isControl(opcode) && len(data) > MaxControlPayloadLen {
		return 0, api.ErrProtocol
	}

	header := 2
	switch {
	case len(data) <= 125:
	case len(data) <= 0xFFFF:
		header += 2
	default:
		header += 8
	}
	if header+len(data) > len(out) {
		return 0, api.ErrOverflow
	}

	out[0] = FinBit | (opcode & 0x0F)
	switch {
	case len(data) <= 125:
		out[1] = byte(len(data))
	case len(data) <= 0xFFFF:
		out[1] = 126
		binary.BigEndian.PutUint16(out[2:], uint16(len(data)))
	default:
		out[1] = 127
		binary.BigEndian.PutUint64(out[2:], uint64(len(data)))
	}
	copy(out[header:], data)
	return header + len(data), api.ErrNone
}

// UnmaskFrame interprets raw as one complete masked frame — the shape a
// slice has when a whole client frame fits in it — XORs the payload in
// place, and returns a view of it. The application calls this on slices;
// the decoder never touches payload bytes.
func UnmaskFrame(raw []byte) (opcode byte, fin bool, payload []byte, kind api.ErrKind) {
	if len(raw) < 2 {
		return 0, false, nil, api.ErrProtocol
	}
	fin = raw[0]&FinBit != 0
	opcode = raw[0] & 0x0F
	if raw[1]&MaskBit == 0 {
		return 0, false, nil, api.ErrProtocol
	}
	length := int64(raw[1] & 0x7F)
	header := 2
	switch length {
	case 126:
		if len(raw) < header+2 {
			return 0, false, nil, api.ErrProtocol
		}
		length = int64(binary.BigEndian.Uint16(raw[header:]))
		header += 2
	case 127:
		if len(raw) < header+8 {
			return 0, false, nil, api.ErrProtocol
		}
		length = int64(binary.BigEndian.Uint64(raw[header:]))
		header += 8
	}
	if int64(len(raw)) < int64(header)+4+length {
		return 0, false, nil, api.ErrProtocol
	}

	var key [4]byte
	copy(key[:], raw[header:header+4])
	payload = raw[header+4 : header+4+int(length)]
	for i := range payload {
		payload[i] ^= key[i%4]
	}
	return opcode, fin, payload, api.ErrNone
}
