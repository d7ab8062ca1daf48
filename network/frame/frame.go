/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

// Package frame implements the length-framed wire packet used to carry a
// serialized container over a stream socket:
//
//	START(4) | TYPE(1) | LEN(4, little-endian) | PAYLOAD(LEN) | END(4)
//
// grounded on the byte-for-byte framing in
// original_source/python/messaging_system/network/messaging_client.py and
// messaging_server.py (start_code/end_code of four repeated bytes, type
// byte 2, little-endian length).
package frame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ContainerType is the only TYPE byte the core protocol understands; any
// other value causes the frame to be dropped during resync.
const ContainerType byte = 0x02

const (
	// DefaultStart is the default repeated START sentinel byte (231).
	DefaultStart byte = 231
	// DefaultEnd is the default repeated END sentinel byte (67).
	DefaultEnd byte = 67
	// DefaultMaxFrameSize bounds PAYLOAD length against runaway/garbage
	// length fields.
	DefaultMaxFrameSize = 16 * 1024 * 1024
)

// ErrProtocol reports a frame whose END sentinel did not match. Reader
// returns it after the frame's bytes have been consumed, so the next
// ReadFrame starts again in the SYNC state.
var ErrProtocol = errors.New("frame: protocol error")

// Codec holds the per-endpoint framing parameters. The zero value is not
// usable; use NewCodec.
type Codec struct {
	start       [4]byte
	end         [4]byte
	maxFrameLen uint32
}

// NewCodec builds a Codec with the given repeated sentinel bytes and maximum
// payload length. Both peers of a connection must agree on startByte/endByte.
func NewCodec(startByte, endByte byte, maxFrameLen uint32) *Codec {
	c := &Codec{maxFrameLen: maxFrameLen}
	for i := range c.start {
		c.start[i] = startByte
		c.end[i] = endByte
	}
	return c
}

// DefaultCodec returns a Codec using the protocol's default sentinels and
// frame size bound.
func DefaultCodec() *Codec {
	return NewCodec(DefaultStart, DefaultEnd, DefaultMaxFrameSize)
}

// Encode renders payload as one contiguous frame. Callers MUST write the
// result in a single Write call (or hold a per-connection write lock across
// it) so frames from concurrent senders never interleave on the wire.
func (c *Codec) Encode(payload []byte) []byte {
	buf := make([]byte, 0, 4+1+4+len(payload)+4)
	buf = append(buf, c.start[:]...)
	buf = append(buf, ContainerType)
	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(payload)))
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, payload...)
	buf = append(buf, c.end[:]...)
	return buf
}

// readerState names the five states of the resync state machine.
type readerState int

const (
	stateSync readerState = iota
	stateType
	stateLen
	stateBody
	stateTail
)

// Reader decodes a stream of frames, resynchronizing past any prefix that
// does not contain four consecutive START bytes.
type Reader struct {
	codec *Codec
	br    *bufio.Reader
}

// NewReader wraps r with the given Codec's framing parameters.
func NewReader(r io.Reader, codec *Codec) *Reader {
	return &Reader{codec: codec, br: bufio.NewReader(r)}
}

// ReadFrame blocks until one full, validated frame's payload is available,
// or returns an error. Errors from the underlying reader (io.EOF included)
// are returned as they are. A bad type byte or an oversize length is not
// reported: the reader drops back to SYNC and keeps scanning. An END
// mismatch is reported as ErrProtocol after the frame's bytes have been
// consumed — callers may simply call ReadFrame again.
func (r *Reader) ReadFrame() ([]byte, error) {
	state := stateSync
	matched := 0
	var length uint32
	var payload []byte

	for {
		switch state {
		case stateSync:
			b, err := r.br.ReadByte()
			if err != nil {
				return nil, err
			}
			if b == r.codec.start[matched] {
				matched++
				if matched == len(r.codec.start) {
					state = stateType
					matched = 0
				}
				continue
			}
			// Mismatch: restart the match at this same byte, since a
			// run of START bytes could begin anywhere, including at
			// the byte that just broke the previous run.
			matched = 0
			if b == r.codec.start[0] {
				matched = 1
			}

		case stateType:
			b, err := r.br.ReadByte()
			if err != nil {
				return nil, err
			}
			if b != ContainerType {
				// A run of five-plus sentinel bytes shifts the START
				// window forward: if this byte is itself a sentinel, the
				// last four bytes read still form a complete run.
				if b != r.codec.start[0] {
					state = stateSync
					matched = 0
				}
				continue
			}
			state = stateLen

		case stateLen:
			var lenBytes [4]byte
			if _, err := io.ReadFull(r.br, lenBytes[:]); err != nil {
				return nil, err
			}
			length = binary.LittleEndian.Uint32(lenBytes[:])
			if length > r.codec.maxFrameLen {
				state = stateSync
				matched = 0
				continue
			}
			state = stateBody

		case stateBody:
			payload = make([]byte, length)
			if length > 0 {
				if _, err := io.ReadFull(r.br, payload); err != nil {
					return nil, err
				}
			}
			state = stateTail

		case stateTail:
			var tail [4]byte
			if _, err := io.ReadFull(r.br, tail[:]); err != nil {
				return nil, err
			}
			if tail != r.codec.end {
				return nil, fmt.Errorf("%w: end sentinel mismatch", ErrProtocol)
			}
			return payload, nil
		}
	}
}
