/****************************************************************************
BSD 3-Clause License

Copyright (c) 2021, 🍀☀🌕🌥 🌊
All rights reserved.
****************************************************************************/

package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestCodecEncodeDecodeRoundTrip(t *testing.T) {
	codec := DefaultCodec()
	payload := []byte("@header={};@data={};")
	encoded := codec.Encode(payload)

	reader := NewReader(bytes.NewReader(encoded), codec)
	got, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q want %q", got, payload)
	}
}

func TestReaderResyncsPastGarbagePrefix(t *testing.T) {
	codec := DefaultCodec()
	payload := []byte("hello")
	frameBytes := codec.Encode(payload)

	garbage := []byte{0x00, 0x00, 0xE7, 0xE7}
	stream := append(garbage, frameBytes...)

	reader := NewReader(bytes.NewReader(stream), codec)
	got, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch after resync: got %q want %q", got, payload)
	}
}

func TestReaderResyncsOnOverlappingStartRun(t *testing.T) {
	codec := NewCodec(0xE7, 0x43, DefaultMaxFrameSize)
	payload := []byte("x")
	frameBytes := codec.Encode(payload)

	// Five leading 0xE7 instead of four: the first four complete the START
	// match, and the fifth arrives where the type byte is expected; a START
	// byte in that position keeps the reader waiting for the type byte.
	stream := append([]byte{0xE7}, frameBytes...)

	reader := NewReader(bytes.NewReader(stream), codec)
	got, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q want %q", got, payload)
	}
}

func TestReaderRejectsOversizeLength(t *testing.T) {
	codec := NewCodec(DefaultStart, DefaultEnd, 4)
	oversized := codec.Encode([]byte("toolong"))

	reader := NewReader(bytes.NewReader(oversized), codec)
	_, err := reader.ReadFrame()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected the oversize frame to be discarded and the stream to run dry, got %v", err)
	}
}

func TestReaderReportsTailMismatch(t *testing.T) {
	codec := DefaultCodec()
	encoded := codec.Encode([]byte("payload"))
	encoded[len(encoded)-1] ^= 0xFF

	reader := NewReader(bytes.NewReader(encoded), codec)
	_, err := reader.ReadFrame()
	if !errors.Is(err, ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestReaderHandlesBackToBackFrames(t *testing.T) {
	codec := DefaultCodec()
	var stream bytes.Buffer
	stream.Write(codec.Encode([]byte("one")))
	stream.Write(codec.Encode([]byte("two")))

	reader := NewReader(&stream, codec)
	first, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("first ReadFrame: %v", err)
	}
	second, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("second ReadFrame: %v", err)
	}
	if string(first) != "one" || string(second) != "two" {
		t.Fatalf("got %q, %q", first, second)
	}
}
