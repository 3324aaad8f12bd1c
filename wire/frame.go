package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WriteFrame writes one length-prefixed frame carrying payload. The length
// prefix is a 4-byte little-endian unsigned integer. Partial writes surface
// as a *WriteError.
func WriteFrame(w io.Writer, payload []byte) error {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.Write(prefix[:]); err != nil {
		return &WriteError{Err: fmt.Errorf("write length prefix: %w", err)}
	}
	if _, err := w.Write(payload); err != nil {
		return &WriteError{Err: fmt.Errorf("write payload: %w", err)}
	}
	return nil
}

// ReadFrame reads exactly one frame and returns its payload. It consumes the
// 4-byte length prefix and then exactly that many payload bytes, blocking
// until they arrive. A stream that ends early yields a *ReadError. No frame
// size cap is enforced; a frame must fit in memory.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, &ReadError{Err: fmt.Errorf("read length prefix: %w", err)}
	}
	n := binary.LittleEndian.Uint32(prefix[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ReadError{Err: fmt.Errorf("read %d payload bytes: %w", n, err)}
	}
	return payload, nil
}

// Write encodes v with codec and writes it as a single frame.
func Write(w io.Writer, codec Codec, v any) error {
	if codec == nil {
		codec = JSON
	}
	payload, err := codec.Marshal(v)
	if err != nil {
		return &EncodeError{Err: err}
	}
	return WriteFrame(w, payload)
}

// Read reads one frame and decodes its payload into v with codec.
func Read(r io.Reader, codec Codec, v any) error {
	if codec == nil {
		codec = JSON
	}
	payload, err := ReadFrame(r)
	if err != nil {
		return err
	}
	if err := codec.Unmarshal(payload, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
