package wire

import "fmt"

// ReadError reports a stream read that failed before a whole frame arrived.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read frame: %v", e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a stream write that could not be completed.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write frame: %v", e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// EncodeError reports a payload that the codec could not marshal.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode payload: %v", e.Err) }

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports frame bytes that the codec could not unmarshal into
// the target type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode payload: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }
