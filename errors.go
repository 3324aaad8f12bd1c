package ipcbus

import (
	"errors"
	"fmt"
)

// ErrAlreadyInUse indicates the endpoint is held by a live sibling instance
// of the current executable and must not be stolen.
var ErrAlreadyInUse = errors.New("endpoint already in use by another instance of this process")

// BindError reports a failed attempt to bind the endpoint.
type BindError struct {
	Name string
	Err  error
}

func (e *BindError) Error() string { return fmt.Sprintf("bind %s: %v", e.Name, e.Err) }

func (e *BindError) Unwrap() error { return e.Err }

// FileError reports a failed stale-socket cleanup.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("remove stale socket %s: %v", e.Name, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

// ConnectError reports a failed client connection attempt.
type ConnectError struct {
	Name string
	Err  error
}

func (e *ConnectError) Error() string { return fmt.Sprintf("connect %s: %v", e.Name, e.Err) }

func (e *ConnectError) Unwrap() error { return e.Err }

// PanicError carries the recovered value of a panic raised inside a server
// handler or the accept loop.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("server panic: %v", e.Value) }
