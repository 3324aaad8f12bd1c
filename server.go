package ipcbus

import (
	"errors"
	"fmt"
	"net"

	"ipcbus/internal/logging"
	"ipcbus/wire"
)

// Handle represents a running server loop. It owns the bound listener for
// the life of the loop.
type Handle struct {
	listener net.Listener
	done     chan struct{}
	err      error
}

// Close unbinds the listener, which makes the loop goroutine exit. For
// path-form endpoints the socket file is removed by the close.
func (h *Handle) Close() error {
	return h.listener.Close()
}

// Wait blocks until the loop goroutine has exited, either because the
// listener was closed or because the loop itself panicked; a panic is
// reported as a *PanicError.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done returns a channel closed when the loop goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Addr returns the bound endpoint address.
func (h *Handle) Addr() net.Addr {
	return h.listener.Addr()
}

// ServeConn binds name via Listen and starts an accept loop on a dedicated
// goroutine. Each accepted connection is passed to onConn synchronously, one
// at a time, and closed when onConn returns. Accept failures and onConn
// panics are routed through the error handler option and never stop the
// loop; it runs until the returned Handle is closed.
func ServeConn(name string, onConn func(net.Conn), opts ...Option) (*Handle, error) {
	o := buildOptions(opts)
	ln, err := listen(name, o)
	if err != nil {
		return nil, err
	}

	h := &Handle{listener: ln, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = &PanicError{Value: r}
			}
		}()
		o.logger.Debug("server listening", logging.String("endpoint", name))
		for {
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				o.report(fmt.Errorf("accept: %w", err))
				continue
			}
			handleConn(conn, onConn, o)
		}
	}()
	return h, nil
}

// handleConn isolates one connection: a panic inside onConn is recovered
// and reported so a single bad exchange cannot take the accept loop down.
func handleConn(conn net.Conn, onConn func(net.Conn), o *options) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			o.report(&PanicError{Value: r})
		}
	}()
	onConn(conn)
}

// Serve binds name and answers typed requests: each connection carries one
// decoded request, handler maps it to an optional response, and a non-nil
// response is written back as a single frame before the connection closes.
// Decode and encode failures are routed through the error handler option and
// the loop keeps accepting.
func Serve[Req, Resp any](name string, handler func(Req) *Resp, opts ...Option) (*Handle, error) {
	o := buildOptions(opts)
	return ServeConn(name, func(conn net.Conn) {
		var req Req
		if err := wire.Read(conn, o.codec, &req); err != nil {
			o.report(fmt.Errorf("decode request: %w", err))
			return
		}
		resp := handler(req)
		if resp == nil {
			return
		}
		if err := wire.Write(conn, o.codec, resp); err != nil {
			o.report(fmt.Errorf("encode response: %w", err))
		}
	}, opts...)
}
