package ipcbus

import (
	"net"

	"ipcbus/wire"
)

// Dial connects to the named endpoint. The connection attempt is bounded by
// the dial timeout option; reads and writes on the returned connection block
// without deadline.
func Dial(name string, opts ...Option) (net.Conn, error) {
	return dial(name, buildOptions(opts))
}

func dial(name string, o *options) (net.Conn, error) {
	conn, err := net.DialTimeout("unix", name, o.dialTimeout)
	if err != nil {
		return nil, &ConnectError{Name: name, Err: err}
	}
	return conn, nil
}

// Send connects to name, writes req as one frame, and closes the
// connection. It never reads a response, so it returns as soon as the frame
// is written even if the server answers this request kind for other callers.
func Send[Req any](name string, req Req, opts ...Option) error {
	o := buildOptions(opts)
	conn, err := dial(name, o)
	if err != nil {
		return err
	}
	defer conn.Close()
	return wire.Write(conn, o.codec, req)
}

// Query connects to name, writes req as one frame, then blocks until
// exactly one response frame is read and decoded. The server must answer
// every request of this kind; if it does not, Query blocks until the peer
// closes the connection and then fails with a *wire.ReadError.
func Query[Req, Resp any](name string, req Req, opts ...Option) (Resp, error) {
	var resp Resp
	o := buildOptions(opts)
	conn, err := dial(name, o)
	if err != nil {
		return resp, err
	}
	defer conn.Close()

	if err := wire.Write(conn, o.codec, req); err != nil {
		return resp, err
	}
	if err := wire.Read(conn, o.codec, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}
