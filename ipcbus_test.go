package ipcbus_test

import (
	"errors"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"ipcbus"
	"ipcbus/internal/testsupport"
	"ipcbus/wire"
)

type message struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

func singleInstance() (int, error) { return 1, nil }

func startEcho(t *testing.T, socket string, opts ...ipcbus.Option) *ipcbus.Handle {
	t.Helper()
	opts = append(opts, ipcbus.WithInstanceCounter(singleInstance))
	handle, err := ipcbus.Serve(socket, func(req message) *message {
		switch req.Kind {
		case "ping":
			return &message{Kind: "pong"}
		case "echo":
			return &message{Kind: "echo", Text: req.Text}
		case "boom":
			panic("handler exploded")
		default:
			return nil
		}
	}, opts...)
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
		_ = handle.Wait()
	})
	return handle
}

func TestQueryPingPong(t *testing.T) {
	socket := testsupport.SocketPath(t)
	startEcho(t, socket)

	resp, err := ipcbus.Query[message, message](socket, message{Kind: "ping"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp.Kind != "pong" {
		t.Fatalf("expected pong, got %#v", resp)
	}
}

func TestSendFireAndForget(t *testing.T) {
	socket := testsupport.SocketPath(t)
	received := make(chan message, 1)
	handle, err := ipcbus.Serve(socket, func(req message) *message {
		received <- req
		return nil
	}, ipcbus.WithInstanceCounter(singleInstance))
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
		_ = handle.Wait()
	})

	done := make(chan error, 1)
	go func() {
		done <- ipcbus.Send(socket, message{Kind: "text", Text: "Hello"})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Send blocked waiting for a response")
	}

	select {
	case req := <-received:
		if req.Text != "Hello" {
			t.Fatalf("server saw %#v", req)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server never received the message")
	}
}

func TestQueryWithoutResponseFailsOnClose(t *testing.T) {
	socket := testsupport.SocketPath(t)
	startEcho(t, socket)

	// The "text" kind gets no response; the server closes the connection
	// after handling, so Query must fail with a read error rather than
	// block forever.
	_, err := ipcbus.Query[message, message](socket, message{Kind: "text", Text: "no reply"})
	var readErr *wire.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *wire.ReadError, got %v", err)
	}
}

func TestConcurrentClients(t *testing.T) {
	socket := testsupport.SocketPath(t)
	startEcho(t, socket)

	const clients = 8
	var wg sync.WaitGroup
	errs := make(chan error, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			text := string(rune('a' + id))
			resp, err := ipcbus.Query[message, message](socket, message{Kind: "echo", Text: text})
			if err != nil {
				errs <- err
				return
			}
			if resp.Text != text {
				errs <- errors.New("response " + resp.Text + " does not match request " + text)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent query: %v", err)
	}
}

func TestHandlerPanicDoesNotKillLoop(t *testing.T) {
	socket := testsupport.SocketPath(t)
	reported := make(chan error, 4)
	startEcho(t, socket, ipcbus.WithErrorHandler(func(err error) {
		reported <- err
	}))

	// The panicking exchange fails from the client's point of view.
	if _, err := ipcbus.Query[message, message](socket, message{Kind: "boom"}); err == nil {
		t.Fatal("expected the panicking exchange to fail")
	}

	select {
	case err := <-reported:
		var panicErr *ipcbus.PanicError
		if !errors.As(err, &panicErr) {
			t.Fatalf("expected *ipcbus.PanicError, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("panic never reached the error handler")
	}

	resp, err := ipcbus.Query[message, message](socket, message{Kind: "ping"})
	if err != nil || resp.Kind != "pong" {
		t.Fatalf("loop did not survive the panic: %v %#v", err, resp)
	}
}

func TestMalformedFrameReported(t *testing.T) {
	socket := testsupport.SocketPath(t)
	reported := make(chan error, 4)
	startEcho(t, socket, ipcbus.WithErrorHandler(func(err error) {
		reported <- err
	}))

	conn, err := ipcbus.Dial(socket)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := wire.WriteFrame(conn, []byte("{definitely not json")); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	_ = conn.Close()

	select {
	case err := <-reported:
		var decodeErr *wire.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *wire.DecodeError, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("decode failure never reached the error handler")
	}

	resp, err := ipcbus.Query[message, message](socket, message{Kind: "ping"})
	if err != nil || resp.Kind != "pong" {
		t.Fatalf("loop did not survive the malformed frame: %v %#v", err, resp)
	}
}

func TestCloseUnblocksWait(t *testing.T) {
	socket := testsupport.SocketPath(t)
	handle, err := ipcbus.Serve(socket, func(req message) *message { return nil },
		ipcbus.WithInstanceCounter(singleInstance))
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}

	waited := make(chan error, 1)
	go func() {
		waited <- handle.Wait()
	}()

	if err := handle.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-waited:
		if err != nil {
			t.Fatalf("Wait after Close: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Close")
	}

	if _, err := os.Stat(socket); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("socket file should be gone after Close, stat err=%v", err)
	}
}

func TestDialWithoutServer(t *testing.T) {
	socket := testsupport.SocketPath(t)
	_, err := ipcbus.Dial(socket)
	var connectErr *ipcbus.ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *ipcbus.ConnectError, got %v", err)
	}
}

func TestServeConnRawStream(t *testing.T) {
	socket := testsupport.SocketPath(t)
	handle, err := ipcbus.ServeConn(socket, func(conn net.Conn) {
		payload, err := wire.ReadFrame(conn)
		if err != nil {
			return
		}
		_ = wire.WriteFrame(conn, payload)
	}, ipcbus.WithInstanceCounter(singleInstance))
	if err != nil {
		t.Fatalf("ServeConn: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
		_ = handle.Wait()
	})

	conn, err := ipcbus.Dial(socket)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	if err := wire.WriteFrame(conn, []byte("mirror")); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := wire.ReadFrame(conn)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if string(got) != "mirror" {
		t.Fatalf("expected echo, got %q", got)
	}
}

func TestGobCodecExchange(t *testing.T) {
	socket := testsupport.SocketPath(t)
	handle, err := ipcbus.Serve(socket, func(req message) *message {
		return &message{Kind: "echo", Text: req.Text}
	}, ipcbus.WithCodec(wire.Gob), ipcbus.WithInstanceCounter(singleInstance))
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	t.Cleanup(func() {
		_ = handle.Close()
		_ = handle.Wait()
	})

	resp, err := ipcbus.Query[message, message](socket, message{Kind: "echo", Text: "gob"},
		ipcbus.WithCodec(wire.Gob))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp.Text != "gob" {
		t.Fatalf("unexpected response %#v", resp)
	}
}
