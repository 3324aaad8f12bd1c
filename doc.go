// Package ipcbus provides local-machine inter-process messaging over Unix
// domain sockets: a long-running server process accepts typed requests on a
// named endpoint and optionally answers them, while client processes connect
// transiently to send a message or perform one request/response exchange.
//
// The server loop runs on a single dedicated goroutine and handles one
// connection at a time; each connection carries exactly one request frame
// and at most one response frame before it closes. Binding recovers
// automatically from stale socket files left behind by a crashed instance,
// while refusing to steal an endpoint held by a live sibling process.
//
// Messages travel as length-prefixed frames (see the wire package) and
// endpoint names follow the conventions of the endpoint package. Typed
// exchange uses generics:
//
//	handle, err := ipcbus.Serve(sock, func(req Message) *Message {
//		if req.Kind == "ping" {
//			return &Message{Kind: "pong"}
//		}
//		return nil
//	})
//
//	resp, err := ipcbus.Query[Message, Message](sock, Message{Kind: "ping"})
package ipcbus
