// Package protocol defines the request/response DTOs exchanged between the
// msglog CLI and the msglogd daemon. Keep these types stable: both binaries
// must agree on them frame for frame.
package protocol

import "time"

// Kind discriminates request and response messages.
type Kind string

const (
	// KindPing asks the daemon for a liveness answer.
	KindPing Kind = "ping"
	// KindPong answers a ping.
	KindPong Kind = "pong"
	// KindAppend records a message. Fire-and-forget: no response frame.
	KindAppend Kind = "append"
	// KindRecent asks for the newest journal entries.
	KindRecent Kind = "recent"
	// KindStatus asks for daemon runtime information.
	KindStatus Kind = "status"
	// KindShutdown asks the daemon to stop. Answered before the listener
	// goes away.
	KindShutdown Kind = "shutdown"
	// KindError reports a request the daemon could not serve.
	KindError Kind = "error"
)

// Request is the single frame a client writes per connection.
type Request struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Source string `json:"source,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Entry mirrors a stored journal entry on the wire.
type Entry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Response is the single frame the daemon writes back for request kinds
// that expect one.
type Response struct {
	Kind    Kind    `json:"kind"`
	Entries []Entry `json:"entries,omitempty"`
	PID     int     `json:"pid,omitempty"`
	Uptime  string  `json:"uptime,omitempty"`
	Total   int64   `json:"total,omitempty"`
	Err     string  `json:"error,omitempty"`
}

// Errorf builds an error response.
func Errorf(msg string) *Response {
	return &Response{Kind: KindError, Err: msg}
}
