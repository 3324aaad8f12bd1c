// Package endpoint names the local sockets servers bind and clients dial.
//
// Two mutually exclusive forms exist: a filesystem path (portable) and an
// abstract-namespace name (Linux only, written with a leading '@' as
// understood by the net package). A process queries Supports once and picks
// the form it will use; client and server must agree on the exact name.
package endpoint
