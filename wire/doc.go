// Package wire implements the framing layer shared by IPC servers and
// clients: one message per frame, a 4-byte little-endian length prefix
// followed by the encoded payload.
//
// Payload encoding is pluggable through the Codec interface. JSON is the
// default; a gob codec is provided for callers that exchange Go-native
// types between trusted processes. Client and server must agree on the
// codec: the frame carries no encoding marker.
package wire
