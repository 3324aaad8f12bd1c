// Package logging builds the slog loggers used by the library and the demo
// binaries. It provides a console handler for interactive use, a JSON
// handler for log files and pipelines, attribute helpers, and a no-op
// logger for callers that want silence.
package logging
