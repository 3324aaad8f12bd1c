package ipcbus

import (
	"log/slog"
	"time"

	"ipcbus/internal/logging"
	"ipcbus/internal/procs"
	"ipcbus/wire"
)

// DefaultDialTimeout bounds client connection attempts unless overridden
// with WithDialTimeout.
const DefaultDialTimeout = 2 * time.Second

// Option adjusts server or client behavior.
type Option func(*options)

type options struct {
	codec          wire.Codec
	logger         *slog.Logger
	onError        func(error)
	countInstances func() (int, error)
	dialTimeout    time.Duration
}

// WithCodec selects the payload codec. Defaults to wire.JSON; client and
// server must use the same codec.
func WithCodec(c wire.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger routes diagnostics to logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithErrorHandler installs a callback for errors inside the running server
// loop: accept failures, malformed connections, and recovered handler
// panics. These errors never stop the loop; without a handler they are only
// logged.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithInstanceCounter overrides how sibling instances of the current
// executable are counted during stale-socket recovery. Mainly for tests.
func WithInstanceCounter(fn func() (int, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.countInstances = fn
		}
	}
}

// WithDialTimeout bounds client connection attempts. Zero disables the
// timeout entirely.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		codec:          wire.JSON,
		logger:         logging.NewNop(),
		countInstances: procs.CountCurrent,
		dialTimeout:    DefaultDialTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) report(err error) {
	if o.onError != nil {
		o.onError(err)
		return
	}
	o.logger.Warn("server loop error", logging.Error(err))
}
