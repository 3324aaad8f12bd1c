package ipcbus

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"

	"ipcbus/endpoint"
	"ipcbus/internal/logging"
)

// Listen binds a listener on the named endpoint.
//
// When the endpoint is already in use, the instance counter decides what
// happens next: with more than one live instance of this executable the
// endpoint is assumed to be held by a sibling and Listen fails with
// ErrAlreadyInUse. Otherwise the socket file is treated as a stale leftover
// from an unclean shutdown: it is removed (failure: *FileError) and the bind
// retried exactly once (failure: *BindError). The window between the failed
// bind and the retry is an accepted race; this is best-effort recovery, not
// a lock. Abstract-namespace endpoints never leave files behind, so for them
// an in-use bind fails outright.
func Listen(name string, opts ...Option) (net.Listener, error) {
	return listen(name, buildOptions(opts))
}

func listen(name string, o *options) (net.Listener, error) {
	ln, err := net.Listen("unix", name)
	if err == nil {
		return ln, nil
	}
	if !errors.Is(err, unix.EADDRINUSE) || endpoint.IsAbstract(name) {
		return nil, &BindError{Name: name, Err: err}
	}

	instances, countErr := o.countInstances()
	if countErr != nil {
		return nil, &BindError{Name: name, Err: errors.Join(err, countErr)}
	}
	if instances > 1 {
		return nil, ErrAlreadyInUse
	}

	o.logger.Warn("endpoint in use with no sibling instance running; removing stale socket",
		logging.String("endpoint", name))
	if rmErr := os.Remove(name); rmErr != nil {
		return nil, &FileError{Name: name, Err: rmErr}
	}

	ln, err = net.Listen("unix", name)
	if err != nil {
		return nil, &BindError{Name: name, Err: err}
	}
	return ln, nil
}
