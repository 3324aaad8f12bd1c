// Package control orchestrates the msglogd daemon from the CLI: launching a
// detached process, waiting for its socket to answer, and requesting
// shutdown.
package control

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"ipcbus"
	"ipcbus/internal/protocol"
)

// ErrNotRunning indicates the daemon socket is unreachable.
var ErrNotRunning = errors.New("daemon not running")

// PollInterval is the delay between connection attempts while waiting for
// the daemon to come up or go away.
const PollInterval = 200 * time.Millisecond

// Launch starts a detached msglogd process.
func Launch(executablePath, configPath string) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("resolve executable: executable path is empty")
	}
	var args []string
	if cfg := strings.TrimSpace(configPath); cfg != "" {
		args = append(args, "--config", cfg)
	}
	proc := exec.Command(executablePath, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// Ping performs one liveness exchange with the daemon.
func Ping(socket string) (*protocol.Response, error) {
	resp, err := ipcbus.Query[protocol.Request, protocol.Response](socket, protocol.Request{Kind: protocol.KindPing})
	if err != nil {
		if unavailable(err) {
			return nil, ErrNotRunning
		}
		return nil, err
	}
	return &resp, nil
}

// WaitForServer blocks until the daemon answers a ping or timeout passes.
func WaitForServer(socket string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		if _, err := Ping(socket); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(PollInterval)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for daemon")
	}
	return fmt.Errorf("daemon did not come up: %w", lastErr)
}

// RequestShutdown asks the daemon to stop and waits until its socket stops
// answering. Returns ErrNotRunning when no daemon was reachable.
func RequestShutdown(socket string, timeout time.Duration) error {
	resp, err := ipcbus.Query[protocol.Request, protocol.Response](socket, protocol.Request{Kind: protocol.KindShutdown})
	if err != nil {
		if unavailable(err) {
			return ErrNotRunning
		}
		return err
	}
	if resp.Kind == protocol.KindError {
		return fmt.Errorf("daemon refused shutdown: %s", resp.Err)
	}
	return waitForShutdown(socket, timeout)
}

func waitForShutdown(socket string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := Ping(socket); errors.Is(err, ErrNotRunning) {
			return nil
		}
		time.Sleep(PollInterval)
	}
	return fmt.Errorf("daemon still answering after %s", timeout)
}

func unavailable(err error) bool {
	return os.IsNotExist(err) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, unix.ENOENT) ||
		errors.Is(err, unix.ECONNREFUSED)
}
