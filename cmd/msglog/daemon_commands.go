package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ipcbus/internal/control"
)

const (
	startWaitTimeout = 10 * time.Second
	stopWaitTimeout  = 10 * time.Second
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Launch the msglogd daemon if it is not already running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			if _, err := control.Ping(socket); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "msglogd already running")
				return nil
			}

			daemonPath, err := resolveDaemonBinary()
			if err != nil {
				return err
			}
			if err := control.Launch(daemonPath, ctx.configPath()); err != nil {
				return err
			}
			if err := control.WaitForServer(socket, startWaitTimeout); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "msglogd started")
			return nil
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask the msglogd daemon to shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			err = control.RequestShutdown(socket, stopWaitTimeout)
			if errors.Is(err, control.ErrNotRunning) {
				fmt.Fprintln(cmd.OutOrStdout(), "msglogd is not running")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "msglogd stopped")
			return nil
		},
	}
}

// resolveDaemonBinary expects msglogd to be installed next to msglog.
func resolveDaemonBinary() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	daemonPath := filepath.Join(filepath.Dir(self), "msglogd")
	if _, err := os.Stat(daemonPath); err != nil {
		return "", fmt.Errorf("msglogd binary not found at %s: %w", daemonPath, err)
	}
	return daemonPath, nil
}
