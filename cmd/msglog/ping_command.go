package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ipcbus/internal/control"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether the daemon is answering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			resp, err := control.Ping(socket)
			if err != nil {
				if errors.Is(err, control.ErrNotRunning) {
					return fmt.Errorf("msglogd is not running on %s", socket)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pong from pid %d\n", resp.PID)
			return nil
		},
	}
}
