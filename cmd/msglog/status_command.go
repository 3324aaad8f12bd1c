package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ipcbus"
	"ipcbus/internal/protocol"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon runtime information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			req := protocol.Request{Kind: protocol.KindStatus}
			resp, err := ipcbus.Query[protocol.Request, protocol.Response](socket, req)
			if err != nil {
				return fmt.Errorf("query status: %w", err)
			}
			if resp.Kind == protocol.KindError {
				return fmt.Errorf("daemon error: %s", resp.Err)
			}

			rows := [][]string{
				{"Socket", socket},
				{"PID", strconv.Itoa(resp.PID)},
				{"Uptime", resp.Uptime},
				{"Entries", strconv.FormatInt(resp.Total, 10)},
			}
			out := renderRows([]string{"Field", "Value"}, rows,
				[]columnAlignment{alignLeft, alignLeft})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
