package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ipcbus"
	"ipcbus/internal/protocol"
)

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			req := protocol.Request{Kind: protocol.KindRecent, Limit: limit}
			resp, err := ipcbus.Query[protocol.Request, protocol.Response](socket, req)
			if err != nil {
				return fmt.Errorf("query recent entries: %w", err)
			}
			if resp.Kind == protocol.KindError {
				return fmt.Errorf("daemon error: %s", resp.Err)
			}
			if len(resp.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
				return nil
			}

			rows := make([][]string, 0, len(resp.Entries))
			for _, entry := range resp.Entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.Source,
					entry.Text,
				})
			}
			out := renderRows([]string{"Time", "Source", "Message"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}
