package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ipcbus"
	"ipcbus/internal/protocol"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "send <text>...",
		Short: "Record a message in the daemon's journal (fire-and-forget)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			req := protocol.Request{Kind: protocol.KindAppend, Text: text, Source: source}
			if err := ipcbus.Send(socket, req); err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "cli", "Source label stored with the message")
	return cmd
}
