package main

import (
	"github.com/spf13/cobra"

	"github.com/PabloGalante/haven/internal/adapters/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat (default)",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}

	repl := cli.NewREPL(c.dispatcher, c.catalog.Session, cmd.InOrStdin(), cmd.OutOrStdout())
	return repl.Run(ctx)
}
