package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/sagebot/internal/transport/cli"
	"github.com/sandevgo/sagebot/pkg/log"
	"github.com/sandevgo/sagebot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with SageBot in the terminal",
	Long:  `Starts an interactive read-line session against the local assistant. Type 'exit' to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		stack := NewStack(ctx)
		defer srv.ShutdownServices(ctx, stack.cleanups)

		readline, err := cli.NewReadLine(stack.assistant, stack.tools, stack.cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := readline.Shutdown(ctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msg("failed to close readline")
			}
		}()

		return readline.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
