package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sagebot/pkg/srv"
	"github.com/spf13/cobra"
)

var (
	askSessionID string
	askUserID    string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Long:  `Runs one query through the full pipeline and prints the answer with its source and confidence.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		stack := NewStack(ctx)
		defer srv.ShutdownServices(ctx, stack.cleanups)

		query := strings.Join(args, " ")
		result := stack.assistant.ProcessQuery(ctx, askUserID, query, askSessionID)

		fmt.Println(result.Response)
		fmt.Printf("[%s, confidence %.2f, session %s]\n", result.Source, result.Confidence, result.SessionID)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askSessionID, "session", "", "session id to continue")
	askCmd.Flags().StringVar(&askUserID, "user", "cli-local", "user id to remember facts under")
	rootCmd.AddCommand(askCmd)
}
