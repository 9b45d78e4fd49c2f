package main

import (
	"github.com/spf13/cobra"

	"multi-agent-chat/pkg/log"
)

var (
	serverURL string
	logLevel  string

	// set in PersistentPreRunE
	logger log.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Terminal client for the multi-agent chat API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = log.Init(log.ZapConfig{
				Level:    logLevel,
				Mode:     "production",
				Encoding: "console",
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API base URL")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}
