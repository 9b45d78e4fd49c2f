package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"multi-agent-chat/pkg/streamclient"
)

func newSendCmd() *cobra.Command {
	var (
		agent          string
		conversationID string
		overall        time.Duration
		idle           time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a message to an agent and stream the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			client := streamclient.NewClient(serverURL, nil, streamclient.Config{
				OverallTimeout: overall,
				IdleTimeout:    idle,
			}, logger)

			consumer, transcript, err := client.Stream(ctx, streamclient.Request{
				ConversationID: conversationID,
				Message:        strings.Join(args, " "),
				Agent:          agent,
			}, newRenderer(out))
			fmt.Fprintln(out)
			if transcript.ConversationID != "" && conversationID == "" {
				fmt.Fprintf(out, "conversation: %s\n", transcript.ConversationID)
			}

			switch {
			case err == nil:
				return nil
			case consumer.State() == streamclient.StateCancelled:
				fmt.Fprintln(out, "cancelled")
				return nil
			}

			var failure *streamclient.Failure
			if errors.As(err, &failure) {
				fmt.Fprintf(out, "✗ %s (%s)\n", failure.Message, failure.Kind)
				return err
			}
			var httpErr *streamclient.HTTPError
			if errors.As(err, &httpErr) {
				fmt.Fprintf(out, "✗ request rejected: %s\n", httpErr.Message)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&agent, "agent", "a", "market", "agent family (market, pricing, news, design)")
	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "conversation id; empty starts a new one")
	cmd.Flags().DurationVar(&overall, "timeout", streamclient.DefaultOverallTimeout, "overall stream timeout")
	cmd.Flags().DurationVar(&idle, "idle-timeout", streamclient.DefaultIdleTimeout, "idle timeout between events")

	return cmd
}
