package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type turnContent struct {
	Content struct {
		Text string `json:"text"`
	} `json:"content"`
}

type historyTurn struct {
	Seq       int64       `json:"seq"`
	AgentName string      `json:"agent_name"`
	User      turnContent `json:"user"`
	Agent     turnContent `json:"agent"`
}

type historyResp struct {
	Message string `json:"message"`
	Data    struct {
		Turns []historyTurn `json:"turns"`
	} `json:"data"`
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [conversation-id]",
		Short: "Print the turns of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			endpoint := fmt.Sprintf("%s/api/v1/conversations/%s/turns?limit=%d",
				strings.TrimRight(serverURL, "/"), url.PathEscape(args[0]), limit)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var body historyResp
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("http %d: %s", resp.StatusCode, body.Message)
			}

			out := cmd.OutOrStdout()
			for _, t := range body.Data.Turns {
				fmt.Fprintf(out, "#%d you: %s\n", t.Seq, t.User.Content.Text)
				fmt.Fprintf(out, "#%d %s: %s\n\n", t.Seq, t.AgentName, t.Agent.Content.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "only the most recent N turns")
	return cmd
}
