package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := HealthResult{Server: cfg.ServerURL}

			start := time.Now()
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Latency = time.Since(start)

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
