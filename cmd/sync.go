package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/finassist/finassist/internal/provider"
	"github.com/finassist/finassist/internal/sync"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd())
}

func syncCmd() *cobra.Command {
	var linkedOnly bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Pull a budget snapshot from the provider and reconcile it locally",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			reconciler, err := app.reconciler(ctx)
			if err != nil {
				logrus.Fatalf("building reconciler: %v", err)
			}

			if linkedOnly {
				refreshed, failed := reconciler.RefreshAllLinked(ctx)
				fmt.Printf("linked accounts refreshed: %d, failed: %d\n", refreshed, failed)
				return
			}

			summary, err := reconciler.Run(ctx)
			if errors.Is(err, sync.ErrNotConfigured) {
				fmt.Println("provider is not configured; set an api key and budget id first")
				return
			}
			var apiErr *provider.APIError
			if errors.As(err, &apiErr) {
				logrus.Fatalf("provider API error: %s", apiErr.Reason())
			}
			if err != nil {
				logrus.Fatalf("sync failed: %v", err)
			}

			fmt.Println(summary.Message())
		},
	}

	command.Flags().BoolVar(&linkedOnly, "linked-only", false, "re-project linked accounts without fetching from the provider")

	return command
}
