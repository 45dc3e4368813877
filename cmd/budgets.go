package cmd

import (
	"context"
	"fmt"

	"github.com/finassist/finassist/internal/provider"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(budgetsCmd())
}

func budgetsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "budgets",
		Short: "List the provider budgets for the configured api key",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			client, err := app.client(ctx)
			if err != nil {
				logrus.Fatalf("building client: %v", err)
			}
			lookups := provider.NewLookups(client, app.kv())

			user, err := lookups.GetUser(ctx)
			if err != nil {
				logrus.Fatalf("verifying credentials: %v", err)
			}
			fmt.Printf("authenticated as %s\n", user.ID)

			budgets, err := lookups.GetBudgets(ctx)
			if err != nil {
				logrus.Fatalf("listing budgets: %v", err)
			}
			for _, b := range budgets {
				fmt.Printf("%s  %s\n", b.ID, b.Name)
			}
		},
	}

	return command
}
