package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "provider settings",
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	settingsCmd.AddCommand(setSettingsCmd())
	settingsCmd.AddCommand(showSettingsCmd())
}

func setSettingsCmd() *cobra.Command {
	var (
		apiKey   string
		budgetID string
	)

	command := &cobra.Command{
		Use:   "set",
		Short: "Set the provider api key and budget id",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			settings, err := app.store.GetProviderSettings(ctx)
			if err != nil {
				logrus.Fatalf("loading settings: %v", err)
			}

			if apiKey != "" {
				settings.APIKey = apiKey
			}
			if budgetID != "" {
				settings.BudgetID = budgetID
			}
			settings.Enabled = settings.Configured()

			if err := app.store.SaveProviderSettings(ctx, settings); err != nil {
				logrus.Fatalf("saving settings: %v", err)
			}
			fmt.Println("settings saved")
		},
	}

	command.Flags().StringVar(&apiKey, "api-key", "", "provider api key")
	command.Flags().StringVar(&budgetID, "budget-id", "", "provider budget id")

	return command
}

func showSettingsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "show",
		Short: "Show provider settings and sync state",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			settings, err := app.store.GetProviderSettings(ctx)
			if err != nil {
				logrus.Fatalf("loading settings: %v", err)
			}
			state, err := app.store.GetSyncState(ctx)
			if err != nil {
				logrus.Fatalf("loading sync state: %v", err)
			}

			masked := "not set"
			if settings.APIKey != "" {
				masked = settings.APIKey[:min(5, len(settings.APIKey))] + "..."
			}
			fmt.Printf("api key: %s\n", masked)
			fmt.Printf("budget id: %s\n", settings.BudgetID)
			fmt.Printf("server knowledge: %d\n", state.ServerKnowledge)
			if state.LastSynced != nil {
				fmt.Printf("last synced: %s\n", state.LastSynced)
			}
		},
	}

	return command
}
