package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finassist",
	Short: "personal finance aggregation backend",
	Example: `finassist db migrate
finassist sync
finassist sync --linked-only
finassist link add -c account -i <core-id> -p <budget-account-id>
finassist link remove -c account -i <core-id>
finassist link list
finassist settings set --api-key <key> --budget-id <id>
finassist budgets
finassist schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
