package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/finassist/finassist/internal/jobs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd())
}

func scheduleCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "schedule",
		Short: "Run the sync on the configured cron schedule until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			app := newApp()

			reconciler, err := app.reconciler(ctx)
			if err != nil {
				logrus.Fatalf("building reconciler: %v", err)
			}

			executor := jobs.NewTaskExecutor([]jobs.CronJob{
				jobs.NewBudgetSyncTask(app.cnf.SyncSchedule, reconciler),
			})
			executor.Run()
			defer executor.Stop()

			logrus.Infof("sync scheduled: %s", app.cnf.SyncSchedule)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			<-stop
		},
	}

	return command
}
