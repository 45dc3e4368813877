package jobs

import (
	"context"
	"errors"

	"github.com/finassist/finassist/internal/sync"
	"github.com/sirupsen/logrus"
)

// BudgetSyncTask runs the reconciler on a cron schedule.
type BudgetSyncTask struct {
	reconciler *sync.Reconciler
	cron       string
}

func NewBudgetSyncTask(interval string, reconciler *sync.Reconciler) *BudgetSyncTask {
	return &BudgetSyncTask{
		reconciler: reconciler,
		cron:       interval,
	}
}

func (b *BudgetSyncTask) ID() string {
	return "budget_sync"
}

func (b *BudgetSyncTask) Name() string {
	return "budget_sync"
}

func (b *BudgetSyncTask) Schedule() string {
	return b.cron
}

func (b *BudgetSyncTask) Run() {
	summary, err := b.reconciler.Run(context.Background())
	if errors.Is(err, sync.ErrNotConfigured) {
		logrus.Info("scheduled sync skipped: provider not configured")
		return
	}
	if err != nil {
		logrus.Errorf("scheduled sync failed: %v", err)
		return
	}
	logrus.Info(summary.Message())
}
