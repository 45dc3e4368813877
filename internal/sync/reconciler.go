// Package sync pulls budget snapshots from the provider and reconciles them
// into the local mirror tables. Application order is fixed: payees (including
// synthesized transfer payees), accounts, category groups, categories,
// transactions, subtransactions; transactions reference the earlier kinds by
// id, so those must land first. After accounts are upserted every linked core
// account is refreshed through the balance projector. The server-knowledge
// cursor advances only after everything else succeeded, so a failed run is
// always safe to retry.
package sync

import (
	"context"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/finassist/finassist/internal/model"
	"github.com/finassist/finassist/internal/projector"
	"github.com/finassist/finassist/internal/provider"
	"github.com/finassist/finassist/internal/registry"
	"github.com/finassist/finassist/internal/store"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// ErrNotConfigured is returned when the provider api key or budget id is
// missing; nothing is fetched in that case.
var ErrNotConfigured = errors.New("provider is not configured")

// Client fetches budget snapshots from the provider.
type Client interface {
	GetBudget(ctx context.Context, budgetID string, sinceKnowledge int64) (*provider.Snapshot, error)
}

type Reconciler struct {
	store    store.Store
	registry *registry.Registry
	client   Client
	now      func() time.Time
}

func NewReconciler(store store.Store, registry *registry.Registry, client Client) *Reconciler {
	return &Reconciler{
		store:    store,
		registry: registry,
		client:   client,
		now:      time.Now,
	}
}

// Run executes one sync cycle. Transport and configuration failures abort the
// run and leave the cursor untouched; malformed individual records are counted
// and skipped; per-link projection failures are counted and logged.
func (r *Reconciler) Run(ctx context.Context) (*Summary, error) {
	settings, err := r.store.GetProviderSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Configured() {
		return nil, ErrNotConfigured
	}

	state, err := r.store.GetSyncState(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := r.client.GetBudget(ctx, settings.BudgetID, state.ServerKnowledge)
	if err != nil {
		return nil, err
	}

	summary := &Summary{ServerKnowledge: snapshot.ServerKnowledge}

	if err := r.applyPayees(ctx, snapshot, summary); err != nil {
		return nil, err
	}
	if err := r.applyAccounts(ctx, snapshot, summary); err != nil {
		return nil, err
	}
	if err := r.applyCategories(ctx, snapshot, summary); err != nil {
		return nil, err
	}
	if err := r.applyTransactions(ctx, snapshot, summary); err != nil {
		return nil, err
	}

	refreshed, failed := r.refreshLinkedAccounts(ctx)
	summary.LinkedRefreshed = refreshed
	summary.LinkedFailed = failed

	state.ServerKnowledge = snapshot.ServerKnowledge
	now := r.now()
	state.LastSynced = &now
	if err := r.store.SaveSyncState(ctx, state); err != nil {
		return nil, err
	}

	logrus.Infof("sync complete: %s", summary.Message())
	return summary, nil
}

// applyPayees upserts the snapshot's payees, first synthesizing a transfer
// payee for every account whose transfer payee exists neither locally nor in
// the snapshot.
func (r *Reconciler) applyPayees(ctx context.Context, snapshot *provider.Snapshot, summary *Summary) error {
	localIDs, err := r.store.ListPayeeIDs(ctx)
	if err != nil {
		return err
	}
	known := mapset.NewSet(localIDs...)

	rows := make([]*model.Payee, 0, len(snapshot.Payees))
	for _, p := range snapshot.Payees {
		if p.ID == "" {
			summary.Skipped++
			continue
		}
		known.Add(p.ID)
		rows = append(rows, &model.Payee{
			ID:                p.ID,
			Name:              p.Name,
			TransferAccountID: p.TransferAccountID,
			Deleted:           p.Deleted,
		})
	}

	for _, a := range snapshot.Accounts {
		if a.TransferPayeeID == "" || known.Contains(a.TransferPayeeID) {
			continue
		}
		known.Add(a.TransferPayeeID)
		rows = append(rows, &model.Payee{
			ID:   a.TransferPayeeID,
			Name: "Transfer : " + a.Name,
		})
	}

	return r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertPayees(ctx, rows)
		summary.Payees = Counts{Created: created, Updated: updated}
		return err
	})
}

func (r *Reconciler) applyAccounts(ctx context.Context, snapshot *provider.Snapshot, summary *Summary) error {
	rows := make([]*model.BudgetAccount, 0, len(snapshot.Accounts))
	for _, a := range snapshot.Accounts {
		if a.ID == "" {
			summary.Skipped++
			continue
		}
		rows = append(rows, &model.BudgetAccount{
			ID:                  a.ID,
			Name:                a.Name,
			Type:                a.Type,
			OnBudget:            a.OnBudget,
			Closed:              a.Closed,
			Note:                a.Note,
			Balance:             a.Balance,
			ClearedBalance:      a.ClearedBalance,
			UnclearedBalance:    a.UnclearedBalance,
			TransferPayeeID:     a.TransferPayeeID,
			DirectImportLinked:  a.DirectImportLinked,
			DirectImportInError: a.DirectImportInError,
			LastReconciledAt:    a.LastReconciledAt,
			DebtOriginalBalance: a.DebtOriginalBalance,
			DebtInterestRates:   string(a.DebtInterestRates),
			DebtMinimumPayments: string(a.DebtMinimumPayments),
			DebtEscrowAmounts:   string(a.DebtEscrowAmounts),
			Deleted:             a.Deleted,
		})
	}

	return r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertBudgetAccounts(ctx, rows)
		summary.Accounts = Counts{Created: created, Updated: updated}
		return err
	})
}

func (r *Reconciler) applyCategories(ctx context.Context, snapshot *provider.Snapshot, summary *Summary) error {
	groups := make([]*model.CategoryGroup, 0, len(snapshot.CategoryGroups))
	for _, g := range snapshot.CategoryGroups {
		if g.ID == "" {
			summary.Skipped++
			continue
		}
		groups = append(groups, &model.CategoryGroup{
			ID:      g.ID,
			Name:    g.Name,
			Hidden:  g.Hidden,
			Deleted: g.Deleted,
		})
	}

	categories := make([]*model.Category, 0, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		if c.ID == "" {
			summary.Skipped++
			continue
		}
		categories = append(categories, &model.Category{
			ID:                      c.ID,
			CategoryGroupID:         c.CategoryGroupID,
			CategoryGroupName:       c.CategoryGroupName,
			Name:                    c.Name,
			Hidden:                  c.Hidden,
			OriginalCategoryGroupID: c.OriginalCategoryGroupID,
			Note:                    c.Note,
			Budgeted:                c.Budgeted,
			Activity:                c.Activity,
			Balance:                 c.Balance,
			GoalType:                c.GoalType,
			GoalTarget:              c.GoalTarget,
			GoalTargetMonth:         c.GoalTargetMonth,
			GoalPercentageComplete:  c.GoalPercentageComplete,
			Deleted:                 c.Deleted,
		})
	}

	if err := r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertCategoryGroups(ctx, groups)
		summary.CategoryGroups = Counts{Created: created, Updated: updated}
		return err
	}); err != nil {
		return err
	}

	return r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertCategories(ctx, categories)
		summary.Categories = Counts{Created: created, Updated: updated}
		return err
	})
}

// applyTransactions validates foreign keys against the mirror tables as they
// stand after the earlier steps. A transaction whose account cannot be
// resolved is dropped entirely; unresolved payee or category references are
// nulled, since the provider may reference entities outside the delta window.
func (r *Reconciler) applyTransactions(ctx context.Context, snapshot *provider.Snapshot, summary *Summary) error {
	accountIDs, err := r.store.ListBudgetAccountIDs(ctx)
	if err != nil {
		return err
	}
	payeeIDs, err := r.store.ListPayeeIDs(ctx)
	if err != nil {
		return err
	}
	categoryIDs, err := r.store.ListCategoryIDs(ctx)
	if err != nil {
		return err
	}

	accounts := mapset.NewSet(accountIDs...)
	payees := mapset.NewSet(payeeIDs...)
	categories := mapset.NewSet(categoryIDs...)

	transactions := make([]*model.Transaction, 0, len(snapshot.Transactions))
	subtransactions := make([]*model.Subtransaction, 0)

	for _, t := range snapshot.Transactions {
		if t.ID == "" {
			summary.Skipped++
			continue
		}
		if t.AccountID == "" || !accounts.Contains(t.AccountID) {
			summary.Skipped++
			continue
		}
		date, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			logrus.Warnf("skipping transaction %s: bad date %q", t.ID, t.Date)
			summary.Skipped++
			continue
		}

		transactions = append(transactions, &model.Transaction{
			ID:                    t.ID,
			Date:                  date,
			Amount:                t.Amount,
			Memo:                  t.Memo,
			Cleared:               t.Cleared,
			Approved:              t.Approved,
			FlagColor:             t.FlagColor,
			AccountID:             t.AccountID,
			PayeeID:               resolveFK(t.PayeeID, payees),
			CategoryID:            resolveFK(t.CategoryID, categories),
			TransferAccountID:     t.TransferAccountID,
			TransferTransactionID: t.TransferTransactionID,
			ImportID:              t.ImportID,
			Deleted:               t.Deleted,
		})

		for _, s := range t.Subtransactions {
			if s.ID == "" {
				summary.Skipped++
				continue
			}
			subtransactions = append(subtransactions, &model.Subtransaction{
				ID:                s.ID,
				TransactionID:     t.ID,
				Amount:            s.Amount,
				Memo:              s.Memo,
				PayeeID:           resolveFK(s.PayeeID, payees),
				CategoryID:        resolveFK(s.CategoryID, categories),
				TransferAccountID: s.TransferAccountID,
				Deleted:           s.Deleted,
			})
		}
	}

	if err := r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertTransactions(ctx, transactions)
		summary.Transactions = Counts{Created: created, Updated: updated}
		return err
	}); err != nil {
		return err
	}

	return r.store.Transaction(ctx, func(tx store.Store) error {
		created, updated, err := tx.UpsertSubtransactions(ctx, subtransactions)
		summary.Subtransactions = Counts{Created: created, Updated: updated}
		return err
	})
}

// resolveFK nulls an optional reference that points at an id absent from the
// mirror tables.
func resolveFK(id *string, known mapset.Set[string]) *string {
	if id == nil || *id == "" {
		return nil
	}
	if !known.Contains(*id) {
		return nil
	}
	return id
}

// refreshLinkedAccounts projects every linked mirror account onto its core
// record. Failures are per-link: one failing link logs and continues.
func (r *Reconciler) refreshLinkedAccounts(ctx context.Context) (refreshed, failed int) {
	links, err := r.store.ListLinksByPluginKind(ctx, model.KindBudgetAccount)
	if err != nil {
		logrus.Errorf("listing account links: %v", err)
		return 0, 0
	}

	for _, l := range links {
		if err := r.refreshLink(ctx, l); err != nil {
			logrus.Errorf("refreshing link %s (%s/%s): %v", l.ID, l.CoreKind, l.CoreID, err)
			failed++
			continue
		}
		refreshed++
	}
	return refreshed, failed
}

// RefreshLink projects one linked mirror account onto its core record and
// persists it in a single save.
func (r *Reconciler) RefreshLink(ctx context.Context, l *model.Link) error {
	return r.refreshLink(ctx, l)
}

func (r *Reconciler) refreshLink(ctx context.Context, l *model.Link) error {
	mirror, err := r.store.GetBudgetAccount(ctx, l.PluginID)
	if err != nil {
		return err
	}
	core, err := r.registry.ResolveCore(l.CoreKind, l.CoreID)
	if err != nil {
		return err
	}

	projection := projector.Project(mirror, r.now())
	projector.Apply(projection, core)
	return r.store.SaveCoreRecord(ctx, core)
}

// RefreshAllLinked re-projects every linked account without contacting the
// provider. Backs the manual "sync linked accounts" action.
func (r *Reconciler) RefreshAllLinked(ctx context.Context) (refreshed, failed int) {
	return r.refreshLinkedAccounts(ctx)
}
