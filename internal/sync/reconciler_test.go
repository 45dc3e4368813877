package sync

import (
	"context"
	"testing"
	"time"

	"github.com/finassist/finassist/internal/model"
	"github.com/finassist/finassist/internal/provider"
	"github.com/finassist/finassist/internal/registry"
	"github.com/finassist/finassist/internal/store"
	"github.com/finassist/finassist/internal/tester"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClient struct {
	snapshot *provider.Snapshot
	err      error
	calls    []int64
}

func (f *fakeClient) GetBudget(ctx context.Context, budgetID string, sinceKnowledge int64) (*provider.Snapshot, error) {
	f.calls = append(f.calls, sinceKnowledge)
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func setupReconciler(t *testing.T, client Client) (*Reconciler, store.Store, *gorm.DB) {
	t.Helper()
	tester.Setup()
	db := tester.TestDB()
	st := store.NewGormStore(db)

	settings, err := st.GetProviderSettings(context.TODO())
	require.NoError(t, err)
	settings.APIKey = "test-key"
	settings.BudgetID = "test-budget"
	require.NoError(t, st.SaveProviderSettings(context.TODO(), settings))

	return NewReconciler(st, registry.Default(db), client), st, db
}

func str(s string) *string { return &s }

func snapshotFixture() *provider.Snapshot {
	return &provider.Snapshot{
		Accounts: []provider.AccountPayload{
			{
				ID:               "a1",
				Name:             "Checking",
				Type:             "checking",
				OnBudget:         true,
				Balance:          500000,
				ClearedBalance:   450000,
				UnclearedBalance: 50000,
				TransferPayeeID:  "tp1",
			},
		},
		Payees: []provider.PayeePayload{
			{ID: "p1", Name: "Grocer"},
		},
		CategoryGroups: []provider.CategoryGroupPayload{
			{ID: "g1", Name: "Everyday"},
		},
		Categories: []provider.CategoryPayload{
			{ID: "c1", CategoryGroupID: "g1", CategoryGroupName: "Everyday", Name: "Food", Budgeted: 200000},
		},
		Transactions: []provider.TransactionPayload{
			{
				ID:         "t1",
				Date:       "2025-05-01",
				Amount:     -12340,
				AccountID:  "a1",
				PayeeID:    str("p1"),
				CategoryID: str("c1"),
				Subtransactions: []provider.SubtransactionPayload{
					{ID: "s1", Amount: -10000, CategoryID: str("c1")},
					{ID: "s2", Amount: -2340, CategoryID: str("missing-category")},
				},
			},
			{
				// references a category outside the delta window: nulled, kept
				ID:         "t2",
				Date:       "2025-05-02",
				Amount:     -5000,
				AccountID:  "a1",
				CategoryID: str("missing-category"),
			},
			{
				// references an unknown account: dropped entirely
				ID:        "t3",
				Date:      "2025-05-03",
				Amount:    -100,
				AccountID: "missing-account",
			},
		},
		ServerKnowledge: 100,
	}
}

func TestReconciler_Run_fullSync(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, st, db := setupReconciler(t, client)
	ctx := context.TODO()

	summary, err := reconciler.Run(ctx)
	require.NoError(t, err)

	// cursor starts at zero: a full fetch was requested
	assert.Equal(t, []int64{0}, client.calls)

	assert.Equal(t, Counts{Created: 1, Updated: 0}, summary.Accounts)
	// p1 plus the synthesized transfer payee tp1
	assert.Equal(t, Counts{Created: 2, Updated: 0}, summary.Payees)
	assert.Equal(t, Counts{Created: 1, Updated: 0}, summary.CategoryGroups)
	assert.Equal(t, Counts{Created: 1, Updated: 0}, summary.Categories)
	assert.Equal(t, Counts{Created: 2, Updated: 0}, summary.Transactions)
	assert.Equal(t, Counts{Created: 2, Updated: 0}, summary.Subtransactions)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, int64(100), summary.ServerKnowledge)

	// synthesized transfer payee
	var payee model.Payee
	require.NoError(t, db.First(&payee, "id = ?", "tp1").Error)
	assert.Equal(t, "Transfer : Checking", payee.Name)

	// t2 kept with its category nulled
	var txn model.Transaction
	require.NoError(t, db.First(&txn, "id = ?", "t2").Error)
	assert.Nil(t, txn.CategoryID)

	// t3 dropped entirely
	err = db.First(&model.Transaction{}, "id = ?", "t3").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// s2's dangling category reference nulled, row kept
	var sub model.Subtransaction
	require.NoError(t, db.First(&sub, "id = ?", "s2").Error)
	assert.Nil(t, sub.CategoryID)

	// cursor advanced only now
	state, err := st.GetSyncState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), state.ServerKnowledge)
	assert.NotNil(t, state.LastSynced)
}

func TestReconciler_Run_idempotent(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, _, db := setupReconciler(t, client)
	ctx := context.TODO()

	_, err := reconciler.Run(ctx)
	require.NoError(t, err)

	summary, err := reconciler.Run(ctx)
	require.NoError(t, err)

	// everything already present: updates only, no duplicates
	assert.Equal(t, Counts{Created: 0, Updated: 1}, summary.Accounts)
	assert.Equal(t, Counts{Created: 0, Updated: 2}, summary.Payees)
	assert.Equal(t, Counts{Created: 0, Updated: 2}, summary.Transactions)

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
	require.NoError(t, db.Model(&model.Payee{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// the delta request carried the advanced cursor
	assert.Equal(t, []int64{0, 100}, client.calls)
}

func TestReconciler_Run_cursorUnchangedOnError(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, st, _ := setupReconciler(t, client)
	ctx := context.TODO()

	_, err := reconciler.Run(ctx)
	require.NoError(t, err)

	client.err = &provider.APIError{StatusCode: 503}
	_, err = reconciler.Run(ctx)

	var apiErr *provider.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)

	state, err := st.GetSyncState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), state.ServerKnowledge)
}

func TestReconciler_Run_notConfigured(t *testing.T) {
	tester.Setup()
	db := tester.TestDB()
	st := store.NewGormStore(db)
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler := NewReconciler(st, registry.Default(db), client)

	_, err := reconciler.Run(context.TODO())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, client.calls)
}

func TestReconciler_Run_skipsMalformedRecords(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.Accounts = append(snapshot.Accounts, provider.AccountPayload{Name: "no id"})
	snapshot.Payees = append(snapshot.Payees, provider.PayeePayload{Name: "no id"})
	snapshot.Transactions = append(snapshot.Transactions, provider.TransactionPayload{
		ID: "t4", Date: "not-a-date", AccountID: "a1",
	})

	client := &fakeClient{snapshot: snapshot}
	reconciler, _, db := setupReconciler(t, client)

	summary, err := reconciler.Run(context.TODO())
	require.NoError(t, err)

	// t3 (unknown account) + malformed account, payee and date
	assert.Equal(t, 4, summary.Skipped)

	var count int64
	require.NoError(t, db.Model(&model.BudgetAccount{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReconciler_Run_refreshesLinkedAccounts(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, _, db := setupReconciler(t, client)
	ctx := context.TODO()

	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	reconciler.now = func() time.Time { return fixed }

	core := &model.Account{ID: "core-1", Name: "Checking"}
	require.NoError(t, db.Create(core).Error)
	require.NoError(t, db.Create(&model.Link{
		ID:         "l1",
		CoreKind:   model.KindAccount,
		CoreID:     core.ID,
		PluginKind: model.KindBudgetAccount,
		PluginID:   "a1",
	}).Error)

	summary, err := reconciler.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LinkedRefreshed)
	assert.Equal(t, 0, summary.LinkedFailed)

	var refreshed model.Account
	require.NoError(t, db.First(&refreshed, "id = ?", core.ID).Error)
	assert.True(t, refreshed.Balance.Equal(decimal.NewFromInt(500)), "got %s", refreshed.Balance)
	assert.True(t, refreshed.OnBudget)
	require.NotNil(t, refreshed.LastSyncAt)
	assert.Equal(t, fixed, refreshed.LastSyncAt.UTC())
}

func TestReconciler_Run_brokenLinkDoesNotAbort(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, _, db := setupReconciler(t, client)
	ctx := context.TODO()

	core := &model.Account{ID: "core-1", Name: "Checking"}
	require.NoError(t, db.Create(core).Error)
	require.NoError(t, db.Create(&model.Link{
		ID:         "l1",
		CoreKind:   model.KindAccount,
		CoreID:     core.ID,
		PluginKind: model.KindBudgetAccount,
		PluginID:   "a1",
	}).Error)
	// a link whose mirror row does not exist
	require.NoError(t, db.Create(&model.Link{
		ID:         "l2",
		CoreKind:   model.KindAccount,
		CoreID:     "deleted-core",
		PluginKind: model.KindBudgetAccount,
		PluginID:   "a1-other",
	}).Error)

	summary, err := reconciler.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LinkedRefreshed)
	assert.Equal(t, 1, summary.LinkedFailed)
}

func TestReconciler_RefreshAllLinked(t *testing.T) {
	client := &fakeClient{snapshot: snapshotFixture()}
	reconciler, _, db := setupReconciler(t, client)
	ctx := context.TODO()

	_, err := reconciler.Run(ctx)
	require.NoError(t, err)

	core := &model.Account{ID: "core-1", Name: "Checking"}
	require.NoError(t, db.Create(core).Error)
	require.NoError(t, db.Create(&model.Link{
		ID:         "l1",
		CoreKind:   model.KindAccount,
		CoreID:     core.ID,
		PluginKind: model.KindBudgetAccount,
		PluginID:   "a1",
	}).Error)

	// no remote fetch involved
	calls := len(client.calls)
	refreshed, failed := reconciler.RefreshAllLinked(ctx)
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, calls, len(client.calls))

	var updated model.Account
	require.NoError(t, db.First(&updated, "id = ?", core.ID).Error)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(500)))
}
