package projector

import (
	"testing"
	"time"

	"github.com/finassist/finassist/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProject_convertsMilliunitsExactly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mirror := &model.BudgetAccount{
		ID:               "m1",
		Name:             "Checking",
		Balance:          123456,
		ClearedBalance:   120000,
		UnclearedBalance: 3456,
		OnBudget:         true,
	}

	p := Project(mirror, now)

	assert.True(t, p.Balance.Equal(decimal.RequireFromString("123.456")),
		"got %s", p.Balance)
	assert.True(t, p.ClearedBalance.Equal(decimal.RequireFromString("120")))
	assert.True(t, p.UnclearedBalance.Equal(decimal.RequireFromString("3.456")))
	assert.True(t, p.OnBudget)
	assert.False(t, p.Closed)
	assert.Equal(t, now, p.LastSyncAt)
}

func TestProject_roundAmounts(t *testing.T) {
	p := Project(&model.BudgetAccount{Balance: 500000}, time.Now())
	assert.True(t, p.Balance.Equal(decimal.NewFromInt(500)), "got %s", p.Balance)

	p = Project(&model.BudgetAccount{Balance: -250500}, time.Now())
	assert.True(t, p.Balance.Equal(decimal.RequireFromString("-250.5")), "got %s", p.Balance)
}

func TestProject_debtFields(t *testing.T) {
	debt := int64(1500000)
	reconciled := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	mirror := &model.BudgetAccount{
		Balance:             -1000000,
		LastReconciledAt:    &reconciled,
		DebtOriginalBalance: &debt,
		DebtInterestRates:   `{"2024-01-01": 4990}`,
		DebtMinimumPayments: `{"2024-01-01": 250000}`,
	}

	p := Project(mirror, time.Now())

	assert.NotNil(t, p.DebtOriginalBalance)
	assert.True(t, p.DebtOriginalBalance.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, `{"2024-01-01": 4990}`, p.DebtInterestRates)
	assert.Equal(t, `{"2024-01-01": 250000}`, p.DebtMinimumPayments)
	assert.Equal(t, &reconciled, p.LastReconciledAt)

	p = Project(&model.BudgetAccount{}, time.Now())
	assert.Nil(t, p.DebtOriginalBalance)
}

func TestApply_account(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	debt := int64(2000000)
	mirror := &model.BudgetAccount{
		Balance:             500000,
		ClearedBalance:      400000,
		UnclearedBalance:    100000,
		OnBudget:            true,
		Closed:              false,
		Note:                "Joint account",
		DebtOriginalBalance: &debt,
	}
	account := &model.Account{ID: "c1", Name: "Checking"}

	Apply(Project(mirror, now), account)

	assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))
	assert.True(t, account.ClearedBalance.Equal(decimal.NewFromInt(400)))
	assert.True(t, account.UnclearedBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, account.OnBudget)
	assert.False(t, account.Closed)
	assert.NotNil(t, account.DebtOriginalBalance)
	assert.True(t, account.DebtOriginalBalance.Equal(decimal.NewFromInt(2000)))
	assert.NotNil(t, account.LastSyncAt)
	assert.Equal(t, now, *account.LastSyncAt)
}

func TestApply_noteEnrichment(t *testing.T) {
	mirror := &model.BudgetAccount{Note: "Joint account"}

	// empty notes are enriched
	account := &model.Account{}
	Apply(Project(mirror, time.Now()), account)
	assert.Equal(t, "Joint account", account.Notes)

	// existing notes are never overwritten
	account = &model.Account{Notes: "existing"}
	Apply(Project(mirror, time.Now()), account)
	assert.Equal(t, "existing", account.Notes)

	// an empty remote note changes nothing
	account = &model.Account{}
	Apply(Project(&model.BudgetAccount{}, time.Now()), account)
	assert.Equal(t, "", account.Notes)
}

func TestApply_commonSubsetForOtherKinds(t *testing.T) {
	mirror := &model.BudgetAccount{Balance: 750000, Note: "card note", OnBudget: true}

	card := &model.CreditCard{ID: "cc1", Name: "Visa"}
	Apply(Project(mirror, time.Now()), card)

	assert.True(t, card.Balance.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, "card note", card.Notes)
}
