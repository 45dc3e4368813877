// Package projector converts mirrored provider balances into the decimal
// representation core records carry. The milliunit-to-decimal conversion
// happens here and nowhere else, exactly once per field.
package projector

import (
	"time"

	"github.com/finassist/finassist/internal/model"
	"github.com/shopspring/decimal"
)

// Projection is the set of core-record fields derived from one mirrored
// account. Building it is a pure transform; applying it assigns every field
// before the caller persists the record in a single save.
type Projection struct {
	Balance             decimal.Decimal
	ClearedBalance      decimal.Decimal
	UnclearedBalance    decimal.Decimal
	OnBudget            bool
	Closed              bool
	LastReconciledAt    *time.Time
	DebtOriginalBalance *decimal.Decimal
	DebtInterestRates   string
	DebtMinimumPayments string
	DebtEscrowAmounts   string
	Note                string
	LastSyncAt          time.Time
}

// fromMilliunits converts a provider milliunit amount to a decimal major-unit
// amount. An exponent shift, so 123456 becomes exactly 123.456.
func fromMilliunits(v int64) decimal.Decimal {
	return decimal.New(v, -3)
}

// Project derives the core-record fields from a mirrored account. now becomes
// the record's LastSyncAt: wall-clock at application time, not remote time.
func Project(mirror *model.BudgetAccount, now time.Time) Projection {
	p := Projection{
		Balance:             fromMilliunits(mirror.Balance),
		ClearedBalance:      fromMilliunits(mirror.ClearedBalance),
		UnclearedBalance:    fromMilliunits(mirror.UnclearedBalance),
		OnBudget:            mirror.OnBudget,
		Closed:              mirror.Closed,
		LastReconciledAt:    mirror.LastReconciledAt,
		DebtInterestRates:   mirror.DebtInterestRates,
		DebtMinimumPayments: mirror.DebtMinimumPayments,
		DebtEscrowAmounts:   mirror.DebtEscrowAmounts,
		Note:                mirror.Note,
		LastSyncAt:          now,
	}
	if mirror.DebtOriginalBalance != nil {
		debt := fromMilliunits(*mirror.DebtOriginalBalance)
		p.DebtOriginalBalance = &debt
	}
	return p
}

// Apply assigns the projection onto a core record. All core kinds receive
// balance and the one-way note enrichment; an Account receives the full
// provider-derived field set. The caller persists the record afterwards so the
// assignment is observed all-or-nothing.
func Apply(p Projection, rec model.CoreRecord) {
	rec.SetBalance(p.Balance)
	if p.Note != "" && rec.GetNotes() == "" {
		rec.SetNotes(p.Note)
	}

	account, ok := rec.(*model.Account)
	if !ok {
		return
	}

	account.ClearedBalance = p.ClearedBalance
	account.UnclearedBalance = p.UnclearedBalance
	account.OnBudget = p.OnBudget
	account.Closed = p.Closed
	account.LastReconciledAt = p.LastReconciledAt
	if p.DebtOriginalBalance != nil {
		account.DebtOriginalBalance = p.DebtOriginalBalance
	}
	account.DebtInterestRates = p.DebtInterestRates
	account.DebtMinimumPayments = p.DebtMinimumPayments
	account.DebtEscrowAmounts = p.DebtEscrowAmounts
	lastSync := p.LastSyncAt
	account.LastSyncAt = &lastSync
}
