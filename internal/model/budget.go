package model

import "time"

// Mirror record kind tags.
const (
	KindBudgetAccount     = "budget_account"
	KindBudgetPayee       = "budget_payee"
	KindBudgetCategory    = "budget_category"
	KindBudgetTransaction = "budget_transaction"
)

// BudgetAccount mirrors one account from the budgeting provider. All monetary
// fields are provider milliunits (integer minor units), never converted here.
// Remote deletion is mirrored by the Deleted flag; rows are never removed.
type BudgetAccount struct {
	ID                  string `gorm:"primaryKey;not null"`
	Name                string `gorm:"not null"`
	Type                string
	OnBudget            bool
	Closed              bool
	Note                string
	Balance             int64
	ClearedBalance      int64
	UnclearedBalance    int64
	TransferPayeeID     string
	DirectImportLinked  bool
	DirectImportInError bool
	LastReconciledAt    *time.Time
	DebtOriginalBalance *int64
	DebtInterestRates   string
	DebtMinimumPayments string
	DebtEscrowAmounts   string
	Deleted             bool
}

func (a *BudgetAccount) TableName() string  { return "budget_accounts" }
func (a *BudgetAccount) EntityID() string   { return a.ID }
func (a *BudgetAccount) EntityName() string { return a.Name }

// Payee mirrors one provider payee, including transfer payees synthesized
// during sync for accounts whose transfer payee is absent from the snapshot.
type Payee struct {
	ID                string `gorm:"primaryKey;not null"`
	Name              string `gorm:"not null"`
	TransferAccountID string
	Deleted           bool
}

func (p *Payee) TableName() string  { return "budget_payees" }
func (p *Payee) EntityID() string   { return p.ID }
func (p *Payee) EntityName() string { return p.Name }

// CategoryGroup mirrors one provider category group.
type CategoryGroup struct {
	ID      string `gorm:"primaryKey;not null"`
	Name    string `gorm:"not null"`
	Hidden  bool
	Deleted bool
}

func (g *CategoryGroup) TableName() string  { return "budget_category_groups" }
func (g *CategoryGroup) EntityID() string   { return g.ID }
func (g *CategoryGroup) EntityName() string { return g.Name }

// Category mirrors one provider category. Goal and activity amounts stay in
// milliunits.
type Category struct {
	ID                      string `gorm:"primaryKey;not null"`
	CategoryGroupID         string `gorm:"index"`
	CategoryGroupName       string
	Name                    string `gorm:"not null"`
	Hidden                  bool
	OriginalCategoryGroupID string
	Note                    string
	Budgeted                int64
	Activity                int64
	Balance                 int64
	GoalType                string
	GoalTarget              *int64
	GoalTargetMonth         string
	GoalPercentageComplete  *int64
	Deleted                 bool
}

func (c *Category) TableName() string  { return "budget_categories" }
func (c *Category) EntityID() string   { return c.ID }
func (c *Category) EntityName() string { return c.Name }

// Transaction mirrors one provider transaction. AccountID is required; a
// transaction whose account cannot be resolved is dropped during sync.
// PayeeID and CategoryID are optional and nulled when unresolved.
type Transaction struct {
	ID                    string `gorm:"primaryKey;not null"`
	Date                  time.Time
	Amount                int64
	Memo                  string
	Cleared               string
	Approved              bool
	FlagColor             string
	AccountID             string  `gorm:"index;not null"`
	PayeeID               *string `gorm:"index"`
	CategoryID            *string `gorm:"index"`
	TransferAccountID     string
	TransferTransactionID string
	ImportID              string
	Deleted               bool
}

func (t *Transaction) TableName() string  { return "budget_transactions" }
func (t *Transaction) EntityID() string   { return t.ID }
func (t *Transaction) EntityName() string { return t.ID }

// Subtransaction is one split line of a mirrored transaction.
type Subtransaction struct {
	ID                string `gorm:"primaryKey;not null"`
	TransactionID     string `gorm:"index;not null"`
	Amount            int64
	Memo              string
	PayeeID           *string
	CategoryID        *string
	TransferAccountID string
	Deleted           bool
}

func (s *Subtransaction) TableName() string { return "budget_subtransactions" }
