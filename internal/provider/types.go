package provider

import (
	"encoding/json"
	"time"
)

// Snapshot is one budget payload from the provider, either full or a delta
// relative to the server knowledge the request carried.
type Snapshot struct {
	Accounts        []AccountPayload       `json:"accounts"`
	Payees          []PayeePayload         `json:"payees"`
	CategoryGroups  []CategoryGroupPayload `json:"category_groups"`
	Categories      []CategoryPayload      `json:"categories"`
	Transactions    []TransactionPayload   `json:"transactions"`
	ServerKnowledge int64                  `json:"server_knowledge"`
}

// AccountPayload is one remote account. Monetary fields are milliunits.
type AccountPayload struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	OnBudget            bool            `json:"on_budget"`
	Closed              bool            `json:"closed"`
	Note                string          `json:"note"`
	Balance             int64           `json:"balance"`
	ClearedBalance      int64           `json:"cleared_balance"`
	UnclearedBalance    int64           `json:"uncleared_balance"`
	TransferPayeeID     string          `json:"transfer_payee_id"`
	DirectImportLinked  bool            `json:"direct_import_linked"`
	DirectImportInError bool            `json:"direct_import_in_error"`
	LastReconciledAt    *time.Time      `json:"last_reconciled_at"`
	DebtOriginalBalance *int64          `json:"debt_original_balance"`
	DebtInterestRates   json.RawMessage `json:"debt_interest_rates"`
	DebtMinimumPayments json.RawMessage `json:"debt_minimum_payments"`
	DebtEscrowAmounts   json.RawMessage `json:"debt_escrow_amounts"`
	Deleted             bool            `json:"deleted"`
}

type PayeePayload struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TransferAccountID string `json:"transfer_account_id"`
	Deleted           bool   `json:"deleted"`
}

type CategoryGroupPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hidden  bool   `json:"hidden"`
	Deleted bool   `json:"deleted"`
}

type CategoryPayload struct {
	ID                      string `json:"id"`
	CategoryGroupID         string `json:"category_group_id"`
	CategoryGroupName       string `json:"category_group_name"`
	Name                    string `json:"name"`
	Hidden                  bool   `json:"hidden"`
	OriginalCategoryGroupID string `json:"original_category_group_id"`
	Note                    string `json:"note"`
	Budgeted                int64  `json:"budgeted"`
	Activity                int64  `json:"activity"`
	Balance                 int64  `json:"balance"`
	GoalType                string `json:"goal_type"`
	GoalTarget              *int64 `json:"goal_target"`
	GoalTargetMonth         string `json:"goal_target_month"`
	GoalPercentageComplete  *int64 `json:"goal_percentage_complete"`
	Deleted                 bool   `json:"deleted"`
}

// TransactionPayload is one remote transaction with its nested splits.
// Date is the provider's ISO date string (no time component).
type TransactionPayload struct {
	ID                    string                  `json:"id"`
	Date                  string                  `json:"date"`
	Amount                int64                   `json:"amount"`
	Memo                  string                  `json:"memo"`
	Cleared               string                  `json:"cleared"`
	Approved              bool                    `json:"approved"`
	FlagColor             string                  `json:"flag_color"`
	AccountID             string                  `json:"account_id"`
	PayeeID               *string                 `json:"payee_id"`
	CategoryID            *string                 `json:"category_id"`
	TransferAccountID     string                  `json:"transfer_account_id"`
	TransferTransactionID string                  `json:"transfer_transaction_id"`
	ImportID              string                  `json:"import_id"`
	Deleted               bool                    `json:"deleted"`
	Subtransactions       []SubtransactionPayload `json:"subtransactions"`
}

type SubtransactionPayload struct {
	ID                string  `json:"id"`
	TransactionID     string  `json:"transaction_id"`
	Amount            int64   `json:"amount"`
	Memo              string  `json:"memo"`
	PayeeID           *string `json:"payee_id"`
	CategoryID        *string `json:"category_id"`
	TransferAccountID string  `json:"transfer_account_id"`
	Deleted           bool    `json:"deleted"`
}

// User is the authenticated provider user, used to verify credentials.
type User struct {
	ID string `json:"id"`
}

// BudgetSummary is one entry of the provider's budget list.
type BudgetSummary struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	LastModified *time.Time `json:"last_modified_on"`
}
