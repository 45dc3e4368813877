package sync

import "fmt"

// Counts is the created/updated tally for one mirrored entity kind.
type Counts struct {
	Created int
	Updated int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d created, %d updated", c.Created, c.Updated)
}

// Summary is the structured result of one sync run. The sync entry point
// always returns one of these (or an error); per-record problems are counted
// here instead of aborting the run.
type Summary struct {
	Accounts        Counts
	Payees          Counts
	CategoryGroups  Counts
	Categories      Counts
	Transactions    Counts
	Subtransactions Counts

	// Skipped counts remote records dropped for a missing required field or
	// an unresolved account reference.
	Skipped int

	// LinkedRefreshed and LinkedFailed count per-link balance projections.
	LinkedRefreshed int
	LinkedFailed    int

	ServerKnowledge int64
}

// Message renders the human-readable sync result.
func (s *Summary) Message() string {
	return fmt.Sprintf(
		"Sync successful! Accounts: %s, Payees: %s, Category Groups: %s, Categories: %s, Transactions: %s, Subtransactions: %s. Skipped: %d, linked accounts refreshed: %d.",
		s.Accounts, s.Payees, s.CategoryGroups, s.Categories, s.Transactions, s.Subtransactions,
		s.Skipped, s.LinkedRefreshed,
	)
}
