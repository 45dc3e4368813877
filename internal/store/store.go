package store

import (
	"context"

	"github.com/finassist/finassist/internal/model"
)

type Store interface {
	LinkStore
	MirrorStore
	CoreStore
	SyncStateStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type LinkStore interface {
	// CreateLink inserts a new link row.
	CreateLink(ctx context.Context, link *model.Link) error
	// GetLinkByCore retrieves the link owning the given core side, if any.
	GetLinkByCore(ctx context.Context, coreKind, coreID string) (*model.Link, error)
	// GetLinkByPlugin retrieves the link owning the given plugin side, if any.
	GetLinkByPlugin(ctx context.Context, pluginKind, pluginID string) (*model.Link, error)
	// ListLinksByPluginKind retrieves all links whose plugin side is of the given kind.
	ListLinksByPluginKind(ctx context.Context, pluginKind string) ([]*model.Link, error)
	// DeleteLink removes a link by id.
	DeleteLink(ctx context.Context, id string) error
	// DeleteLinksFor removes any link referencing the entity on either side.
	// Returns the number of rows removed; zero is not an error.
	DeleteLinksFor(ctx context.Context, kind, id string) (int64, error)
}

// MirrorStore holds the local cache of provider records. Upserts are batched
// by natural (remote) id and return (created, updated) counts.
type MirrorStore interface {
	UpsertBudgetAccounts(ctx context.Context, rows []*model.BudgetAccount) (int, int, error)
	UpsertPayees(ctx context.Context, rows []*model.Payee) (int, int, error)
	UpsertCategoryGroups(ctx context.Context, rows []*model.CategoryGroup) (int, int, error)
	UpsertCategories(ctx context.Context, rows []*model.Category) (int, int, error)
	UpsertTransactions(ctx context.Context, rows []*model.Transaction) (int, int, error)
	UpsertSubtransactions(ctx context.Context, rows []*model.Subtransaction) (int, int, error)

	GetBudgetAccount(ctx context.Context, id string) (*model.BudgetAccount, error)
	ListBudgetAccountIDs(ctx context.Context) ([]string, error)
	ListPayeeIDs(ctx context.Context) ([]string, error)
	ListCategoryIDs(ctx context.Context) ([]string, error)
}

type CoreStore interface {
	// SaveCoreRecord persists a core record in a single save.
	SaveCoreRecord(ctx context.Context, rec model.CoreRecord) error
}

type SyncStateStore interface {
	// GetSyncState retrieves the cursor row, creating it on first access.
	GetSyncState(ctx context.Context) (*model.SyncState, error)
	SaveSyncState(ctx context.Context, state *model.SyncState) error
	// GetProviderSettings retrieves the settings row, creating it on first access.
	GetProviderSettings(ctx context.Context) (*model.ProviderSettings, error)
	SaveProviderSettings(ctx context.Context, settings *model.ProviderSettings) error
}
