package store

import (
	"context"

	"github.com/finassist/finassist/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateLink(ctx context.Context, link *model.Link) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) GetLinkByCore(ctx context.Context, coreKind, coreID string) (*model.Link, error) {
	var link model.Link
	err := g.db.WithContext(ctx).Where("core_kind = ? AND core_id = ?", coreKind, coreID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (g *GormStore) GetLinkByPlugin(ctx context.Context, pluginKind, pluginID string) (*model.Link, error) {
	var link model.Link
	err := g.db.WithContext(ctx).Where("plugin_kind = ? AND plugin_id = ?", pluginKind, pluginID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (g *GormStore) ListLinksByPluginKind(ctx context.Context, pluginKind string) ([]*model.Link, error) {
	var links []*model.Link
	err := g.db.WithContext(ctx).Where("plugin_kind = ?", pluginKind).Find(&links).Error
	return links, err
}

func (g *GormStore) DeleteLink(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Link{}).Error
}

func (g *GormStore) DeleteLinksFor(ctx context.Context, kind, id string) (int64, error) {
	res := g.db.WithContext(ctx).
		Where("(core_kind = ? AND core_id = ?) OR (plugin_kind = ? AND plugin_id = ?)", kind, id, kind, id).
		Delete(&model.Link{})
	return res.RowsAffected, res.Error
}

// existingIDs returns which of the given natural ids are already present for
// the model, so upserts can report created vs updated counts.
func (g *GormStore) existingIDs(ctx context.Context, m any, ids []string) (map[string]bool, error) {
	var found []string
	err := g.db.WithContext(ctx).Model(m).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// upsert bulk-inserts rows, overwriting all mutable columns of rows whose
// primary key already exists. Equivalent to a per-row upsert but executed as
// batched INSERT ... ON CONFLICT DO UPDATE statements.
func (g *GormStore) upsert(ctx context.Context, m any, rows any, ids []string) (int, int, error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}
	existing, err := g.existingIDs(ctx, m, ids)
	if err != nil {
		return 0, 0, err
	}
	err = g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, upsertBatchSize).Error
	if err != nil {
		return 0, 0, err
	}
	return len(ids) - len(existing), len(existing), nil
}

func (g *GormStore) UpsertBudgetAccounts(ctx context.Context, rows []*model.BudgetAccount) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.BudgetAccount{}, rows, ids)
}

func (g *GormStore) UpsertPayees(ctx context.Context, rows []*model.Payee) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.Payee{}, rows, ids)
}

func (g *GormStore) UpsertCategoryGroups(ctx context.Context, rows []*model.CategoryGroup) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.CategoryGroup{}, rows, ids)
}

func (g *GormStore) UpsertCategories(ctx context.Context, rows []*model.Category) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.Category{}, rows, ids)
}

func (g *GormStore) UpsertTransactions(ctx context.Context, rows []*model.Transaction) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.Transaction{}, rows, ids)
}

func (g *GormStore) UpsertSubtransactions(ctx context.Context, rows []*model.Subtransaction) (int, int, error) {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return g.upsert(ctx, &model.Subtransaction{}, rows, ids)
}

func (g *GormStore) GetBudgetAccount(ctx context.Context, id string) (*model.BudgetAccount, error) {
	var account model.BudgetAccount
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (g *GormStore) ListBudgetAccountIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.BudgetAccount{}).Pluck("id", &ids).Error
	return ids, err
}

func (g *GormStore) ListPayeeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.Payee{}).Pluck("id", &ids).Error
	return ids, err
}

func (g *GormStore) ListCategoryIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.Category{}).Pluck("id", &ids).Error
	return ids, err
}

func (g *GormStore) SaveCoreRecord(ctx context.Context, rec model.CoreRecord) error {
	return g.db.WithContext(ctx).Save(rec).Error
}

func (g *GormStore) GetSyncState(ctx context.Context) (*model.SyncState, error) {
	state := model.SyncState{ID: model.SyncStateID}
	err := g.db.WithContext(ctx).FirstOrCreate(&state, model.SyncState{ID: model.SyncStateID}).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (g *GormStore) SaveSyncState(ctx context.Context, state *model.SyncState) error {
	return g.db.WithContext(ctx).Save(state).Error
}

func (g *GormStore) GetProviderSettings(ctx context.Context) (*model.ProviderSettings, error) {
	settings := model.ProviderSettings{ID: model.ProviderSettingsID}
	err := g.db.WithContext(ctx).FirstOrCreate(&settings, model.ProviderSettings{ID: model.ProviderSettingsID}).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (g *GormStore) SaveProviderSettings(ctx context.Context, settings *model.ProviderSettings) error {
	return g.db.WithContext(ctx).Save(settings).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
