package model

import "time"

// fixed primary keys for the singleton rows
const (
	SyncStateID        = 1
	ProviderSettingsID = 1
)

// SyncState is the single sync-cursor row. ServerKnowledge is the provider's
// opaque checkpoint; zero means the next sync fetches a full snapshot. The row
// is written only after a sync completes successfully.
type SyncState struct {
	ID              uint `gorm:"primaryKey"`
	ServerKnowledge int64
	LastSynced      *time.Time
}

func (s *SyncState) TableName() string {
	return "sync_state"
}

// ProviderSettings holds the budgeting provider credentials. A single row with
// a well-known primary key, created on first access.
type ProviderSettings struct {
	ID       uint `gorm:"primaryKey"`
	APIKey   string
	BudgetID string
	Enabled  bool
}

func (s *ProviderSettings) TableName() string {
	return "provider_settings"
}

// Configured reports whether a sync can be attempted at all.
func (s *ProviderSettings) Configured() bool {
	return s.APIKey != "" && s.BudgetID != ""
}
