package model

// Link associates one core record with one mirrored provider record. The
// relation is a partial bijection: each side may appear in at most one link,
// enforced by two independent unique indexes rather than a single compound one.
// Neither side holds a back-reference; the link table is the only state.
type Link struct {
	ID         string `gorm:"primaryKey;uuid;not null"`
	CoreKind   string `gorm:"not null;uniqueIndex:idx_links_core"`
	CoreID     string `gorm:"not null;uniqueIndex:idx_links_core"`
	PluginKind string `gorm:"not null;uniqueIndex:idx_links_plugin"`
	PluginID   string `gorm:"not null;uniqueIndex:idx_links_plugin"`
}

func (l *Link) TableName() string {
	return "links"
}
