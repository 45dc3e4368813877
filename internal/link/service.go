// Package link owns the association between core financial records and
// mirrored provider records. A link is either active (row exists) or absent;
// it is created explicitly, deleted explicitly or by cascade, and removed
// opportunistically when a read discovers a dangling referent.
package link

import (
	"context"
	"errors"
	"fmt"

	"github.com/finassist/finassist/internal/model"
	"github.com/finassist/finassist/internal/registry"
	"github.com/finassist/finassist/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	store    store.Store
	registry *registry.Registry
}

func NewService(store store.Store, registry *registry.Registry) *Service {
	return &Service{
		store:    store,
		registry: registry,
	}
}

// Create links a core record to a plugin record. Both referents must exist and
// neither side may already be linked; a taken side fails with ErrConflict.
// Replacing a link is the caller's responsibility: unlink first, then create.
func (s *Service) Create(ctx context.Context, coreKind, coreID, pluginKind, pluginID string) (*model.Link, error) {
	if _, err := s.registry.Resolve(coreKind, coreID); err != nil {
		return nil, fmt.Errorf("core %s/%s: %w", coreKind, coreID, err)
	}
	if _, err := s.registry.Resolve(pluginKind, pluginID); err != nil {
		return nil, fmt.Errorf("plugin %s/%s: %w", pluginKind, pluginID, err)
	}

	if _, err := s.store.GetLinkByCore(ctx, coreKind, coreID); err == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, coreKind, coreID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.store.GetLinkByPlugin(ctx, pluginKind, pluginID); err == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, pluginKind, pluginID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link := &model.Link{
		ID:         uuid.New().String(),
		CoreKind:   coreKind,
		CoreID:     coreID,
		PluginKind: pluginKind,
		PluginID:   pluginID,
	}
	if err := s.store.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// FindByCore returns the link owning the given core side, or ErrNotFound.
func (s *Service) FindByCore(ctx context.Context, coreKind, coreID string) (*model.Link, error) {
	link, err := s.store.GetLinkByCore(ctx, coreKind, coreID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return link, err
}

// FindByPlugin returns the link owning the given plugin side, or ErrNotFound.
func (s *Service) FindByPlugin(ctx context.Context, pluginKind, pluginID string) (*model.Link, error) {
	link, err := s.store.GetLinkByPlugin(ctx, pluginKind, pluginID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return link, err
}

// Resolve dereferences both sides of a link. If either referent no longer
// exists the link is deleted and ErrOrphaned is returned so callers can tell
// cleanup happened apart from an ordinary miss.
func (s *Service) Resolve(ctx context.Context, link *model.Link) (registry.Entity, registry.Entity, error) {
	core, err := s.registry.Resolve(link.CoreKind, link.CoreID)
	if errors.Is(err, registry.ErrEntityNotFound) {
		return nil, nil, s.healOrphan(ctx, link)
	}
	if err != nil {
		return nil, nil, err
	}

	plugin, err := s.registry.Resolve(link.PluginKind, link.PluginID)
	if errors.Is(err, registry.ErrEntityNotFound) {
		return nil, nil, s.healOrphan(ctx, link)
	}
	if err != nil {
		return nil, nil, err
	}

	return core, plugin, nil
}

func (s *Service) healOrphan(ctx context.Context, link *model.Link) error {
	if err := s.store.DeleteLink(ctx, link.ID); err != nil {
		return err
	}
	logrus.Infof("removed dangling link %s (%s/%s -> %s/%s)",
		link.ID, link.CoreKind, link.CoreID, link.PluginKind, link.PluginID)
	return ErrOrphaned
}

// DeleteFor removes any link referencing the entity on either side. Every
// entity-deletion path must call this; there is no implicit cascade. Calling
// it when no link exists is a no-op.
func (s *Service) DeleteFor(ctx context.Context, kind, id string) error {
	removed, err := s.store.DeleteLinksFor(ctx, kind, id)
	if err != nil {
		return err
	}
	if removed > 0 {
		logrus.Infof("removed %d link(s) for %s/%s", removed, kind, id)
	}
	return nil
}
