package cmd

import (
	"context"

	"github.com/finassist/finassist/internal/cache"
	"github.com/finassist/finassist/internal/config"
	"github.com/finassist/finassist/internal/link"
	"github.com/finassist/finassist/internal/provider"
	"github.com/finassist/finassist/internal/registry"
	"github.com/finassist/finassist/internal/store"
	"github.com/finassist/finassist/internal/sync"
	"gorm.io/gorm"
)

// app wires the storage, registry and services for one command invocation.
type app struct {
	cnf      *config.Config
	db       *gorm.DB
	store    store.Store
	registry *registry.Registry
	links    *link.Service
}

func newApp() *app {
	cnf := config.LoadConfig()
	db := config.GetDb(cnf)
	st := store.NewGormStore(db)
	reg := registry.Default(db)

	return &app{
		cnf:      cnf,
		db:       db,
		store:    st,
		registry: reg,
		links:    link.NewService(st, reg),
	}
}

func (a *app) kv() cache.KV {
	if a.cnf.RedisAddr == "" {
		return cache.NewNop()
	}
	return cache.NewRedis(a.cnf.RedisAddr)
}

func (a *app) client(ctx context.Context) (*provider.Client, error) {
	settings, err := a.store.GetProviderSettings(ctx)
	if err != nil {
		return nil, err
	}
	return provider.NewClient(settings.APIKey), nil
}

func (a *app) reconciler(ctx context.Context) (*sync.Reconciler, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}
	return sync.NewReconciler(a.store, a.registry, client), nil
}
