// Package registry maps entity kind tags to lookup functions. It is the
// extension point for linkable entity types: link logic never inspects
// concrete model types, it dereferences both sides of a link through the
// registry.
package registry

import (
	"errors"
	"fmt"

	"github.com/finassist/finassist/internal/model"
	"gorm.io/gorm"
)

var (
	// ErrUnknownKind is returned when no lookup is registered for a kind tag.
	ErrUnknownKind = errors.New("unknown entity kind")
	// ErrEntityNotFound is returned when the kind is known but the id does not exist.
	ErrEntityNotFound = errors.New("entity not found")
)

// Entity is the minimal surface a registered record exposes.
type Entity interface {
	EntityID() string
	EntityName() string
}

// Lookup resolves one entity of a registered kind by its storage id.
type Lookup func(db *gorm.DB, id string) (Entity, error)

type Registry struct {
	db    *gorm.DB
	core  map[string]Lookup
	kinds map[string]Lookup
}

func New(db *gorm.DB) *Registry {
	return &Registry{
		db:    db,
		core:  make(map[string]Lookup),
		kinds: make(map[string]Lookup),
	}
}

// RegisterCore registers a lookup for a core record kind. Core kinds are also
// resolvable through Resolve.
func (r *Registry) RegisterCore(kind string, lookup Lookup) {
	r.core[kind] = lookup
	r.kinds[kind] = lookup
}

// Register registers a lookup for a plugin (mirror) record kind.
func (r *Registry) Register(kind string, lookup Lookup) {
	r.kinds[kind] = lookup
}

// Resolve dereferences an entity of any registered kind.
func (r *Registry) Resolve(kind, id string) (Entity, error) {
	lookup, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return lookup(r.db, id)
}

// ResolveCore dereferences a core record, returning it through the CoreRecord
// capability set so callers can write balances and notes back.
func (r *Registry) ResolveCore(kind, id string) (model.CoreRecord, error) {
	lookup, ok := r.core[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	entity, err := lookup(r.db, id)
	if err != nil {
		return nil, err
	}
	rec, ok := entity.(model.CoreRecord)
	if !ok {
		return nil, fmt.Errorf("kind %q is not a core record", kind)
	}
	return rec, nil
}

// IsCore reports whether the kind tag belongs to a core record.
func (r *Registry) IsCore(kind string) bool {
	_, ok := r.core[kind]
	return ok
}

// lookupFor builds a Lookup that loads one row by primary key into a fresh
// record produced by newRec.
func lookupFor(newRec func() Entity) Lookup {
	return func(db *gorm.DB, id string) (Entity, error) {
		rec := newRec()
		err := db.Where("id = ?", id).First(rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// Default returns a registry with every built-in core and mirror kind
// registered.
func Default(db *gorm.DB) *Registry {
	r := New(db)

	r.RegisterCore(model.KindAccount, lookupFor(func() Entity { return &model.Account{} }))
	r.RegisterCore(model.KindCreditCard, lookupFor(func() Entity { return &model.CreditCard{} }))
	r.RegisterCore(model.KindAsset, lookupFor(func() Entity { return &model.Asset{} }))
	r.RegisterCore(model.KindLiability, lookupFor(func() Entity { return &model.Liability{} }))

	r.Register(model.KindBudgetAccount, lookupFor(func() Entity { return &model.BudgetAccount{} }))
	r.Register(model.KindBudgetPayee, lookupFor(func() Entity { return &model.Payee{} }))
	r.Register(model.KindBudgetCategory, lookupFor(func() Entity { return &model.Category{} }))
	r.Register(model.KindBudgetTransaction, lookupFor(func() Entity { return &model.Transaction{} }))

	return r
}
