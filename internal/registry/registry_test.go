package registry

import (
	"testing"

	"github.com/finassist/finassist/internal/model"
	"github.com/finassist/finassist/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()
	tester.Setup()
	db := tester.TestDB()
	return Default(db), db
}

func TestResolve_knownKinds(t *testing.T) {
	registry, db := setupRegistry(t)

	require.NoError(t, db.Create(&model.Account{ID: "a1", Name: "Checking"}).Error)
	require.NoError(t, db.Create(&model.BudgetAccount{ID: "b1", Name: "Remote Checking"}).Error)

	entity, err := registry.Resolve(model.KindAccount, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", entity.EntityID())
	assert.Equal(t, "Checking", entity.EntityName())

	entity, err = registry.Resolve(model.KindBudgetAccount, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Remote Checking", entity.EntityName())
}

func TestResolve_unknownKind(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Resolve("spaceship", "a1")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestResolve_missingEntity(t *testing.T) {
	registry, _ := setupRegistry(t)

	_, err := registry.Resolve(model.KindAccount, "nope")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestResolveCore(t *testing.T) {
	registry, db := setupRegistry(t)

	require.NoError(t, db.Create(&model.CreditCard{ID: "c1", Name: "Visa"}).Error)

	rec, err := registry.ResolveCore(model.KindCreditCard, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.KindCreditCard, rec.Kind())

	rec.SetNotes("projected")
	assert.Equal(t, "projected", rec.GetNotes())
}

func TestResolveCore_rejectsMirrorKinds(t *testing.T) {
	registry, db := setupRegistry(t)

	require.NoError(t, db.Create(&model.BudgetAccount{ID: "b1", Name: "Remote"}).Error)

	_, err := registry.ResolveCore(model.KindBudgetAccount, "b1")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestIsCore(t *testing.T) {
	registry, _ := setupRegistry(t)

	assert.True(t, registry.IsCore(model.KindAccount))
	assert.True(t, registry.IsCore(model.KindAsset))
	assert.False(t, registry.IsCore(model.KindBudgetAccount))
	assert.False(t, registry.IsCore("spaceship"))
}
