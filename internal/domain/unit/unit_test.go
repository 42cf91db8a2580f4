package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// testSlots is a small mech blueprint: structural armor conceals a laser
// and a heat sink behind it.
func testSlots() []unit.Slot {
	return []unit.Slot{
		{Index: 0, CatalogKey: "standard-armor", ArmorPoints: 24, Structural: true, DependsOn: unit.NoDependency},
		{Index: 1, CatalogKey: "medium-laser", DependsOn: 0},
		{Index: 2, CatalogKey: "heat-sink", DependsOn: 0},
		{Index: 3, CatalogKey: "ac5-ammo", DependsOn: unit.NoDependency},
	}
}

func newTestUnit(t *testing.T) *unit.Unit {
	t.Helper()
	u, err := unit.New("Test Mech", 50, testSlots())
	require.NoError(t, err)
	return u
}

func TestNew_Validation(t *testing.T) {
	// Act / Assert: empty name
	_, err := unit.New("", 50, testSlots())
	assert.Error(t, err)

	// Zero tonnage
	_, err = unit.New("Mech", 0, testSlots())
	assert.Error(t, err)

	// Non-contiguous slot indices
	_, err = unit.New("Mech", 50, []unit.Slot{
		{Index: 0, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
		{Index: 2, CatalogKey: "heat-sink", DependsOn: unit.NoDependency},
	})
	assert.Error(t, err)

	// Dependency out of range
	_, err = unit.New("Mech", 50, []unit.Slot{
		{Index: 0, CatalogKey: "medium-laser", DependsOn: 5},
	})
	assert.Error(t, err)

	// Empty catalog key
	_, err = unit.New("Mech", 50, []unit.Slot{
		{Index: 0, DependsOn: unit.NoDependency},
	})
	assert.Error(t, err)
}

func TestDeriveParts_MaterializesBlueprint(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)

	// Act
	created, err := u.DeriveParts(cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, created)
	assert.Len(t, u.Parts(), 4)

	armor := u.PartAt(0)
	require.NotNil(t, armor)
	assert.Equal(t, parts.KindArmor, armor.Kind())
	assert.Equal(t, 24, armor.ArmorTotal())
	assert.Equal(t, 50.0, armor.Tonnage())

	sink := u.PartAt(2)
	require.NotNil(t, sink)
	assert.Equal(t, 0.0, sink.Tonnage())

	// Deriving again creates nothing
	created, err = u.DeriveParts(cat)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestDeriveParts_DestroyedSlotYieldsMissing(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)
	require.NoError(t, u.DestroySlot(3))

	// Act
	created, err := u.DeriveParts(cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	placeholder := u.PartAt(3)
	require.NotNil(t, placeholder)
	assert.Equal(t, parts.KindMissing, placeholder.Kind())
	assert.Equal(t, "ac5-ammo", placeholder.CatalogKey())
	assert.Equal(t, u.ID(), placeholder.UnitID())
}

func TestDeriveParts_ConcealedSlotsStayEmpty(t *testing.T) {
	// Arrange: destroying the structural armor hides slots 1 and 2
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)

	require.NoError(t, u.DestroySlot(0))
	require.NoError(t, u.DestroySlot(1))
	require.NoError(t, u.DestroySlot(2))

	// Act: only the armor placeholder is derivable; 1 and 2 are concealed
	created, err := u.DeriveParts(cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, parts.KindMissing, u.PartAt(0).Kind())
	assert.Nil(t, u.PartAt(1))
	assert.Nil(t, u.PartAt(2))

	// A missing parent still conceals; the slot opens once it is replaced
	fixed := u.PartAt(0)
	_, err = u.Remove(fixed.ID())
	require.NoError(t, err)
	require.NoError(t, u.HealSlot(0))

	created, err = u.DeriveParts(cat)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, parts.KindMissing, u.PartAt(1).Kind())
	assert.Equal(t, parts.KindMissing, u.PartAt(2).Kind())
}

func TestInstall_GuardsSlotState(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)

	spec, err := cat.Lookup("medium-laser")
	require.NoError(t, err)
	extra, err := parts.NewEquipment(spec, 50)
	require.NoError(t, err)

	// Act / Assert: occupied slot
	err = u.Install(extra, 1)
	var occupied *unit.ErrSlotOccupied
	assert.ErrorAs(t, err, &occupied)

	// Unknown slot
	err = u.Install(extra, 9)
	var unknown *unit.ErrUnknownSlot
	assert.ErrorAs(t, err, &unknown)
}

func TestRemove_DetachesPart(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)
	laser := u.PartAt(1)

	// Act
	removed, err := u.Remove(laser.ID())

	// Assert
	require.NoError(t, err)
	assert.False(t, removed.Installed())
	assert.Nil(t, u.PartAt(1))

	_, err = u.Remove(laser.ID())
	var notOnUnit *unit.ErrPartNotOnUnit
	assert.ErrorAs(t, err, &notOnUnit)
}

func TestNeedsFixing_ListsMaintenanceWork(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)

	// Act / Assert: factory fresh
	assert.Empty(t, u.NeedsFixing())

	u.PartAt(1).MarkDamaged()
	u.PartAt(0).SetArmorPoints(3)

	broken := u.NeedsFixing()
	assert.Len(t, broken, 2)
}

func TestReplaceBlueprint_KeepsMatchingSlots(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)
	keptLaser := u.PartAt(1)

	// Act: swap the heat sink slot for a jump jet, drop the ammo slot
	target := []unit.Slot{
		{Index: 0, CatalogKey: "standard-armor", ArmorPoints: 24, Structural: true, DependsOn: unit.NoDependency},
		{Index: 1, CatalogKey: "medium-laser", DependsOn: 0},
		{Index: 2, CatalogKey: "jump-jet", DependsOn: 0},
	}
	detached := u.ReplaceBlueprint(target)

	// Assert: heat sink and ammo bin came off, armor and laser stayed
	assert.Len(t, detached, 2)
	for _, p := range detached {
		assert.False(t, p.Installed())
	}
	assert.Equal(t, keptLaser.ID(), u.PartAt(1).ID())
	assert.Len(t, u.Slots(), 3)
	assert.Nil(t, u.PartAt(2))
}

func TestReplaceBlueprint_DetachesOnSubRatingChange(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u, err := unit.New("Flea", 20, []unit.Slot{
		{Index: 0, CatalogKey: "masc", SubRating: 275, DependsOn: unit.NoDependency},
	})
	require.NoError(t, err)
	_, err = u.DeriveParts(cat)
	require.NoError(t, err)

	// Act: same design, higher engine rating
	detached := u.ReplaceBlueprint([]unit.Slot{
		{Index: 0, CatalogKey: "masc", SubRating: 330, DependsOn: unit.NoDependency},
	})

	// Assert: the old rating vacates the slot for its replacement
	require.Len(t, detached, 1)
	assert.Equal(t, 275, detached[0].SubRating())
	assert.Nil(t, u.PartAt(0))
}

func TestDestroyAndHealSlots(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)

	// Act
	require.NoError(t, u.DestroySlot(3))

	// Assert
	assert.True(t, u.Slots()[3].Destroyed)
	assert.Nil(t, u.PartAt(3))

	u.HealAllSlots()
	assert.False(t, u.Slots()[3].Destroyed)
}

func TestParts_SortedBySlot(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()
	u := newTestUnit(t)
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)

	// Act
	list := u.Parts()

	// Assert
	require.Len(t, list, 4)
	for i, p := range list {
		assert.Equal(t, i, p.Slot())
	}
}
