package repair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

func restorableUnit(t *testing.T, cat parts.Catalog) *unit.Unit {
	t.Helper()
	u, err := unit.New("Battered Mech", 50, []unit.Slot{
		{Index: 0, CatalogKey: "standard-armor", ArmorPoints: 24, Structural: true, DependsOn: unit.NoDependency},
		{Index: 1, CatalogKey: "medium-laser", DependsOn: 0},
		{Index: 2, CatalogKey: "ac5-ammo", DependsOn: unit.NoDependency},
	})
	require.NoError(t, err)
	_, err = u.DeriveParts(cat)
	require.NoError(t, err)
	return u
}

func TestRestore_HealthyUnitSinglePass(t *testing.T) {
	// Arrange
	_, _, cat := testBench(t)
	u := restorableUnit(t, cat)

	// Act
	result, err := repair.Restore(u, cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passes)
	assert.Zero(t, result.PartsFixed)
	assert.Zero(t, result.PartsRederive)
	require.Len(t, result.Report, 1)
	assert.Contains(t, result.Report[0], "Battered Mech restored in 1 passes")
}

func TestRestore_FixesDamageInPlace(t *testing.T) {
	// Arrange
	_, _, cat := testBench(t)
	u := restorableUnit(t, cat)
	u.PartAt(0).SetArmorPoints(2)
	u.PartAt(1).MarkDamaged()
	u.PartAt(2).SetShotsNeeded(12)

	// Act
	result, err := repair.Restore(u, cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.PartsFixed)
	assert.Empty(t, u.NeedsFixing())
	assert.Equal(t, 24, u.PartAt(0).ArmorPoints())
	assert.Zero(t, u.PartAt(2).ShotsNeeded())
}

func TestRestore_RebuildsConcealedStructure(t *testing.T) {
	// Arrange: destroy the structural armor and the laser behind it, then
	// derive so only the armor placeholder materializes
	_, _, cat := testBench(t)
	u := restorableUnit(t, cat)
	require.NoError(t, u.DestroySlot(1))
	require.NoError(t, u.DestroySlot(0))
	_, err := u.DeriveParts(cat)
	require.NoError(t, err)
	require.Equal(t, parts.KindMissing, u.PartAt(0).Kind())
	require.Nil(t, u.PartAt(1))

	// Act
	result, err := repair.Restore(u, cat)

	// Assert: placeholder dropped, both slots rebuilt as good parts
	require.NoError(t, err)
	assert.Equal(t, 2, result.PartsRederive)
	assert.GreaterOrEqual(t, result.Passes, 2)
	assert.Equal(t, parts.KindArmor, u.PartAt(0).Kind())
	assert.Equal(t, parts.KindEquipment, u.PartAt(1).Kind())
	assert.Empty(t, u.NeedsFixing())
	assert.False(t, u.Slots()[0].Destroyed)
	assert.False(t, u.Slots()[1].Destroyed)
}

func TestRestore_ClearsSalvageFlag(t *testing.T) {
	// Arrange
	_, _, cat := testBench(t)
	u := restorableUnit(t, cat)
	u.SetSalvage(true)

	// Act
	_, err := repair.Restore(u, cat)

	// Assert
	require.NoError(t, err)
	assert.False(t, u.Salvage())
}

func TestRestore_DeployedUnitUntouched(t *testing.T) {
	// Arrange
	_, _, cat := testBench(t)
	u := restorableUnit(t, cat)
	u.PartAt(1).MarkDamaged()
	u.SetDeployed(true)

	// Act
	result, err := repair.Restore(u, cat)

	// Assert: no pass runs while the unit is in the field
	require.NoError(t, err)
	assert.Zero(t, result.Passes)
	assert.Equal(t, parts.ConditionDamaged, u.PartAt(1).Condition())
}
