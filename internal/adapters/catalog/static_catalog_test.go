package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

func TestStaticCatalog_Lookup(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()

	// Act
	spec, err := cat.Lookup("medium-laser")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Medium Laser", spec.Name)
	assert.Equal(t, parts.KindEquipment, spec.Kind)
	assert.Equal(t, 60, spec.BaseTimeMinutes)
	assert.Equal(t, shared.TechBaseInnerSphere, spec.TechBase)
}

func TestStaticCatalog_UnknownKey(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()

	// Act
	_, err := cat.Lookup("gauss-rifle")

	// Assert
	var unknown *parts.ErrUnknownPart
	assert.ErrorAs(t, err, &unknown)
}

func TestStaticCatalog_SpecsAreComplete(t *testing.T) {
	// Arrange
	cat := catalog.NewStaticCatalog()

	// Act / Assert: every reference design carries usable numbers
	keys := cat.Keys()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		spec, err := cat.Lookup(key)
		require.NoError(t, err)
		assert.NotEmpty(t, spec.Name, key)
		assert.Greater(t, spec.BaseTimeMinutes, 0, key)
		assert.Greater(t, spec.ReplacementTimeMinutes, 0, key)
		assert.NotEmpty(t, spec.Availability, key)
	}
}
