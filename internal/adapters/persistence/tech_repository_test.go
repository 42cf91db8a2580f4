package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewynne/mechbay-go/internal/adapters/persistence"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/test/helpers"
)

func TestTechRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTechRepository(db)

	tech, err := repair.NewTech("Moira Santos", shared.SkillVeteran, 480)
	require.NoError(t, err)
	snap := tech.ToSnapshot()
	snap.MinutesUsed = 120
	snap.AssignedPartID = "part-1"

	// Act
	require.NoError(t, repo.Save(context.Background(), snap))
	found, err := repo.FindByID(context.Background(), tech.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Moira Santos", found.Name)
	assert.Equal(t, shared.SkillVeteran, found.Skill)
	assert.Equal(t, 480, found.DailyMinutes)
	assert.Equal(t, 120, found.MinutesUsed)
	assert.Equal(t, "part-1", found.AssignedPartID)

	// Mid-session state reconstitutes
	rebuilt := repair.TechFromSnapshot(found)
	assert.Equal(t, 360, rebuilt.AvailableMinutes())
	assert.Equal(t, "part-1", rebuilt.AssignedPart())
}

func TestTechRepository_FindAll(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTechRepository(db)

	for _, name := range []string{"Dex", "Moira"} {
		tech, err := repair.NewTech(name, shared.SkillRegular, 480)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), tech.ToSnapshot()))
	}

	// Act
	all, err := repo.FindAll(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTechRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTechRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), "no-such-tech")

	// Assert
	assert.Error(t, err)
}
