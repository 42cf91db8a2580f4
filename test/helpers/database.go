package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/infrastructure/database"
)

// NewTestDB opens an in-memory SQLite database with the campaign schema
// (parts, units, techs, refits) already migrated, closed automatically
// when the test finishes. Each call gets an isolated database, so
// repository tests never see each other's stock.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("opening in-memory campaign database: %v", err)
	}
	t.Cleanup(func() {
		database.Close(db)
	})
	return db
}
