package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GORM unit repository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Save upserts one unit snapshot
func (r *GormUnitRepository) Save(ctx context.Context, snap unit.Snapshot) error {
	slots, err := json.Marshal(snap.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots for unit %s: %w", snap.ID, err)
	}
	model := &UnitModel{
		ID:       snap.ID,
		Name:     snap.Name,
		Tonnage:  snap.Tonnage,
		Deployed: snap.Deployed,
		Salvage:  snap.Salvage,
		RefitID:  snap.RefitID,
		Slots:    string(slots),
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save unit %s: %w", snap.ID, result.Error)
	}
	return nil
}

// FindByID retrieves one unit snapshot
func (r *GormUnitRepository) FindByID(ctx context.Context, id string) (unit.Snapshot, error) {
	var model UnitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return unit.Snapshot{}, fmt.Errorf("unit not found: %s", id)
		}
		return unit.Snapshot{}, fmt.Errorf("failed to find unit: %w", result.Error)
	}
	return unitModelToSnapshot(&model)
}

// FindAll retrieves every persisted unit in ascending id order
func (r *GormUnitRepository) FindAll(ctx context.Context) ([]unit.Snapshot, error) {
	var models []UnitModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list units: %w", result.Error)
	}
	snaps := make([]unit.Snapshot, 0, len(models))
	for i := range models {
		snap, err := unitModelToSnapshot(&models[i])
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Delete removes one unit
func (r *GormUnitRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UnitModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete unit %s: %w", id, result.Error)
	}
	return nil
}

func unitModelToSnapshot(model *UnitModel) (unit.Snapshot, error) {
	var slots []unit.Slot
	if model.Slots != "" {
		if err := json.Unmarshal([]byte(model.Slots), &slots); err != nil {
			return unit.Snapshot{}, fmt.Errorf("failed to unmarshal slots for unit %s: %w", model.ID, err)
		}
	}
	return unit.Snapshot{
		ID:       model.ID,
		Name:     model.Name,
		Tonnage:  model.Tonnage,
		Deployed: model.Deployed,
		Salvage:  model.Salvage,
		RefitID:  model.RefitID,
		Slots:    slots,
	}, nil
}
