package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// GormTechRepository implements TechRepository using GORM
type GormTechRepository struct {
	db *gorm.DB
}

// NewGormTechRepository creates a new GORM tech repository
func NewGormTechRepository(db *gorm.DB) *GormTechRepository {
	return &GormTechRepository{db: db}
}

// Save upserts one tech snapshot
func (r *GormTechRepository) Save(ctx context.Context, snap repair.TechSnapshot) error {
	model := &TechModel{
		ID:             snap.ID,
		Name:           snap.Name,
		Skill:          int(snap.Skill),
		DailyMinutes:   snap.DailyMinutes,
		MinutesUsed:    snap.MinutesUsed,
		AssignedPartID: snap.AssignedPartID,
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save tech %s: %w", snap.ID, result.Error)
	}
	return nil
}

// FindByID retrieves one tech snapshot
func (r *GormTechRepository) FindByID(ctx context.Context, id string) (repair.TechSnapshot, error) {
	var model TechModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return repair.TechSnapshot{}, fmt.Errorf("tech not found: %s", id)
		}
		return repair.TechSnapshot{}, fmt.Errorf("failed to find tech: %w", result.Error)
	}
	return techModelToSnapshot(&model), nil
}

// FindAll retrieves the roster in ascending id order
func (r *GormTechRepository) FindAll(ctx context.Context) ([]repair.TechSnapshot, error) {
	var models []TechModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list techs: %w", result.Error)
	}
	snaps := make([]repair.TechSnapshot, 0, len(models))
	for i := range models {
		snaps = append(snaps, techModelToSnapshot(&models[i]))
	}
	return snaps, nil
}

// Delete removes one tech
func (r *GormTechRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TechModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete tech %s: %w", id, result.Error)
	}
	return nil
}

func techModelToSnapshot(model *TechModel) repair.TechSnapshot {
	return repair.TechSnapshot{
		ID:             model.ID,
		Name:           model.Name,
		Skill:          shared.Skill(model.Skill),
		DailyMinutes:   model.DailyMinutes,
		MinutesUsed:    model.MinutesUsed,
		AssignedPartID: model.AssignedPartID,
	}
}
