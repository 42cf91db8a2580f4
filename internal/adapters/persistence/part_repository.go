package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// GormPartRepository implements PartRepository using GORM
type GormPartRepository struct {
	db *gorm.DB
}

// NewGormPartRepository creates a new GORM part repository
func NewGormPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

// Save upserts one part snapshot
func (r *GormPartRepository) Save(ctx context.Context, snap parts.Snapshot) error {
	model, err := snapshotToPartModel(snap)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save part %s: %w", snap.ID, result.Error)
	}
	return nil
}

// SaveAll replaces the persisted part set with the given snapshots
func (r *GormPartRepository) SaveAll(ctx context.Context, snaps []parts.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&PartModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear parts: %w", err)
		}
		for _, snap := range snaps {
			model, err := snapshotToPartModel(snap)
			if err != nil {
				return err
			}
			if err := tx.Save(model).Error; err != nil {
				return fmt.Errorf("failed to save part %s: %w", snap.ID, err)
			}
		}
		return nil
	})
}

// FindByID retrieves one part snapshot
func (r *GormPartRepository) FindByID(ctx context.Context, id string) (parts.Snapshot, error) {
	var model PartModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return parts.Snapshot{}, fmt.Errorf("part not found: %s", id)
		}
		return parts.Snapshot{}, fmt.Errorf("failed to find part: %w", result.Error)
	}
	return partModelToSnapshot(&model)
}

// FindAll retrieves every persisted part in ascending id order
func (r *GormPartRepository) FindAll(ctx context.Context) ([]parts.Snapshot, error) {
	var models []PartModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list parts: %w", result.Error)
	}
	return partModelsToSnapshots(models)
}

// FindByUnit retrieves the parts installed on a unit in slot order
func (r *GormPartRepository) FindByUnit(ctx context.Context, unitID string) ([]parts.Snapshot, error) {
	var models []PartModel
	result := r.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("slot").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list parts for unit %s: %w", unitID, result.Error)
	}
	return partModelsToSnapshots(models)
}

// Delete removes one part
func (r *GormPartRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PartModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete part %s: %w", id, result.Error)
	}
	return nil
}

func partModelsToSnapshots(models []PartModel) ([]parts.Snapshot, error) {
	snaps := make([]parts.Snapshot, 0, len(models))
	for i := range models {
		snap, err := partModelToSnapshot(&models[i])
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func snapshotToPartModel(snap parts.Snapshot) (*PartModel, error) {
	model := &PartModel{
		ID:            snap.ID,
		Kind:          string(snap.Kind),
		CatalogKey:    snap.CatalogKey,
		Name:          snap.Name,
		Tonnage:       snap.Tonnage,
		SubRating:     snap.SubRating,
		Quantity:      snap.Quantity,
		UnitID:        snap.UnitID,
		Slot:          snap.Slot,
		Condition:     string(snap.Condition),
		WorkStatus:    string(snap.WorkStatus),
		Purpose:       string(snap.Purpose),
		TechID:        snap.TechID,
		TimeSpent:     snap.TimeSpent,
		Overtime:      snap.Overtime,
		DaysToArrival: snap.DaysToArrival,
		RequiredSkill: int(snap.RequiredSkill),
		Podded:        snap.Podded,
		ArmorPoints:   snap.ArmorPoints,
		ArmorTotal:    snap.ArmorTotal,
		ShotsNeeded:   snap.ShotsNeeded,
	}
	if snap.PodType != nil {
		data, err := json.Marshal(snap.PodType)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal pod type for part %s: %w", snap.ID, err)
		}
		model.PodType = string(data)
	}
	return model, nil
}

func partModelToSnapshot(model *PartModel) (parts.Snapshot, error) {
	snap := parts.Snapshot{
		ID:            model.ID,
		Kind:          parts.Kind(model.Kind),
		CatalogKey:    model.CatalogKey,
		Name:          model.Name,
		Tonnage:       model.Tonnage,
		SubRating:     model.SubRating,
		Quantity:      model.Quantity,
		UnitID:        model.UnitID,
		Slot:          model.Slot,
		Condition:     parts.Condition(model.Condition),
		WorkStatus:    parts.WorkStatus(model.WorkStatus),
		Purpose:       parts.WorkPurpose(model.Purpose),
		TechID:        model.TechID,
		TimeSpent:     model.TimeSpent,
		Overtime:      model.Overtime,
		DaysToArrival: model.DaysToArrival,
		RequiredSkill: shared.Skill(model.RequiredSkill),
		Podded:        model.Podded,
		ArmorPoints:   model.ArmorPoints,
		ArmorTotal:    model.ArmorTotal,
		ShotsNeeded:   model.ShotsNeeded,
	}
	if model.PodType != "" {
		var pod parts.Snapshot
		if err := json.Unmarshal([]byte(model.PodType), &pod); err != nil {
			return parts.Snapshot{}, fmt.Errorf("failed to unmarshal pod type for part %s: %w", model.ID, err)
		}
		snap.PodType = &pod
	}
	return snap, nil
}
