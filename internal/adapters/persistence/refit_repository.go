package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// GormRefitRepository implements RefitRepository using GORM
type GormRefitRepository struct {
	db *gorm.DB
}

// NewGormRefitRepository creates a new GORM refit repository
func NewGormRefitRepository(db *gorm.DB) *GormRefitRepository {
	return &GormRefitRepository{db: db}
}

// Save upserts one refit snapshot
func (r *GormRefitRepository) Save(ctx context.Context, snap refit.Snapshot) error {
	model, err := snapshotToRefitModel(snap)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save refit %s: %w", snap.ID, result.Error)
	}
	return nil
}

// FindByID retrieves one refit snapshot
func (r *GormRefitRepository) FindByID(ctx context.Context, id string) (refit.Snapshot, error) {
	var model RefitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return refit.Snapshot{}, fmt.Errorf("refit not found: %s", id)
		}
		return refit.Snapshot{}, fmt.Errorf("failed to find refit: %w", result.Error)
	}
	return refitModelToSnapshot(&model)
}

// FindActiveByUnit retrieves the non-terminal refit holding a unit, if any
func (r *GormRefitRepository) FindActiveByUnit(ctx context.Context, unitID string) (refit.Snapshot, error) {
	var model RefitModel
	result := r.db.WithContext(ctx).
		Where("unit_id = ? AND status IN ?", unitID, []string{string(refit.StatusPlanning), string(refit.StatusInProgress)}).
		First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return refit.Snapshot{}, fmt.Errorf("no active refit for unit %s", unitID)
		}
		return refit.Snapshot{}, fmt.Errorf("failed to find refit for unit %s: %w", unitID, result.Error)
	}
	return refitModelToSnapshot(&model)
}

// FindAll retrieves every persisted refit in ascending id order
func (r *GormRefitRepository) FindAll(ctx context.Context) ([]refit.Snapshot, error) {
	var models []RefitModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list refits: %w", result.Error)
	}
	snaps := make([]refit.Snapshot, 0, len(models))
	for i := range models {
		snap, err := refitModelToSnapshot(&models[i])
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Delete removes one refit
func (r *GormRefitRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RefitModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete refit %s: %w", id, result.Error)
	}
	return nil
}

func snapshotToRefitModel(snap refit.Snapshot) (*RefitModel, error) {
	shortfall, err := json.Marshal(snap.Shortfall)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shortfall for refit %s: %w", snap.ID, err)
	}
	removals, err := json.Marshal(snap.Removals)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal removals for refit %s: %w", snap.ID, err)
	}
	target, err := json.Marshal(snap.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal target for refit %s: %w", snap.ID, err)
	}
	kit, err := json.Marshal(snap.Kit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal kit for refit %s: %w", snap.ID, err)
	}
	return &RefitModel{
		ID:            snap.ID,
		UnitID:        snap.UnitID,
		Status:        string(snap.Status),
		Refurbishment: snap.Refurbishment,
		CustomJob:     snap.CustomJob,
		TimeRequired:  snap.TimeRequiredMinutes,
		DaysElapsed:   snap.DaysElapsed,
		WorkMinutes:   snap.WorkMinutes,
		Shortfall:     string(shortfall),
		Removals:      string(removals),
		Target:        string(target),
		Kit:           string(kit),
	}, nil
}

func refitModelToSnapshot(model *RefitModel) (refit.Snapshot, error) {
	snap := refit.Snapshot{
		ID:                  model.ID,
		UnitID:              model.UnitID,
		Status:              refit.Status(model.Status),
		Refurbishment:       model.Refurbishment,
		CustomJob:           model.CustomJob,
		TimeRequiredMinutes: model.TimeRequired,
		DaysElapsed:         model.DaysElapsed,
		WorkMinutes:         model.WorkMinutes,
	}
	fields := []struct {
		data string
		dest interface{}
	}{
		{model.Shortfall, &snap.Shortfall},
		{model.Removals, &snap.Removals},
		{model.Kit, &snap.Kit},
	}
	for _, f := range fields {
		if f.data == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.data), f.dest); err != nil {
			return refit.Snapshot{}, fmt.Errorf("failed to unmarshal refit %s: %w", model.ID, err)
		}
	}
	if model.Target != "" {
		var target []unit.Slot
		if err := json.Unmarshal([]byte(model.Target), &target); err != nil {
			return refit.Snapshot{}, fmt.Errorf("failed to unmarshal target for refit %s: %w", model.ID, err)
		}
		snap.Target = target
	}
	return snap, nil
}
