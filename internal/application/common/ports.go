package common

import (
	"context"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// PartRepository persists part entities as flat snapshots. Installed and
// warehoused parts share one table; the unit back-reference distinguishes
// them.
type PartRepository interface {
	Save(ctx context.Context, snap parts.Snapshot) error
	SaveAll(ctx context.Context, snaps []parts.Snapshot) error
	FindByID(ctx context.Context, id string) (parts.Snapshot, error)
	FindAll(ctx context.Context) ([]parts.Snapshot, error)
	FindByUnit(ctx context.Context, unitID string) ([]parts.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// UnitRepository persists unit aggregates and their blueprints.
type UnitRepository interface {
	Save(ctx context.Context, snap unit.Snapshot) error
	FindByID(ctx context.Context, id string) (unit.Snapshot, error)
	FindAll(ctx context.Context) ([]unit.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// RefitRepository persists refit projects. At most one non-terminal project
// exists per unit.
type RefitRepository interface {
	Save(ctx context.Context, snap refit.Snapshot) error
	FindByID(ctx context.Context, id string) (refit.Snapshot, error)
	FindActiveByUnit(ctx context.Context, unitID string) (refit.Snapshot, error)
	FindAll(ctx context.Context) ([]refit.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// TechRepository persists the technician roster.
type TechRepository interface {
	Save(ctx context.Context, snap repair.TechSnapshot) error
	FindByID(ctx context.Context, id string) (repair.TechSnapshot, error)
	FindAll(ctx context.Context) ([]repair.TechSnapshot, error)
	Delete(ctx context.Context, id string) error
}

// ReportSink receives the human-readable event lines a tick produces.
type ReportSink interface {
	Publish(ctx context.Context, report string)
}

// MaintenanceMetrics records maintenance activity for the metrics adapter.
// A no-op implementation is valid when metrics are disabled.
type MaintenanceMetrics interface {
	RecordRepair(outcome string)
	RecordPartDestroyed(kind string)
	RecordRefitTransition(status string)
	SetWarehouseStock(quantity int)
	RecordDayAdvanced()
}

// NoOpMetrics discards every observation.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordRepair(outcome string)         {}
func (NoOpMetrics) RecordPartDestroyed(kind string)     {}
func (NoOpMetrics) RecordRefitTransition(status string) {}
func (NoOpMetrics) SetWarehouseStock(quantity int)      {}
func (NoOpMetrics) RecordDayAdvanced()                  {}
