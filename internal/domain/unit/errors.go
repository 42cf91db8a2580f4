package unit

import "fmt"

// ErrPartNotOnUnit indicates a part id that is not installed on this unit
type ErrPartNotOnUnit struct {
	UnitID string
	PartID string
}

func (e *ErrPartNotOnUnit) Error() string {
	return fmt.Sprintf("part %s is not installed on unit %s", e.PartID, e.UnitID)
}

// ErrSlotOccupied indicates an install into a slot that already holds a part
type ErrSlotOccupied struct {
	UnitID string
	Slot   int
}

func (e *ErrSlotOccupied) Error() string {
	return fmt.Sprintf("slot %d on unit %s is already occupied", e.Slot, e.UnitID)
}

// ErrUnknownSlot indicates a slot index outside the unit's blueprint
type ErrUnknownSlot struct {
	UnitID string
	Slot   int
}

func (e *ErrUnknownSlot) Error() string {
	return fmt.Sprintf("unit %s has no slot %d", e.UnitID, e.Slot)
}

// ErrUnitUnavailable indicates maintenance on a deployed unit
type ErrUnitUnavailable struct {
	UnitID string
}

func (e *ErrUnitUnavailable) Error() string {
	return fmt.Sprintf("unit %s is deployed and unavailable for maintenance", e.UnitID)
}
