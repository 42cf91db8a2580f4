package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
)

// RestoreUnitCommand represents the GM bulk-restore action on a unit.
type RestoreUnitCommand struct {
	UnitID string
}

// RestoreUnitResponse represents the restore result
type RestoreUnitResponse struct {
	Result repair.RestoreResult
}

// RestoreUnitHandler handles the RestoreUnit command
type RestoreUnitHandler struct {
	campaign *common.Campaign
}

// NewRestoreUnitHandler creates a new RestoreUnitHandler
func NewRestoreUnitHandler(campaign *common.Campaign) *RestoreUnitHandler {
	return &RestoreUnitHandler{campaign: campaign}
}

// Handle executes the RestoreUnit command
func (h *RestoreUnitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RestoreUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RestoreUnitCommand")
	}

	u, err := h.campaign.Unit(cmd.UnitID)
	if err != nil {
		return nil, err
	}

	result, err := repair.Restore(u, h.campaign.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to restore unit %s: %w", u.ID(), err)
	}

	common.LoggerFromContext(ctx).Log("info", "unit restored", map[string]interface{}{
		"unit_id": u.ID(),
		"passes":  result.Passes,
	})

	return &RestoreUnitResponse{Result: result}, nil
}
