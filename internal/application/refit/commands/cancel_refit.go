package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
)

// CancelRefitCommand represents a command to abandon a refit project and
// release its kit back to the warehouse.
type CancelRefitCommand struct {
	RefitID string
}

// CancelRefitResponse represents the cancellation result
type CancelRefitResponse struct {
	Report string
}

// CancelRefitHandler handles the CancelRefit command
type CancelRefitHandler struct {
	campaign *common.Campaign
	metrics  common.MaintenanceMetrics
}

// NewCancelRefitHandler creates a new CancelRefitHandler
func NewCancelRefitHandler(campaign *common.Campaign, metrics common.MaintenanceMetrics) *CancelRefitHandler {
	return &CancelRefitHandler{campaign: campaign, metrics: metrics}
}

// Handle executes the CancelRefit command
func (h *CancelRefitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelRefitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelRefitCommand")
	}

	project, err := h.campaign.Refit(cmd.RefitID)
	if err != nil {
		return nil, err
	}
	if err := project.Cancel(h.campaign.Warehouse); err != nil {
		return nil, err
	}
	h.campaign.RemoveRefit(project.ID())
	h.metrics.RecordRefitTransition(string(project.Status()))

	common.LoggerFromContext(ctx).Log("info", "refit cancelled", map[string]interface{}{
		"refit_id": project.ID(),
		"unit_id":  project.UnitID(),
	})

	return &CancelRefitResponse{
		Report: fmt.Sprintf("refit %s cancelled, kit returned to warehouse", project.ID()),
	}, nil
}
