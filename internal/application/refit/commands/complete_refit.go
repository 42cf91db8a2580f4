package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
)

// CompleteRefitCommand represents a command to commit a refit's target
// configuration. With Force set this is the GM immediate-completion path,
// valid before the required work time has accrued.
type CompleteRefitCommand struct {
	RefitID string
	Force   bool
}

// CompleteRefitResponse represents the commit result
type CompleteRefitResponse struct {
	Report string
}

// CompleteRefitHandler handles the CompleteRefit command
type CompleteRefitHandler struct {
	campaign *common.Campaign
	metrics  common.MaintenanceMetrics
}

// NewCompleteRefitHandler creates a new CompleteRefitHandler
func NewCompleteRefitHandler(campaign *common.Campaign, metrics common.MaintenanceMetrics) *CompleteRefitHandler {
	return &CompleteRefitHandler{campaign: campaign, metrics: metrics}
}

// Handle executes the CompleteRefit command
func (h *CompleteRefitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CompleteRefitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteRefitCommand")
	}

	project, err := h.campaign.Refit(cmd.RefitID)
	if err != nil {
		return nil, err
	}
	if !cmd.Force && project.WorkMinutes() < project.TimeRequiredMinutes() {
		return nil, fmt.Errorf("refit %s needs %d more minutes of work",
			project.ID(), project.TimeRequiredMinutes()-project.WorkMinutes())
	}

	report, err := project.Succeed(h.campaign.Warehouse, h.campaign.Catalog)
	if err != nil {
		return nil, err
	}
	h.campaign.RemoveRefit(project.ID())
	h.metrics.RecordRefitTransition(string(project.Status()))

	common.LoggerFromContext(ctx).Log("info", "refit completed", map[string]interface{}{
		"refit_id": project.ID(),
		"unit_id":  project.UnitID(),
		"forced":   cmd.Force,
	})

	return &CompleteRefitResponse{Report: report}, nil
}
