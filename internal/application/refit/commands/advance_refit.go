package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
)

// AdvanceRefitCommand represents one day of refit work on a project.
type AdvanceRefitCommand struct {
	RefitID string
	Minutes int
}

// AdvanceRefitResponse represents the day's progress
type AdvanceRefitResponse struct {
	Done        bool
	DaysElapsed int
	WorkMinutes int
}

// AdvanceRefitHandler handles the AdvanceRefit command
type AdvanceRefitHandler struct {
	campaign *common.Campaign
}

// NewAdvanceRefitHandler creates a new AdvanceRefitHandler
func NewAdvanceRefitHandler(campaign *common.Campaign) *AdvanceRefitHandler {
	return &AdvanceRefitHandler{campaign: campaign}
}

// Handle executes the AdvanceRefit command
func (h *AdvanceRefitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceRefitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceRefitCommand")
	}

	project, err := h.campaign.Refit(cmd.RefitID)
	if err != nil {
		return nil, err
	}
	done, err := project.AdvanceDay(cmd.Minutes)
	if err != nil {
		return nil, err
	}

	return &AdvanceRefitResponse{
		Done:        done,
		DaysElapsed: project.DaysElapsed(),
		WorkMinutes: project.WorkMinutes(),
	}, nil
}
