package commands

import (
	"context"
	"fmt"

	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/refit"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// NewDayCommand advances the campaign by one simulated day: shifts reset,
// in-transit parts move, every open work session runs, and active refits
// accrue their daily work.
type NewDayCommand struct{}

// NewDayResponse represents the day's event report
type NewDayResponse struct {
	Reports        []string
	SessionsRun    int
	RefitsAdvanced int
}

// NewDayHandler handles the NewDay command.
//
// Processing order is deterministic: techs, arrivals, work sessions and
// refits each run in ascending id order, so a fixed roll sequence replays
// to the same campaign state.
type NewDayHandler struct {
	campaign           *common.Campaign
	check              repair.SkillCheck
	metrics            common.MaintenanceMetrics
	sink               common.ReportSink
	refitMinutesPerDay int
}

// NewNewDayHandler creates a new NewDayHandler. A non-positive refit work
// rate gets one standard shift per day.
func NewNewDayHandler(
	campaign *common.Campaign,
	check repair.SkillCheck,
	metrics common.MaintenanceMetrics,
	sink common.ReportSink,
	refitMinutesPerDay int,
) *NewDayHandler {
	if refitMinutesPerDay <= 0 {
		refitMinutesPerDay = repair.DailyTimeBudget
	}
	return &NewDayHandler{
		campaign:           campaign,
		check:              check,
		metrics:            metrics,
		sink:               sink,
		refitMinutesPerDay: refitMinutesPerDay,
	}
}

// Handle executes the NewDay command
func (h *NewDayHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*NewDayCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *NewDayCommand")
	}

	response := &NewDayResponse{}
	h.metrics.RecordDayAdvanced()

	for _, t := range h.campaign.Techs() {
		t.ResetDay()
	}
	h.campaign.Warehouse.AdvanceArrivals()

	h.runWorkSessions(ctx, response)
	h.advanceRefits(ctx, response)

	stock := 0
	for _, p := range h.campaign.Warehouse.Parts() {
		stock += p.Quantity()
	}
	h.metrics.SetWarehouseStock(stock)

	for _, report := range response.Reports {
		h.sink.Publish(ctx, report)
	}
	return response, nil
}

// runWorkSessions applies one day of work to every open session. A session
// whose tech has left the roster is reported and skipped, never aborted.
func (h *NewDayHandler) runWorkSessions(ctx context.Context, response *NewDayResponse) {
	resolver := repair.NewResolver(h.campaign.Catalog, h.campaign.Warehouse)

	for _, u := range h.campaign.Units() {
		for _, p := range u.Parts() {
			h.runSession(ctx, resolver, u, p, response)
		}
	}
	for _, p := range h.campaign.Warehouse.Parts() {
		h.runSession(ctx, resolver, nil, p, response)
	}
}

func (h *NewDayHandler) runSession(ctx context.Context, resolver *repair.Resolver, owner *unit.Unit, p *parts.Part, response *NewDayResponse) {
	if p.WorkStatus() != parts.WorkInProgress {
		return
	}
	tech, err := h.campaign.Tech(p.TechID())
	if err != nil {
		response.Reports = append(response.Reports,
			fmt.Sprintf("%s: assigned tech %s is gone, work stalled", p.Name(), p.TechID()))
		return
	}
	if tech.AvailableMinutes() == 0 {
		return
	}

	outcome, err := resolver.WorkSession(owner, p, tech, h.check)
	if err != nil {
		response.Reports = append(response.Reports, fmt.Sprintf("%s: %v", p.Name(), err))
		return
	}
	response.SessionsRun++
	if outcome.Message != "" {
		response.Reports = append(response.Reports, outcome.Message)
	}
	if outcome.Resolved {
		switch {
		case outcome.Destroyed:
			h.metrics.RecordRepair("destroyed")
			h.metrics.RecordPartDestroyed(string(p.Kind()))
		case outcome.Success:
			h.metrics.RecordRepair("success")
		default:
			h.metrics.RecordRepair("failure")
		}
	}
}

// advanceRefits accrues one day of work on every in-progress project and
// commits the ones that reached their required time.
func (h *NewDayHandler) advanceRefits(ctx context.Context, response *NewDayResponse) {
	for _, project := range h.campaign.Refits() {
		if project.Status() != refit.StatusInProgress {
			continue
		}
		done, err := project.AdvanceDay(h.refitMinutesPerDay)
		if err != nil {
			response.Reports = append(response.Reports, fmt.Sprintf("refit %s: %v", project.ID(), err))
			continue
		}
		response.RefitsAdvanced++
		if !done {
			continue
		}

		report, err := project.Succeed(h.campaign.Warehouse, h.campaign.Catalog)
		if err != nil {
			response.Reports = append(response.Reports, fmt.Sprintf("refit %s: %v", project.ID(), err))
			continue
		}
		h.campaign.RemoveRefit(project.ID())
		h.metrics.RecordRefitTransition(string(refit.StatusCompleted))
		response.Reports = append(response.Reports, report)
	}
}
