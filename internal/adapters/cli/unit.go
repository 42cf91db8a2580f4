package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	maintenanceQuery "github.com/ewynne/mechbay-go/internal/application/maintenance/queries"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// NewUnitCommand creates the unit command with subcommands
func NewUnitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Inspect campaign units",
	}

	cmd.AddCommand(newUnitListCommand())
	cmd.AddCommand(newUnitStatusCommand())

	return cmd
}

// newUnitListCommand lists the unit roster
func newUnitListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all units with their repair state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &maintenanceQuery.ListUnitsQuery{})
				if err != nil {
					return fmt.Errorf("failed to list units: %w", err)
				}
				result := resp.(*maintenanceQuery.ListUnitsResponse)

				if len(result.Units) == 0 {
					fmt.Println("No units registered")
					return nil
				}

				fmt.Printf("%-36s %-24s %8s %-10s %6s %8s %8s\n",
					"UNIT ID", "NAME", "TONNAGE", "STATE", "PARTS", "DAMAGED", "MISSING")
				for _, u := range result.Units {
					state := "ready"
					if u.Deployed {
						state = "deployed"
					} else if u.Refitting {
						state = "refitting"
					}
					fmt.Printf("%-36s %-24s %8.1f %-10s %6d %8d %8d\n",
						u.ID, truncate(u.Name, 24), u.Tonnage, state,
						u.PartCount, u.NeedsFixing, u.MissingParts)
				}
				fmt.Printf("\nTotal: %d units\n", len(result.Units))
				return nil
			})
		},
	}
}

// newUnitStatusCommand shows the slot-by-slot state of one unit
func newUnitStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <unit-id-or-name>",
		Short: "Show a unit's installed parts slot by slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				u, err := resolveUnit(a, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("Unit: %s (%s)\n", u.Name(), u.ID())
				fmt.Printf("  Tonnage:   %.1f\n", u.Tonnage())
				fmt.Printf("  Deployed:  %t\n", u.Deployed())
				if u.Refitting() {
					fmt.Printf("  Refit:     %s\n", u.RefitID())
				}
				fmt.Println()

				fmt.Printf("%-5s %-36s %-28s %-10s %-10s %-12s %9s\n",
					"SLOT", "PART ID", "NAME", "KIND", "CONDITION", "STATUS", "REMAINING")
				for _, p := range u.Parts() {
					remaining := "-"
					if p.NeedsFixing() {
						if minutes, err := p.RemainingTime(a.campaign.Catalog); err == nil {
							remaining = fmt.Sprintf("%dm", minutes)
						}
					}
					fmt.Printf("%-5d %-36s %-28s %-10s %-10s %-12s %9s\n",
						p.Slot(), p.ID(), truncate(p.Name(), 28),
						p.Kind(), p.Condition(), p.WorkStatus(), remaining)
				}
				return nil
			})
		},
	}
}

// resolveUnit accepts a unit id or a display name.
func resolveUnit(a *app, ref string) (*unit.Unit, error) {
	if u, err := a.campaign.Unit(ref); err == nil {
		return u, nil
	}
	return a.campaign.UnitByName(ref)
}
