package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	maintenanceQuery "github.com/ewynne/mechbay-go/internal/application/maintenance/queries"
)

// NewPartCommand creates the part command with subcommands
func NewPartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "part",
		Short: "Inspect individual parts",
	}

	cmd.AddCommand(newPartStatusCommand())

	return cmd
}

// newPartStatusCommand shows the full lifecycle view of one part
func newPartStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <part-id>",
		Short: "Show a part's condition, work state and catalog data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &maintenanceQuery.GetPartStatusQuery{PartID: args[0]})
				if err != nil {
					return fmt.Errorf("failed to get part status: %w", err)
				}
				p := resp.(*maintenanceQuery.GetPartStatusResponse).Part

				fmt.Printf("Part: %s (%s)\n", p.Name, p.ID)
				fmt.Printf("  Kind:           %s\n", p.Kind)
				fmt.Printf("  Condition:      %s\n", p.Condition)
				fmt.Printf("  Status:         %s\n", p.Status)
				if p.UnitName != "" {
					fmt.Printf("  Installed on:   %s (slot %d)\n", p.UnitName, p.Slot)
				} else {
					fmt.Printf("  Location:       warehouse (quantity %d)\n", p.Quantity)
				}
				fmt.Printf("  Required skill: %s\n", p.RequiredSkill)
				fmt.Printf("  Base time:      %dm\n", p.BaseTimeMinutes)
				fmt.Printf("  Work target:    %dm\n", p.WorkTarget)
				fmt.Printf("  Remaining:      %dm\n", p.RemainingMinutes)
				fmt.Printf("  Difficulty:     %d\n", p.Difficulty)
				fmt.Printf("  Tech rating:    %s\n", p.TechRating)
				fmt.Printf("  Availability:   %s\n", p.Availability)
				fmt.Printf("  Intro year:     %d\n", p.IntroYear)
				fmt.Printf("  Price:          %d C-bills\n", p.Price)
				return nil
			})
		},
	}
}
