package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
)

// NewTechCommand creates the tech command with subcommands
func NewTechCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Manage technicians",
	}

	cmd.AddCommand(newTechListCommand())
	cmd.AddCommand(newTechHireCommand())

	return cmd
}

// newTechListCommand lists the technician pool
func newTechListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List technicians with their daily time budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				techs := a.campaign.Techs()
				if len(techs) == 0 {
					fmt.Println("No technicians hired")
					return nil
				}

				fmt.Printf("%-36s %-20s %-8s %10s %8s %-36s\n",
					"TECH ID", "NAME", "SKILL", "AVAILABLE", "USED", "ASSIGNED PART")
				for _, t := range techs {
					assigned := t.AssignedPart()
					if assigned == "" {
						assigned = "-"
					}
					fmt.Printf("%-36s %-20s %-8s %9dm %7dm %-36s\n",
						t.ID(), truncate(t.Name(), 20), t.Skill(),
						t.AvailableMinutes(), t.MinutesUsed(), assigned)
				}
				return nil
			})
		},
	}
}

// newTechHireCommand adds a technician to the pool
func newTechHireCommand() *cobra.Command {
	var (
		name  string
		skill string
	)

	cmd := &cobra.Command{
		Use:   "hire",
		Short: "Hire a technician",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				tier, err := shared.ParseSkill(skill)
				if err != nil {
					return err
				}

				t, err := repair.NewTech(name, tier, a.cfg.Campaign.DailyMinutes)
				if err != nil {
					return fmt.Errorf("failed to hire tech: %w", err)
				}
				a.campaign.AddTech(t)

				fmt.Printf("Hired %s (%s, %dm/day): %s\n", t.Name(), t.Skill(), t.DailyMinutes(), t.ID())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Technician name")
	cmd.Flags().StringVar(&skill, "skill", "Regular", "Skill tier (Green, Regular, Veteran, Elite)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
