package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	maintenanceCmd "github.com/ewynne/mechbay-go/internal/application/maintenance/commands"
)

// NewRepairCommand creates the repair command with subcommands
func NewRepairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Run repair work orders",
	}

	cmd.AddCommand(newRepairAssignCommand())
	cmd.AddCommand(newRepairWorkCommand())
	cmd.AddCommand(newRepairRestoreCommand())

	return cmd
}

// newRepairAssignCommand assigns a technician to a damaged part
func newRepairAssignCommand() *cobra.Command {
	var (
		techID string
		partID string
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a technician to a part's work order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &maintenanceCmd.AssignTechCommand{
					TechID: techID,
					PartID: partID,
				})
				if err != nil {
					return err
				}
				fmt.Println(resp.(*maintenanceCmd.AssignTechResponse).Report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&techID, "tech", "", "Technician ID")
	cmd.Flags().StringVar(&partID, "part", "", "Part ID")
	_ = cmd.MarkFlagRequired("tech")
	_ = cmd.MarkFlagRequired("part")

	return cmd
}

// newRepairWorkCommand runs one work session on an assigned part
func newRepairWorkCommand() *cobra.Command {
	var (
		techID string
		partID string
	)

	cmd := &cobra.Command{
		Use:   "work",
		Short: "Run one work session against an open work order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &maintenanceCmd.RunWorkSessionCommand{
					TechID: techID,
					PartID: partID,
				})
				if err != nil {
					return err
				}
				outcome := resp.(*maintenanceCmd.RunWorkSessionResponse).Outcome

				fmt.Println(outcome.Message)
				if verbose {
					fmt.Printf("  Minutes worked: %d\n", outcome.MinutesWorked)
					fmt.Printf("  Resolved:       %t\n", outcome.Resolved)
					if outcome.Resolved {
						fmt.Printf("  Success:        %t\n", outcome.Success)
						fmt.Printf("  Destroyed:      %t\n", outcome.Destroyed)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&techID, "tech", "", "Technician ID")
	cmd.Flags().StringVar(&partID, "part", "", "Part ID")
	_ = cmd.MarkFlagRequired("tech")
	_ = cmd.MarkFlagRequired("part")

	return cmd
}

// newRepairRestoreCommand bulk-repairs a unit, gamemaster style
func newRepairRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <unit-id-or-name>",
		Short: "Fully restore a unit, bypassing rolls and sourcing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				u, err := resolveUnit(a, args[0])
				if err != nil {
					return err
				}

				resp, err := a.mediator.Send(ctx, &maintenanceCmd.RestoreUnitCommand{UnitID: u.ID()})
				if err != nil {
					return err
				}
				result := resp.(*maintenanceCmd.RestoreUnitResponse).Result

				for _, line := range result.Report {
					fmt.Println(line)
				}
				fmt.Printf("Restored %s in %d pass/es (%d fixed, %d rebuilt)\n",
					u.Name(), result.Passes, result.PartsFixed, result.PartsRederive)
				return nil
			})
		},
	}
}
