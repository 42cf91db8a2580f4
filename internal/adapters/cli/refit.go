package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	refitCmd "github.com/ewynne/mechbay-go/internal/application/refit/commands"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// NewRefitCommand creates the refit command with subcommands
func NewRefitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refit",
		Short: "Plan and run refit projects",
	}

	cmd.AddCommand(newRefitPlanCommand())
	cmd.AddCommand(newRefitListCommand())
	cmd.AddCommand(newRefitAdvanceCommand())
	cmd.AddCommand(newRefitCancelCommand())
	cmd.AddCommand(newRefitCompleteCommand())

	return cmd
}

// newRefitPlanCommand diffs a target blueprint and claims the kit
func newRefitPlanCommand() *cobra.Command {
	var (
		slotOverrides []string
		refurbish     bool
		customJob     bool
		begin         bool
	)

	cmd := &cobra.Command{
		Use:   "plan <unit-id-or-name>",
		Short: "Plan a refit against a modified blueprint",
		Long: `Plan a refit by overriding slots of the unit's current blueprint.
Each --slot takes index=catalog-key or index=catalog-key/sub-rating.

Examples:
  mechbay refit plan "Atlas AS7-D" --slot 2=large-laser --begin
  mechbay refit plan "Atlas AS7-D" --slot 4=double-heat-sink --slot 5=double-heat-sink
  mechbay refit plan "Atlas AS7-D" --refurbish`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				u, err := resolveUnit(a, args[0])
				if err != nil {
					return err
				}

				target, err := applySlotOverrides(u.Slots(), slotOverrides)
				if err != nil {
					return err
				}

				resp, err := a.mediator.Send(ctx, &refitCmd.InitiateRefitCommand{
					UnitID:        u.ID(),
					Target:        target,
					Refurbishment: refurbish,
					CustomJob:     customJob,
					Begin:         begin,
				})
				if err != nil {
					return err
				}
				result := resp.(*refitCmd.InitiateRefitResponse)

				fmt.Printf("Refit planned: %s\n", result.RefitID)
				fmt.Printf("  Status:        %s\n", result.Status)
				fmt.Printf("  Time required: %dm\n", result.TimeRequiredMinutes)
				for _, name := range result.Removals {
					fmt.Printf("  Will remove:   %s\n", name)
				}
				for _, name := range result.Shortfall {
					fmt.Printf("  Missing:       %s\n", name)
				}
				if len(result.Shortfall) > 0 {
					fmt.Println("Kit is incomplete; stock the missing parts before beginning")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&slotOverrides, "slot", nil,
		"Blueprint override, index=catalog-key[/sub-rating] (repeatable)")
	cmd.Flags().BoolVar(&refurbish, "refurbish", false,
		"Refurbish in place instead of swapping parts")
	cmd.Flags().BoolVar(&customJob, "custom", false, "Mark as a custom job")
	cmd.Flags().BoolVar(&begin, "begin", false, "Begin work immediately")

	return cmd
}

// newRefitListCommand lists open refit projects
func newRefitListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active refit projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				projects := a.campaign.Refits()
				if len(projects) == 0 {
					fmt.Println("No active refits")
					return nil
				}

				fmt.Printf("%-40s %-36s %-12s %6s %10s %10s\n",
					"REFIT ID", "UNIT", "STATUS", "DAYS", "WORKED", "REQUIRED")
				for _, r := range projects {
					fmt.Printf("%-40s %-36s %-12s %6d %9dm %9dm\n",
						truncate(r.ID(), 40), r.UnitID(), r.Status(),
						r.DaysElapsed(), r.WorkMinutes(), r.TimeRequiredMinutes())
				}
				return nil
			})
		},
	}
}

// newRefitAdvanceCommand books one day of work on a project
func newRefitAdvanceCommand() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "advance <refit-id>",
		Short: "Book one day of refit work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &refitCmd.AdvanceRefitCommand{
					RefitID: args[0],
					Minutes: minutes,
				})
				if err != nil {
					return err
				}
				result := resp.(*refitCmd.AdvanceRefitResponse)

				fmt.Printf("Day %d booked: %dm of work accrued\n", result.DaysElapsed, result.WorkMinutes)
				if result.Done {
					fmt.Println("Work target reached; run refit complete to commit")
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0,
		"Minutes of work booked (default: configured daily refit rate)")

	return cmd
}

// newRefitCancelCommand abandons a project and releases its kit
func newRefitCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <refit-id>",
		Short: "Cancel a refit and release its claimed kit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &refitCmd.CancelRefitCommand{RefitID: args[0]})
				if err != nil {
					return err
				}
				fmt.Println(resp.(*refitCmd.CancelRefitResponse).Report)
				return nil
			})
		},
	}
}

// newRefitCompleteCommand commits a finished project
func newRefitCompleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "complete <refit-id>",
		Short: "Commit a refit, swapping the unit to the target blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &refitCmd.CompleteRefitCommand{
					RefitID: args[0],
					Force:   force,
				})
				if err != nil {
					return err
				}
				fmt.Println(resp.(*refitCmd.CompleteRefitResponse).Report)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"Commit without the work target being reached (gamemaster override)")

	return cmd
}

// applySlotOverrides builds a target blueprint from the current one plus
// index=catalog-key[/sub-rating] overrides.
func applySlotOverrides(current []unit.Slot, overrides []string) ([]unit.Slot, error) {
	target := make([]unit.Slot, len(current))
	copy(target, current)

	for _, raw := range overrides {
		idxStr, rest, found := strings.Cut(raw, "=")
		if !found {
			return nil, fmt.Errorf("invalid slot override %q: expected index=catalog-key", raw)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil, fmt.Errorf("invalid slot index %q: %w", idxStr, err)
		}
		if idx < 0 || idx >= len(target) {
			return nil, fmt.Errorf("slot index %d out of range (unit has %d slots)", idx, len(target))
		}

		key := rest
		subRating := 0
		if keyPart, ratingPart, hasRating := strings.Cut(rest, "/"); hasRating {
			key = keyPart
			subRating, err = strconv.Atoi(ratingPart)
			if err != nil {
				return nil, fmt.Errorf("invalid sub-rating %q: %w", ratingPart, err)
			}
		}

		target[idx].CatalogKey = key
		target[idx].SubRating = subRating
		target[idx].Destroyed = false
	}

	return target, nil
}
