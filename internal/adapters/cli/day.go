package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	campaignCmd "github.com/ewynne/mechbay-go/internal/application/campaign/commands"
)

// NewDayCommand creates the day command with subcommands
func NewDayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Advance campaign time",
	}

	cmd.AddCommand(newDayNextCommand())

	return cmd
}

// newDayNextCommand runs one or more daily ticks
func newDayNextCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Advance the campaign by one or more days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				for day := 1; day <= days; day++ {
					if days > 1 {
						fmt.Printf("--- Day %d ---\n", day)
					}
					resp, err := a.mediator.Send(ctx, &campaignCmd.NewDayCommand{})
					if err != nil {
						return fmt.Errorf("failed to advance day %d: %w", day, err)
					}
					result := resp.(*campaignCmd.NewDayResponse)
					if len(result.Reports) == 0 {
						fmt.Println("Nothing happened")
					}
					if verbose {
						fmt.Printf("(%d work sessions, %d refits advanced)\n",
							result.SessionsRun, result.RefitsAdvanced)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Number of days to advance")

	return cmd
}
