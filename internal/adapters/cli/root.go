package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mechbay",
		Short: "MechBay CLI - Manage campaign repairs, refits and warehouse stock",
		Long: `MechBay CLI manages the part lifecycle of a campaign force: repair
work orders, technician assignments, warehouse stock and refit projects.
State is stored in the campaign database; every command recovers the
campaign, applies its change and persists the result.

Examples:
  mechbay campaign seed
  mechbay unit list
  mechbay unit status "Atlas AS7-D"
  mechbay repair assign --tech <tech-id> --part <part-id>
  mechbay refit plan "Atlas AS7-D" --slot 2=large-laser --begin
  mechbay day next --days 3`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewCampaignCommand())
	rootCmd.AddCommand(NewUnitCommand())
	rootCmd.AddCommand(NewPartCommand())
	rootCmd.AddCommand(NewWarehouseCommand())
	rootCmd.AddCommand(NewTechCommand())
	rootCmd.AddCommand(NewRepairCommand())
	rootCmd.AddCommand(NewRefitCommand())
	rootCmd.AddCommand(NewDayCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
