package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	maintenanceQuery "github.com/ewynne/mechbay-go/internal/application/maintenance/queries"
	"github.com/ewynne/mechbay-go/internal/domain/parts"
)

// NewWarehouseCommand creates the warehouse command with subcommands
func NewWarehouseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Manage warehouse stock",
	}

	cmd.AddCommand(newWarehouseStockCommand())
	cmd.AddCommand(newWarehouseAddCommand())

	return cmd
}

// newWarehouseStockCommand prints the structural stock snapshot
func newWarehouseStockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "List warehouse stock by part type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &maintenanceQuery.GetWarehouseStockQuery{})
				if err != nil {
					return fmt.Errorf("failed to get warehouse stock: %w", err)
				}
				result := resp.(*maintenanceQuery.GetWarehouseStockResponse)

				if len(result.Entries) == 0 {
					fmt.Println("Warehouse is empty")
					return nil
				}

				fmt.Printf("%-10s %-24s %-28s %8s %-10s %-7s %4s\n",
					"KIND", "KEY", "NAME", "TONNAGE", "CONDITION", "PODDED", "QTY")
				total := 0
				for _, e := range result.Entries {
					fmt.Printf("%-10s %-24s %-28s %8.2f %-10s %-7t %4d\n",
						e.Kind, e.Key, truncate(e.Name, 28), e.Tonnage,
						e.Condition, e.Podded, e.Quantity)
					total += e.Quantity
				}
				fmt.Printf("\nTotal: %d parts in %d stacks\n", total, len(result.Entries))
				return nil
			})
		},
	}
}

// newWarehouseAddCommand stocks new spares from the catalog
func newWarehouseAddCommand() *cobra.Command {
	var (
		quantity     int
		tonnage      float64
		armorPoints  int
		engineRating int
	)

	cmd := &cobra.Command{
		Use:   "add <catalog-key>",
		Short: "Add factory-new spares to the warehouse",
		Long: `Add factory-new spares of a catalog part type to the warehouse.

Examples:
  mechbay warehouse add medium-laser --quantity 3 --tonnage 1
  mechbay warehouse add standard-armor --tonnage 2 --armor-points 32
  mechbay warehouse add masc --tonnage 5 --engine-rating 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				spec, err := a.campaign.Catalog.Lookup(args[0])
				if err != nil {
					return err
				}

				p, err := buildPart(spec, tonnage, armorPoints, engineRating)
				if err != nil {
					return fmt.Errorf("failed to build part: %w", err)
				}

				stocked := a.campaign.Warehouse.AddPart(p, quantity-1)
				fmt.Printf("Stocked %d x %s (stack %s)\n", quantity, spec.Name, stocked.ID())
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Number of spares to add")
	cmd.Flags().Float64Var(&tonnage, "tonnage", 1,
		"Per-unit tonnage; must match the chassis the spare is meant for")
	cmd.Flags().IntVar(&armorPoints, "armor-points", 0, "Point allocation (armor only)")
	cmd.Flags().IntVar(&engineRating, "engine-rating", 0, "Engine rating (MASC only)")

	return cmd
}

// buildPart constructs a factory-new part of the right kind for a spec.
func buildPart(spec parts.Spec, tonnage float64, armorPoints, engineRating int) (*parts.Part, error) {
	switch spec.Kind {
	case parts.KindHeatSink:
		return parts.NewHeatSink(spec)
	case parts.KindJumpJet:
		return parts.NewJumpJet(spec, tonnage)
	case parts.KindMASC:
		return parts.NewMASC(spec, tonnage, engineRating)
	case parts.KindArmor:
		return parts.NewArmor(spec, tonnage, armorPoints)
	case parts.KindAmmoBin:
		return parts.NewAmmoBin(spec, tonnage)
	case parts.KindOmniPod:
		return nil, fmt.Errorf("omnipods are built around a contained part type, not stocked directly")
	default:
		return parts.NewEquipment(spec, tonnage)
	}
}
