package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewynne/mechbay-go/internal/domain/parts"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/domain/unit"
)

// NewCampaignCommand creates the campaign command with subcommands
func NewCampaignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Campaign-level state",
	}

	cmd.AddCommand(newCampaignStatusCommand())
	cmd.AddCommand(newCampaignSeedCommand())

	return cmd
}

// newCampaignStatusCommand prints a campaign overview
func newCampaignStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the campaign overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAppReadOnly(func(ctx context.Context, a *app) error {
				stock := 0
				for _, p := range a.campaign.Warehouse.Parts() {
					stock += p.Quantity()
				}

				fmt.Printf("Era:           %s\n", a.campaign.Era)
				fmt.Printf("Units:         %d\n", len(a.campaign.Units()))
				fmt.Printf("Technicians:   %d\n", len(a.campaign.Techs()))
				fmt.Printf("Spares:        %d\n", stock)
				fmt.Printf("Active refits: %d\n", len(a.campaign.Refits()))
				return nil
			})
		},
	}
}

// newCampaignSeedCommand stocks a small demo campaign
func newCampaignSeedCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo campaign with units, techs and spares",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if len(a.campaign.Units()) > 0 && !force {
					return fmt.Errorf("campaign already has units; use --force to seed anyway")
				}
				return seedCampaign(a)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even when units already exist")

	return cmd
}

func seedCampaign(a *app) error {
	cat := a.campaign.Catalog

	atlas, err := unit.New("Atlas AS7-D", 100, []unit.Slot{
		{Index: 0, Location: 0, CatalogKey: "standard-armor", ArmorPoints: 48, Structural: true, DependsOn: unit.NoDependency},
		{Index: 1, Location: 1, CatalogKey: "large-laser", DependsOn: unit.NoDependency},
		{Index: 2, Location: 1, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
		{Index: 3, Location: 2, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
		{Index: 4, Location: 3, CatalogKey: "heat-sink", DependsOn: unit.NoDependency},
		{Index: 5, Location: 3, CatalogKey: "heat-sink", DependsOn: unit.NoDependency},
		{Index: 6, Location: 4, CatalogKey: "ac5-ammo", DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := atlas.DeriveParts(cat); err != nil {
		return fmt.Errorf("failed to derive parts for %s: %w", atlas.Name(), err)
	}
	a.campaign.AddUnit(atlas)

	spider, err := unit.New("Spider SDR-5V", 30, []unit.Slot{
		{Index: 0, Location: 0, CatalogKey: "standard-armor", ArmorPoints: 16, Structural: true, DependsOn: unit.NoDependency},
		{Index: 1, Location: 1, CatalogKey: "medium-laser", DependsOn: unit.NoDependency},
		{Index: 2, Location: 2, CatalogKey: "jump-jet", DependsOn: unit.NoDependency},
		{Index: 3, Location: 2, CatalogKey: "jump-jet", DependsOn: unit.NoDependency},
		{Index: 4, Location: 3, CatalogKey: "heat-sink", DependsOn: unit.NoDependency},
	})
	if err != nil {
		return err
	}
	if _, err := spider.DeriveParts(cat); err != nil {
		return fmt.Errorf("failed to derive parts for %s: %w", spider.Name(), err)
	}
	a.campaign.AddUnit(spider)

	// Parts scale to the unit they fit, so spare tonnage must match the
	// target chassis. Heat sinks are tonnage-free.
	spares := []struct {
		key      string
		tonnage  float64
		quantity int
	}{
		{"medium-laser", 100, 3},
		{"medium-laser", 30, 1},
		{"large-laser", 100, 1},
		{"heat-sink", 0, 4},
		{"double-heat-sink", 0, 2},
		{"jump-jet", 30, 2},
		{"ac5-ammo", 100, 2},
	}
	for _, s := range spares {
		spec, err := cat.Lookup(s.key)
		if err != nil {
			return err
		}
		p, err := buildPart(spec, s.tonnage, 0, 0)
		if err != nil {
			return err
		}
		a.campaign.Warehouse.AddPart(p, s.quantity-1)
	}

	// One podded Clan weapon to exercise omnipod pricing and availability.
	ppcSpec, err := cat.Lookup("er-ppc-clan")
	if err != nil {
		return err
	}
	ppc, err := parts.NewEquipment(ppcSpec, 100)
	if err != nil {
		return err
	}
	pod, err := parts.NewOmniPod(ppc)
	if err != nil {
		return err
	}
	a.campaign.Warehouse.AddPart(pod, 0)

	for _, t := range []struct {
		name  string
		skill shared.Skill
	}{
		{"Moira Santos", shared.SkillVeteran},
		{"Dex Calloway", shared.SkillRegular},
	} {
		tech, err := repair.NewTech(t.name, t.skill, a.cfg.Campaign.DailyMinutes)
		if err != nil {
			return err
		}
		a.campaign.AddTech(tech)
	}

	fmt.Printf("Seeded campaign: %d units, %d techs, %d spare stacks\n",
		len(a.campaign.Units()), len(a.campaign.Techs()), len(a.campaign.Warehouse.Parts()))
	return nil
}
