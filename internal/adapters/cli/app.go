package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/adapters/dice"
	"github.com/ewynne/mechbay-go/internal/adapters/persistence"
	campaignCmd "github.com/ewynne/mechbay-go/internal/application/campaign/commands"
	"github.com/ewynne/mechbay-go/internal/application/common"
	maintenanceCmd "github.com/ewynne/mechbay-go/internal/application/maintenance/commands"
	maintenanceQuery "github.com/ewynne/mechbay-go/internal/application/maintenance/queries"
	refitCmd "github.com/ewynne/mechbay-go/internal/application/refit/commands"
	"github.com/ewynne/mechbay-go/internal/domain/repair"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/infrastructure/config"
	"github.com/ewynne/mechbay-go/internal/infrastructure/database"
)

// consoleSink prints campaign reports straight to stdout.
type consoleSink struct{}

func (consoleSink) Publish(_ context.Context, report string) {
	fmt.Println(report)
}

// app holds the wired campaign stack for one CLI invocation. The CLI works
// directly against the database: recover on open, persist on close.
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	campaign *common.Campaign
	mediator common.Mediator

	unitRepo  *persistence.GormUnitRepository
	partRepo  *persistence.GormPartRepository
	refitRepo *persistence.GormRefitRepository
	techRepo  *persistence.GormTechRepository
}

// newApp loads configuration, connects to the database and rebuilds the
// campaign registry from persisted state.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:       cfg,
		db:        db,
		unitRepo:  persistence.NewGormUnitRepository(db),
		partRepo:  persistence.NewGormPartRepository(db),
		refitRepo: persistence.NewGormRefitRepository(db),
		techRepo:  persistence.NewGormTechRepository(db),
	}

	a.campaign = common.NewCampaign(shared.Era(cfg.Campaign.Era), catalog.NewStaticCatalog())
	if _, err := a.campaign.Recover(ctx, a.unitRepo, a.partRepo, a.refitRepo, a.techRepo); err != nil {
		return nil, fmt.Errorf("failed to recover campaign: %w", err)
	}

	check := dice.NewRoller(cfg.Campaign.RollSeed)
	med := common.NewMediator()
	if err := RegisterHandlers(med, a.campaign, check, common.NoOpMetrics{}, consoleSink{}, cfg.Campaign.RefitMinutesPerDay); err != nil {
		return nil, err
	}
	a.mediator = med

	return a, nil
}

// persist writes the campaign back through the repositories.
func (a *app) persist(ctx context.Context) error {
	return a.campaign.Persist(ctx, a.unitRepo, a.partRepo, a.refitRepo, a.techRepo)
}

func (a *app) close() {
	_ = database.Close(a.db)
}

// RegisterHandlers wires every command and query handler into the mediator.
// Shared between the CLI and the daemon so both dispatch the same surface.
func RegisterHandlers(
	med common.Mediator,
	campaign *common.Campaign,
	check repair.SkillCheck,
	metrics common.MaintenanceMetrics,
	sink common.ReportSink,
	refitMinutesPerDay int,
) error {
	assignTechHandler := maintenanceCmd.NewAssignTechHandler(campaign)
	if err := common.RegisterHandler[*maintenanceCmd.AssignTechCommand](med, assignTechHandler); err != nil {
		return fmt.Errorf("failed to register AssignTech handler: %w", err)
	}

	workSessionHandler := maintenanceCmd.NewRunWorkSessionHandler(campaign, check, metrics)
	if err := common.RegisterHandler[*maintenanceCmd.RunWorkSessionCommand](med, workSessionHandler); err != nil {
		return fmt.Errorf("failed to register RunWorkSession handler: %w", err)
	}

	restoreUnitHandler := maintenanceCmd.NewRestoreUnitHandler(campaign)
	if err := common.RegisterHandler[*maintenanceCmd.RestoreUnitCommand](med, restoreUnitHandler); err != nil {
		return fmt.Errorf("failed to register RestoreUnit handler: %w", err)
	}

	getPartStatusHandler := maintenanceQuery.NewGetPartStatusHandler(campaign)
	if err := common.RegisterHandler[*maintenanceQuery.GetPartStatusQuery](med, getPartStatusHandler); err != nil {
		return fmt.Errorf("failed to register GetPartStatus handler: %w", err)
	}

	getWarehouseStockHandler := maintenanceQuery.NewGetWarehouseStockHandler(campaign)
	if err := common.RegisterHandler[*maintenanceQuery.GetWarehouseStockQuery](med, getWarehouseStockHandler); err != nil {
		return fmt.Errorf("failed to register GetWarehouseStock handler: %w", err)
	}

	listUnitsHandler := maintenanceQuery.NewListUnitsHandler(campaign)
	if err := common.RegisterHandler[*maintenanceQuery.ListUnitsQuery](med, listUnitsHandler); err != nil {
		return fmt.Errorf("failed to register ListUnits handler: %w", err)
	}

	initiateRefitHandler := refitCmd.NewInitiateRefitHandler(campaign, metrics)
	if err := common.RegisterHandler[*refitCmd.InitiateRefitCommand](med, initiateRefitHandler); err != nil {
		return fmt.Errorf("failed to register InitiateRefit handler: %w", err)
	}

	advanceRefitHandler := refitCmd.NewAdvanceRefitHandler(campaign)
	if err := common.RegisterHandler[*refitCmd.AdvanceRefitCommand](med, advanceRefitHandler); err != nil {
		return fmt.Errorf("failed to register AdvanceRefit handler: %w", err)
	}

	cancelRefitHandler := refitCmd.NewCancelRefitHandler(campaign, metrics)
	if err := common.RegisterHandler[*refitCmd.CancelRefitCommand](med, cancelRefitHandler); err != nil {
		return fmt.Errorf("failed to register CancelRefit handler: %w", err)
	}

	completeRefitHandler := refitCmd.NewCompleteRefitHandler(campaign, metrics)
	if err := common.RegisterHandler[*refitCmd.CompleteRefitCommand](med, completeRefitHandler); err != nil {
		return fmt.Errorf("failed to register CompleteRefit handler: %w", err)
	}

	newDayHandler := campaignCmd.NewNewDayHandler(campaign, check, metrics, sink, refitMinutesPerDay)
	if err := common.RegisterHandler[*campaignCmd.NewDayCommand](med, newDayHandler); err != nil {
		return fmt.Errorf("failed to register NewDay handler: %w", err)
	}

	return nil
}

// withApp runs fn against a freshly recovered campaign and persists the
// result when fn succeeds.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := fn(ctx, a); err != nil {
		return err
	}
	return a.persist(ctx)
}

// withAppReadOnly runs fn without writing state back.
func withAppReadOnly(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}
