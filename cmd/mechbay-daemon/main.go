package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ewynne/mechbay-go/internal/adapters/catalog"
	"github.com/ewynne/mechbay-go/internal/adapters/cli"
	"github.com/ewynne/mechbay-go/internal/adapters/dice"
	"github.com/ewynne/mechbay-go/internal/adapters/metrics"
	"github.com/ewynne/mechbay-go/internal/adapters/persistence"
	campaignCmd "github.com/ewynne/mechbay-go/internal/application/campaign/commands"
	"github.com/ewynne/mechbay-go/internal/application/common"
	"github.com/ewynne/mechbay-go/internal/domain/shared"
	"github.com/ewynne/mechbay-go/internal/infrastructure/config"
	"github.com/ewynne/mechbay-go/internal/infrastructure/database"
	"github.com/ewynne/mechbay-go/internal/infrastructure/logging"
	"github.com/ewynne/mechbay-go/internal/infrastructure/pidfile"
)

// logSink routes daily campaign reports into the structured log.
type logSink struct {
	logger *zap.Logger
}

func (s logSink) Publish(_ context.Context, report string) {
	s.logger.Info(report)
}

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	flag.Parse()

	fmt.Println("MechBay Daemon v0.1.0")
	fmt.Println("=====================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	err := pf.Acquire()
	if err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Structured logger
	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 3. Repositories
	unitRepo := persistence.NewGormUnitRepository(db)
	partRepo := persistence.NewGormPartRepository(db)
	refitRepo := persistence.NewGormRefitRepository(db)
	techRepo := persistence.NewGormTechRepository(db)

	// 4. Campaign recovery
	campaign := common.NewCampaign(shared.Era(cfg.Campaign.Era), catalog.NewStaticCatalog())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, logging.NewAdapter(logger))

	recovered, err := campaign.Recover(ctx, unitRepo, partRepo, refitRepo, techRepo)
	if err != nil {
		return fmt.Errorf("failed to recover campaign: %w", err)
	}
	fmt.Printf("Campaign recovered: %d units, %d parts, %d techs, %d open refits\n",
		recovered.Units, recovered.Parts, recovered.Techs, recovered.Refits)

	// 5. Metrics
	var maintenanceMetrics common.MaintenanceMetrics = common.NoOpMetrics{}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewMaintenanceMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		maintenanceMetrics = collector

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		addr := fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
		metricsServer := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		fmt.Printf("Metrics exposed on http://%s%s\n", addr, cfg.Metrics.Path)
	}

	// 6. Mediator with full handler surface
	check := dice.NewRoller(cfg.Campaign.RollSeed)
	med := common.NewMediator()
	if err := cli.RegisterHandlers(med, campaign, check, maintenanceMetrics, logSink{logger: logger}, cfg.Campaign.RefitMinutesPerDay); err != nil {
		return err
	}

	fmt.Println("\n✓ Daemon is ready")
	fmt.Println("Press Ctrl+C to stop")

	// 7. Auto-tick loop. TickRate is days per second of wall time.
	if cfg.Daemon.AutoTick {
		limiter := rate.NewLimiter(rate.Limit(cfg.Daemon.TickRate), 1)
		if err := tickLoop(ctx, limiter, med, logger, func() error {
			return campaign.Persist(ctx, unitRepo, partRepo, refitRepo, techRepo)
		}); err != nil {
			return err
		}
	} else {
		<-ctx.Done()
	}

	// 8. Final persist on the way out, independent of the cancelled context.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()
	if err := campaign.Persist(shutdownCtx, unitRepo, partRepo, refitRepo, techRepo); err != nil {
		return fmt.Errorf("failed to persist campaign on shutdown: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// tickLoop advances the campaign one day per limiter token until the
// context is cancelled. Every day is persisted before the next starts, so
// a crash loses at most the in-flight day.
func tickLoop(
	ctx context.Context,
	limiter *rate.Limiter,
	med common.Mediator,
	logger *zap.Logger,
	persist func() error,
) error {
	day := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil // context cancelled, shut down
		}
		day++

		started := time.Now()
		resp, err := med.Send(ctx, &campaignCmd.NewDayCommand{})
		if err != nil {
			logger.Error("daily tick failed", zap.Int("day", day), zap.Error(err))
			continue
		}
		result := resp.(*campaignCmd.NewDayResponse)
		logger.Info("day advanced",
			zap.Int("day", day),
			zap.Int("work_sessions", result.SessionsRun),
			zap.Int("refits_advanced", result.RefitsAdvanced),
			zap.Duration("took", time.Since(started)),
		)

		if err := persist(); err != nil {
			return fmt.Errorf("failed to persist day %d: %w", day, err)
		}
	}
}
