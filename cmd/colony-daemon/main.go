package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/marscolony/simcore/internal/adapters/persistence"
	"github.com/marscolony/simcore/internal/application/simulation"
	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/mission"
	"github.com/marscolony/simcore/internal/domain/settlement"
	"github.com/marscolony/simcore/internal/domain/shared"
	"github.com/marscolony/simcore/internal/domain/surface"
	"github.com/marscolony/simcore/internal/infrastructure/config"
	"github.com/marscolony/simcore/internal/infrastructure/database"
	"github.com/marscolony/simcore/internal/infrastructure/pidfile"
)

// Ticks between settlement snapshots to the database.
const persistEvery = 25

func main() {
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	fmt.Println("Colony Daemon v0.1.0")
	fmt.Println("====================")

	cfg := config.MustLoadConfig(*configFlag)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
		fmt.Println("Force mode enabled - killing existing daemon...")
		if killErr := pf.KillExisting(); killErr != nil {
			log.Fatalf("Failed to kill existing daemon: %v", killErr)
		}
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock after kill: %v", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	catalog := goods.NewDefaultCatalog()
	simulation.RegisterSimulationGoods(catalog)

	logger := log.New(os.Stdout, "colony: ", log.LstdFlags)
	rng := rand.New(rand.NewSource(seed(cfg)))

	settlementRepo := persistence.NewSettlementRepository(db, catalog)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settlements, err := settlementRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(settlements) == 0 {
		fmt.Println("No settlements found - seeding starter colony...")
		settlements, err = seedColony(ctx, settlementRepo, catalog, rng)
		if err != nil {
			return fmt.Errorf("failed to seed colony: %w", err)
		}
	}
	fmt.Printf("Simulating %d settlements\n", len(settlements))

	service := simulation.NewService(simParams(cfg), catalog, shared.NewRealClock(), logger, rng)
	for _, s := range settlements {
		service.AddSettlement(s, generateSettlers(s))
	}

	limiter := rate.NewLimiter(rate.Every(cfg.Daemon.TickInterval), 1)
	fmt.Printf("Tick interval %s - running until interrupted\n", cfg.Daemon.TickInterval)

	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		if err := service.Tick(ctx); err != nil {
			break
		}
		if service.Ticks()%persistEvery == 0 {
			if err := persist(ctx, db, settlementRepo, settlements, service); err != nil {
				logger.Printf("snapshot failed: %v", err)
			}
		}
	}

	fmt.Println("Shutting down - writing final snapshot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()
	return persist(shutdownCtx, db, settlementRepo, settlements, service)
}

func seed(cfg *config.Config) int64 {
	if cfg.Simulation.RandomSeed != 0 {
		return cfg.Simulation.RandomSeed
	}
	return time.Now().UnixNano()
}

func simParams(cfg *config.Config) simulation.Params {
	return simulation.Params{
		HoursPerSol:   cfg.Simulation.HoursPerSol,
		WorkStartHour: cfg.Simulation.WorkStartHour,
		WorkEndHour:   cfg.Simulation.WorkEndHour,
		CrewSize:      cfg.Simulation.CrewSize,
		TradeProfile: mission.Profile{
			Type:               simulation.BehaviorTradeMission,
			MinPopulation:      cfg.Simulation.Trade.MinPopulation,
			CrewSize:           cfg.Simulation.CrewSize,
			BaselineResourceKg: cfg.Simulation.Trade.BaselineResourceKg,
			MetricDivisor:      cfg.Simulation.Trade.MetricDivisor,
			StartupBonus:       cfg.Simulation.Trade.StartupBonus,
		},
	}
}

func persist(ctx context.Context, db *gorm.DB, repo *persistence.SettlementRepository, settlements []*settlement.Settlement, service *simulation.Service) error {
	for _, s := range settlements {
		if err := repo.Save(ctx, s); err != nil {
			return err
		}
	}
	return persistence.NewCreditLedgerRepository(db).Save(ctx, service.Ledger())
}

// seedColony creates two starter settlements with enough stock and carriers
// to trade with each other.
func seedColony(ctx context.Context, repo *persistence.SettlementRepository, catalog *goods.Catalog, rng *rand.Rand) ([]*settlement.Settlement, error) {
	oxygen := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolOxygen)
	water := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolWater)
	food := catalog.MustLookup(goods.CategoryAmountResource, goods.SymbolFood)
	regolith := catalog.MustLookup(goods.CategoryAmountResource, simulation.SymbolRegolith)
	methane := catalog.MustLookup(goods.CategoryAmountResource, simulation.SymbolMethane)
	suit := catalog.MustLookup(goods.CategoryEquipment, goods.SymbolSuit)
	sparePart := catalog.MustLookup(goods.CategoryItemResource, simulation.SymbolSparePart)
	rover := catalog.MustLookup(goods.CategoryVehicle, simulation.SymbolRover)
	bag, err := catalog.ContainerGood(goods.ContainerBag)
	if err != nil {
		return nil, err
	}
	barrel, err := catalog.ContainerGood(goods.ContainerBarrel)
	if err != nil {
		return nil, err
	}
	canister, err := catalog.ContainerGood(goods.ContainerGasCanister)
	if err != nil {
		return nil, err
	}

	specs := []struct {
		name       string
		population int
	}{
		{"Port Lowell", 12},
		{"New Plymouth", 10},
	}

	settlements := make([]*settlement.Settlement, 0, len(specs))
	for i, spec := range specs {
		market := settlement.NewMarket()
		market.SetBaseValue(oxygen, 12)
		market.SetBaseValue(water, 8)
		market.SetBaseValue(food, 10)
		market.SetBaseValue(regolith, 2+float64(i)*3)
		market.SetBaseValue(methane, 6-float64(i)*2)
		market.SetBaseValue(sparePart, 15)
		market.SetBaseValue(bag, 4)
		market.SetBaseValue(barrel, 6)
		market.SetBaseValue(canister, 6)

		s, err := settlement.NewSettlement(spec.name, surface.RandomPoint(rng), spec.population, spec.population+4, catalog, market)
		if err != nil {
			return nil, err
		}

		s.StoreAmount(oxygen, 800)
		s.StoreAmount(water, 1500)
		s.StoreAmount(food, 900)
		s.StoreAmount(regolith, 400*float64(i+1))
		s.StoreAmount(methane, 600/float64(i+1))
		s.AddItems(sparePart, 60)
		s.AddEquipment(suit, spec.population+4)
		s.AddEquipment(bag, 20)
		s.AddEquipment(barrel, 20)
		s.AddEquipment(canister, 20)
		s.SetIndoorPopulation(spec.population)
		s.SetResourceMetric(4000)

		for n := 0; n < 2; n++ {
			carrier, err := settlement.NewCarrier(
				fmt.Sprintf("%s Rover %d", spec.name, n+1),
				rover, 2500, 2.0, 30, 1000, 4, methane)
			if err != nil {
				return nil, err
			}
			s.AddCarrier(carrier)
		}

		if err := repo.Save(ctx, s); err != nil {
			return nil, err
		}
		settlements = append(settlements, s)
	}
	return settlements, nil
}

// generateSettlers builds the settlement's population roster with roles
// cycled across the common jobs.
func generateSettlers(s *settlement.Settlement) []*simulation.Settler {
	roles := []simulation.Role{
		simulation.RoleTrader,
		simulation.RoleEngineer,
		simulation.RoleAreologist,
		simulation.RolePilot,
		simulation.RoleGeneralist,
	}

	settlers := make([]*simulation.Settler, 0, s.Population())
	for i := 0; i < s.Population(); i++ {
		role := roles[i%len(roles)]
		modifiers := map[string]float64{}
		switch role {
		case simulation.RoleTrader:
			modifiers[simulation.BehaviorTradeMission] = 2.0
		case simulation.RoleEngineer:
			modifiers[simulation.BehaviorMaintenance] = 2.0
		case simulation.RoleAreologist:
			modifiers[simulation.BehaviorCollectRegolith] = 2.0
		}
		name := fmt.Sprintf("%s Settler %d", s.Name(), i+1)
		settlers = append(settlers, simulation.NewSettler(name, role, modifiers))
	}
	return settlers
}
