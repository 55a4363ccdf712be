package cli

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marscolony/simcore/internal/application/simulation"
	"github.com/marscolony/simcore/internal/domain/goods"
	"github.com/marscolony/simcore/internal/domain/surface"
	"github.com/marscolony/simcore/internal/infrastructure/config"
	"github.com/marscolony/simcore/internal/infrastructure/database"
)

// newCatalog builds the full good catalog the simulation runs on.
func newCatalog() *goods.Catalog {
	catalog := goods.NewDefaultCatalog()
	simulation.RegisterSimulationGoods(catalog)
	return catalog
}

// openDatabase opens and migrates the configured database.
func openDatabase() (*gorm.DB, error) {
	cfg := config.LoadConfigOrDefault(configPath)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// parsePoint parses "LAT HEMI LON HEMI" strings like "15.0 N 30.0 E".
func parsePoint(s string) (surface.SphericalPoint, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return surface.SphericalPoint{}, fmt.Errorf("expected \"<lat> <N|S> <lon> <E|W>\", got %q", s)
	}
	lat := fields[0] + " " + fields[1]
	lon := fields[2] + " " + fields[3]
	return surface.ParseSphericalPoint(lat, lon)
}
