package cli

import (
	"fmt"
	"os"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/config"
	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/shipcatalog"
	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/starmaploader"
)

// session is the shared, process-lifetime state route and scout commands
// need, assembled once per invocation from the resolved config.
type session struct {
	Config  *config.Config
	Map     *starmap.Starmap
	Index   *spatial.Index
	Catalog *costmodel.ShipCatalog
}

// newSession loads the starmap dataset, its spatial index (building one
// in-memory if missing, per spec §4.4), and the ship catalog if present.
func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	m, err := starmaploader.LoadSQLite(cfg.DatasetPath())
	if err != nil {
		return nil, fmt.Errorf("load starmap: %w", err)
	}

	idx, _, err := starmaploader.LoadIndex(cfg.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("load spatial index: %w", err)
	}
	if idx == nil {
		idx = spatial.Build(m)
	}

	var catalog *costmodel.ShipCatalog
	if path := cfg.ShipCatalogPath(); path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			catalog, err = shipcatalog.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load ship catalog: %w", err)
			}
		}
	}

	return &session{Config: cfg, Map: m, Index: idx, Catalog: catalog}, nil
}
