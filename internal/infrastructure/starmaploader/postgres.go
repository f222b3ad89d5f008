package starmaploader

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// systemRow and gateJumpRow mirror the sqlite loader's table shapes for
// the gorm-backed connection form of load_starmap (spec §6: "source is
// ... a file path, a byte buffer, or a connection").
type systemRow struct {
	ID       uint32 `gorm:"column:id"`
	Name     string `gorm:"column:name"`
	X        float64
	Y        float64
	Z        float64
	MinTempK *float64 `gorm:"column:min_temp_k"`
}

func (systemRow) TableName() string { return "systems" }

type gateJumpRow struct {
	FromID uint32 `gorm:"column:from_id"`
	ToID   uint32 `gorm:"column:to_id"`
}

func (gateJumpRow) TableName() string { return "gate_jumps" }

// LoadPostgres connects to dsn with gorm's postgres dialector and builds a
// Starmap from the same systems/gate_jumps tables the SQLite loader reads.
func LoadPostgres(dsn string) (*starmap.Starmap, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, starmap.NewLoadError(starmap.IOError, "connect postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, starmap.NewLoadError(starmap.IOError, "acquire sql.DB: %v", err)
	}
	defer sqlDB.Close()

	var rows []systemRow
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, starmap.NewLoadError(starmap.SchemaMismatch, "query systems (expected %s): %v", sqliteSchema, err)
	}
	systems := make([]starmap.System, len(rows))
	for i, r := range rows {
		systems[i] = starmap.System{
			ID:       starmap.SystemID(r.ID),
			Name:     r.Name,
			Pos:      starmap.Position{X: r.X, Y: r.Y, Z: r.Z},
			MinTempK: r.MinTempK,
		}
	}

	var jumpRows []gateJumpRow
	if err := db.Find(&jumpRows).Error; err != nil {
		return nil, starmap.NewLoadError(starmap.SchemaMismatch, "query gate_jumps (expected %s): %v", sqliteSchema, err)
	}
	jumps := make([]starmap.GateJump, len(jumpRows))
	for i, r := range jumpRows {
		jumps[i] = starmap.GateJump{From: starmap.SystemID(r.FromID), To: starmap.SystemID(r.ToID)}
	}

	return starmap.Build(systems, jumps)
}
