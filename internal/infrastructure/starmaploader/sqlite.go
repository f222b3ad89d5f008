// Package starmaploader implements the external loaders spec §6 names
// only as an interface: load_starmap(source). The SQLite path is the
// default; a Postgres path is supplemented (spec §6: "source ... a
// connection"). Both are glue per spec §1 ("SQLite schema loading into
// the in-memory star map" is explicitly out of the core's scope) - the
// core only ever sees the resulting starmap.Starmap.
package starmaploader

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// sqliteSchema is the documented table shape this loader expects:
// systems(id, name, x, y, z, min_temp_k NULL) and
// gate_jumps(from_id, to_id).
const sqliteSchema = `systems(id, name, x, y, z, min_temp_k) + gate_jumps(from_id, to_id)`

// LoadSQLite opens path with the pure-Go modernc.org/sqlite driver and
// builds a Starmap from its systems/gate_jumps tables.
func LoadSQLite(path string) (*starmap.Starmap, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, starmap.NewLoadError(starmap.IOError, "open %s: %v", path, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, starmap.NewLoadError(starmap.IOError, "ping %s: %v", path, err)
	}

	systems, err := readSystems(db)
	if err != nil {
		return nil, err
	}
	jumps, err := readGateJumps(db)
	if err != nil {
		return nil, err
	}

	m, err := starmap.Build(systems, jumps)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func readSystems(db *sql.DB) ([]starmap.System, error) {
	rows, err := db.Query(`SELECT id, name, x, y, z, min_temp_k FROM systems ORDER BY id`)
	if err != nil {
		return nil, starmap.NewLoadError(starmap.SchemaMismatch, "query systems (expected %s): %v", sqliteSchema, err)
	}
	defer rows.Close()

	var systems []starmap.System
	for rows.Next() {
		var id uint32
		var name string
		var x, y, z float64
		var minTemp sql.NullFloat64
		if err := rows.Scan(&id, &name, &x, &y, &z, &minTemp); err != nil {
			return nil, starmap.NewLoadError(starmap.Corrupt, "scan system row: %v", err)
		}
		s := starmap.System{
			ID:   starmap.SystemID(id),
			Name: name,
			Pos:  starmap.Position{X: x, Y: y, Z: z},
		}
		if minTemp.Valid {
			t := minTemp.Float64
			s.MinTempK = &t
		}
		systems = append(systems, s)
	}
	if err := rows.Err(); err != nil {
		return nil, starmap.NewLoadError(starmap.Corrupt, "iterate systems: %v", err)
	}
	return systems, nil
}

func readGateJumps(db *sql.DB) ([]starmap.GateJump, error) {
	rows, err := db.Query(`SELECT from_id, to_id FROM gate_jumps`)
	if err != nil {
		return nil, starmap.NewLoadError(starmap.SchemaMismatch, "query gate_jumps (expected %s): %v", sqliteSchema, err)
	}
	defer rows.Close()

	var jumps []starmap.GateJump
	for rows.Next() {
		var from, to uint32
		if err := rows.Scan(&from, &to); err != nil {
			return nil, starmap.NewLoadError(starmap.Corrupt, "scan gate_jumps row: %v", err)
		}
		jumps = append(jumps, starmap.GateJump{From: starmap.SystemID(from), To: starmap.SystemID(to)})
	}
	if err := rows.Err(); err != nil {
		return nil, starmap.NewLoadError(starmap.Corrupt, "iterate gate_jumps: %v", err)
	}
	return jumps, nil
}
