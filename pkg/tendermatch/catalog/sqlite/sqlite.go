// Package sqlite implements the equipment catalog on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

// Store implements catalog.Catalog backed by a SQLite database. It also
// exposes Upsert for the import command; the pipeline itself only reads.
type Store struct {
	db *sql.DB
}

// Open opens (and initializes) a SQLite catalog with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS equipment (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	technology TEXT NOT NULL DEFAULT '',
	form_factor TEXT NOT NULL DEFAULT '',
	lens_type TEXT NOT NULL DEFAULT '',
	ptz INTEGER NOT NULL DEFAULT 0,
	varifocal INTEGER NOT NULL DEFAULT 0,
	poe INTEGER NOT NULL DEFAULT 0,
	resolution_mp REAL NOT NULL DEFAULT 0,
	ir_range_m REAL NOT NULL DEFAULT 0,
	ports INTEGER NOT NULL DEFAULT 0,
	power_va REAL NOT NULL DEFAULT 0,
	storage_tb REAL NOT NULL DEFAULT 0,
	channels INTEGER NOT NULL DEFAULT 0,
	speed_class TEXT NOT NULL DEFAULT '',
	waveform TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_equipment_category ON equipment(category, active);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Upsert inserts or updates a record, keyed by code, and returns its ID.
func (s *Store) Upsert(ctx context.Context, e catalog.Equipment) (int64, error) {
	const stmt = `
INSERT INTO equipment (
	code, name, category, technology, form_factor, lens_type,
	ptz, varifocal, poe, resolution_mp, ir_range_m, ports,
	power_va, storage_tb, channels, speed_class, waveform, price, active
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(code) DO UPDATE SET
	name=excluded.name,
	category=excluded.category,
	technology=excluded.technology,
	form_factor=excluded.form_factor,
	lens_type=excluded.lens_type,
	ptz=excluded.ptz,
	varifocal=excluded.varifocal,
	poe=excluded.poe,
	resolution_mp=excluded.resolution_mp,
	ir_range_m=excluded.ir_range_m,
	ports=excluded.ports,
	power_va=excluded.power_va,
	storage_tb=excluded.storage_tb,
	channels=excluded.channels,
	speed_class=excluded.speed_class,
	waveform=excluded.waveform,
	price=excluded.price,
	active=excluded.active
RETURNING id;
`
	var id int64
	err := s.db.QueryRowContext(ctx, stmt,
		e.Code, e.Name, string(e.Category), e.Technology, e.FormFactor, e.LensType,
		boolInt(e.PTZ), boolInt(e.Varifocal), boolInt(e.PoE),
		e.ResolutionMP, e.IRRangeM, e.Ports,
		e.PowerVA, e.StorageTB, e.Channels,
		e.SpeedClass, e.Waveform, e.Price, boolInt(e.Active),
	).Scan(&id)
	return id, err
}

// Find implements catalog.Catalog with the query pushed down to SQL.
func (s *Store) Find(ctx context.Context, q catalog.Query) ([]catalog.Equipment, error) {
	var (
		where []string
		args  []interface{}
	)

	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(q.Category))
	}
	if q.ActiveOnly {
		where = append(where, "active = 1")
	}
	if q.FormFactor != "" {
		where = append(where, "form_factor = ?")
		args = append(args, q.FormFactor)
	}
	if q.PTZ != nil {
		where = append(where, "ptz = ?")
		args = append(args, boolInt(*q.PTZ))
	}
	if q.PoE != nil {
		where = append(where, "poe = ?")
		args = append(args, boolInt(*q.PoE))
	}
	if q.MinResolutionMP != nil {
		where = append(where, "resolution_mp >= ?")
		args = append(args, *q.MinResolutionMP)
	}
	if q.MinPorts != nil {
		where = append(where, "ports >= ?")
		args = append(args, *q.MinPorts)
	}
	if q.MinPowerVA != nil {
		where = append(where, "power_va >= ?")
		args = append(args, *q.MinPowerVA)
	}

	query := `
SELECT id, code, name, category, technology, form_factor, lens_type,
	ptz, varifocal, poe, resolution_mp, ir_range_m, ports,
	power_va, storage_tb, channels, speed_class, waveform, price, active
FROM equipment`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Equipment
	for rows.Next() {
		var (
			e                   catalog.Equipment
			cat                 string
			ptz, varifocal, poe int
			active              int
		)
		if err := rows.Scan(
			&e.ID, &e.Code, &e.Name, &cat, &e.Technology, &e.FormFactor, &e.LensType,
			&ptz, &varifocal, &poe, &e.ResolutionMP, &e.IRRangeM, &e.Ports,
			&e.PowerVA, &e.StorageTB, &e.Channels, &e.SpeedClass, &e.Waveform, &e.Price, &active,
		); err != nil {
			return nil, err
		}
		e.Category = normalize.CoerceCategory(cat)
		e.PTZ = ptz != 0
		e.Varifocal = varifocal != 0
		e.PoE = poe != 0
		e.Active = active != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
