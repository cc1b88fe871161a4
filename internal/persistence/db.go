// Package persistence stores generated maps: a versioned binary map file
// format and a SQLite catalogue of saved maps.
package persistence

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexmap/internal/unit"
	"github.com/talgya/hexmap/internal/world"
)

// ErrMapNotFound is returned when no stored map has the requested ID.
var ErrMapNotFound = errors.New("map not found")

// DB wraps a SQLite connection holding saved maps.
type DB struct {
	conn *sqlx.DB
}

// MapInfo describes a stored map without its contents.
type MapInfo struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Seed      int64     `db:"seed"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Wrap      bool      `db:"wrap"`
	Size      int64     `db:"size"`
	CreatedAt time.Time `db:"created_at"`
}

// MapRecord is a stored map including its encoded map file.
type MapRecord struct {
	MapInfo
	Data []byte `db:"data"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		wrap INTEGER NOT NULL,
		size INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		data BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_name ON maps(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMap encodes the grid and its units and stores them under a new ID.
func (db *DB) SaveMap(name string, seed int64, g *world.Grid, roster *unit.Roster) (uuid.UUID, error) {
	var buf bytes.Buffer
	if err := WriteMap(&buf, g, roster); err != nil {
		return uuid.Nil, fmt.Errorf("encode map: %w", err)
	}

	id := uuid.New()
	rec := MapRecord{
		MapInfo: MapInfo{
			ID:        id.String(),
			Name:      name,
			Seed:      seed,
			Width:     g.CellCountX(),
			Height:    g.CellCountZ(),
			Wrap:      g.Wrapping(),
			Size:      int64(buf.Len()),
			CreatedAt: time.Now().UTC(),
		},
		Data: buf.Bytes(),
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO maps
		(id, name, seed, width, height, wrap, size, created_at, data)
		VALUES (:id, :name, :seed, :width, :height, :wrap, :size, :created_at, :data)`, &rec); err != nil {
		return uuid.Nil, fmt.Errorf("insert map: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		"last_map", rec.ID,
	); err != nil {
		return uuid.Nil, fmt.Errorf("save meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	slog.Info("map saved",
		"id", id,
		"name", name,
		"cells", humanize.Comma(int64(g.Len())),
		"size", humanize.Bytes(uint64(rec.Size)),
	)
	return id, nil
}

// GetMap returns the stored map with the given ID.
func (db *DB) GetMap(id uuid.UUID) (MapRecord, error) {
	var rec MapRecord
	err := db.conn.Get(&rec,
		"SELECT id, name, seed, width, height, wrap, size, created_at, data FROM maps WHERE id = ?",
		id.String(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return MapRecord{}, fmt.Errorf("%w: %s", ErrMapNotFound, id)
	}
	return rec, err
}

// LoadMap reads the stored map with the given ID into the grid and roster.
func (db *DB) LoadMap(id uuid.UUID, g *world.Grid, roster *unit.Roster) (MapInfo, error) {
	rec, err := db.GetMap(id)
	if err != nil {
		return MapInfo{}, err
	}
	if err := ReadMap(bytes.NewReader(rec.Data), g, roster); err != nil {
		return MapInfo{}, fmt.Errorf("decode map %s: %w", id, err)
	}
	return rec.MapInfo, nil
}

// ListMaps returns every stored map, newest first.
func (db *DB) ListMaps() ([]MapInfo, error) {
	var maps []MapInfo
	err := db.conn.Select(&maps,
		"SELECT id, name, seed, width, height, wrap, size, created_at FROM maps ORDER BY created_at DESC, rowid DESC",
	)
	return maps, err
}

// DeleteMap removes a stored map.
func (db *DB) DeleteMap(id uuid.UUID) error {
	res, err := db.conn.Exec("DELETE FROM maps WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMapNotFound, id)
	}
	return nil
}

// SaveMeta stores a key-value pair in the metadata table.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
