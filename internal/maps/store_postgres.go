package maps

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps levels in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS levels (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		spawn_x DOUBLE PRECISION NOT NULL,
		spawn_y DOUBLE PRECISION NOT NULL,
		spawn_angle DOUBLE PRECISION NOT NULL,
		tiles JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// SaveMap upserts a level by name.
func (ps *PostgresStore) SaveMap(m *Map) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("save %q: %w", m.Name, err)
	}
	tilesJSON, err := json.Marshal(m.Tiles)
	if err != nil {
		return fmt.Errorf("marshal tiles: %w", err)
	}

	query := `
	INSERT INTO levels (name, width, height, spawn_x, spawn_y, spawn_angle, tiles)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $2, height = $3,
		spawn_x = $4, spawn_y = $5, spawn_angle = $6,
		tiles = $7,
		updated_at = NOW()
	`
	_, err = ps.db.Exec(query,
		m.Name, m.Width, m.Height,
		m.Spawn.X, m.Spawn.Y, m.Spawn.Angle,
		string(tilesJSON))
	if err != nil {
		return fmt.Errorf("save level %q: %w", m.Name, err)
	}
	return nil
}

// LoadMap reads a level by name.
func (ps *PostgresStore) LoadMap(name string) (*Map, error) {
	query := `SELECT name, width, height, spawn_x, spawn_y, spawn_angle, tiles FROM levels WHERE name = $1`

	var m Map
	var tilesJSON string
	err := ps.db.QueryRow(query, name).Scan(
		&m.Name, &m.Width, &m.Height,
		&m.Spawn.X, &m.Spawn.Y, &m.Spawn.Angle,
		&tilesJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", name, ErrMapNotFound)
		}
		return nil, fmt.Errorf("load level %q: %w", name, err)
	}

	if err := json.Unmarshal([]byte(tilesJSON), &m.Tiles); err != nil {
		return nil, fmt.Errorf("unmarshal tiles of %q: %w", name, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	return &m, nil
}

// ListMaps returns every level name, sorted.
func (ps *PostgresStore) ListMaps() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM levels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan level name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
