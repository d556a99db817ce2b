// Package storage provides SQLite-based persistence for level clear times.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for clear-time persistence.
type Store struct {
	db *sql.DB
}

// ClearEntry represents one cleared level.
type ClearEntry struct {
	ID         int64
	CatalogID  string
	LevelID    string
	LevelIndex int
	Ticks      uint64
	DurationMs int64
	Dual       bool
	Player     string // Empty for local play
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			catalog_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			dual INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_catalog ON clears(catalog_id);
		CREATE INDEX IF NOT EXISTS idx_clears_best ON clears(catalog_id, level_id, ticks ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveClear records a cleared level.
// Returns the ID of the inserted record.
func (s *Store) SaveClear(e ClearEntry) (int64, error) {
	dual := 0
	if e.Dual {
		dual = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO clears (catalog_id, level_id, level_index, ticks, duration_ms, dual, player)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.CatalogID, e.LevelID, e.LevelIndex, int64(e.Ticks), e.DurationMs, dual, e.Player, //#nosec G115 -- tick counts fit in int64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestClears retrieves the fastest N clears of one level.
// Results are ordered by ticks ascending, earlier records first on ties.
func (s *Store) BestClears(catalogID, levelID string, limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, catalog_id, level_id, level_index, ticks, duration_ms, dual, player, created_at
		 FROM clears
		 WHERE catalog_id = ? AND level_id = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		catalogID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	return scanClears(rows)
}

// CatalogClears retrieves every clear recorded for a catalog, by level then time.
func (s *Store) CatalogClears(catalogID string) ([]ClearEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, catalog_id, level_id, level_index, ticks, duration_ms, dual, player, created_at
		 FROM clears
		 WHERE catalog_id = ?
		 ORDER BY level_index ASC, ticks ASC, id ASC`,
		catalogID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	return scanClears(rows)
}

// BestTime returns the fastest recorded clear of a level in ticks.
// The second result is false if the level was never cleared.
func (s *Store) BestTime(catalogID, levelID string) (uint64, bool, error) {
	var ticks sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(ticks) FROM clears WHERE catalog_id = ? AND level_id = ?",
		catalogID, levelID,
	).Scan(&ticks)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ticks.Valid {
		return 0, false, nil
	}

	return uint64(ticks.Int64), true, nil //#nosec G115 -- ticks are stored non-negative
}

// ClearCatalog deletes all clears recorded for the given catalog.
func (s *Store) ClearCatalog(catalogID string) error {
	_, err := s.db.Exec("DELETE FROM clears WHERE catalog_id = ?", catalogID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete clears: %w", err)
	}
	return nil
}

// CatalogStats contains aggregated statistics for a catalog.
type CatalogStats struct {
	CatalogID   string
	ClearsCount int
	LevelsSeen  int // Distinct levels cleared at least once
	DualClears  int
	TotalMs     int64
	LastPlayed  time.Time
}

// GetCatalogStats retrieves aggregated statistics for a specific catalog.
func (s *Store) GetCatalogStats(catalogID string) (*CatalogStats, error) {
	stats := &CatalogStats{CatalogID: catalogID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level_id), COALESCE(SUM(dual), 0), COALESCE(SUM(duration_ms), 0)
		 FROM clears WHERE catalog_id = ?`,
		catalogID,
	).Scan(&stats.ClearsCount, &stats.LevelsSeen, &stats.DualClears, &stats.TotalMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get catalog stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM clears WHERE catalog_id = ? ORDER BY id DESC LIMIT 1`,
		catalogID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllCatalogStats retrieves statistics for every catalog that has been played.
func (s *Store) GetAllCatalogStats() (map[string]*CatalogStats, error) {
	rows, err := s.db.Query(
		`SELECT catalog_id, COUNT(*), COUNT(DISTINCT level_id), SUM(dual), SUM(duration_ms), MAX(created_at)
		 FROM clears
		 GROUP BY catalog_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all catalog stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*CatalogStats)
	for rows.Next() {
		var cs CatalogStats
		var lastPlayed any
		if err := rows.Scan(&cs.CatalogID, &cs.ClearsCount, &cs.LevelsSeen, &cs.DualClears, &cs.TotalMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTime(lastPlayed)
		stats[cs.CatalogID] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanClears(rows *sql.Rows) ([]ClearEntry, error) {
	var entries []ClearEntry
	for rows.Next() {
		var e ClearEntry
		var ticks int64
		var dual int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.CatalogID, &e.LevelID, &e.LevelIndex, &ticks, &e.DurationMs, &dual, &e.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks) //#nosec G115 -- ticks are stored non-negative
		e.Dual = dual != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
