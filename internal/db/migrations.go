package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS credentials (
  user_id TEXT PRIMARY KEY,
  api_key TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS songs (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  artist TEXT,
  source_url TEXT,
  lyrics TEXT NOT NULL DEFAULT '',
  share_token TEXT NOT NULL UNIQUE,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_songs_created_at ON songs(created_at);

CREATE TABLE IF NOT EXISTS translations (
  id INTEGER PRIMARY KEY,
  song_id INTEGER NOT NULL,
  direction TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT NOT NULL,
  UNIQUE(song_id, direction),
  FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_translations_song_id ON translations(song_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add language column to songs (detected source language,
	// "en" or "id") if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('songs') WHERE name = 'language'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check language column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE songs ADD COLUMN language TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add language column: %w", err)
		}
	}

	// Migration 2: Unique index on (title, artist) removed; duplicate saves
	// are allowed, drop the index if an earlier version created it
	if _, err := db.Exec(`DROP INDEX IF EXISTS idx_songs_title_artist`); err != nil {
		return fmt.Errorf("drop idx_songs_title_artist: %w", err)
	}

	return nil
}
