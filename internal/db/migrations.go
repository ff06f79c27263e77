package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  weight_kg REAL CHECK(weight_kg > 0),
  height_cm REAL CHECK(height_cm > 0),
  birth_date TEXT,
  gender TEXT CHECK(gender IN ('male', 'female')),
  goal TEXT CHECK(goal IN ('lose', 'maintain', 'gain')),
  meals_per_day INTEGER CHECK(meals_per_day > 0),
  meal_times TEXT NOT NULL DEFAULT '',
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack')),
  total_calories INTEGER NOT NULL CHECK(total_calories >= 0),
  eaten_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_meals_eaten_at ON meals(eaten_at);

CREATE TABLE IF NOT EXISTS meal_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_id INTEGER NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  portion TEXT NOT NULL DEFAULT '',
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g INTEGER NOT NULL CHECK(protein_g >= 0),
  carbs_g INTEGER NOT NULL CHECK(carbs_g >= 0),
  fat_g INTEGER NOT NULL CHECK(fat_g >= 0),
  FOREIGN KEY(meal_id) REFERENCES meals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meal_items_meal_id ON meal_items(meal_id);

CREATE TABLE IF NOT EXISTS water_intake (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  amount_ml INTEGER NOT NULL CHECK(amount_ml > 0),
  logged_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_water_intake_logged_at ON water_intake(logged_at);

CREATE TABLE IF NOT EXISTS exercise_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  exercise_type_id INTEGER NOT NULL,
  value REAL NOT NULL CHECK(value > 0),
  burned_calories INTEGER NOT NULL CHECK(burned_calories >= 0),
  performed_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_exercise_logs_performed_at ON exercise_logs(performed_at);
`,
	},
	{
		version: 2,
		name:    "ready_meals",
		sql: `
CREATE TABLE IF NOT EXISTS ready_meals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL CHECK(category IN ('breakfast', 'lunch', 'dinner', 'snack')),
  total_calories INTEGER NOT NULL CHECK(total_calories >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ready_meal_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ready_meal_id INTEGER NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  portion TEXT NOT NULL DEFAULT '',
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g INTEGER NOT NULL CHECK(protein_g >= 0),
  carbs_g INTEGER NOT NULL CHECK(carbs_g >= 0),
  fat_g INTEGER NOT NULL CHECK(fat_g >= 0),
  FOREIGN KEY(ready_meal_id) REFERENCES ready_meals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_ready_meal_items_ready_meal_id ON ready_meal_items(ready_meal_id);
`,
	},
	{
		version: 3,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
