package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	ConfigCalorieTolerance = "calorie_tolerance"
	ConfigWaterGoalMl      = "water_goal_ml"
)

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// CalorieTolerance resolves the scoring tolerance: app_config override
// first, then the given file-config value, then the built-in default.
func CalorieTolerance(db *sql.DB, fileValue float64) (float64, error) {
	raw, ok, err := GetConfig(db, ConfigCalorieTolerance)
	if err != nil {
		return 0, err
	}
	if ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v <= 0 || v >= 1 {
			return 0, fmt.Errorf("invalid %s %q (expected a ratio in (0, 1))", ConfigCalorieTolerance, raw)
		}
		return v, nil
	}
	if fileValue > 0 {
		return fileValue, nil
	}
	return DefaultCalorieTolerance, nil
}

// WaterGoalOverrideMl returns the manual water goal override, if set.
func WaterGoalOverrideMl(db *sql.DB) (int, bool, error) {
	raw, ok, err := GetConfig(db, ConfigWaterGoalMl)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, false, fmt.Errorf("invalid %s %q (expected a positive ml amount)", ConfigWaterGoalMl, raw)
	}
	return v, true, nil
}
