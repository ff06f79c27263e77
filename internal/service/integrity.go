package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	OrphanMealItems     int `json:"orphan_meal_items"`
	MismatchedMeals     int `json:"mismatched_meal_totals"`
	UnknownExerciseRefs int `json:"unknown_exercise_type_refs"`
	FixedMealTotals     int `json:"fixed_meal_totals,omitempty"`
}

// CreateBackup snapshots the database file and records a SHA-256 sidecar
// next to it. The checksum is computed in the same pass as the copy.
func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}

	in, err := os.Open(dbPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("open database for backup: %w", err)
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, h), in)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	if err := out.Sync(); err != nil {
		return BackupInfo{}, fmt.Errorf("sync backup: %w", err)
	}

	checksum := hex.EncodeToString(h.Sum(nil))
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: time.Now(), SizeBytes: size}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	checksumFile := backupPath + ".sha256"
	if expected, err := os.ReadFile(checksumFile); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor scans for records that violate the data model's creation-time
// invariants: meal items without a parent, stored meal totals that drifted
// from their item sums, and exercise logs referencing type ids the static
// table no longer knows. With fix set, drifted totals are recomputed.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_items mi LEFT JOIN meals m ON m.id = mi.meal_id WHERE m.id IS NULL
`).Scan(&report.OrphanMealItems); err != nil {
		return report, fmt.Errorf("doctor orphan check: %w", err)
	}

	rows, err := db.Query(`
SELECT m.id, m.total_calories, IFNULL(SUM(mi.calories), 0)
FROM meals m LEFT JOIN meal_items mi ON mi.meal_id = m.id
GROUP BY m.id
HAVING m.total_calories != IFNULL(SUM(mi.calories), 0)
`)
	if err != nil {
		return report, fmt.Errorf("doctor total check: %w", err)
	}
	type drift struct {
		id     int64
		actual int
	}
	drifted := make([]drift, 0)
	for rows.Next() {
		var d drift
		var stored int
		if err := rows.Scan(&d.id, &stored, &d.actual); err != nil {
			rows.Close()
			return report, fmt.Errorf("scan drifted meal: %w", err)
		}
		drifted = append(drifted, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return report, fmt.Errorf("iterate drifted meals: %w", err)
	}
	rows.Close()
	report.MismatchedMeals = len(drifted)

	typeRows, err := db.Query(`SELECT DISTINCT exercise_type_id FROM exercise_logs`)
	if err != nil {
		return report, fmt.Errorf("doctor exercise type check: %w", err)
	}
	for typeRows.Next() {
		var id int64
		if err := typeRows.Scan(&id); err != nil {
			typeRows.Close()
			return report, fmt.Errorf("scan exercise type id: %w", err)
		}
		if _, ok := ExerciseTypeByID(id); !ok {
			report.UnknownExerciseRefs++
		}
	}
	if err := typeRows.Err(); err != nil {
		typeRows.Close()
		return report, fmt.Errorf("iterate exercise type ids: %w", err)
	}
	typeRows.Close()

	if fix {
		for _, d := range drifted {
			if _, err := db.Exec(`UPDATE meals SET total_calories = ? WHERE id = ?`, d.actual, d.id); err != nil {
				return report, fmt.Errorf("fix meal %d total: %w", d.id, err)
			}
			report.FixedMealTotals++
		}
	}
	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return out.Sync()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
