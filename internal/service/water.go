package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

type AddWaterInput struct {
	AmountMl int
	LoggedAt time.Time
}

type ListWaterFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

// AddWater appends a water entry. Entries are never mutated afterwards;
// the daily total is always a sum over rows.
func AddWater(db *sql.DB, in AddWaterInput) (int64, error) {
	if in.AmountMl <= 0 {
		return 0, fmt.Errorf("water amount must be > 0 ml")
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO water_intake(amount_ml, logged_at)
VALUES(?, ?)
`, in.AmountMl, in.LoggedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("add water entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve water entry id: %w", err)
	}
	return id, nil
}

func ListWater(db *sql.DB, f ListWaterFilter) ([]model.WaterEntry, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}

	query := `SELECT id, amount_ml, logged_at FROM water_intake WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ? AND logged_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND logged_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY logged_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	return queryWater(db, query, args...)
}

// WaterInRange returns entries logged in [from, to] inclusive of the whole
// end day, oldest first.
func WaterInRange(db *sql.DB, from, to time.Time) ([]model.WaterEntry, error) {
	start := beginningOfDay(from).Format(time.RFC3339)
	end := beginningOfDay(to).AddDate(0, 0, 1).Format(time.RFC3339)
	return queryWater(db, `
SELECT id, amount_ml, logged_at
FROM water_intake
WHERE logged_at >= ? AND logged_at < ?
ORDER BY logged_at ASC
`, start, end)
}

// WaterTotalForDay sums the day's entries.
func WaterTotalForDay(db *sql.DB, date string) (int, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return 0, err
	}
	var total int
	err = db.QueryRow(`
SELECT IFNULL(SUM(amount_ml), 0) FROM water_intake
WHERE logged_at >= ? AND logged_at < ?
`, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum water for %s: %w", date, err)
	}
	return total, nil
}

func queryWater(db *sql.DB, query string, args ...any) ([]model.WaterEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list water entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.WaterEntry, 0)
	for rows.Next() {
		var w model.WaterEntry
		var loggedRaw string
		if err := rows.Scan(&w.ID, &w.AmountMl, &loggedRaw); err != nil {
			return nil, fmt.Errorf("scan water entry: %w", err)
		}
		w.LoggedAt, _ = time.Parse(time.RFC3339, loggedRaw)
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water entries: %w", err)
	}
	return items, nil
}

func DeleteWater(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("water entry id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM water_intake WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete water entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("water entry %d not found", id)
	}
	return nil
}
