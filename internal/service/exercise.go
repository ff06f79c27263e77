package service

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

// exerciseTypes is the static exercise table. It is constant data,
// initialized once and never mutated at runtime. Burned calories are
// computed from it at log time and frozen on the stored row, so later
// table edits never rewrite history.
var exerciseTypes = []model.ExerciseType{
	{ID: 1, Name: "walking", Unit: "steps", KcalPerUnit: 0.04},
	{ID: 2, Name: "push-ups", Unit: "reps", KcalPerUnit: 0.4},
	{ID: 3, Name: "sit-ups", Unit: "reps", KcalPerUnit: 0.3},
	{ID: 4, Name: "squats", Unit: "reps", KcalPerUnit: 0.35},
	{ID: 5, Name: "running", Unit: "minutes", KcalPerUnit: 10},
	{ID: 6, Name: "cycling", Unit: "minutes", KcalPerUnit: 8},
	{ID: 7, Name: "jump-rope", Unit: "minutes", KcalPerUnit: 12},
}

func ExerciseTypes() []model.ExerciseType {
	out := make([]model.ExerciseType, len(exerciseTypes))
	copy(out, exerciseTypes)
	return out
}

func ExerciseTypeByID(id int64) (model.ExerciseType, bool) {
	for _, t := range exerciseTypes {
		if t.ID == id {
			return t, true
		}
	}
	return model.ExerciseType{}, false
}

func ExerciseTypeByName(name string) (model.ExerciseType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range exerciseTypes {
		if t.Name == name {
			return t, true
		}
	}
	return model.ExerciseType{}, false
}

// BurnedCalories converts a logged quantity into burned calories with
// half-up rounding. Unknown type ids and non-positive values yield 0:
// logging an exercise must never fail on a stale type reference.
func BurnedCalories(typeID int64, value float64) int {
	if value <= 0 {
		return 0
	}
	t, ok := ExerciseTypeByID(typeID)
	if !ok {
		return 0
	}
	return int(math.Round(t.KcalPerUnit * value))
}

type ExerciseLogInput struct {
	ExerciseTypeID int64
	Value          float64
	PerformedAt    time.Time
}

type ListExerciseFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

func CreateExerciseLog(db *sql.DB, in ExerciseLogInput) (int64, error) {
	if in.Value <= 0 {
		return 0, fmt.Errorf("exercise value must be > 0")
	}
	if in.PerformedAt.IsZero() {
		in.PerformedAt = time.Now()
	}
	burned := BurnedCalories(in.ExerciseTypeID, in.Value)

	res, err := db.Exec(`
INSERT INTO exercise_logs(exercise_type_id, value, burned_calories, performed_at)
VALUES(?, ?, ?, ?)
`, in.ExerciseTypeID, in.Value, burned, in.PerformedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("add exercise log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise log id: %w", err)
	}
	return id, nil
}

func ListExerciseLogs(db *sql.DB, f ListExerciseFilter) ([]model.ExerciseLog, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}

	query := `SELECT id, exercise_type_id, value, burned_calories, performed_at, created_at FROM exercise_logs WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ? AND performed_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND performed_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY performed_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	items := make([]model.ExerciseLog, 0)
	for rows.Next() {
		item, err := scanExerciseLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise logs: %w", err)
	}
	return items, nil
}

func scanExerciseLog(rows *sql.Rows) (model.ExerciseLog, error) {
	var item model.ExerciseLog
	var performedRaw, createdRaw string
	if err := rows.Scan(&item.ID, &item.ExerciseTypeID, &item.Value, &item.BurnedCalories, &performedRaw, &createdRaw); err != nil {
		return model.ExerciseLog{}, fmt.Errorf("scan exercise log: %w", err)
	}
	// A malformed stored timestamp leaves PerformedAt at the zero value;
	// the aggregator routes such rows to the epoch bucket instead of
	// failing the whole query.
	item.PerformedAt, _ = time.Parse(time.RFC3339, performedRaw)
	item.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
	return item, nil
}

func DeleteExerciseLog(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("exercise log id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM exercise_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("exercise log %d not found", id)
	}
	return nil
}
