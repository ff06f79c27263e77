package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

// MealTypes is the fixed meal type enum in display order.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type MealItemInput struct {
	Name     string
	Portion  string
	Calories int
	ProteinG int
	CarbsG   int
	FatG     int
}

type CreateMealInput struct {
	MealType string
	Items    []MealItemInput
	EatenAt  time.Time
}

type ListMealsFilter struct {
	Date     string
	FromDate string
	ToDate   string
	MealType string
	Limit    int
}

func normalizeMealType(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, mt := range MealTypes {
		if v == mt {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner, or snack)", value)
}

// CreateMeal stores a meal record and its items. The record total is the
// sum of item calories, fixed at creation time; records are immutable
// afterwards except for whole-record deletion.
func CreateMeal(db *sql.DB, in CreateMealInput) (int64, error) {
	mealType, err := normalizeMealType(in.MealType)
	if err != nil {
		return 0, err
	}
	if len(in.Items) == 0 {
		return 0, fmt.Errorf("meal needs at least one item")
	}
	total := 0
	for i, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return 0, fmt.Errorf("item %d: name is required", i+1)
		}
		if err := validateNonNegativeInt("calories", item.Calories); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		if err := validateNonNegativeInt("protein", item.ProteinG); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		if err := validateNonNegativeInt("carbs", item.CarbsG); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		if err := validateNonNegativeInt("fat", item.FatG); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		total += item.Calories
	}
	if in.EatenAt.IsZero() {
		in.EatenAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
INSERT INTO meals(meal_type, total_calories, eaten_at)
VALUES(?, ?, ?)
`, mealType, total, in.EatenAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}
	mealID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal id: %w", err)
	}

	for i, item := range in.Items {
		if _, err := tx.Exec(`
INSERT INTO meal_items(meal_id, position, name, portion, calories, protein_g, carbs_g, fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, mealID, i, strings.TrimSpace(item.Name), strings.TrimSpace(item.Portion), item.Calories, item.ProteinG, item.CarbsG, item.FatG); err != nil {
			return 0, fmt.Errorf("insert meal item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit meal: %w", err)
	}
	return mealID, nil
}

func ListMeals(db *sql.DB, f ListMealsFilter) ([]model.Meal, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}

	query := `SELECT id, meal_type, total_calories, eaten_at, created_at FROM meals WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_at >= ? AND eaten_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_at < ?`
		args = append(args, to)
	}
	if strings.TrimSpace(f.MealType) != "" {
		mealType, err := normalizeMealType(f.MealType)
		if err != nil {
			return nil, err
		}
		query += ` AND meal_type = ?`
		args = append(args, mealType)
	}

	query += ` ORDER BY eaten_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	meals, err := queryMeals(db, query, args...)
	if err != nil {
		return nil, err
	}
	return attachMealItems(db, meals)
}

// MealsInRange returns meals eaten in [from, to] inclusive of the whole
// end day, items attached, oldest first.
func MealsInRange(db *sql.DB, from, to time.Time) ([]model.Meal, error) {
	start := beginningOfDay(from).Format(time.RFC3339)
	end := beginningOfDay(to).AddDate(0, 0, 1).Format(time.RFC3339)
	meals, err := queryMeals(db, `
SELECT id, meal_type, total_calories, eaten_at, created_at
FROM meals
WHERE eaten_at >= ? AND eaten_at < ?
ORDER BY eaten_at ASC
`, start, end)
	if err != nil {
		return nil, err
	}
	return attachMealItems(db, meals)
}

func queryMeals(db *sql.DB, query string, args ...any) ([]model.Meal, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var eatenRaw, createdRaw string
		if err := rows.Scan(&m.ID, &m.MealType, &m.TotalCalories, &eatenRaw, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.EatenAt, _ = time.Parse(time.RFC3339, eatenRaw)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func attachMealItems(db *sql.DB, meals []model.Meal) ([]model.Meal, error) {
	for i := range meals {
		items, err := mealItems(db, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Items = items
	}
	return meals, nil
}

func mealItems(db *sql.DB, mealID int64) ([]model.MealItem, error) {
	rows, err := db.Query(`
SELECT id, meal_id, position, name, portion, calories, protein_g, carbs_g, fat_g
FROM meal_items
WHERE meal_id = ?
ORDER BY position ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}
	defer rows.Close()

	items := make([]model.MealItem, 0)
	for rows.Next() {
		var it model.MealItem
		if err := rows.Scan(&it.ID, &it.MealID, &it.Position, &it.Name, &it.Portion, &it.Calories, &it.ProteinG, &it.CarbsG, &it.FatG); err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal items: %w", err)
	}
	return items, nil
}

func MealByID(db *sql.DB, id int64) (*model.Meal, error) {
	meals, err := queryMeals(db, `SELECT id, meal_type, total_calories, eaten_at, created_at FROM meals WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("meal %d not found", id)
	}
	attached, err := attachMealItems(db, meals)
	if err != nil {
		return nil, err
	}
	return &attached[0], nil
}

// DeleteMeal removes the whole record; items go with it via cascade.
// There is no update-in-place for meals.
func DeleteMeal(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", id)
	}
	return nil
}
