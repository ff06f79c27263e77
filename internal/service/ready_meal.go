package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

type CreateReadyMealInput struct {
	Name     string
	Category string
	Items    []MealItemInput
}

// CreateReadyMeal stores a reusable meal template. Its total is the sum of
// item calories, like a regular meal record.
func CreateReadyMeal(db *sql.DB, in CreateReadyMealInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("ready meal name is required")
	}
	category, err := normalizeMealType(in.Category)
	if err != nil {
		return 0, err
	}
	if len(in.Items) == 0 {
		return 0, fmt.Errorf("ready meal needs at least one item")
	}
	total := 0
	for i, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return 0, fmt.Errorf("item %d: name is required", i+1)
		}
		if err := validateNonNegativeInt("calories", item.Calories); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		total += item.Calories
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
INSERT INTO ready_meals(name, category, total_calories)
VALUES(?, ?, ?)
`, name, category, total)
	if err != nil {
		return 0, fmt.Errorf("create ready meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve ready meal id: %w", err)
	}

	for i, item := range in.Items {
		if _, err := tx.Exec(`
INSERT INTO ready_meal_items(ready_meal_id, position, name, portion, calories, protein_g, carbs_g, fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, id, i, strings.TrimSpace(item.Name), strings.TrimSpace(item.Portion), item.Calories, item.ProteinG, item.CarbsG, item.FatG); err != nil {
			return 0, fmt.Errorf("insert ready meal item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ready meal: %w", err)
	}
	return id, nil
}

func ListReadyMeals(db *sql.DB) ([]model.ReadyMeal, error) {
	rows, err := db.Query(`
SELECT id, name, category, total_calories, created_at, updated_at
FROM ready_meals
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list ready meals: %w", err)
	}
	defer rows.Close()

	items := make([]model.ReadyMeal, 0)
	for rows.Next() {
		var rm model.ReadyMeal
		var createdRaw, updatedRaw string
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Category, &rm.TotalCalories, &createdRaw, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan ready meal: %w", err)
		}
		rm.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
		rm.UpdatedAt, _ = time.Parse(time.RFC3339, updatedRaw)
		items = append(items, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ready meals: %w", err)
	}
	return items, nil
}

func ReadyMealByName(db *sql.DB, name string) (*model.ReadyMeal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ready meal name is required")
	}
	var rm model.ReadyMeal
	var createdRaw, updatedRaw string
	err := db.QueryRow(`
SELECT id, name, category, total_calories, created_at, updated_at
FROM ready_meals WHERE name = ?
`, name).Scan(&rm.ID, &rm.Name, &rm.Category, &rm.TotalCalories, &createdRaw, &updatedRaw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ready meal %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load ready meal %q: %w", name, err)
	}
	rm.CreatedAt, _ = time.Parse(time.RFC3339, createdRaw)
	rm.UpdatedAt, _ = time.Parse(time.RFC3339, updatedRaw)

	rows, err := db.Query(`
SELECT id, ready_meal_id, position, name, portion, calories, protein_g, carbs_g, fat_g
FROM ready_meal_items
WHERE ready_meal_id = ?
ORDER BY position ASC
`, rm.ID)
	if err != nil {
		return nil, fmt.Errorf("list ready meal items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it model.ReadyMealItem
		if err := rows.Scan(&it.ID, &it.ReadyMealID, &it.Position, &it.Name, &it.Portion, &it.Calories, &it.ProteinG, &it.CarbsG, &it.FatG); err != nil {
			return nil, fmt.Errorf("scan ready meal item: %w", err)
		}
		rm.Items = append(rm.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ready meal items: %w", err)
	}
	return &rm, nil
}

// LogReadyMeal instantiates a template into the day's log by copying its
// items into a brand-new meal record. The copy gets fresh row ids and no
// link back to the template; deleting or editing the template later never
// touches logged history.
func LogReadyMeal(db *sql.DB, name string, eatenAt time.Time) (int64, error) {
	rm, err := ReadyMealByName(db, name)
	if err != nil {
		return 0, err
	}
	items := make([]MealItemInput, 0, len(rm.Items))
	for _, it := range rm.Items {
		items = append(items, MealItemInput{
			Name:     it.Name,
			Portion:  it.Portion,
			Calories: it.Calories,
			ProteinG: it.ProteinG,
			CarbsG:   it.CarbsG,
			FatG:     it.FatG,
		})
	}
	return CreateMeal(db, CreateMealInput{
		MealType: rm.Category,
		Items:    items,
		EatenAt:  eatenAt,
	})
}

func DeleteReadyMeal(db *sql.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("ready meal name is required")
	}
	res, err := db.Exec(`DELETE FROM ready_meals WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete ready meal %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ready meal %q not found", name)
	}
	return nil
}
