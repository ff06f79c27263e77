package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type exportMealItem struct {
	Name     string `json:"name"`
	Portion  string `json:"portion,omitempty"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
}

type exportMeal struct {
	MealType string           `json:"meal_type"`
	EatenAt  time.Time        `json:"eaten_at"`
	Items    []exportMealItem `json:"items"`
}

type exportWater struct {
	AmountMl int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}

type exportExercise struct {
	ExerciseTypeID int64     `json:"exercise_type_id"`
	Value          float64   `json:"value"`
	BurnedCalories int       `json:"burned_calories"`
	PerformedAt    time.Time `json:"performed_at"`
}

type exportProfile struct {
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	HeightCm    *float64 `json:"height_cm,omitempty"`
	BirthDate   string   `json:"birth_date,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Goal        string   `json:"goal,omitempty"`
	MealsPerDay *int     `json:"meals_per_day,omitempty"`
	MealTimes   []string `json:"meal_times,omitempty"`
}

// ExportDocument is the portable JSON snapshot of all logged data. The
// batch id identifies one export run end to end.
type ExportDocument struct {
	ExportID   string           `json:"export_id"`
	ExportedAt time.Time        `json:"exported_at"`
	Profile    *exportProfile   `json:"profile,omitempty"`
	Meals      []exportMeal     `json:"meals"`
	Water      []exportWater    `json:"water"`
	Exercise   []exportExercise `json:"exercise"`
}

type ImportStats struct {
	ExportID       string `json:"export_id"`
	MealsImported  int    `json:"meals_imported"`
	WaterImported  int    `json:"water_imported"`
	LogsImported   int    `json:"exercise_imported"`
	ProfileApplied bool   `json:"profile_applied"`
}

// Export writes everything between from and to (inclusive) as JSON.
func Export(db *sql.DB, w io.Writer, from, to time.Time) (*ExportDocument, error) {
	doc := &ExportDocument{
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now(),
		Meals:      make([]exportMeal, 0),
		Water:      make([]exportWater, 0),
		Exercise:   make([]exportExercise, 0),
	}

	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		doc.Profile = &exportProfile{
			WeightKg:    profile.WeightKg,
			HeightCm:    profile.HeightCm,
			BirthDate:   profile.BirthDate,
			Gender:      profile.Gender,
			Goal:        profile.Goal,
			MealsPerDay: profile.MealsPerDay,
			MealTimes:   profile.MealTimes,
		}
	}

	meals, err := MealsInRange(db, from, to)
	if err != nil {
		return nil, err
	}
	for i := range meals {
		em := exportMeal{MealType: meals[i].MealType, EatenAt: meals[i].EatenAt}
		for _, it := range meals[i].Items {
			em.Items = append(em.Items, exportMealItem{
				Name:     it.Name,
				Portion:  it.Portion,
				Calories: it.Calories,
				ProteinG: it.ProteinG,
				CarbsG:   it.CarbsG,
				FatG:     it.FatG,
			})
		}
		doc.Meals = append(doc.Meals, em)
	}

	water, err := WaterInRange(db, from, to)
	if err != nil {
		return nil, err
	}
	for i := range water {
		doc.Water = append(doc.Water, exportWater{AmountMl: water[i].AmountMl, LoggedAt: water[i].LoggedAt})
	}

	exercise, err := ExerciseInRange(db, from, to)
	if err != nil {
		return nil, err
	}
	for i := range exercise {
		doc.Exercise = append(doc.Exercise, exportExercise{
			ExerciseTypeID: exercise[i].ExerciseTypeID,
			Value:          exercise[i].Value,
			BurnedCalories: exercise[i].BurnedCalories,
			PerformedAt:    exercise[i].PerformedAt,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return doc, nil
}

// Import reads an export document and appends its records. Exercise rows
// keep their exported burned calories untouched; they were frozen at log
// time and must not be recomputed against the current static table.
func Import(db *sql.DB, r io.Reader) (ImportStats, error) {
	var doc ExportDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return ImportStats{}, fmt.Errorf("decode export document: %w", err)
	}
	stats := ImportStats{ExportID: doc.ExportID}

	if doc.Profile != nil {
		update := ProfileUpdate{
			WeightKg:    doc.Profile.WeightKg,
			HeightCm:    doc.Profile.HeightCm,
			MealsPerDay: doc.Profile.MealsPerDay,
			MealTimes:   doc.Profile.MealTimes,
		}
		if doc.Profile.BirthDate != "" {
			update.BirthDate = &doc.Profile.BirthDate
		}
		if doc.Profile.Gender != "" {
			update.Gender = &doc.Profile.Gender
		}
		if doc.Profile.Goal != "" {
			update.Goal = &doc.Profile.Goal
		}
		if err := UpdateProfile(db, update); err != nil {
			return stats, fmt.Errorf("import profile: %w", err)
		}
		stats.ProfileApplied = true
	}

	for i, em := range doc.Meals {
		items := make([]MealItemInput, 0, len(em.Items))
		for _, it := range em.Items {
			items = append(items, MealItemInput{
				Name:     it.Name,
				Portion:  it.Portion,
				Calories: it.Calories,
				ProteinG: it.ProteinG,
				CarbsG:   it.CarbsG,
				FatG:     it.FatG,
			})
		}
		if _, err := CreateMeal(db, CreateMealInput{MealType: em.MealType, Items: items, EatenAt: em.EatenAt}); err != nil {
			return stats, fmt.Errorf("import meal %d: %w", i+1, err)
		}
		stats.MealsImported++
	}

	for i, ew := range doc.Water {
		if _, err := AddWater(db, AddWaterInput{AmountMl: ew.AmountMl, LoggedAt: ew.LoggedAt}); err != nil {
			return stats, fmt.Errorf("import water entry %d: %w", i+1, err)
		}
		stats.WaterImported++
	}

	for i, ee := range doc.Exercise {
		if ee.Value <= 0 {
			return stats, fmt.Errorf("import exercise log %d: value must be > 0", i+1)
		}
		if ee.BurnedCalories < 0 {
			return stats, fmt.Errorf("import exercise log %d: burned calories must be >= 0", i+1)
		}
		performedAt := ee.PerformedAt
		if performedAt.IsZero() {
			performedAt = time.Now()
		}
		if _, err := db.Exec(`
INSERT INTO exercise_logs(exercise_type_id, value, burned_calories, performed_at)
VALUES(?, ?, ?, ?)
`, ee.ExerciseTypeID, ee.Value, ee.BurnedCalories, performedAt.Format(time.RFC3339)); err != nil {
			return stats, fmt.Errorf("import exercise log %d: %w", i+1, err)
		}
		stats.LogsImported++
	}

	return stats, nil
}
