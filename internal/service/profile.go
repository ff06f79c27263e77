package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

type ProfileUpdate struct {
	WeightKg    *float64
	HeightCm    *float64
	BirthDate   *string // DD/MM/YYYY
	Gender      *string
	Goal        *string
	MealsPerDay *int
	MealTimes   []string // replaces the whole sequence when non-nil
}

// GetProfile returns the stored profile, or nil when none was ever set.
// Callers must tolerate nil: the calculators have documented defaults for
// exactly this case.
func GetProfile(db *sql.DB) (*model.Profile, error) {
	var p model.Profile
	var weight, height sql.NullFloat64
	var birth, gender, goal sql.NullString
	var mealsPerDay sql.NullInt64
	var mealTimes, updatedRaw string

	err := db.QueryRow(`
SELECT weight_kg, height_cm, birth_date, gender, goal, meals_per_day, meal_times, updated_at
FROM profile WHERE id = 1
`).Scan(&weight, &height, &birth, &gender, &goal, &mealsPerDay, &mealTimes, &updatedRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if weight.Valid {
		p.WeightKg = &weight.Float64
	}
	if height.Valid {
		p.HeightCm = &height.Float64
	}
	if birth.Valid {
		p.BirthDate = birth.String
	}
	if gender.Valid {
		p.Gender = gender.String
	}
	if goal.Valid {
		p.Goal = goal.String
	}
	if mealsPerDay.Valid {
		v := int(mealsPerDay.Int64)
		p.MealsPerDay = &v
	}
	if mealTimes != "" {
		p.MealTimes = strings.Split(mealTimes, ",")
	}
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedRaw)
	return &p, nil
}

// UpdateProfile merges the provided fields into the singleton profile row,
// creating it on first use. Fields left nil keep their stored value.
func UpdateProfile(db *sql.DB, in ProfileUpdate) error {
	if err := validateProfileUpdate(in); err != nil {
		return err
	}

	current, err := GetProfile(db)
	if err != nil {
		return err
	}
	if current == nil {
		current = &model.Profile{}
	}

	if in.WeightKg != nil {
		current.WeightKg = in.WeightKg
	}
	if in.HeightCm != nil {
		current.HeightCm = in.HeightCm
	}
	if in.BirthDate != nil {
		current.BirthDate = strings.TrimSpace(*in.BirthDate)
	}
	if in.Gender != nil {
		current.Gender = strings.ToLower(strings.TrimSpace(*in.Gender))
	}
	if in.Goal != nil {
		current.Goal = strings.ToLower(strings.TrimSpace(*in.Goal))
	}
	if in.MealsPerDay != nil {
		current.MealsPerDay = in.MealsPerDay
	}
	if in.MealTimes != nil {
		current.MealTimes = in.MealTimes
	}

	_, err = db.Exec(`
INSERT INTO profile(id, weight_kg, height_cm, birth_date, gender, goal, meals_per_day, meal_times, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  weight_kg=excluded.weight_kg,
  height_cm=excluded.height_cm,
  birth_date=excluded.birth_date,
  gender=excluded.gender,
  goal=excluded.goal,
  meals_per_day=excluded.meals_per_day,
  meal_times=excluded.meal_times,
  updated_at=excluded.updated_at
`, nullableFloat(current.WeightKg), nullableFloat(current.HeightCm),
		nullableProfileString(current.BirthDate), nullableProfileString(current.Gender),
		nullableProfileString(current.Goal), nullableIntPtr(current.MealsPerDay),
		strings.Join(current.MealTimes, ","), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func validateProfileUpdate(in ProfileUpdate) error {
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if in.HeightCm != nil && *in.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if in.BirthDate != nil && strings.TrimSpace(*in.BirthDate) != "" {
		if _, err := time.ParseInLocation(birthDateLayout, strings.TrimSpace(*in.BirthDate), time.Local); err != nil {
			return fmt.Errorf("invalid birth date %q (expected DD/MM/YYYY)", *in.BirthDate)
		}
	}
	if in.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*in.Gender))
		if g != "male" && g != "female" {
			return fmt.Errorf("invalid gender %q (use male or female)", *in.Gender)
		}
	}
	if in.Goal != nil {
		g := strings.ToLower(strings.TrimSpace(*in.Goal))
		if g != "lose" && g != "maintain" && g != "gain" {
			return fmt.Errorf("invalid goal %q (use lose, maintain, or gain)", *in.Goal)
		}
	}
	if in.MealsPerDay != nil && *in.MealsPerDay <= 0 {
		return fmt.Errorf("meals per day must be > 0")
	}
	if in.MealTimes != nil {
		if err := ValidateMealTimes(in.MealTimes); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMealTimes checks an ordered HH:MM sequence.
func ValidateMealTimes(times []string) error {
	for _, ts := range times {
		if _, err := time.Parse("15:04", strings.TrimSpace(ts)); err != nil {
			return fmt.Errorf("invalid meal time %q (expected HH:MM)", ts)
		}
	}
	return nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableIntPtr(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableProfileString(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
