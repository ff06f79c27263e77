package model

import "time"

// Profile is the single local user profile. Pointer fields are absent when
// the user never set them; calculators substitute documented defaults.
type Profile struct {
	WeightKg    *float64
	HeightCm    *float64
	BirthDate   string // DD/MM/YYYY, empty when unset
	Gender      string // "male", "female", or empty
	Goal        string // "lose", "maintain", "gain", or empty
	MealsPerDay *int
	MealTimes   []string // ordered HH:MM
	UpdatedAt   time.Time
}

type MealItem struct {
	ID       int64
	MealID   int64
	Position int
	Name     string
	Portion  string
	Calories int
	ProteinG int
	CarbsG   int
	FatG     int
}

type Meal struct {
	ID            int64
	MealType      string
	TotalCalories int
	EatenAt       time.Time
	CreatedAt     time.Time
	Items         []MealItem
}

type ReadyMealItem struct {
	ID          int64
	ReadyMealID int64
	Position    int
	Name        string
	Portion     string
	Calories    int
	ProteinG    int
	CarbsG      int
	FatG        int
}

type ReadyMeal struct {
	ID            int64
	Name          string
	Category      string
	TotalCalories int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []ReadyMealItem
}

type WaterEntry struct {
	ID       int64
	AmountMl int
	LoggedAt time.Time
}

type ExerciseLog struct {
	ID             int64
	ExerciseTypeID int64
	Value          float64
	BurnedCalories int
	PerformedAt    time.Time
	CreatedAt      time.Time
}

// ExerciseType is an entry of the static exercise table. The table is
// process-wide constant data, never persisted per user.
type ExerciseType struct {
	ID          int64
	Name        string
	Unit        string // "steps", "reps", or "minutes"
	KcalPerUnit float64
}
