package service

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

// epochDayKey is where events with an unusable timestamp land. One bad
// record must never break a whole period's series.
const epochDayKey = "1970-01-01"

type DayAggregate struct {
	DateKey       string              `json:"date"`
	DayName       string              `json:"day_name"`
	TotalCalories int                 `json:"total_calories"`
	TotalBurned   int                 `json:"total_burned"`
	NetCalories   int                 `json:"net_calories"`
	MealCount     int                 `json:"meal_count"`
	WaterMl       int                 `json:"water_ml"`
	Logs          []model.ExerciseLog `json:"logs,omitempty"`
}

type FoodFrequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MealTypeCount struct {
	MealType string `json:"meal_type"`
	Count    int    `json:"count"`
}

type PeriodSummary struct {
	FromDate string         `json:"from_date"`
	ToDate   string         `json:"to_date"`
	Days     []DayAggregate `json:"days"`

	TotalCalories int `json:"total_calories"`
	TotalBurned   int `json:"total_burned"`
	TotalWaterMl  int `json:"total_water_ml"`
	MealCount     int `json:"meal_count"`

	AvgCaloriesPerDay float64 `json:"avg_calories_per_day"`
	AvgBurnedPerDay   float64 `json:"avg_burned_per_day"`
	AvgWaterMlPerDay  float64 `json:"avg_water_ml_per_day"`

	// MalformedEvents counts events bucketed under EpochDay because their
	// stored timestamp could not be used.
	MalformedEvents int           `json:"malformed_events,omitempty"`
	EpochDay        *DayAggregate `json:"epoch_day,omitempty"`
}

// MonthlySummary extends the period rollup with the fields only the 30-day
// view needs: most frequent foods and the meal-type distribution.
type MonthlySummary struct {
	PeriodSummary
	TopFoods       []FoodFrequency `json:"top_foods"`
	MealTypeCounts []MealTypeCount `json:"meal_type_counts"`
}

type AggregateInput struct {
	Meals    []model.Meal
	Water    []model.WaterEntry
	Exercise []model.ExerciseLog
}

// Aggregate buckets every event into the local calendar day it falls in
// and materializes one bucket per day in [from, to] inclusive, empty days
// included, so chart series always have deterministic length. Each event
// list is walked exactly once. Net calories may be negative and are not
// clamped.
func Aggregate(in AggregateInput, from, to time.Time) (*PeriodSummary, error) {
	from = beginningOfDay(from)
	to = beginningOfDay(to)
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}

	summary := &PeriodSummary{
		FromDate: from.Format("2006-01-02"),
		ToDate:   to.Format("2006-01-02"),
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		summary.Days = append(summary.Days, DayAggregate{
			DateKey: day.Format("2006-01-02"),
			DayName: day.Weekday().String(),
		})
	}

	// Index into the fully built slice. Taking addresses while still
	// appending would leave the map pointing at stale backing arrays.
	buckets := make(map[string]*DayAggregate, len(summary.Days))
	for i := range summary.Days {
		buckets[summary.Days[i].DateKey] = &summary.Days[i]
	}

	epoch := &DayAggregate{DateKey: epochDayKey, DayName: time.Unix(0, 0).In(time.Local).Weekday().String()}

	resolve := func(ts time.Time) (*DayAggregate, bool) {
		if ts.IsZero() {
			summary.MalformedEvents++
			return epoch, true
		}
		b, ok := buckets[dayKey(ts)]
		return b, ok
	}

	for i := range in.Meals {
		b, ok := resolve(in.Meals[i].EatenAt)
		if !ok {
			continue
		}
		b.TotalCalories += in.Meals[i].TotalCalories
		b.MealCount++
	}
	for i := range in.Water {
		b, ok := resolve(in.Water[i].LoggedAt)
		if !ok {
			continue
		}
		b.WaterMl += in.Water[i].AmountMl
	}
	for i := range in.Exercise {
		b, ok := resolve(in.Exercise[i].PerformedAt)
		if !ok {
			continue
		}
		b.TotalBurned += in.Exercise[i].BurnedCalories
		b.Logs = append(b.Logs, in.Exercise[i])
	}

	for i := range summary.Days {
		d := &summary.Days[i]
		d.NetCalories = d.TotalCalories - d.TotalBurned
		summary.TotalCalories += d.TotalCalories
		summary.TotalBurned += d.TotalBurned
		summary.TotalWaterMl += d.WaterMl
		summary.MealCount += d.MealCount
	}
	div := float64(len(summary.Days))
	summary.AvgCaloriesPerDay = float64(summary.TotalCalories) / div
	summary.AvgBurnedPerDay = float64(summary.TotalBurned) / div
	summary.AvgWaterMlPerDay = float64(summary.TotalWaterMl) / div

	if summary.MalformedEvents > 0 {
		epoch.NetCalories = epoch.TotalCalories - epoch.TotalBurned
		summary.EpochDay = epoch
	}
	return summary, nil
}

// TopFoods ranks food items by occurrence count across the given meals.
// The sort is stable on count only, so items tied on count keep their
// first-encountered order.
func TopFoods(meals []model.Meal, limit int) []FoodFrequency {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range meals {
		for _, item := range meals[i].Items {
			if _, seen := counts[item.Name]; !seen {
				order = append(order, item.Name)
			}
			counts[item.Name]++
		}
	}

	out := make([]FoodFrequency, 0, len(order))
	for _, name := range order {
		out = append(out, FoodFrequency{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MealTypeDistribution counts meals per type in the fixed enum order.
func MealTypeDistribution(meals []model.Meal) []MealTypeCount {
	counts := make(map[string]int)
	for i := range meals {
		counts[meals[i].MealType]++
	}
	out := make([]MealTypeCount, 0, len(MealTypes))
	for _, mt := range MealTypes {
		out = append(out, MealTypeCount{MealType: mt, Count: counts[mt]})
	}
	return out
}

// AggregateRange fetches the period's events with range-bounded queries
// and feeds them to the pure aggregator.
func AggregateRange(db *sql.DB, from, to time.Time) (*PeriodSummary, error) {
	in, err := loadAggregateInput(db, from, to)
	if err != nil {
		return nil, err
	}
	return Aggregate(in, from, to)
}

// WeeklySummary covers the 7 days ending at (and including) end.
func WeeklySummary(db *sql.DB, end time.Time) (*PeriodSummary, error) {
	end = beginningOfDay(end)
	return AggregateRange(db, end.AddDate(0, 0, -6), end)
}

// MonthlySummary30 covers the 30 days ending at (and including) end and
// additionally ranks top foods and the per-meal-type distribution.
func MonthlySummary30(db *sql.DB, end time.Time) (*MonthlySummary, error) {
	end = beginningOfDay(end)
	from := end.AddDate(0, 0, -29)
	in, err := loadAggregateInput(db, from, end)
	if err != nil {
		return nil, err
	}
	period, err := Aggregate(in, from, end)
	if err != nil {
		return nil, err
	}
	return &MonthlySummary{
		PeriodSummary:  *period,
		TopFoods:       TopFoods(in.Meals, 5),
		MealTypeCounts: MealTypeDistribution(in.Meals),
	}, nil
}

func loadAggregateInput(db *sql.DB, from, to time.Time) (AggregateInput, error) {
	var in AggregateInput
	var err error
	if in.Meals, err = MealsInRange(db, from, to); err != nil {
		return in, err
	}
	if in.Water, err = WaterInRange(db, from, to); err != nil {
		return in, err
	}
	if in.Exercise, err = ExerciseInRange(db, from, to); err != nil {
		return in, err
	}
	return in, nil
}

// ExerciseInRange returns logs performed in [from, to] inclusive of the
// whole end day, oldest first.
func ExerciseInRange(db *sql.DB, from, to time.Time) ([]model.ExerciseLog, error) {
	start := beginningOfDay(from).Format(time.RFC3339)
	end := beginningOfDay(to).AddDate(0, 0, 1).Format(time.RFC3339)

	rows, err := db.Query(`
SELECT id, exercise_type_id, value, burned_calories, performed_at, created_at
FROM exercise_logs
WHERE performed_at >= ? AND performed_at < ?
ORDER BY performed_at ASC
`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query exercise range: %w", err)
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
		return nil, fmt.Errorf("iterate exercise range: %w", err)
	}
	return items, nil
}

func roundPercent(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}
