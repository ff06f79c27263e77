package service_test

import (
	"testing"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
	"github.com/SeAkman0/calocam-cli/internal/service"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestAggregateEmptyWindowStillHasAllDays(t *testing.T) {
	t.Parallel()
	from := day(2026, 5, 4, 0)
	to := day(2026, 5, 10, 0)
	summary, err := service.Aggregate(service.AggregateInput{}, from, to)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(summary.Days) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(summary.Days))
	}
	for i, d := range summary.Days {
		wantKey := from.AddDate(0, 0, i).Format("2006-01-02")
		if d.DateKey != wantKey {
			t.Fatalf("day %d: expected key %s, got %s", i, wantKey, d.DateKey)
		}
		if d.TotalCalories != 0 || d.TotalBurned != 0 || d.WaterMl != 0 || d.MealCount != 0 || d.NetCalories != 0 {
			t.Fatalf("day %s: expected empty bucket, got %+v", d.DateKey, d)
		}
	}
	if summary.Days[0].DayName != "Monday" {
		t.Fatalf("expected 2026-05-04 to be Monday, got %s", summary.Days[0].DayName)
	}
	if summary.MalformedEvents != 0 || summary.EpochDay != nil {
		t.Fatalf("expected no epoch bucket for clean input")
	}
}

func TestAggregateAlignsSeriesByDay(t *testing.T) {
	t.Parallel()
	from := day(2026, 5, 4, 0)
	to := day(2026, 5, 6, 0)

	in := service.AggregateInput{
		Meals: []model.Meal{
			{TotalCalories: 600, EatenAt: day(2026, 5, 4, 8)},
			{TotalCalories: 700, EatenAt: day(2026, 5, 4, 19)},
			{TotalCalories: 500, EatenAt: day(2026, 5, 6, 13)},
		},
		Water: []model.WaterEntry{
			{AmountMl: 500, LoggedAt: day(2026, 5, 4, 9)},
			{AmountMl: 250, LoggedAt: day(2026, 5, 5, 12)},
		},
		Exercise: []model.ExerciseLog{
			{BurnedCalories: 300, PerformedAt: day(2026, 5, 4, 7)},
			{BurnedCalories: 900, PerformedAt: day(2026, 5, 6, 18)},
		},
	}
	summary, err := service.Aggregate(in, from, to)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	d0 := summary.Days[0]
	if d0.TotalCalories != 1300 || d0.MealCount != 2 || d0.WaterMl != 500 || d0.TotalBurned != 300 {
		t.Fatalf("day 0 mismatch: %+v", d0)
	}
	if d0.NetCalories != 1000 {
		t.Fatalf("expected net 1000, got %d", d0.NetCalories)
	}
	d1 := summary.Days[1]
	if d1.TotalCalories != 0 || d1.WaterMl != 250 {
		t.Fatalf("day 1 mismatch: %+v", d1)
	}
	// Burned above eaten: net goes negative and stays negative.
	d2 := summary.Days[2]
	if d2.NetCalories != -400 {
		t.Fatalf("expected net -400, got %d", d2.NetCalories)
	}

	if summary.TotalCalories != 1800 || summary.TotalBurned != 1200 || summary.TotalWaterMl != 750 || summary.MealCount != 3 {
		t.Fatalf("summary totals mismatch: %+v", summary)
	}
	if summary.AvgCaloriesPerDay != 600 || summary.AvgWaterMlPerDay != 250 {
		t.Fatalf("summary averages mismatch: %+v", summary)
	}
}

func TestAggregateKeepsEarlyDayTotalsInLongWindows(t *testing.T) {
	t.Parallel()
	from := day(2026, 5, 1, 0)
	to := day(2026, 5, 30, 0)

	// Events on the first days of a 30-day window; bucketing must not lose
	// them no matter how many buckets follow.
	in := service.AggregateInput{
		Meals: []model.Meal{
			{TotalCalories: 800, EatenAt: day(2026, 5, 1, 12)},
		},
		Water: []model.WaterEntry{
			{AmountMl: 600, LoggedAt: day(2026, 5, 2, 9)},
		},
		Exercise: []model.ExerciseLog{
			{BurnedCalories: 250, PerformedAt: day(2026, 5, 1, 7)},
		},
	}
	summary, err := service.Aggregate(in, from, to)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(summary.Days) != 30 {
		t.Fatalf("expected 30 day buckets, got %d", len(summary.Days))
	}
	first := summary.Days[0]
	if first.TotalCalories != 800 || first.TotalBurned != 250 || first.MealCount != 1 {
		t.Fatalf("first day lost its events: %+v", first)
	}
	if summary.Days[1].WaterMl != 600 {
		t.Fatalf("second day lost its water: %+v", summary.Days[1])
	}
	if summary.TotalCalories != 800 || summary.TotalBurned != 250 || summary.TotalWaterMl != 600 {
		t.Fatalf("period totals lost events: %+v", summary)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	t.Parallel()
	in := service.AggregateInput{
		Meals: []model.Meal{
			{TotalCalories: 450, EatenAt: day(2026, 5, 4, 12)},
		},
		Water: []model.WaterEntry{
			{AmountMl: 300, LoggedAt: day(2026, 5, 4, 12)},
		},
	}
	from, to := day(2026, 5, 4, 0), day(2026, 5, 5, 0)

	first, err := service.Aggregate(in, from, to)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := service.Aggregate(in, from, to)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if first.TotalCalories != second.TotalCalories || first.TotalWaterMl != second.TotalWaterMl {
		t.Fatalf("re-running over the same input changed totals: %+v vs %+v", first, second)
	}
	if len(first.Days) != len(second.Days) {
		t.Fatalf("re-running changed bucket count")
	}
}

func TestAggregateRoutesZeroTimestampsToEpochBucket(t *testing.T) {
	t.Parallel()
	in := service.AggregateInput{
		Meals: []model.Meal{
			{TotalCalories: 500, EatenAt: day(2026, 5, 4, 12)},
			{TotalCalories: 999}, // zero EatenAt
		},
		Water: []model.WaterEntry{
			{AmountMl: 200}, // zero LoggedAt
		},
	}
	summary, err := service.Aggregate(in, day(2026, 5, 4, 0), day(2026, 5, 4, 0))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if summary.MalformedEvents != 2 {
		t.Fatalf("expected 2 malformed events, got %d", summary.MalformedEvents)
	}
	if summary.EpochDay == nil {
		t.Fatalf("expected an epoch bucket")
	}
	if summary.EpochDay.DateKey != "1970-01-01" {
		t.Fatalf("expected epoch key, got %s", summary.EpochDay.DateKey)
	}
	if summary.EpochDay.TotalCalories != 999 || summary.EpochDay.WaterMl != 200 {
		t.Fatalf("epoch bucket mismatch: %+v", summary.EpochDay)
	}
	// The epoch bucket never leaks into the day series or its totals.
	if len(summary.Days) != 1 {
		t.Fatalf("expected a single day bucket, got %d", len(summary.Days))
	}
	if summary.TotalCalories != 500 || summary.TotalWaterMl != 0 {
		t.Fatalf("epoch events leaked into totals: %+v", summary)
	}
}

func TestAggregateIgnoresEventsOutsideWindow(t *testing.T) {
	t.Parallel()
	in := service.AggregateInput{
		Meals: []model.Meal{
			{TotalCalories: 400, EatenAt: day(2026, 5, 3, 23)},
			{TotalCalories: 500, EatenAt: day(2026, 5, 4, 0)},
			{TotalCalories: 600, EatenAt: day(2026, 5, 5, 1)},
		},
	}
	summary, err := service.Aggregate(in, day(2026, 5, 4, 0), day(2026, 5, 4, 0))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if summary.TotalCalories != 500 {
		t.Fatalf("expected only the in-window meal counted, got %d", summary.TotalCalories)
	}
}

func TestAggregateRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	_, err := service.Aggregate(service.AggregateInput{}, day(2026, 5, 10, 0), day(2026, 5, 4, 0))
	if err == nil {
		t.Fatalf("expected error for from > to")
	}
}

func TestTopFoodsStableOnTies(t *testing.T) {
	t.Parallel()
	meals := []model.Meal{
		{Items: []model.MealItem{{Name: "rice"}, {Name: "chicken"}}},
		{Items: []model.MealItem{{Name: "chicken"}, {Name: "salad"}}},
		{Items: []model.MealItem{{Name: "rice"}, {Name: "eggs"}}},
	}
	top := service.TopFoods(meals, 5)
	if len(top) != 4 {
		t.Fatalf("expected 4 distinct foods, got %d", len(top))
	}
	// rice and chicken tie at 2; rice was seen first and must stay first.
	if top[0].Name != "rice" || top[0].Count != 2 {
		t.Fatalf("expected rice first with 2, got %+v", top[0])
	}
	if top[1].Name != "chicken" || top[1].Count != 2 {
		t.Fatalf("expected chicken second with 2, got %+v", top[1])
	}
	if top[2].Name != "salad" || top[3].Name != "eggs" {
		t.Fatalf("expected salad then eggs among singles, got %+v", top[2:])
	}
}

func TestTopFoodsLimit(t *testing.T) {
	t.Parallel()
	meals := []model.Meal{
		{Items: []model.MealItem{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
	}
	if got := service.TopFoods(meals, 2); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got := service.TopFoods(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty result for no meals, got %d", len(got))
	}
}

func TestMealTypeDistributionFixedOrder(t *testing.T) {
	t.Parallel()
	meals := []model.Meal{
		{MealType: "snack"},
		{MealType: "lunch"},
		{MealType: "snack"},
	}
	dist := service.MealTypeDistribution(meals)
	want := []service.MealTypeCount{
		{MealType: "breakfast", Count: 0},
		{MealType: "lunch", Count: 1},
		{MealType: "dinner", Count: 0},
		{MealType: "snack", Count: 2},
	}
	if len(dist) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(dist))
	}
	for i := range want {
		if dist[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], dist[i])
		}
	}
}

func TestAggregateRangeReadsStoredEvents(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	eaten := day(2026, 5, 4, 13)
	if _, err := service.CreateMeal(db, service.CreateMealInput{
		MealType: "lunch",
		Items: []service.MealItemInput{
			{Name: "chicken", Portion: "200g", Calories: 330},
			{Name: "rice", Portion: "150g", Calories: 195},
		},
		EatenAt: eaten,
	}); err != nil {
		t.Fatalf("create meal: %v", err)
	}
	if _, err := service.AddWater(db, service.AddWaterInput{AmountMl: 400, LoggedAt: eaten}); err != nil {
		t.Fatalf("add water: %v", err)
	}
	running, _ := service.ExerciseTypeByName("running")
	if _, err := service.CreateExerciseLog(db, service.ExerciseLogInput{
		ExerciseTypeID: running.ID,
		Value:          20,
		PerformedAt:    day(2026, 5, 4, 7),
	}); err != nil {
		t.Fatalf("create exercise log: %v", err)
	}

	summary, err := service.AggregateRange(db, day(2026, 5, 4, 0), day(2026, 5, 4, 0))
	if err != nil {
		t.Fatalf("aggregate range: %v", err)
	}
	if len(summary.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(summary.Days))
	}
	got := summary.Days[0]
	if got.TotalCalories != 525 || got.MealCount != 1 || got.WaterMl != 400 || got.TotalBurned != 200 {
		t.Fatalf("stored-event aggregate mismatch: %+v", got)
	}
	if got.NetCalories != 325 {
		t.Fatalf("expected net 325, got %d", got.NetCalories)
	}
	if len(got.Logs) != 1 {
		t.Fatalf("expected the exercise log attached to its day")
	}
}

func TestWeeklySummaryCoversSevenDays(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	end := day(2026, 5, 10, 0)
	summary, err := service.WeeklySummary(db, end)
	if err != nil {
		t.Fatalf("weekly summary: %v", err)
	}
	if len(summary.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(summary.Days))
	}
	if summary.FromDate != "2026-05-04" || summary.ToDate != "2026-05-10" {
		t.Fatalf("unexpected range %s..%s", summary.FromDate, summary.ToDate)
	}
}

func TestMonthlySummary30RanksTopFoods(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	end := day(2026, 5, 30, 0)
	for i := 0; i < 3; i++ {
		if _, err := service.CreateMeal(db, service.CreateMealInput{
			MealType: "dinner",
			Items:    []service.MealItemInput{{Name: "pasta", Calories: 500}},
			EatenAt:  day(2026, 5, 10+i, 19),
		}); err != nil {
			t.Fatalf("create meal: %v", err)
		}
	}
	if _, err := service.CreateMeal(db, service.CreateMealInput{
		MealType: "breakfast",
		Items:    []service.MealItemInput{{Name: "eggs", Calories: 150}},
		EatenAt:  day(2026, 5, 12, 8),
	}); err != nil {
		t.Fatalf("create meal: %v", err)
	}

	monthly, err := service.MonthlySummary30(db, end)
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if len(monthly.Days) != 30 {
		t.Fatalf("expected 30 days, got %d", len(monthly.Days))
	}
	if len(monthly.TopFoods) != 2 || monthly.TopFoods[0].Name != "pasta" || monthly.TopFoods[0].Count != 3 {
		t.Fatalf("top foods mismatch: %+v", monthly.TopFoods)
	}
	var dinner, breakfast int
	for _, mc := range monthly.MealTypeCounts {
		switch mc.MealType {
		case "dinner":
			dinner = mc.Count
		case "breakfast":
			breakfast = mc.Count
		}
	}
	if dinner != 3 || breakfast != 1 {
		t.Fatalf("meal type counts mismatch: %+v", monthly.MealTypeCounts)
	}
}
