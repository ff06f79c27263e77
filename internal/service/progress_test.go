package service_test

import (
	"testing"

	"github.com/SeAkman0/calocam-cli/internal/service"
)

func TestScoreCalorieProgressSymmetricBand(t *testing.T) {
	t.Parallel()
	// Target 2000, tolerance 10%: [1800, 2200] succeeds, outside fails
	// in both directions.
	days := []service.DayAggregate{
		{NetCalories: 1850}, // inside
		{NetCalories: 1750}, // too far under
		{NetCalories: 2200}, // inclusive upper edge
		{NetCalories: 2201}, // just over
		{NetCalories: 1800}, // inclusive lower edge
	}
	got := service.ScoreCalorieProgress(days, 2000, 0.10)
	if got.SuccessfulDays != 3 {
		t.Fatalf("expected 3 successful days, got %d", got.SuccessfulDays)
	}
	if got.SuccessRate != 60 {
		t.Fatalf("expected 60%% success rate, got %d", got.SuccessRate)
	}
}

func TestScoreCalorieProgressDefaultTolerance(t *testing.T) {
	t.Parallel()
	days := []service.DayAggregate{
		{NetCalories: 1850},
		{NetCalories: 1750},
	}
	// Zero and negative tolerance fall back to the 10% default.
	for _, tol := range []float64{0, -1} {
		got := service.ScoreCalorieProgress(days, 2000, tol)
		if got.SuccessfulDays != 1 {
			t.Fatalf("tolerance %v: expected 1 successful day, got %d", tol, got.SuccessfulDays)
		}
	}
}

func TestScoreCalorieProgressRoundsRate(t *testing.T) {
	t.Parallel()
	days := []service.DayAggregate{
		{NetCalories: 2000},
		{NetCalories: 0},
		{NetCalories: 0},
	}
	// 1/3 = 33.33 -> 33.
	if got := service.ScoreCalorieProgress(days, 2000, 0.10); got.SuccessRate != 33 {
		t.Fatalf("expected 33, got %d", got.SuccessRate)
	}
	days = append(days, service.DayAggregate{NetCalories: 2000}, service.DayAggregate{NetCalories: 2000})
	// 3/5 = 60.
	if got := service.ScoreCalorieProgress(days, 2000, 0.10); got.SuccessRate != 60 {
		t.Fatalf("expected 60, got %d", got.SuccessRate)
	}
}

func TestScoreCalorieProgressEmptyPeriod(t *testing.T) {
	t.Parallel()
	got := service.ScoreCalorieProgress(nil, 2000, 0.10)
	if got.SuccessfulDays != 0 || got.SuccessRate != 0 {
		t.Fatalf("expected zero progress for empty period, got %+v", got)
	}
}

func TestScoreWaterProgressFloorOnly(t *testing.T) {
	t.Parallel()
	days := []service.DayAggregate{
		{WaterMl: 2500}, // meets exactly
		{WaterMl: 2499}, // one ml short fails
		{WaterMl: 9000}, // over-drinking still succeeds
		{WaterMl: 0},
	}
	got := service.ScoreWaterProgress(days, 2500)
	if got.DaysAchieved != 2 {
		t.Fatalf("expected 2 days achieved, got %d", got.DaysAchieved)
	}
	if got.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", got.Percentage)
	}
}

func TestScoreWaterProgressEmptyPeriod(t *testing.T) {
	t.Parallel()
	got := service.ScoreWaterProgress(nil, 2500)
	if got.DaysAchieved != 0 || got.Percentage != 0 {
		t.Fatalf("expected zero progress for empty period, got %+v", got)
	}
}
