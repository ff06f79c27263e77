package service

import "math"

// DefaultCalorieTolerance is the symmetric band around the calorie target
// within which a day counts as successful.
const DefaultCalorieTolerance = 0.10

type CalorieProgress struct {
	SuccessfulDays int `json:"successful_days"`
	SuccessRate    int `json:"success_rate"`
}

type WaterProgress struct {
	DaysAchieved int `json:"days_achieved"`
	Percentage   int `json:"percentage"`
}

// ScoreCalorieProgress counts days whose net calories land within
// target ± target×tolerance. Being far under target fails the day just
// like being far over; the band is symmetric on purpose.
func ScoreCalorieProgress(days []DayAggregate, target int, tolerance float64) CalorieProgress {
	if tolerance <= 0 {
		tolerance = DefaultCalorieTolerance
	}
	band := float64(target) * tolerance
	out := CalorieProgress{}
	for i := range days {
		if math.Abs(float64(days[i].NetCalories-target)) <= band {
			out.SuccessfulDays++
		}
	}
	out.SuccessRate = roundPercent(out.SuccessfulDays, len(days))
	return out
}

// ScoreWaterProgress counts days whose water total meets the target.
// Hydration is a floor, not a band: only under-drinking fails, there is
// no upper penalty. Keep this policy separate from the calorie scorer.
func ScoreWaterProgress(days []DayAggregate, targetMl int) WaterProgress {
	out := WaterProgress{}
	for i := range days {
		if days[i].WaterMl >= targetMl {
			out.DaysAchieved++
		}
	}
	out.Percentage = roundPercent(out.DaysAchieved, len(days))
	return out
}
