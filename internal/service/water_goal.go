package service

import (
	"math"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

const (
	// DefaultWaterGoalMl is the flat fallback applied by callers when the
	// profile lacks the fields the calculator needs. The calculator itself
	// has no insufficient-data signal; deciding when not to call it is
	// caller policy.
	DefaultWaterGoalMl = 2500

	waterGoalFloorMl   = 1500
	waterGoalCeilingMl = 4000
	waterMlPerKg       = 35
)

// DailyWaterGoalMl computes the personalized hydration target. Exactly one
// age multiplier applies, and the result is clamped to [1500, 4000] ml to
// guard against extreme weight inputs.
func DailyWaterGoalMl(weightKg, heightCm float64, ageYears int, gender string) int {
	base := weightKg * waterMlPerKg

	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		base *= 1.05
	case "female":
		base *= 0.95
	}

	if ageYears < 18 {
		base *= 0.9
	} else if ageYears > 65 {
		base *= 0.95
	}

	goal := int(math.Round(base))
	if goal < waterGoalFloorMl {
		return waterGoalFloorMl
	}
	if goal > waterGoalCeilingMl {
		return waterGoalCeilingMl
	}
	return goal
}

// WaterGoalForProfile applies the caller-side fallback policy: the
// calculator only runs when weight, height, birth date, and gender are all
// present; otherwise the flat 2500 ml default is used.
func WaterGoalForProfile(p *model.Profile, now time.Time) int {
	if p == nil || p.WeightKg == nil || p.HeightCm == nil || p.Gender == "" {
		return DefaultWaterGoalMl
	}
	age, ok := AgeFromBirthDate(p.BirthDate, now)
	if !ok {
		return DefaultWaterGoalMl
	}
	return DailyWaterGoalMl(*p.WeightKg, *p.HeightCm, age, p.Gender)
}
