package service

import (
	"math"
	"strings"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/model"
)

// Defaults substituted inside the calorie calculator when profile fields
// are missing. Missing data degrades to a usable target, it never errors.
const (
	defaultWeightKg = 70
	defaultHeightCm = 170
	defaultAgeYears = 30

	// DefaultCalorieTarget is the caller-side fallback when the computed
	// target comes back zero.
	DefaultCalorieTarget = 2000

	activityFactor = 1.2
	goalAdjustment = 500
)

const birthDateLayout = "02/01/2006"

// AgeFromBirthDate derives whole years from a DD/MM/YYYY birth date,
// subtracting one when the birthday has not yet occurred this year.
// The second return reports whether the date parsed at all.
func AgeFromBirthDate(birthDate string, now time.Time) (int, bool) {
	birth, err := time.ParseInLocation(birthDateLayout, strings.TrimSpace(birthDate), time.Local)
	if err != nil {
		return 0, false
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// BMR uses a single coefficient set regardless of gender. The tracked
// gender field intentionally does not branch the formula here.
func BMR(weightKg, heightCm float64, ageYears int) float64 {
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(ageYears)
}

// DailyCalorieTarget computes the personalized daily calorie target.
// Non-positive weight/height fall back to 70 kg / 170 cm, an unparseable
// birth date to age 30, and an unknown goal to "maintain".
func DailyCalorieTarget(weightKg, heightCm float64, birthDate, goal string, now time.Time) int {
	if weightKg <= 0 {
		weightKg = defaultWeightKg
	}
	if heightCm <= 0 {
		heightCm = defaultHeightCm
	}
	age, ok := AgeFromBirthDate(birthDate, now)
	if !ok {
		age = defaultAgeYears
	}

	target := BMR(weightKg, heightCm, age) * activityFactor
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case "lose":
		target -= goalAdjustment
	case "gain":
		target += goalAdjustment
	}
	return int(math.Round(target))
}

// CalorieTargetForProfile resolves the calorie target for a possibly
// incomplete profile. A nil profile yields the all-defaults target.
func CalorieTargetForProfile(p *model.Profile, now time.Time) int {
	var weight, height float64
	var birthDate, goal string
	if p != nil {
		if p.WeightKg != nil {
			weight = *p.WeightKg
		}
		if p.HeightCm != nil {
			height = *p.HeightCm
		}
		birthDate = p.BirthDate
		goal = p.Goal
	}
	target := DailyCalorieTarget(weight, height, birthDate, goal, now)
	if target == 0 {
		return DefaultCalorieTarget
	}
	return target
}
