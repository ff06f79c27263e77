package calocam

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the local user profile",
}

var (
	profileWeight      float64
	profileHeight      float64
	profileBirthDate   string
	profileGender      string
	profileGoal        string
	profileMealsPerDay int
	profileMealTimes   string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile fields (only provided flags change)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileUpdate{}
		if cmd.Flags().Changed("weight") {
			in.WeightKg = &profileWeight
		}
		if cmd.Flags().Changed("height") {
			in.HeightCm = &profileHeight
		}
		if cmd.Flags().Changed("birth-date") {
			in.BirthDate = &profileBirthDate
		}
		if cmd.Flags().Changed("gender") {
			in.Gender = &profileGender
		}
		if cmd.Flags().Changed("goal") {
			in.Goal = &profileGoal
		}
		if cmd.Flags().Changed("meals-per-day") {
			in.MealsPerDay = &profileMealsPerDay
		}
		if cmd.Flags().Changed("meal-times") {
			times := strings.Split(profileMealTimes, ",")
			for i := range times {
				times[i] = strings.TrimSpace(times[i])
			}
			in.MealTimes = times
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateProfile(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile set; targets use built-in defaults")
				return nil
			}
			out := cmd.OutOrStdout()
			if p.WeightKg != nil {
				fmt.Fprintf(out, "Weight: %.1f kg\n", *p.WeightKg)
			} else {
				fmt.Fprintln(out, "Weight: not set")
			}
			if p.HeightCm != nil {
				fmt.Fprintf(out, "Height: %.1f cm\n", *p.HeightCm)
			} else {
				fmt.Fprintln(out, "Height: not set")
			}
			if p.BirthDate != "" {
				fmt.Fprintf(out, "Birth date: %s\n", p.BirthDate)
			} else {
				fmt.Fprintln(out, "Birth date: not set")
			}
			if p.Gender != "" {
				fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			} else {
				fmt.Fprintln(out, "Gender: not set")
			}
			if p.Goal != "" {
				fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			} else {
				fmt.Fprintln(out, "Goal: not set")
			}
			if p.MealsPerDay != nil {
				fmt.Fprintf(out, "Meals per day: %d\n", *p.MealsPerDay)
			}
			if len(p.MealTimes) > 0 {
				fmt.Fprintf(out, "Meal times: %s\n", strings.Join(p.MealTimes, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileBirthDate, "birth-date", "", "Birth date DD/MM/YYYY")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender (male or female)")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal (lose, maintain, or gain)")
	profileSetCmd.Flags().IntVar(&profileMealsPerDay, "meals-per-day", 0, "Planned meals per day")
	profileSetCmd.Flags().StringVar(&profileMealTimes, "meal-times", "", "Comma-separated HH:MM meal times")
}
