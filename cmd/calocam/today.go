package calocam

import (
	"database/sql"
	"fmt"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, exercise, water, and targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseEndDateOrToday(todayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.AggregateRange(sqldb, target, target)
			if err != nil {
				return err
			}
			day := summary.Days[0]

			calTarget, waterGoal, err := resolveTargets(sqldb, target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s (%s)\n", day.DateKey, day.DayName)
			fmt.Fprintf(out, "Intake: %d kcal (%d meals)\n", day.TotalCalories, day.MealCount)
			fmt.Fprintf(out, "Exercise: %d kcal burned\n", day.TotalBurned)
			fmt.Fprintf(out, "Net: %d kcal (target %d)\n", day.NetCalories, calTarget)
			fmt.Fprintf(out, "Water: %d ml (goal %d)\n", day.WaterMl, waterGoal)
			if day.WaterMl >= waterGoal {
				fmt.Fprintln(out, "Water goal achieved")
			} else {
				fmt.Fprintf(out, "Water remaining: %d ml\n", waterGoal-day.WaterMl)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
