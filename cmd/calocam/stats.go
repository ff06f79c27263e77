package calocam

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly and monthly statistics with goal scoring",
}

var (
	statsEndDate string
	statsJSON    bool
)

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "7-day summary with calorie and water goal scoring",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseEndDateOrToday(statsEndDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.WeeklySummary(sqldb, end)
			if err != nil {
				return err
			}
			calTarget, waterGoal, err := resolveTargets(sqldb, end)
			if err != nil {
				return err
			}
			tolerance, err := resolveTolerance(sqldb)
			if err != nil {
				return err
			}
			calScore := service.ScoreCalorieProgress(summary.Days, calTarget, tolerance)
			waterScore := service.ScoreWaterProgress(summary.Days, waterGoal)

			if statsJSON {
				return printJSON(cmd, map[string]any{
					"summary":        summary,
					"calorie_target": calTarget,
					"water_goal_ml":  waterGoal,
					"calorie_score":  calScore,
					"water_score":    waterScore,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week %s .. %s\n", summary.FromDate, summary.ToDate)
			fmt.Fprintln(out, "DATE\tDAY\tIN\tOUT\tNET\tMEALS\tWATER")
			for _, d := range summary.Days {
				fmt.Fprintf(out, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n", d.DateKey, d.DayName, d.TotalCalories, d.TotalBurned, d.NetCalories, d.MealCount, d.WaterMl)
			}
			fmt.Fprintf(out, "Totals: %d kcal in, %d kcal out, %d ml water, %d meals\n", summary.TotalCalories, summary.TotalBurned, summary.TotalWaterMl, summary.MealCount)
			fmt.Fprintf(out, "Averages/day: %.1f kcal in, %.1f kcal out, %.1f ml water\n", summary.AvgCaloriesPerDay, summary.AvgBurnedPerDay, summary.AvgWaterMlPerDay)
			fmt.Fprintf(out, "Calorie goal (%d kcal, ±%.0f%%): %d/%d days, %d%%\n", calTarget, tolerance*100, calScore.SuccessfulDays, len(summary.Days), calScore.SuccessRate)
			fmt.Fprintf(out, "Water goal (%d ml): %d/%d days, %d%%\n", waterGoal, waterScore.DaysAchieved, len(summary.Days), waterScore.Percentage)
			if summary.MalformedEvents > 0 {
				fmt.Fprintf(out, "Warning: %d events had unusable timestamps and were excluded\n", summary.MalformedEvents)
			}
			return nil
		})
	},
}

var statsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "30-day summary with top foods and meal type distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseEndDateOrToday(statsEndDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.MonthlySummary30(sqldb, end)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Month %s .. %s\n", summary.FromDate, summary.ToDate)
			fmt.Fprintf(out, "Totals: %d kcal in, %d kcal out, %d ml water, %d meals\n", summary.TotalCalories, summary.TotalBurned, summary.TotalWaterMl, summary.MealCount)
			fmt.Fprintf(out, "Averages/day: %.1f kcal in, %.1f kcal out, %.1f ml water\n", summary.AvgCaloriesPerDay, summary.AvgBurnedPerDay, summary.AvgWaterMlPerDay)
			fmt.Fprintln(out, "Top foods:")
			for _, f := range summary.TopFoods {
				fmt.Fprintf(out, "  %s: %d\n", f.Name, f.Count)
			}
			fmt.Fprintln(out, "Meals by type:")
			for _, mt := range summary.MealTypeCounts {
				fmt.Fprintf(out, "  %s: %d\n", mt.MealType, mt.Count)
			}
			if summary.MalformedEvents > 0 {
				fmt.Fprintf(out, "Warning: %d events had unusable timestamps and were excluded\n", summary.MalformedEvents)
			}
			return nil
		})
	},
}

var (
	statsRangeFrom string
	statsRangeTo   string
)

var statsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Summary over an arbitrary date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsRangeFrom == "" || statsRangeTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		from, err := time.ParseInLocation("2006-01-02", statsRangeFrom, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --from date (expected YYYY-MM-DD)")
		}
		to, err := time.ParseInLocation("2006-01-02", statsRangeTo, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --to date (expected YYYY-MM-DD)")
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.AggregateRange(sqldb, from, to)
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tDAY\tIN\tOUT\tNET\tMEALS\tWATER")
			for _, d := range summary.Days {
				fmt.Fprintf(out, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n", d.DateKey, d.DayName, d.TotalCalories, d.TotalBurned, d.NetCalories, d.MealCount, d.WaterMl)
			}
			fmt.Fprintf(out, "Totals: %d kcal in, %d kcal out, %d ml water, %d meals\n", summary.TotalCalories, summary.TotalBurned, summary.TotalWaterMl, summary.MealCount)
			return nil
		})
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsWeekCmd, statsMonthCmd, statsRangeCmd)

	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "Emit JSON instead of a table")
	statsWeekCmd.Flags().StringVar(&statsEndDate, "date", "", "Window end date YYYY-MM-DD (default today)")
	statsMonthCmd.Flags().StringVar(&statsEndDate, "date", "", "Window end date YYYY-MM-DD (default today)")
	statsRangeCmd.Flags().StringVar(&statsRangeFrom, "from", "", "Range start YYYY-MM-DD")
	statsRangeCmd.Flags().StringVar(&statsRangeTo, "to", "", "Range end YYYY-MM-DD")
}
