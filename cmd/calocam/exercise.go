package calocam

import (
	"database/sql"
	"fmt"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log and inspect exercise",
}

var (
	exerciseTypeName string
	exerciseValue    float64
	exerciseDate     string
	exerciseTime     string
	listExerciseArg  service.ListExerciseFilter
)

var exerciseTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Show the exercise type table",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID\tNAME\tUNIT\tKCAL/UNIT")
		for _, t := range service.ExerciseTypes() {
			fmt.Fprintf(out, "%d\t%s\t%s\t%.2f\n", t.ID, t.Name, t.Unit, t.KcalPerUnit)
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an exercise; burned calories are computed and frozen",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := service.ExerciseTypeByName(exerciseTypeName)
		if !ok {
			return fmt.Errorf("unknown exercise type %q (see 'calocam exercise types')", exerciseTypeName)
		}
		performedAt, err := parseDateTimeOrNow(exerciseDate, exerciseTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateExerciseLog(sqldb, service.ExerciseLogInput{
				ExerciseTypeID: t.ID,
				Value:          exerciseValue,
				PerformedAt:    performedAt,
			})
			if err != nil {
				return err
			}
			burned := service.BurnedCalories(t.ID, exerciseValue)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged exercise #%d: %s %.0f %s, %d kcal burned\n", id, t.Name, exerciseValue, t.Unit, burned)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercise logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListExerciseLogs(sqldb, listExerciseArg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tWHEN\tTYPE\tVALUE\tBURNED")
			for _, e := range items {
				name := fmt.Sprintf("type %d", e.ExerciseTypeID)
				unit := ""
				if t, ok := service.ExerciseTypeByID(e.ExerciseTypeID); ok {
					name = t.Name
					unit = " " + t.Unit
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%.0f%s\t%d kcal\n", e.ID, e.PerformedAt.Format("2006-01-02 15:04"), name, e.Value, unit, e.BurnedCalories)
			}
			return nil
		})
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise log id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteExerciseLog(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise log #%d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseTypesCmd, exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseTypeName, "type", "", "Exercise type name (e.g. running)")
	exerciseAddCmd.Flags().Float64Var(&exerciseValue, "value", 0, "Quantity in the type's unit (steps, reps, or minutes)")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	exerciseAddCmd.Flags().StringVar(&exerciseTime, "time", "", "Time HH:MM (default now)")
	_ = exerciseAddCmd.MarkFlagRequired("type")
	_ = exerciseAddCmd.MarkFlagRequired("value")

	exerciseListCmd.Flags().StringVar(&listExerciseArg.Date, "date", "", "Filter by date YYYY-MM-DD")
	exerciseListCmd.Flags().StringVar(&listExerciseArg.FromDate, "from", "", "Filter from date YYYY-MM-DD")
	exerciseListCmd.Flags().StringVar(&listExerciseArg.ToDate, "to", "", "Filter to date YYYY-MM-DD")
	exerciseListCmd.Flags().IntVar(&listExerciseArg.Limit, "limit", 50, "Max rows")
}
