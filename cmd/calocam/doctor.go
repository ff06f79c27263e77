package calocam

import (
	"database/sql"
	"fmt"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for integrity problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orphan meal items: %d\n", report.OrphanMealItems)
			fmt.Fprintf(out, "Meals with drifted totals: %d\n", report.MismatchedMeals)
			fmt.Fprintf(out, "Logs with unknown exercise types: %d\n", report.UnknownExerciseRefs)
			if doctorFix {
				fmt.Fprintf(out, "Fixed meal totals: %d\n", report.FixedMealTotals)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute drifted meal totals")
}
