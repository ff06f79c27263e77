package calocam

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show personalized daily calorie and water targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			calTarget, waterGoal, err := resolveTargets(sqldb, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calorie target: %d kcal/day\n", calTarget)
			fmt.Fprintf(cmd.OutOrStdout(), "Water goal: %d ml/day\n", waterGoal)
			return nil
		})
	},
}

// resolveTargets derives both daily targets from the stored profile. The
// water goal honors a manual app_config override before falling back to
// the profile-based calculation (or the flat default for an incomplete
// profile).
func resolveTargets(sqldb *sql.DB, now time.Time) (int, int, error) {
	profile, err := service.GetProfile(sqldb)
	if err != nil {
		return 0, 0, err
	}
	calTarget := service.CalorieTargetForProfile(profile, now)

	waterGoal, ok, err := service.WaterGoalOverrideMl(sqldb)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		waterGoal = service.WaterGoalForProfile(profile, now)
	}
	return calTarget, waterGoal, nil
}

func resolveTolerance(sqldb *sql.DB) (float64, error) {
	cfg, err := loadFileConfig()
	if err != nil {
		return 0, err
	}
	return service.CalorieTolerance(sqldb, cfg.CalorieTolerance)
}

func init() {
	rootCmd.AddCommand(goalCmd)
}
