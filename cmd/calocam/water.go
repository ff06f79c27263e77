package calocam

import (
	"database/sql"
	"fmt"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log and inspect water intake",
}

var (
	waterAmount  int
	waterDate    string
	waterTime    string
	listWaterArg service.ListWaterFilter
)

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a water entry in ml",
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(waterDate, waterTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddWater(sqldb, service.AddWaterInput{
				AmountMl: waterAmount,
				LoggedAt: loggedAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged water entry #%d (%d ml)\n", id, waterAmount)
			return nil
		})
	},
}

var waterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List water entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListWater(sqldb, listWaterArg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tWHEN\tML")
			for _, w := range items {
				fmt.Fprintf(out, "%d\t%s\t%d\n", w.ID, w.LoggedAt.Format("2006-01-02 15:04"), w.AmountMl)
			}
			return nil
		})
	},
}

var waterDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a water entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("water entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWater(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted water entry #%d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterListCmd, waterDeleteCmd)

	waterAddCmd.Flags().IntVar(&waterAmount, "ml", 0, "Amount in milliliters")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")
	waterAddCmd.Flags().StringVar(&waterTime, "time", "", "Time HH:MM (default now)")
	_ = waterAddCmd.MarkFlagRequired("ml")

	waterListCmd.Flags().StringVar(&listWaterArg.Date, "date", "", "Filter by date YYYY-MM-DD")
	waterListCmd.Flags().StringVar(&listWaterArg.FromDate, "from", "", "Filter from date YYYY-MM-DD")
	waterListCmd.Flags().StringVar(&listWaterArg.ToDate, "to", "", "Filter to date YYYY-MM-DD")
	waterListCmd.Flags().IntVar(&listWaterArg.Limit, "limit", 50, "Max rows")
}
