package calocam

import (
	"database/sql"
	"fmt"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Manage reusable ready meal templates",
}

var (
	readyName     string
	readyCategory string
	readyItems    []string
	readyLogDate  string
	readyLogTime  string
)

var readyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a ready meal template",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := make([]service.MealItemInput, 0, len(readyItems))
		for _, raw := range readyItems {
			item, err := parseMealItem(raw)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateReadyMeal(sqldb, service.CreateReadyMealInput{
				Name:     readyName,
				Category: readyCategory,
				Items:    items,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created ready meal #%d %q\n", id, readyName)
			return nil
		})
	},
}

var readyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ready meal templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListReadyMeals(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "NAME\tCATEGORY\tKCAL")
			for _, rm := range items {
				fmt.Fprintf(out, "%s\t%s\t%d\n", rm.Name, rm.Category, rm.TotalCalories)
			}
			return nil
		})
	},
}

var readyShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a ready meal template with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			rm, err := service.ReadyMealByName(sqldb, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\nCategory: %s\nTotal: %d kcal\n", rm.Name, rm.Category, rm.TotalCalories)
			for _, it := range rm.Items {
				fmt.Fprintf(out, "  %s (%s): %d kcal | P %dg | C %dg | F %dg\n", it.Name, it.Portion, it.Calories, it.ProteinG, it.CarbsG, it.FatG)
			}
			return nil
		})
	},
}

var readyLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a ready meal into the day's meals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eatenAt, err := parseDateTimeOrNow(readyLogDate, readyLogTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogReadyMeal(sqldb, args[0], eatenAt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged ready meal %q as meal #%d\n", args[0], id)
			return nil
		})
	},
}

var readyDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a ready meal template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteReadyMeal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ready meal %q\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(readyCmd)
	readyCmd.AddCommand(readyAddCmd, readyListCmd, readyShowCmd, readyLogCmd, readyDeleteCmd)

	readyAddCmd.Flags().StringVar(&readyName, "name", "", "Template name")
	readyAddCmd.Flags().StringVar(&readyCategory, "category", "", "Category (breakfast, lunch, dinner, snack)")
	readyAddCmd.Flags().StringArrayVar(&readyItems, "item", nil, "Food item as name|portion|calories|protein|carbs|fat (repeatable)")
	_ = readyAddCmd.MarkFlagRequired("name")
	_ = readyAddCmd.MarkFlagRequired("category")
	_ = readyAddCmd.MarkFlagRequired("item")

	readyLogCmd.Flags().StringVar(&readyLogDate, "date", "", "Date YYYY-MM-DD (default today)")
	readyLogCmd.Flags().StringVar(&readyLogTime, "time", "", "Time HH:MM (default now)")
}
