package calocam

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and inspect meals",
}

var (
	mealType    string
	mealItems   []string
	mealDate    string
	mealTime    string
	listMealArg service.ListMealsFilter
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal from one or more items",
	Long:  "Each --item is name|portion|calories|protein|carbs|fat, for example --item 'oatmeal|100g|350|12|60|6'. The meal total is the sum of item calories.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eatenAt, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		items := make([]service.MealItemInput, 0, len(mealItems))
		for _, raw := range mealItems {
			item, err := parseMealItem(raw)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateMeal(sqldb, service.CreateMealInput{
				MealType: mealType,
				Items:    items,
				EatenAt:  eatenAt,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal #%d (%s, %d items)\n", id, mealType, len(items))
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.ListMeals(sqldb, listMealArg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tWHEN\tTYPE\tKCAL\tITEMS")
			for _, m := range meals {
				names := make([]string, 0, len(m.Items))
				for _, it := range m.Items {
					names = append(names, it.Name)
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s\n", m.ID, m.EatenAt.Format("2006-01-02 15:04"), m.MealType, m.TotalCalories, strings.Join(names, ", "))
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal record and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal #%d\n", id)
			return nil
		})
	},
}

func parseMealItem(raw string) (service.MealItemInput, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 6 {
		return service.MealItemInput{}, fmt.Errorf("invalid --item %q (expected name|portion|calories|protein|carbs|fat)", raw)
	}
	ints := make([]int, 4)
	for i, p := range parts[2:] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return service.MealItemInput{}, fmt.Errorf("invalid number %q in --item %q", p, raw)
		}
		ints[i] = v
	}
	return service.MealItemInput{
		Name:     strings.TrimSpace(parts[0]),
		Portion:  strings.TrimSpace(parts[1]),
		Calories: ints[0],
		ProteinG: ints[1],
		CarbsG:   ints[2],
		FatG:     ints[3],
	}, nil
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type (breakfast, lunch, dinner, snack)")
	mealAddCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Food item as name|portion|calories|protein|carbs|fat (repeatable)")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time HH:MM (default now)")
	_ = mealAddCmd.MarkFlagRequired("type")
	_ = mealAddCmd.MarkFlagRequired("item")

	mealListCmd.Flags().StringVar(&listMealArg.Date, "date", "", "Filter by date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&listMealArg.FromDate, "from", "", "Filter from date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&listMealArg.ToDate, "to", "", "Filter to date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&listMealArg.MealType, "type", "", "Filter by meal type")
	mealListCmd.Flags().IntVar(&listMealArg.Limit, "limit", 50, "Max rows")
}
