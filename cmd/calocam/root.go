package calocam

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "calocam",
	Short: "calocam tracks calories, water, and exercise from your terminal",
	Long:  "calocam is a local-first calorie, water, and exercise tracking CLI with personalized targets, ready meals, and daily statistics.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
