package calocam

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportFrom string
	exportTo   string
	importFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profile and logs as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		from := time.Now().AddDate(-10, 0, 0)
		to := time.Now()
		var err error
		if exportFrom != "" {
			if from, err = time.ParseInLocation("2006-01-02", exportFrom, time.Local); err != nil {
				return fmt.Errorf("invalid --from date (expected YYYY-MM-DD)")
			}
		}
		if exportTo != "" {
			if to, err = time.ParseInLocation("2006-01-02", exportTo, time.Local); err != nil {
				return fmt.Errorf("invalid --to date (expected YYYY-MM-DD)")
			}
		}
		return withDB(func(sqldb *sql.DB) error {
			w := cmd.OutOrStdout()
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			doc, err := service.Export(sqldb, w, from, to)
			if err != nil {
				return err
			}
			if exportOut != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meals, %d water entries, %d exercise logs (batch %s) to %s\n",
					len(doc.Meals), len(doc.Water), len(doc.Exercise), doc.ExportID, exportOut)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a previously exported JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return withDB(func(sqldb *sql.DB) error {
			stats, err := service.Import(sqldb, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d meals, %d water entries, %d exercise logs (batch %s)\n",
				stats.MealsImported, stats.WaterImported, stats.LogsImported, stats.ExportID)
			if stats.ProfileApplied {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile applied")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start YYYY-MM-DD (default: everything)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end YYYY-MM-DD (default today)")

	importCmd.Flags().StringVar(&importFile, "file", "", "Export JSON file to import")
}
