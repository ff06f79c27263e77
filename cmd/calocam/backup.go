package calocam

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the database",
}

var (
	backupTo     string
	backupDir    string
	restoreForce bool
)

// backupTargetDir resolves where snapshots live: --dir when given,
// otherwise a backups/ directory next to the database file.
func backupTargetDir() (string, error) {
	if backupDir != "" {
		return backupDir, nil
	}
	db, err := resolveDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(db), "backups"), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database with a SHA-256 sidecar",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		target := backupTo
		if target == "" {
			dir, err := backupTargetDir()
			if err != nil {
				return err
			}
			target = filepath.Join(dir, fmt.Sprintf("calocam-%s.db", time.Now().Format("20060102-150405")))
		}
		info, err := service.CreateBackup(db, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote backup to %s (%d bytes)\n", info.Path, info.SizeBytes)
		fmt.Fprintf(cmd.OutOrStdout(), "SHA-256: %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := backupTargetDir()
		if err != nil {
			return err
		}
		snapshots, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(snapshots) == 0 {
			fmt.Fprintf(out, "No backups in %s\n", dir)
			return nil
		}
		fmt.Fprintln(out, "CREATED\tSIZE\tFILE\tSHA-256")
		for _, s := range snapshots {
			fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", s.CreatedAt.Format("2006-01-02 15:04:05"), s.SizeBytes, s.Path, s.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the database from a snapshot",
	Long:  "Verifies the snapshot against its .sha256 sidecar when present. Refuses to overwrite an existing database unless --force is set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], db, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", db, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupTo, "to", "", "Snapshot file path (default: timestamped file in the backup directory)")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: backups/ next to the database)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: backups/ next to the database)")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite an existing database")
}
