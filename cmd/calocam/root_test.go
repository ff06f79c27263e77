package calocam

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("calocam %s failed: %v\noutput: %s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calocam.db")
	for i := 0; i < 2; i++ {
		out := runCLI(t, path, "init")
		if !strings.Contains(out, "Initialized calocam database") {
			t.Fatalf("unexpected init output: %s", out)
		}
	}
}

func TestDailyTrackingFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calocam.db")
	runCLI(t, path, "init")

	runCLI(t, path,
		"profile", "set",
		"--weight", "70",
		"--height", "170",
		"--birth-date", "15/03/1996",
		"--gender", "male",
		"--goal", "lose",
	)

	runCLI(t, path,
		"meal", "add",
		"--type", "lunch",
		"--item", "chicken|200g|330|62|0|7",
		"--item", "rice|150g|195|4|42|0",
		"--date", "2026-05-04",
		"--time", "13:00",
	)
	runCLI(t, path, "water", "add", "--ml", "500", "--date", "2026-05-04", "--time", "09:00")
	runCLI(t, path, "exercise", "add", "--type", "running", "--value", "30", "--date", "2026-05-04", "--time", "07:00")

	out := runCLI(t, path, "meal", "list", "--date", "2026-05-04")
	if !strings.Contains(out, "chicken") || !strings.Contains(out, "525") {
		t.Fatalf("unexpected meal list output: %s", out)
	}

	out = runCLI(t, path, "today", "--date", "2026-05-04")
	if !strings.Contains(out, "525") {
		t.Fatalf("expected eaten calories in today output: %s", out)
	}
	if !strings.Contains(out, "300") {
		t.Fatalf("expected burned calories in today output: %s", out)
	}

	// 70 kg male adult: 2450 ml x 1.05 = 2573. The water goal does not
	// depend on the wall clock, unlike the age-based calorie target.
	out = runCLI(t, path, "goal")
	if !strings.Contains(out, "Calorie target:") {
		t.Fatalf("expected calorie target line in goal output: %s", out)
	}
	if !strings.Contains(out, "2573") {
		t.Fatalf("expected personalized water goal in goal output: %s", out)
	}
}

func TestStatsWeekJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calocam.db")
	runCLI(t, path, "init")
	runCLI(t, path, "water", "add", "--ml", "400", "--date", "2026-05-04", "--time", "10:00")

	out := runCLI(t, path, "stats", "week", "--date", "2026-05-10", "--json")
	if !strings.Contains(out, `"from_date": "2026-05-04"`) {
		t.Fatalf("expected JSON week range in output: %s", out)
	}
	if !strings.Contains(out, `"total_water_ml": 400`) {
		t.Fatalf("expected water total in output: %s", out)
	}
}

func TestBackupLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calocam.db")
	runCLI(t, path, "init")
	runCLI(t, path, "water", "add", "--ml", "500", "--date", "2026-05-04", "--time", "09:00")

	snapshot := filepath.Join(dir, "backups", "snapshot.db")
	out := runCLI(t, path, "backup", "create", "--to", snapshot)
	if !strings.Contains(out, "Wrote backup to "+snapshot) || !strings.Contains(out, "SHA-256:") {
		t.Fatalf("unexpected create output: %s", out)
	}

	out = runCLI(t, path, "backup", "list", "--dir", filepath.Join(dir, "backups"))
	if !strings.Contains(out, "snapshot.db") {
		t.Fatalf("expected snapshot in list output: %s", out)
	}

	// Restoring over the live database requires --force.
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "backup", "restore", snapshot})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected restore without --force to fail")
	}

	out = runCLI(t, path, "backup", "restore", snapshot, "--force")
	if !strings.Contains(out, "Restored "+path) {
		t.Fatalf("unexpected restore output: %s", out)
	}

	out = runCLI(t, path, "water", "list", "--date", "2026-05-04")
	if !strings.Contains(out, "500") {
		t.Fatalf("expected restored water entry: %s", out)
	}
}

func TestConfigOverrideFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calocam.db")
	runCLI(t, path, "init")

	runCLI(t, path, "config", "set", "water_goal_ml", "3000")
	out := runCLI(t, path, "config", "get", "water_goal_ml")
	if !strings.Contains(out, "3000") {
		t.Fatalf("expected stored override in output: %s", out)
	}

	out = runCLI(t, path, "goal")
	if !strings.Contains(out, "3000") {
		t.Fatalf("expected overridden water goal in output: %s", out)
	}
}
