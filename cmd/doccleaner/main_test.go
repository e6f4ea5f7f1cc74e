package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"doccleaner/internal/config"
	"doccleaner/internal/history"
	"doccleaner/internal/preflight"
	"doccleaner/internal/testsupport"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "doccleaner.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func seedFolder(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "inbox")
	fsys := afero.NewOsFs()
	modified := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.Local)
	docx := testsupport.DOCX(t,
		testsupport.Paragraph{Style: "Title", Text: "Procedimiento de compras"},
		testsupport.Paragraph{Text: "Manual del procedimiento interno"},
	)
	testsupport.WriteDated(t, fsys, filepath.Join(root, "compras v2.docx"), docx, modified)
	testsupport.WriteDated(t, fsys, filepath.Join(root, "copia.docx"), docx, modified)
	return root
}

func TestOrganizeRestoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	root := seedFolder(t)

	stdout, stderr, err := runCLI(t, []string{root}, configPath)
	if err != nil {
		t.Fatalf("organize: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"DocCleaner Execution Complete", "Total files scanned", "Duplicates moved", "Files organized"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("summary missing %q:\n%s", want, stdout)
		}
	}

	matches, err := filepath.Glob(filepath.Join(root, "DocCleaner_Run_*", "PROCEDIMIENTOS", "Feb2025", "2025-02-03_PROCEDIMIENTO_compras_v2.docx"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("organized file not found (matches=%v err=%v)", matches, err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.QuarantineDir, "copia.docx")); err != nil {
		t.Fatalf("duplicate not quarantined: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"history", "--json"}, configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("history json: %v\n%s", err, stdout)
	}
	if len(runs) != 1 || runs[0].Organized != 1 || runs[0].Duplicates != 1 {
		t.Fatalf("unexpected history %+v", runs)
	}

	stdout, _, err = runCLI(t, []string{"logs", runs[0].ID, "-n", "0"}, configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(stdout, "run complete") {
		t.Fatalf("run log missing completion entry:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, []string{"restore", "--run", runs[0].ID[:8]}, configPath)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(stdout, "Restore complete. Restored: 2, Errors/Skipped: 0") {
		t.Fatalf("unexpected restore output:\n%s", stdout)
	}
	for _, name := range []string{"compras v2.docx", "copia.docx"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Fatalf("%s not restored: %v", name, err)
		}
	}
}

func TestOrganizeDryRunLeavesFolderUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	root := seedFolder(t)

	stdout, stderr, err := runCLI(t, []string{root, "--dry-run"}, configPath)
	if err != nil {
		t.Fatalf("dry run: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "DocCleaner Dry Run Complete") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("dry run changed the folder: %d entries", len(entries))
	}
	if _, err := os.Stat(cfg.Paths.QuarantineDir); !os.IsNotExist(err) {
		t.Fatal("dry run created the quarantine directory")
	}
}

func TestOrganizeMissingFolderFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	missing := filepath.Join(t.TempDir(), "missing")

	stdout, _, err := runCLI(t, []string{missing}, configPath)
	if err == nil {
		t.Fatal("expected error for missing folder")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Contains(stdout, "Complete") {
		t.Fatalf("summary printed for failed run:\n%s", stdout)
	}
	if _, statErr := os.Stat(missing); !os.IsNotExist(statErr) {
		t.Fatal("missing folder was created")
	}
}

func TestRestoreRequiresSingleSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)

	if _, _, err := runCLI(t, []string{"restore"}, configPath); err == nil {
		t.Fatal("expected error without manifest or --run")
	}
	if _, _, err := runCLI(t, []string{"restore", "m.json", "--run", "abc"}, configPath); err == nil {
		t.Fatal("expected error with both manifest and --run")
	}
	if _, _, err := runCLI(t, []string{"history"}, configPath); err == nil || !strings.Contains(err.Error(), "no run history") {
		t.Fatalf("expected missing history error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "conf", "doccleaner.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", stdout)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}

	stdout, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid") || !strings.Contains(stdout, target) {
		t.Fatalf("unexpected validate output:\n%s", stdout)
	}
}

func TestStatusCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)

	stdout, _, err := runCLI(t, []string{"status", t.TempDir()}, configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{
		"Configuration", "Readiness", "Input folder", "Quarantine directory", "Content extraction",
		"OK", "PROCEDIMIENTO", "Fallback: documents matching no keyword are tagged GENERIC and filed under OTROS/",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("status output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "FAIL") {
		t.Fatalf("unexpected failed check:\n%s", stdout)
	}
}

func TestConfigValidateReportsSharedKeywords(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTopics(
		config.Topic{Key: "ACTA", Folder: "ACTAS", Keywords: []string{"acta", "comité"}},
		config.Topic{Key: "INFORME", Folder: "INFORMES", Keywords: []string{"informe", "comité"}},
	))
	configPath := writeTestConfig(t, cfg)

	stdout, _, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	for _, want := range []string{"Shared keywords", "comité", "ACTA, INFORME", "Configuration valid: 2 topics"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("validate output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCheckStatusLabels(t *testing.T) {
	con := newConsole(&bytes.Buffer{})
	cases := []struct {
		result preflight.Result
		want   string
	}{
		{preflight.Result{Passed: true, Required: true}, "OK"},
		{preflight.Result{Required: true}, "FAIL"},
		{preflight.Result{}, "WARN"},
	}
	for _, tc := range cases {
		if got := con.checkStatus(tc.result); got != tc.want {
			t.Fatalf("checkStatus(%+v) = %q, want %q", tc.result, got, tc.want)
		}
	}
}
