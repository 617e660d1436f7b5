package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mzhur/enable-fn/internal/backup"
	"github.com/mzhur/enable-fn/internal/config"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func init() {
	log.DisableLogs()
}

// fakeRunner records commands without executing anything.
type fakeRunner struct {
	Available []string
	Calls     []string
}

func (f *fakeRunner) Run(name string, args ...string) ([]byte, error) {
	f.Calls = append(f.Calls, strings.Join(append([]string{name}, args...), " "))
	return nil, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	for _, a := range f.Available {
		if a == name {
			return "/usr/sbin/" + name, nil
		}
	}
	return "", errors.New("executable file not found in $PATH")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.SysfsParam = filepath.Join(tmpDir, "fnmode")
	cfg.Paths.ModprobeConf = filepath.Join(tmpDir, "modprobe.d", "hid_apple.conf")
	cfg.Paths.BackupDir = filepath.Join(tmpDir, "backups")
	return cfg
}

// snapshotTree records every path and file content under the config's
// directories so dry-run mutations can be detected.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	snapshot := make(map[string]string)
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			snapshot[path] = "<dir>"
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", path, err)
		}
		snapshot[path] = string(content)
		return nil
	})
	return snapshot
}

func TestRequireRoot(t *testing.T) {
	orig := geteuid
	defer func() { geteuid = orig }()

	geteuid = func() int { return 1000 }
	err := requireRoot()
	if err == nil {
		t.Fatal("Expected privilege error for uid 1000")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodePrivilege) {
		t.Errorf("Expected PRIVILEGE_ERROR, got: %v", err)
	}

	geteuid = func() int { return 0 }
	if err := requireRoot(); err != nil {
		t.Errorf("Expected no error for uid 0: %v", err)
	}
}

func TestRunDryRun_NoMutation(t *testing.T) {
	cfg := testConfig(t)
	root := filepath.Dir(cfg.Paths.SysfsParam)

	// Seed some existing state to make the dry-run walk every branch.
	if err := os.WriteFile(cfg.Paths.SysfsParam, []byte("1\n"), 0644); err != nil {
		t.Fatalf("Failed to seed param file: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Paths.ModprobeConf), 0755); err != nil {
		t.Fatalf("Failed to create conf dir: %v", err)
	}
	if err := os.WriteFile(cfg.Paths.ModprobeConf, []byte("options hid_apple fnmode=1\n"), 0644); err != nil {
		t.Fatalf("Failed to seed conf file: %v", err)
	}

	before := snapshotTree(t, root)

	runner := &fakeRunner{Available: []string{"update-initramfs"}}
	if err := runDryRun(cfg, runner); err != nil {
		t.Fatalf("runDryRun failed: %v", err)
	}

	after := snapshotTree(t, root)
	if len(before) != len(after) {
		t.Fatalf("Dry-run changed the file tree: %d -> %d entries", len(before), len(after))
	}
	for path, content := range before {
		if after[path] != content {
			t.Errorf("Dry-run modified %s", path)
		}
	}

	if len(runner.Calls) != 0 {
		t.Errorf("Dry-run must not execute commands, ran: %v", runner.Calls)
	}
}

func TestRunPermanent_AppendsOnceAndBacksUp(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{Available: []string{"update-initramfs"}}

	if err := os.MkdirAll(filepath.Dir(cfg.Paths.ModprobeConf), 0755); err != nil {
		t.Fatalf("Failed to create conf dir: %v", err)
	}
	original := "# pre-existing\noptions hid_apple fnmode=1\n"
	if err := os.WriteFile(cfg.Paths.ModprobeConf, []byte(original), 0644); err != nil {
		t.Fatalf("Failed to seed conf file: %v", err)
	}

	if err := runPermanent(&AppContext{AssumeYes: true}, cfg, runner); err != nil {
		t.Fatalf("runPermanent failed: %v", err)
	}

	conf := confFileFor(cfg)
	present, err := conf.HasLine()
	if err != nil || !present {
		t.Fatalf("Expected options line to be present, err=%v", err)
	}

	backups, err := backup.List(cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("Failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("Expected 1 backup, got %d", len(backups))
	}
	content, err := os.ReadFile(backups[0].Path)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	if string(content) != original {
		t.Errorf("Backup must hold pre-edit content, got %q", content)
	}

	if len(runner.Calls) != 1 || runner.Calls[0] != "update-initramfs -u" {
		t.Errorf("Expected initramfs rebuild, ran: %v", runner.Calls)
	}

	// Second apply: line already present, no new backup, still one line.
	runner.Calls = nil
	if err := runPermanent(&AppContext{AssumeYes: true}, cfg, runner); err != nil {
		t.Fatalf("Second runPermanent failed: %v", err)
	}

	backups, _ = backup.List(cfg.Paths.BackupDir)
	if len(backups) != 1 {
		t.Errorf("Re-apply must not create another backup, got %d", len(backups))
	}

	data, _ := os.ReadFile(cfg.Paths.ModprobeConf)
	if strings.Count(string(data), conf.Line) != 1 {
		t.Errorf("Expected exactly one options line, got content: %q", data)
	}
}

func TestRunPermanent_MissingRebuildToolIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{}

	if err := runPermanent(&AppContext{AssumeYes: true}, cfg, runner); err != nil {
		t.Fatalf("Missing rebuild tool must not abort: %v", err)
	}

	conf := confFileFor(cfg)
	if present, _ := conf.HasLine(); !present {
		t.Error("Options line should still be written")
	}
	if len(runner.Calls) != 0 {
		t.Errorf("No commands should run without a rebuild tool, ran: %v", runner.Calls)
	}
}

func TestRunUndo_RemovesLineAndBacksUp(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{Available: []string{"update-initramfs"}}

	if err := runPermanent(&AppContext{AssumeYes: true}, cfg, runner); err != nil {
		t.Fatalf("runPermanent failed: %v", err)
	}
	runner.Calls = nil

	if err := runUndo(cfg, runner); err != nil {
		t.Fatalf("runUndo failed: %v", err)
	}

	conf := confFileFor(cfg)
	if present, _ := conf.HasLine(); present {
		t.Error("Options line should be removed")
	}

	backups, err := backup.List(cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("Failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("Undo should take a backup before editing, got %d", len(backups))
	}

	if len(runner.Calls) != 1 || runner.Calls[0] != "update-initramfs -u" {
		t.Errorf("Expected initramfs rebuild after undo, ran: %v", runner.Calls)
	}
}

func TestRunUndo_AbsentConfIsNoop(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{Available: []string{"update-initramfs"}}

	if err := runUndo(cfg, runner); err != nil {
		t.Fatalf("Undo with absent config must not error: %v", err)
	}

	if len(runner.Calls) != 0 {
		t.Errorf("No rebuild should happen for a no-op undo, ran: %v", runner.Calls)
	}
	backups, _ := backup.List(cfg.Paths.BackupDir)
	if len(backups) != 0 {
		t.Errorf("No backup should be taken for a no-op undo, got %d", len(backups))
	}
}

func TestRunTemporary_WritesParam(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{}

	if err := os.WriteFile(cfg.Paths.SysfsParam, []byte("1\n"), 0644); err != nil {
		t.Fatalf("Failed to seed param file: %v", err)
	}

	if err := runTemporary(cfg, runner); err != nil {
		t.Fatalf("runTemporary failed: %v", err)
	}

	value, err := fnmode.ReadParam(cfg.Paths.SysfsParam)
	if err != nil {
		t.Fatalf("Failed to read param: %v", err)
	}
	if value != int(cfg.Fnmode) {
		t.Errorf("Expected fnmode %d, got %d", cfg.Fnmode, value)
	}

	if len(runner.Calls) != 0 {
		t.Errorf("No module load needed when the parameter exists, ran: %v", runner.Calls)
	}
}

func TestRunTemporary_WriteFailureIsNonFatal(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{}

	// Parameter file absent: module load attempted, write fails, still no error.
	if err := runTemporary(cfg, runner); err != nil {
		t.Fatalf("Write failure must be non-fatal: %v", err)
	}

	found := false
	for _, call := range runner.Calls {
		if call == "modprobe hid_apple" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a modprobe attempt, ran: %v", runner.Calls)
	}
}
