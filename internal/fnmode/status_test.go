package fnmode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mzhur/enable-fn/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.SysfsParam = filepath.Join(tmpDir, "fnmode")
	cfg.Paths.ModprobeConf = filepath.Join(tmpDir, "hid_apple.conf")
	cfg.Paths.BackupDir = filepath.Join(tmpDir, "backups")
	return cfg
}

func TestCollectStatus_NothingApplied(t *testing.T) {
	cfg := testConfig(t)
	runner := &mockRunner{Available: []string{"modprobe", "update-initramfs"}}

	s := CollectStatus(cfg, runner)

	if s.ParamPresent {
		t.Error("Parameter should be absent")
	}
	if s.ConfPresent || s.LinePresent {
		t.Error("Config should be absent")
	}
	if !s.ModprobeAvailable {
		t.Error("modprobe should be reported available")
	}
	if s.RebuildTool == nil {
		t.Error("Rebuild tool should be detected")
	}
	if s.TargetApplied(cfg.Fnmode) {
		t.Error("Target cannot be applied without a parameter file")
	}
}

func TestCollectStatus_RuntimeOnly(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Paths.SysfsParam, []byte("2\n"), 0644); err != nil {
		t.Fatalf("Failed to write param file: %v", err)
	}
	runner := &mockRunner{}

	s := CollectStatus(cfg, runner)

	if !s.ParamPresent || !s.ParamReadable {
		t.Fatal("Parameter should be present and readable")
	}
	if !s.TargetApplied(2) {
		t.Error("Target fnmode=2 should be reported as applied")
	}
	if s.LinePresent {
		t.Error("Config line should be absent")
	}
	if s.RebuildTool != nil {
		t.Error("No rebuild tool should be found")
	}
}

func TestCollectStatus_PersistentOnly(t *testing.T) {
	cfg := testConfig(t)
	line := RenderOptionsLine(cfg.OptionsLineTemplate, cfg.Fnmode)
	if err := os.WriteFile(cfg.Paths.ModprobeConf, []byte(line+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write conf file: %v", err)
	}
	runner := &mockRunner{}

	s := CollectStatus(cfg, runner)

	if !s.ConfPresent || !s.LinePresent {
		t.Error("Config line should be detected")
	}
	if s.ParamPresent {
		t.Error("Parameter should be absent")
	}
}

func TestStatus_AutoDetectActive(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Paths.SysfsParam, []byte("3\n"), 0644); err != nil {
		t.Fatalf("Failed to write param file: %v", err)
	}

	s := CollectStatus(cfg, &mockRunner{})

	if !s.AutoDetectActive() {
		t.Error("fnmode=3 should be flagged as auto-detect")
	}
}
