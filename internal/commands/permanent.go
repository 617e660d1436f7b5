package commands

import (
	"flag"
	"strings"

	"github.com/mzhur/enable-fn/internal/backup"
	"github.com/mzhur/enable-fn/internal/config"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreatePermanentCommand() *PermanentCommand {
	gc := &PermanentCommand{
		fs: flag.NewFlagSet("permanent", flag.ExitOnError),
	}
	return gc
}

type PermanentCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *PermanentCommand) Name() string {
	return g.fs.Name()
}

func (g *PermanentCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	g.runner = fnmode.NewExecRunner()

	return nil
}

func (g *PermanentCommand) Run() error {
	ok, err := confirm(g.ctx,
		"Apply the fix permanently (modprobe config + initramfs rebuild)?")
	if err != nil {
		return err
	}
	if !ok {
		log.Infof("Cancelled")
		return nil
	}

	if err := requireRoot(); err != nil {
		return err
	}

	return runPermanent(g.ctx, g.cfg, g.runner)
}

// runPermanent ensures the options line exists in the modprobe.d config
// (backing the file up first when it needs editing) and rebuilds the
// initramfs. A missing rebuild tool is a warning, not an abort.
func runPermanent(ctx *AppContext, cfg *config.Config, runner fnmode.CommandRunner) error {
	conf := confFileFor(cfg)

	present, err := conf.HasLine()
	if err != nil {
		return err
	}

	if present {
		log.Infof("Options line already present in %s, skipping edit", conf.Path)
	} else {
		if conf.Exists() {
			bak, err := backup.Create(cfg.Paths.BackupDir, conf.Path)
			if err != nil {
				return err
			}
			log.Infof("Backed up %s to %s", conf.Path, bak)
		}

		if _, err := conf.EnsureLine(); err != nil {
			return err
		}
		log.Infof("Wrote %q to %s", conf.Line, conf.Path)
	}

	rebuildInitramfsOrWarn(runner)

	log.Infof("Permanent fix applied; it takes effect on the next boot")
	offerReboot(ctx, runner)
	return nil
}

// offerReboot asks whether to reboot right away. The prompt is never
// auto-answered by -yes: an unattended run must not reboot the machine.
func offerReboot(ctx *AppContext, runner fnmode.CommandRunner) {
	if ctx.AssumeYes {
		log.Infof("Reboot (or run 'temporary') to activate the fix now")
		return
	}

	ok, err := confirm(&AppContext{}, "Reboot now to activate the fix?")
	if err != nil || !ok {
		log.Infof("Not rebooting; run 'temporary' to activate the fix for this session")
		return
	}

	log.Infof("Rebooting...")
	if output, err := runner.Run("reboot"); err != nil {
		log.Warnf("Failed to reboot: %v (%s)", err, strings.TrimSpace(string(output)))
	}
}

// rebuildInitramfsOrWarn rebuilds the initramfs and downgrades any failure
// to a warning so a missing tool never aborts the edit that already
// happened.
func rebuildInitramfsOrWarn(runner fnmode.CommandRunner) {
	tool := fnmode.DetectRebuildTool(runner)
	if tool == nil {
		log.Warnf("No initramfs rebuild tool found (tried update-initramfs, dracut)")
		log.Warnf("Rebuild the initramfs manually so the setting applies at early boot")
		return
	}

	log.Infof("Rebuilding initramfs with '%s' (this may take a while)...", tool)
	if err := fnmode.RebuildInitramfs(runner); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeTool) {
			log.Warnf("%v", err)
		} else {
			log.Warnf("Initramfs rebuild failed: %v", err)
		}
		return
	}
	log.Infof("Initramfs rebuilt")
}
