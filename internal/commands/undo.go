package commands

import (
	"flag"

	"github.com/mzhur/enable-fn/internal/backup"
	"github.com/mzhur/enable-fn/internal/config"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreateUndoCommand() *UndoCommand {
	gc := &UndoCommand{
		fs: flag.NewFlagSet("undo", flag.ExitOnError),
	}
	return gc
}

type UndoCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *UndoCommand) Name() string {
	return g.fs.Name()
}

func (g *UndoCommand) Init(args []string, ctx *AppContext) error {
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

func (g *UndoCommand) Run() error {
	ok, err := confirm(g.ctx, "Undo the permanent fix?")
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

	return runUndo(g.cfg, g.runner)
}

// runUndo backs up the modprobe.d config, removes the exact options line,
// verifies the removal and rebuilds the initramfs. An absent config file
// is a warning no-op. The runtime parameter is reset to the driver default
// on a best-effort basis.
func runUndo(cfg *config.Config, runner fnmode.CommandRunner) error {
	conf := confFileFor(cfg)

	if !conf.Exists() {
		log.Warnf("Config file %s does not exist, nothing to undo", conf.Path)
	} else {
		bak, err := backup.Create(cfg.Paths.BackupDir, conf.Path)
		if err != nil {
			return err
		}
		log.Infof("Backed up %s to %s", conf.Path, bak)

		removed, err := conf.RemoveLine()
		if err != nil {
			return err
		}

		if !removed {
			log.Warnf("Options line %q not found in %s", conf.Line, conf.Path)
		} else {
			if present, err := conf.HasLine(); err != nil {
				return err
			} else if present {
				return apperrors.New(apperrors.ErrCodeConf,
					"options line still present after removal")
			}
			log.Infof("Removed %q from %s", conf.Line, conf.Path)
		}

		rebuildInitramfsOrWarn(runner)
	}

	if fnmode.ParamWritable(cfg.Paths.SysfsParam) {
		if err := fnmode.WriteParam(cfg.Paths.SysfsParam, fnmode.FnmodeMediaFirst); err != nil {
			log.Warnf("Failed to reset runtime parameter: %v", err)
		} else {
			log.Infof("Runtime parameter reset to driver default fnmode=%d (%s)",
				fnmode.FnmodeMediaFirst, fnmode.DescribeFnmode(fnmode.FnmodeMediaFirst))
		}
	} else {
		log.Infof("Runtime parameter %s not writable, it will reset on reboot", cfg.Paths.SysfsParam)
	}

	log.Infof("Undo completed")
	return nil
}
