package commands

import (
	"flag"

	"github.com/mzhur/enable-fn/internal/config"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreateDryRunCommand() *DryRunCommand {
	gc := &DryRunCommand{
		fs: flag.NewFlagSet("dry-run", flag.ExitOnError),
	}
	return gc
}

type DryRunCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *DryRunCommand) Name() string {
	return g.fs.Name()
}

func (g *DryRunCommand) Init(args []string, ctx *AppContext) error {
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

func (g *DryRunCommand) Run() error {
	return runDryRun(g.cfg, g.runner)
}

// runDryRun prints the steps every mutating action would take, annotated
// with the current system state. It only reads the filesystem.
func runDryRun(cfg *config.Config, runner fnmode.CommandRunner) error {
	conf := confFileFor(cfg)

	log.Infof("Dry-run: no changes will be made")

	log.Infof("--- temporary ---")
	if fnmode.ParamPresent(cfg.Paths.SysfsParam) {
		log.Infof("  would write '%d' to %s", cfg.Fnmode, cfg.Paths.SysfsParam)
	} else {
		log.Infof("  would run 'modprobe %s' (parameter file %s is missing)",
			fnmode.ModuleName, cfg.Paths.SysfsParam)
		log.Infof("  would then write '%d' to %s", cfg.Fnmode, cfg.Paths.SysfsParam)
	}

	log.Infof("--- permanent ---")
	if present, err := conf.HasLine(); err != nil {
		log.Warnf("  cannot read %s: %v", conf.Path, err)
	} else if present {
		log.Infof("  options line already present in %s, would skip edit", conf.Path)
	} else {
		if conf.Exists() {
			log.Infof("  would back up %s into %s", conf.Path, cfg.Paths.BackupDir)
		} else {
			log.Infof("  would create %s", conf.Path)
		}
		log.Infof("  would write %q to %s", conf.Line, conf.Path)
	}
	describeRebuildPlan(runner)

	log.Infof("--- undo ---")
	if !conf.Exists() {
		log.Infof("  %s does not exist, undo would be a no-op", conf.Path)
	} else {
		log.Infof("  would back up %s into %s", conf.Path, cfg.Paths.BackupDir)
		log.Infof("  would delete line %q from %s", conf.Line, conf.Path)
		describeRebuildPlan(runner)
	}

	return nil
}

func describeRebuildPlan(runner fnmode.CommandRunner) {
	if tool := fnmode.DetectRebuildTool(runner); tool != nil {
		log.Infof("  would rebuild the initramfs with '%s'", tool)
	} else {
		log.Warnf("  no initramfs rebuild tool available, would warn and continue")
	}
}
