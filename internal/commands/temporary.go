package commands

import (
	"flag"

	"github.com/mzhur/enable-fn/internal/config"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreateTemporaryCommand() *TemporaryCommand {
	gc := &TemporaryCommand{
		fs: flag.NewFlagSet("temporary", flag.ExitOnError),
	}
	return gc
}

type TemporaryCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *TemporaryCommand) Name() string {
	return g.fs.Name()
}

func (g *TemporaryCommand) Init(args []string, ctx *AppContext) error {
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

func (g *TemporaryCommand) Run() error {
	ok, err := confirm(g.ctx,
		"Apply the fix for the current session (lost on reboot)?")
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

	return runTemporary(g.cfg, g.runner)
}

// runTemporary writes the target fnmode to the sysfs parameter, loading
// the hid_apple module first when the parameter file is missing. Write
// failures are reported as warnings, not errors.
func runTemporary(cfg *config.Config, runner fnmode.CommandRunner) error {
	if !fnmode.ParamPresent(cfg.Paths.SysfsParam) {
		log.Infof("Parameter file %s not found, loading module %s",
			cfg.Paths.SysfsParam, fnmode.ModuleName)

		if loaded, err := fnmode.ModuleLoaded(runner); err != nil {
			log.Warnf("Failed to check loaded modules: %v", err)
		} else if loaded {
			log.Warnf("Module %s is loaded but %s is missing; the driver may not support the fnmode parameter",
				fnmode.ModuleName, cfg.Paths.SysfsParam)
		}

		if err := fnmode.LoadModule(runner); err != nil {
			log.Warnf("Failed to load module: %v", err)
		}
	}

	if err := fnmode.WriteParam(cfg.Paths.SysfsParam, cfg.Fnmode); err != nil {
		log.Warnf("Failed to set runtime parameter: %v", err)
		log.Warnf("The temporary fix was NOT applied")
		return nil
	}

	log.Infof("Runtime parameter set: fnmode=%d (%s)",
		cfg.Fnmode, fnmode.DescribeFnmode(int(cfg.Fnmode)))
	log.Infof("This change lasts until reboot or module reload; use the permanent fix to keep it")
	return nil
}
