package commands

import (
	"flag"

	"github.com/mzhur/enable-fn/internal/config"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreateStatusCommand() *StatusCommand {
	gc := &StatusCommand{
		fs: flag.NewFlagSet("status", flag.ExitOnError),
	}
	return gc
}

type StatusCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *StatusCommand) Name() string {
	return g.fs.Name()
}

func (g *StatusCommand) Init(args []string, ctx *AppContext) error {
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

func (g *StatusCommand) Run() error {
	return runStatus(g.cfg, g.runner)
}

// runStatus prints a diagnosis of the runtime parameter, the persistent
// config line and tool availability. Unreadable paths are warnings.
func runStatus(cfg *config.Config, runner fnmode.CommandRunner) error {
	s := fnmode.CollectStatus(cfg, runner)
	conf := confFileFor(cfg)

	log.Infof("--------------- Runtime ---------------")
	if !s.ParamPresent {
		log.Warnf("Parameter file %s not found (module %s not loaded or too old)",
			cfg.Paths.SysfsParam, fnmode.ModuleName)
	} else if !s.ParamReadable {
		log.Warnf("Parameter file %s exists but could not be read", cfg.Paths.SysfsParam)
	} else {
		log.Infof("Current fnmode: %d (%s)", s.ParamValue, fnmode.DescribeFnmode(s.ParamValue))
		if s.AutoDetectActive() {
			log.Warnf("Auto-detect mode is RISKY: non-Apple keyboards are frequently misdetected")
		}
	}

	log.Infof("-------------- Persistent -------------")
	if !s.ConfPresent {
		log.Infof("No modprobe config at %s (fix not persistent)", cfg.Paths.ModprobeConf)
	} else if s.ConfErr != nil {
		log.Warnf("Could not read %s: %v", cfg.Paths.ModprobeConf, s.ConfErr)
	} else if s.LinePresent {
		log.Infof("Fix line present in %s: %q", cfg.Paths.ModprobeConf, conf.Line)
	} else {
		log.Infof("%s exists but does not contain %q", cfg.Paths.ModprobeConf, conf.Line)
	}

	log.Infof("---------------- Tools ----------------")
	if s.ModprobeAvailable {
		log.Infof("modprobe: available")
	} else {
		log.Warnf("modprobe: NOT found in PATH")
	}
	if s.RebuildTool != nil {
		log.Infof("initramfs rebuild: '%s'", s.RebuildTool)
	} else {
		log.Warnf("initramfs rebuild: no tool found (tried update-initramfs, dracut)")
	}
	if s.Root {
		log.Infof("privileges: running as root")
	} else {
		log.Warnf("privileges: not root, mutating actions will be refused")
	}

	log.Infof("--------------- Summary ---------------")
	switch {
	case s.TargetApplied(cfg.Fnmode) && s.LinePresent:
		log.Infof("Fix is active now and persists across reboots")
	case s.TargetApplied(cfg.Fnmode):
		log.Infof("Fix is active for this session only; run 'permanent' to keep it")
	case s.LinePresent:
		log.Infof("Fix is configured but not active yet; reboot or run 'temporary'")
	default:
		log.Infof("Fix is not applied")
	}

	return nil
}
