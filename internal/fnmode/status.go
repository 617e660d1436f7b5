package fnmode

import (
	"os"

	"github.com/mzhur/enable-fn/internal/config"
)

// Status captures the three independent states reported by the status
// action: the runtime parameter, the persistent config line, and the
// availability of the tools needed to change them.
type Status struct {
	// Runtime parameter.
	ParamPresent  bool
	ParamReadable bool
	ParamValue    int

	// Persistent config.
	ConfPresent bool
	LinePresent bool
	ConfErr     error

	// Tooling and privileges.
	ModprobeAvailable bool
	RebuildTool       *RebuildTool
	Root              bool
}

// TargetApplied reports whether the runtime parameter currently holds the
// target value.
func (s *Status) TargetApplied(target uint8) bool {
	return s.ParamReadable && s.ParamValue == int(target)
}

// AutoDetectActive reports whether the driver is in auto-detect mode,
// which misidentifies many non-Apple keyboards.
func (s *Status) AutoDetectActive() bool {
	return s.ParamReadable && s.ParamValue == FnmodeAuto
}

// CollectStatus gathers the current system state. Unreadable paths are
// recorded, not fatal.
func CollectStatus(cfg *config.Config, runner CommandRunner) *Status {
	s := &Status{
		Root: os.Geteuid() == 0,
	}

	s.ParamPresent = ParamPresent(cfg.Paths.SysfsParam)
	if s.ParamPresent {
		if value, err := ReadParam(cfg.Paths.SysfsParam); err == nil {
			s.ParamReadable = true
			s.ParamValue = value
		}
	}

	conf := &ConfFile{
		Path: cfg.Paths.ModprobeConf,
		Line: RenderOptionsLine(cfg.OptionsLineTemplate, cfg.Fnmode),
	}
	s.ConfPresent = conf.Exists()
	if s.ConfPresent {
		s.LinePresent, s.ConfErr = conf.HasLine()
	}

	if _, err := runner.LookPath("modprobe"); err == nil {
		s.ModprobeAvailable = true
	}
	s.RebuildTool = DetectRebuildTool(runner)

	return s
}
