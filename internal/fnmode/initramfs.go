package fnmode

import (
	"strings"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

// RebuildTool describes an initramfs rebuild command.
type RebuildTool struct {
	Name string
	Args []string
}

func (t *RebuildTool) String() string {
	return strings.Join(append([]string{t.Name}, t.Args...), " ")
}

// rebuildTools lists known initramfs rebuild commands in preference order.
// update-initramfs covers Debian/Ubuntu, dracut covers the Fedora family.
var rebuildTools = []RebuildTool{
	{Name: "update-initramfs", Args: []string{"-u"}},
	{Name: "dracut", Args: []string{"--force"}},
}

// DetectRebuildTool returns the first available initramfs rebuild tool, or
// nil when none is installed.
func DetectRebuildTool(runner CommandRunner) *RebuildTool {
	for i := range rebuildTools {
		if _, err := runner.LookPath(rebuildTools[i].Name); err == nil {
			return &rebuildTools[i]
		}
	}
	return nil
}

// RebuildInitramfs runs the detected rebuild tool. A missing tool is
// reported with ErrCodeTool so callers can downgrade it to a warning.
func RebuildInitramfs(runner CommandRunner) error {
	tool := DetectRebuildTool(runner)
	if tool == nil {
		return apperrors.New(apperrors.ErrCodeTool,
			"no initramfs rebuild tool found (tried update-initramfs, dracut)")
	}

	output, err := runner.Run(tool.Name, tool.Args...)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTool,
			tool.String()+" failed: "+strings.TrimSpace(string(output)), err)
	}
	return nil
}
