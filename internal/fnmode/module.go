package fnmode

import (
	"strings"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

// ModuleName is the kernel module owning the fnmode parameter.
const ModuleName = "hid_apple"

// ModuleLoaded checks whether the hid_apple module is currently loaded.
func ModuleLoaded(runner CommandRunner) (bool, error) {
	output, err := runner.Run("lsmod")
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeModprobe,
			"failed to check loaded modules", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == ModuleName {
			return true, nil
		}
	}

	return false, nil
}

// LoadModule loads the hid_apple module via modprobe.
func LoadModule(runner CommandRunner) error {
	output, err := runner.Run("modprobe", ModuleName)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeModprobe,
			"modprobe "+ModuleName+" failed: "+strings.TrimSpace(string(output)), err)
	}
	return nil
}
