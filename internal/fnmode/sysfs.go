package fnmode

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

// Fnmode values understood by the hid_apple driver.
const (
	FnmodeDisabled   = 0
	FnmodeMediaFirst = 1
	FnmodeFnFirst    = 2
	FnmodeAuto       = 3
)

// DescribeFnmode returns a short human-readable meaning for a fnmode value.
func DescribeFnmode(value int) string {
	switch value {
	case FnmodeDisabled:
		return "disabled (Fn key ignored)"
	case FnmodeMediaFirst:
		return "media keys first (hold Fn for F1-F12)"
	case FnmodeFnFirst:
		return "function keys first (hold Fn for media keys)"
	case FnmodeAuto:
		return "auto-detect (keyboard type guessed by the driver)"
	default:
		return "unknown"
	}
}

// ParamPresent reports whether the sysfs parameter file exists, which
// implies the hid_apple module is loaded.
func ParamPresent(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ParamWritable reports whether the current process may write the sysfs
// parameter file.
func ParamWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// ReadParam reads the current fnmode value from the sysfs parameter file.
func ReadParam(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeSysfs,
			fmt.Sprintf("failed to read parameter file %s", path), err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeSysfs,
			fmt.Sprintf("unexpected parameter value in %s", path), err)
	}

	return value, nil
}

// WriteParam writes value to the sysfs parameter file. The change takes
// effect immediately but does not survive a reboot or module reload.
func WriteParam(path string, value uint8) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSysfs,
			fmt.Sprintf("failed to open parameter file %s", path), err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(int(value))); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSysfs,
			fmt.Sprintf("failed to write parameter file %s", path), err)
	}

	return nil
}
