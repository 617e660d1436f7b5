package fnmode

import (
	"os/exec"
)

// CommandRunner abstracts external command execution so that command
// invocations can be mocked in tests.
type CommandRunner interface {
	// Run executes the command and returns its combined output.
	Run(name string, args ...string) ([]byte, error)
	// LookPath searches for an executable in PATH.
	LookPath(name string) (string, error)
}

type execRunner struct{}

// NewExecRunner returns a CommandRunner backed by os/exec.
func NewExecRunner() CommandRunner {
	return &execRunner{}
}

func (r *execRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

func (r *execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
