package fnmode

import (
	"errors"
	"fmt"
	"strings"
)

// mockRunner is a scripted CommandRunner for tests. Outputs maps a command
// line (name plus args, space-joined) to its output; Available lists the
// executables LookPath should find.
type mockRunner struct {
	Outputs   map[string]string
	Errors    map[string]error
	Available []string
	Calls     []string
}

func (m *mockRunner) Run(name string, args ...string) ([]byte, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, call)

	if err, ok := m.Errors[call]; ok {
		return []byte(m.Outputs[call]), err
	}
	if out, ok := m.Outputs[call]; ok {
		return []byte(out), nil
	}
	return nil, fmt.Errorf("unexpected command: %s", call)
}

func (m *mockRunner) LookPath(name string) (string, error) {
	for _, a := range m.Available {
		if a == name {
			return "/usr/sbin/" + name, nil
		}
	}
	return "", errors.New("executable file not found in $PATH")
}
