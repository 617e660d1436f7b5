package fnmode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

// OptionsLinePrefix matches any options line for the hid_apple module,
// regardless of the pinned fnmode value.
const OptionsLinePrefix = "options " + ModuleName

// TemplateFnmode is the template variable holding the fnmode value.
const TemplateFnmode = "fnmode"

// RenderOptionsLine renders the modprobe.d options line from its template.
func RenderOptionsLine(template string, value uint8) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	t := fasttemplate.New(template, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		TemplateFnmode: strconv.FormatUint(uint64(value), 10),
	})
}

// ConfFile edits a modprobe.d config file, keeping the invariant that at
// most one options line for hid_apple exists in it.
type ConfFile struct {
	Path string
	Line string
}

// Exists reports whether the config file is present.
func (c *ConfFile) Exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}

// HasLine reports whether the exact options line is present. A missing
// file reads as "not present" without error.
func (c *ConfFile) HasLine() (bool, error) {
	lines, err := c.readLines()
	if err != nil {
		return false, err
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == c.Line {
			return true, nil
		}
	}
	return false, nil
}

// EnsureLine makes sure the options line is present exactly once, creating
// the file (and its parent directory) when needed and replacing any
// existing hid_apple options line pinning a different value. Returns
// whether the file was modified.
func (c *ConfFile) EnsureLine() (bool, error) {
	lines, err := c.readLines()
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(lines)+1)
	present := false
	dropped := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == c.Line {
			if present {
				dropped = true
				continue
			}
			present = true
		} else if strings.HasPrefix(trimmed, OptionsLinePrefix+" ") || trimmed == OptionsLinePrefix {
			dropped = true
			continue
		}
		kept = append(kept, line)
	}

	if present && !dropped {
		return false, nil
	}

	if !present {
		kept = append(kept, c.Line)
	}

	if err := c.writeLines(kept); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveLine deletes the exact options line from the file. A missing file
// or an absent line is a no-op. Returns whether the file was modified.
func (c *ConfFile) RemoveLine() (bool, error) {
	if !c.Exists() {
		return false, nil
	}

	lines, err := c.readLines()
	if err != nil {
		return false, err
	}

	kept := make([]string, 0, len(lines))
	removed := false
	for _, line := range lines {
		if strings.TrimSpace(line) == c.Line {
			removed = true
			continue
		}
		kept = append(kept, line)
	}

	if !removed {
		return false, nil
	}

	if err := c.writeLines(kept); err != nil {
		return false, err
	}
	return true, nil
}

// readLines returns the file content split into lines, without trailing
// newline artifacts. A missing file yields no lines.
func (c *ConfFile) readLines() ([]string, error) {
	content, err := os.ReadFile(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConf,
			fmt.Sprintf("failed to read %s", c.Path), err)
	}

	text := strings.TrimRight(string(content), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func (c *ConfFile) writeLines(lines []string) error {
	parentDir := filepath.Dir(c.Path)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeConf,
			fmt.Sprintf("failed to create directory %s", parentDir), err)
	}

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	if err := os.WriteFile(c.Path, []byte(content), 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeConf,
			fmt.Sprintf("failed to write %s", c.Path), err)
	}
	return nil
}
