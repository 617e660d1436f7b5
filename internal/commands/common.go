package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mzhur/enable-fn/internal/config"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/term"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	AssumeYes  bool
}

// Overridable in tests.
var geteuid = os.Geteuid

// loadAndValidateConfigOrFail loads configuration from file and validates it.
// A missing config file is fine and yields built-in defaults.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// requireRoot returns a privilege error when the process is not running as
// root. main maps this error code to exit code 2.
func requireRoot() error {
	if geteuid() != 0 {
		return apperrors.New(apperrors.ErrCodePrivilege,
			"this action requires root privileges, re-run with sudo")
	}
	return nil
}

// confirm asks the user a yes/no question. On a terminal a single
// keystroke answers it; otherwise a full line is read. -yes skips the
// prompt entirely.
func confirm(ctx *AppContext, prompt string) (bool, error) {
	if ctx.AssumeYes {
		return true, nil
	}

	fmt.Printf("%s [y/N] ", prompt)

	if term.IsTerminal(os.Stdin) {
		key, err := term.ReadKey(os.Stdin)
		if err != nil {
			fmt.Println()
			return false, err
		}
		fmt.Printf("%c\n", key)
		return key == 'y' || key == 'Y', nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// confFileFor builds the ConfFile editor for the configured modprobe.d
// file and options line.
func confFileFor(cfg *config.Config) *fnmode.ConfFile {
	return &fnmode.ConfFile{
		Path: cfg.Paths.ModprobeConf,
		Line: fnmode.RenderOptionsLine(cfg.OptionsLineTemplate, cfg.Fnmode),
	}
}
