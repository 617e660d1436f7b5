package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/mzhur/enable-fn/internal/config"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/fnmode"
	"github.com/mzhur/enable-fn/internal/log"
	"github.com/mzhur/enable-fn/internal/term"
)

func CreateMenuCommand() *MenuCommand {
	gc := &MenuCommand{
		fs: flag.NewFlagSet("menu", flag.ExitOnError),
	}
	return gc
}

type MenuCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	runner fnmode.CommandRunner
}

func (g *MenuCommand) Name() string {
	return g.fs.Name()
}

func (g *MenuCommand) Init(args []string, ctx *AppContext) error {
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

// Run drives the interactive single-screen menu: print it, read one
// keystroke, dispatch, repeat until the user quits.
func (g *MenuCommand) Run() error {
	if !term.IsTerminal(os.Stdin) {
		return fmt.Errorf("the interactive menu requires a terminal; use the subcommands instead (see -h)")
	}

	for {
		g.printMenu()

		key, err := term.ReadKey(os.Stdin)
		if err == term.ErrInterrupted {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%c\n\n", key)

		switch key {
		case '1':
			g.dispatch("Apply the fix for the current session (lost on reboot)?", true,
				func() error { return runTemporary(g.cfg, g.runner) })
		case '2':
			g.dispatch("Apply the fix permanently (modprobe config + initramfs rebuild)?", true,
				func() error { return runPermanent(g.ctx, g.cfg, g.runner) })
		case '3':
			g.dispatch("Undo the permanent fix?", true,
				func() error { return runUndo(g.cfg, g.runner) })
		case '4':
			g.dispatch("", false,
				func() error { return runDryRun(g.cfg, g.runner) })
		case '5':
			g.dispatch("", false,
				func() error { return runStatus(g.cfg, g.runner) })
		case '6':
			g.dispatch("", false,
				func() error { return runBackups(g.cfg) })
		case 'q', 'Q', 0x1b: // Esc
			return nil
		default:
			log.Warnf("Unknown choice %q", string(key))
		}
	}
}

// dispatch gates an action behind its confirmation prompt and, for
// mutating actions, the root check, then pauses until a keystroke so the
// output stays readable before the menu repaints.
func (g *MenuCommand) dispatch(prompt string, needsRoot bool, action func() error) {
	run := func() error {
		if prompt != "" {
			if ok, err := confirm(g.ctx, prompt); err != nil {
				return err
			} else if !ok {
				log.Infof("Cancelled")
				return nil
			}
		}
		if needsRoot {
			if err := requireRoot(); err != nil {
				return err
			}
		}
		return action()
	}

	if err := run(); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodePrivilege) {
			log.Errorf("%v", err)
		} else {
			log.Errorf("Action failed: %v", err)
		}
	}

	fmt.Print("\nPress any key to return to the menu...")
	if _, err := term.ReadKey(os.Stdin); err != nil {
		fmt.Println()
		return
	}
	fmt.Println()
}

func (g *MenuCommand) printMenu() {
	fmt.Println()
	fmt.Println("=== enable-fn: Fn key fix for Apple-style keyboards ===")
	fmt.Printf("    target: %s fnmode=%d (%s)\n\n",
		fnmode.ModuleName, g.cfg.Fnmode, fnmode.DescribeFnmode(int(g.cfg.Fnmode)))
	fmt.Println("  1) Apply temporarily (until reboot)")
	fmt.Println("  2) Apply permanently (modprobe config + initramfs)")
	fmt.Println("  3) Undo permanent fix")
	fmt.Println("  4) Dry-run (show what would be done)")
	fmt.Println("  5) Status")
	fmt.Println("  6) List backups")
	fmt.Println("  q) Quit")
	fmt.Println()
	fmt.Print("Choice: ")
}
