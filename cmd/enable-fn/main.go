package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mzhur/enable-fn/internal/commands"
	apperrors "github.com/mzhur/enable-fn/internal/errors"
	"github.com/mzhur/enable-fn/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/etc/enable-fn/enable-fn.conf", "Path to configuration file (optional)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&ctx.AssumeYes, "yes", false, "Skip confirmation prompts")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fn key fix for Apple-style external keyboards (hid_apple fnmode)\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  menu                    Interactive menu (default when no command is given)\n")
		fmt.Fprintf(os.Stderr, "  temporary               Set fnmode via sysfs for this session only\n")
		fmt.Fprintf(os.Stderr, "  permanent               Persist fnmode via modprobe config + initramfs rebuild\n")
		fmt.Fprintf(os.Stderr, "  undo                    Remove the persistent fix (reverts \"permanent\")\n")
		fmt.Fprintf(os.Stderr, "  dry-run                 Show what would be done without changing anything\n")
		fmt.Fprintf(os.Stderr, "  status                  Report runtime value, config presence and tooling\n")
		fmt.Fprintf(os.Stderr, "  backups                 List backups taken before edits\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateMenuCommand(),
		commands.CreateTemporaryCommand(),
		commands.CreatePermanentCommand(),
		commands.CreateUndoCommand(),
		commands.CreateDryRunCommand(),
		commands.CreateStatusCommand(),
		commands.CreateBackupsCommand(),
	}

	args := flag.Args()

	subcommand := "menu"
	var rest []string
	if len(args) > 0 {
		subcommand = args[0]
		rest = args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(rest, ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				if apperrors.HasCode(err, apperrors.ErrCodePrivilege) {
					log.Errorf("%v", err)
					os.Exit(2)
				}
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
