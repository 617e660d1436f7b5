package commands

import (
	"flag"

	"github.com/mzhur/enable-fn/internal/backup"
	"github.com/mzhur/enable-fn/internal/config"
	"github.com/mzhur/enable-fn/internal/log"
)

func CreateBackupsCommand() *BackupsCommand {
	gc := &BackupsCommand{
		fs: flag.NewFlagSet("backups", flag.ExitOnError),
	}
	return gc
}

type BackupsCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *BackupsCommand) Name() string {
	return g.fs.Name()
}

func (g *BackupsCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *BackupsCommand) Run() error {
	return runBackups(g.cfg)
}

// runBackups lists the backups taken before previous edits, newest first.
func runBackups(cfg *config.Config) error {
	entries, err := backup.List(cfg.Paths.BackupDir)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		log.Infof("No backups found in %s", cfg.Paths.BackupDir)
		return nil
	}

	log.Infof("Backups in %s:", cfg.Paths.BackupDir)
	for i := range entries {
		log.Infof("  %s", entries[i].Describe())
	}
	return nil
}
