// Command concursosctl administers the concursos database.
//
// Usage:
//
//	go run ./cmd/concursosctl migrate
//	go run ./cmd/concursosctl seed
//	go run ./cmd/concursosctl adduser --username ana --password secreto --role admin
//	go run ./cmd/concursosctl copy
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/concursos/config"
	bundb "github.com/padraicbc/concursos/db"
	applog "github.com/padraicbc/concursos/logger"
)

// env is shared by every subcommand once the root pre-run has loaded it.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "concursosctl",
		Short:         "Administer the concursos ganaderos database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newAddUserCmd(e),
		newCopyCmd(e),
	)
	return root
}

// load reads the database configuration and builds the logger.
// Subcommands call it after validating their own flags.
func (e *env) load() error {
	e.cfg = config.LoadDatabase()
	l, err := applog.New(e.cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	e.logger = l
	zap.ReplaceGlobals(l)
	return nil
}

// open connects to the configured SQL database.
func (e *env) open() (*bun.DB, error) {
	if err := e.load(); err != nil {
		return nil, err
	}
	if e.cfg.DBDriver == config.DriverMemory {
		return nil, fmt.Errorf("DB_DRIVER=memory has nothing to administer")
	}
	return bundb.Setup(e.cfg)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
