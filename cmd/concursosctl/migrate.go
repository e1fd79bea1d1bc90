package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bundb "github.com/padraicbc/concursos/db"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, constraints and indexes (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := bundb.CreateTables(cmd.Context(), db); err != nil {
				return err
			}
			e.logger.Info("tables ready", zap.String("driver", e.cfg.DBDriver))
			return nil
		},
	}
}
