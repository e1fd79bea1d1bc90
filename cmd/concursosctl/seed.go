package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bundb "github.com/padraicbc/concursos/db"
	"github.com/padraicbc/concursos/services"
)

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categorias, skipping existing codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.New(bundb.NewStore(db), nil, services.Options{Logger: e.logger})
			n, err := svc.Categorias.Seed(cmd.Context())
			if err != nil {
				return err
			}
			e.logger.Info("categorias seeded", zap.Int("inserted", n))
			return nil
		},
	}
}
