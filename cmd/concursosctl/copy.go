package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/concursos/config"
	bundb "github.com/padraicbc/concursos/db"
	"github.com/padraicbc/concursos/models"
)

const batchSize = 500

func newCopyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy every table from the MySQL database (MYSQL_DSN) into PostgreSQL",
		Long: `copy reads companies, concursos, ganado, entries, images, categorias and
users from MYSQL_DSN and inserts them into the PostgreSQL database configured by
DATABASE_URL or DB_*. Rows whose id already exists are skipped, so re-runs are safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(); err != nil {
				return err
			}
			if e.cfg.MySQLDSN == "" {
				return fmt.Errorf("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/concursos?parseTime=true")
			}

			srcCfg, dstCfg := *e.cfg, *e.cfg
			srcCfg.DBDriver = config.DriverMySQL
			dstCfg.DBDriver = config.DriverPostgres

			src, err := bundb.Setup(&srcCfg)
			if err != nil {
				return fmt.Errorf("source: %w", err)
			}
			defer src.Close()
			dst, err := bundb.Setup(&dstCfg)
			if err != nil {
				return fmt.Errorf("destination: %w", err)
			}
			defer dst.Close()

			return copyAll(cmd.Context(), e.logger, src, dst)
		},
	}
}

// copyAll creates the destination schema and copies tables parents first.
func copyAll(ctx context.Context, log *zap.Logger, src, dst *bun.DB) error {
	if err := bundb.CreateTables(ctx, dst); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return copyTable[models.User](ctx, src, dst) }},
		{"categorias", func() (int, error) { return copyTable[models.Categoria](ctx, src, dst) }},
		{"companies", func() (int, error) { return copyTable[models.Company](ctx, src, dst) }},
		{"concursos", func() (int, error) { return copyTable[models.Concurso](ctx, src, dst) }},
		{"ganado", func() (int, error) { return copyTable[models.Ganado](ctx, src, dst) }},
		{"ganado_en_concurso", func() (int, error) { return copyTable[models.GanadoEnConcurso](ctx, src, dst) }},
		{"ganado_images", func() (int, error) { return copyTable[models.GanadoImage](ctx, src, dst) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			return fmt.Errorf("copy %s: %w", s.name, err)
		}
		log.Info("table copied", zap.String("table", s.name), zap.Int("rows", n))
	}
	return nil
}

// copyTable pages through the source by id and inserts each batch,
// skipping rows that already exist.
func copyTable[T any](ctx context.Context, src, dst *bun.DB) (int, error) {
	total := 0
	for {
		var batch []T
		err := src.NewSelect().Model(&batch).
			Order("id").
			Limit(batchSize).
			Offset(total).
			Scan(ctx)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		if _, err := dst.NewInsert().Model(&batch).Ignore().Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
		if len(batch) < batchSize {
			return total, nil
		}
	}
}
