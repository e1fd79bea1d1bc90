package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/concursos/config"
	"github.com/padraicbc/concursos/models"
)

// Setup opens a PostgreSQL, MySQL or SQLite connection depending on cfg.DBDriver.
func Setup(cfg *config.Config) (*bun.DB, error) {
	var bdb *bun.DB
	switch cfg.DBDriver {
	case config.DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
		bdb = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverMySQL:
		sqldb, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		bdb = bun.NewDB(sqldb, mysqldialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite", cfg.SQLiteDSN())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One writer at a time.
		sqldb.SetMaxOpenConns(1)
		bdb = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("db: driver %q has no SQL backend", cfg.DBDriver)
	}

	if cfg.Debug {
		bdb.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := bdb.PingContext(context.Background()); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return bdb, nil
}

type table struct {
	model interface{}
	fks   []string
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []table{
		{model: (*models.User)(nil)},
		{model: (*models.Categoria)(nil)},
		{model: (*models.Company)(nil)},
		{model: (*models.Concurso)(nil), fks: []string{
			"(company_id) REFERENCES companies (id)",
		}},
		{model: (*models.Ganado)(nil)},
		{model: (*models.GanadoEnConcurso)(nil), fks: []string{
			"(ganado_id) REFERENCES ganado (id)",
			"(concurso_id) REFERENCES concursos (id)",
		}},
		{model: (*models.GanadoImage)(nil), fks: []string{
			"(ganado_id) REFERENCES ganado (id)",
		}},
	}

	for _, t := range tables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.fks {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", t.model, err)
		}
	}

	// MySQL indexes FK columns on its own.
	if db.Dialect().Name() == dialect.MySQL {
		return nil
	}
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS concursos_company_id_idx ON concursos (company_id)`,
		`CREATE INDEX IF NOT EXISTS ganado_en_concurso_concurso_id_idx ON ganado_en_concurso (concurso_id)`,
		`CREATE INDEX IF NOT EXISTS ganado_images_ganado_id_idx ON ganado_images (ganado_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			zap.L().Warn("create index", zap.String("stmt", stmt), zap.Error(err))
		}
	}

	return nil
}
