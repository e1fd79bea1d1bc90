package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

// Store implements store.Store on top of bun. It works with both the
// PostgreSQL and MySQL dialects.
type Store struct {
	db *bun.DB
}

var _ store.Store = (*Store)(nil)

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

const entryOrder = "gec.posicion IS NULL, gec.posicion ASC, gec.created_at ASC"

func byPosicion(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr(entryOrder)
}

// ---- companies

func (s *Store) ListCompanies(ctx context.Context, f store.CompanyFilter) ([]models.Company, error) {
	companies := make([]models.Company, 0)
	q := s.db.NewSelect().Model(&companies).Order("co.created_at DESC")
	if f.IsFeatured != nil {
		q = q.Where("co.is_featured = ?", *f.IsFeatured)
	}
	if f.IsPublished != nil {
		q = q.Where("co.is_published = ?", *f.IsPublished)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return companies, nil
}

func (s *Store) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	c := new(models.Company)
	err := s.db.NewSelect().Model(c).
		Relation("Concursos", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("con.created_at DESC")
		}).
		Where("co.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) CreateCompany(ctx context.Context, c *models.Company) error {
	_, err := s.db.NewInsert().Model(c).Exec(ctx)
	return translate(err)
}

func (s *Store) UpdateCompany(ctx context.Context, c *models.Company) error {
	_, err := s.db.NewUpdate().Model(c).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return translate(err)
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return affected(s.db.NewDelete().Model((*models.Company)(nil)).Where("id = ?", id).Exec(ctx))
}

// ---- concursos

func (s *Store) ListConcursos(ctx context.Context, f store.ConcursoFilter) ([]models.Concurso, error) {
	concursos := make([]models.Concurso, 0)
	q := s.db.NewSelect().Model(&concursos).
		Relation("Company").
		Relation("Entries", byPosicion).
		Relation("Entries.Ganado").
		Order("con.created_at DESC")
	if f.IsFeatured != nil {
		q = q.Where("con.is_featured = ?", *f.IsFeatured)
	}
	if f.IsPublished != nil {
		q = q.Where("con.is_published = ?", *f.IsPublished)
	}
	if f.CompanyID != "" {
		q = q.Where("con.company_id = ?", f.CompanyID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return concursos, nil
}

func (s *Store) GetConcurso(ctx context.Context, id string) (*models.Concurso, error) {
	c := new(models.Concurso)
	err := s.db.NewSelect().Model(c).
		Relation("Company").
		Relation("Entries", byPosicion).
		Relation("Entries.Ganado").
		Where("con.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) CreateConcurso(ctx context.Context, c *models.Concurso) error {
	_, err := s.db.NewInsert().Model(c).Exec(ctx)
	return translate(err)
}

func (s *Store) UpdateConcurso(ctx context.Context, c *models.Concurso) error {
	_, err := s.db.NewUpdate().Model(c).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return translate(err)
}

func (s *Store) DeleteConcurso(ctx context.Context, id string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.GanadoEnConcurso)(nil)).
			Where("concurso_id = ?", id).
			Exec(ctx)
		if err != nil {
			return translate(err)
		}
		return affected(tx.NewDelete().Model((*models.Concurso)(nil)).Where("id = ?", id).Exec(ctx))
	})
}

// ---- ganado

func (s *Store) ListGanado(ctx context.Context, f store.GanadoFilter) ([]models.Ganado, error) {
	ganado := make([]models.Ganado, 0)
	q := s.db.NewSelect().Model(&ganado).
		Relation("Entries", func(q *bun.SelectQuery) *bun.SelectQuery {
			if f.ConcursoID != "" {
				q = q.Where("gec.concurso_id = ?", f.ConcursoID)
			}
			return byPosicion(q)
		}).
		Relation("Entries.Concurso").
		Order("g.created_at DESC")
	if f.IsFeatured != nil {
		q = q.Where("g.is_featured = ?", *f.IsFeatured)
	}
	if f.IsPublished != nil {
		q = q.Where("g.is_published = ?", *f.IsPublished)
	}
	if f.Sexo != "" {
		q = q.Where("g.sexo = ?", f.Sexo)
	}
	if f.Categoria != "" {
		q = q.Where("g.categoria = ?", f.Categoria)
	}
	if f.ConcursoID != "" {
		q = q.Where("EXISTS (SELECT 1 FROM ganado_en_concurso AS x WHERE x.ganado_id = g.id AND x.concurso_id = ?)", f.ConcursoID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return ganado, nil
}

func (s *Store) GetGanado(ctx context.Context, id string) (*models.Ganado, error) {
	g := new(models.Ganado)
	err := s.db.NewSelect().Model(g).
		Relation("Entries", byPosicion).
		Relation("Entries.Concurso").
		Relation("Images", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("gi.created_at ASC")
		}).
		Where("g.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return g, nil
}

func (s *Store) CreateGanado(ctx context.Context, g *models.Ganado) error {
	_, err := s.db.NewInsert().Model(g).Exec(ctx)
	return translate(err)
}

func (s *Store) UpdateGanado(ctx context.Context, g *models.Ganado) error {
	_, err := s.db.NewUpdate().Model(g).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return translate(err)
}

func (s *Store) DeleteGanado(ctx context.Context, id string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.GanadoEnConcurso)(nil)).Where("ganado_id = ?", id).Exec(ctx); err != nil {
			return translate(err)
		}
		if _, err := tx.NewDelete().Model((*models.GanadoImage)(nil)).Where("ganado_id = ?", id).Exec(ctx); err != nil {
			return translate(err)
		}
		return affected(tx.NewDelete().Model((*models.Ganado)(nil)).Where("id = ?", id).Exec(ctx))
	})
}

// likeEscaper pairs with ESCAPE '!', accepted by every supported dialect.
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func (s *Store) DistinctValues(ctx context.Context, col store.LookupColumn, query string) ([]string, error) {
	switch col {
	case store.LookupRaza, store.LookupPropietario, store.LookupEstablo:
	default:
		return nil, store.ErrNotFound
	}
	ident := bun.Ident(string(col))
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	vals := make([]string, 0)
	err := s.db.NewSelect().
		TableExpr("ganado").
		ColumnExpr("DISTINCT ?", ident).
		Where("? IS NOT NULL", ident).
		Where("? <> ''", ident).
		Where("LOWER(?) LIKE ? ESCAPE '!'", ident, pattern).
		OrderExpr("? ASC", ident).
		Scan(ctx, &vals)
	if err != nil {
		return nil, translate(err)
	}
	return vals, nil
}

// ---- counters

func (s *Store) Totals(ctx context.Context) (store.Totals, error) {
	var (
		t   store.Totals
		err error
	)
	if t.Companies, err = s.db.NewSelect().Model((*models.Company)(nil)).Count(ctx); err != nil {
		return t, translate(err)
	}
	if t.Concursos, err = s.db.NewSelect().Model((*models.Concurso)(nil)).Count(ctx); err != nil {
		return t, translate(err)
	}
	if t.Ganado, err = s.db.NewSelect().Model((*models.Ganado)(nil)).Count(ctx); err != nil {
		return t, translate(err)
	}
	return t, nil
}

type groupCount struct {
	Grp   sql.NullString `bun:"grp"`
	Total int            `bun:"total"`
}

func (s *Store) CountGanadoBy(ctx context.Context, col store.GanadoGroup) (map[string]int, error) {
	switch col {
	case store.GroupSexo, store.GroupCategoria:
	default:
		return nil, store.ErrNotFound
	}
	ident := bun.Ident(string(col))

	rows := make([]groupCount, 0)
	err := s.db.NewSelect().
		TableExpr("ganado").
		ColumnExpr("? AS grp", ident).
		ColumnExpr("COUNT(*) AS total").
		GroupExpr("?", ident).
		Scan(ctx, &rows)
	if err != nil {
		return nil, translate(err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Grp.String] += r.Total
	}
	return out, nil
}

func (s *Store) ConcursosByMonth(ctx context.Context, year int) ([12]int, error) {
	var months [12]int
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	starts := make([]time.Time, 0)
	err := s.db.NewSelect().
		Model((*models.Concurso)(nil)).
		Column("fecha_inicio").
		Where("con.fecha_inicio >= ?", from).
		Where("con.fecha_inicio < ?", from.AddDate(1, 0, 0)).
		Scan(ctx, &starts)
	if err != nil {
		return months, translate(err)
	}
	for _, t := range starts {
		months[t.UTC().Month()-1]++
	}
	return months, nil
}

// ---- entries

func (s *Store) ListEntries(ctx context.Context, f store.EntryFilter) ([]models.GanadoEnConcurso, error) {
	entries := make([]models.GanadoEnConcurso, 0)
	q := s.db.NewSelect().Model(&entries).
		Relation("Ganado").
		Relation("Concurso").
		OrderExpr(entryOrder)
	if f.ConcursoID != "" {
		q = q.Where("gec.concurso_id = ?", f.ConcursoID)
	}
	if f.GanadoID != "" {
		q = q.Where("gec.ganado_id = ?", f.GanadoID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return entries, nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*models.GanadoEnConcurso, error) {
	e := new(models.GanadoEnConcurso)
	err := s.db.NewSelect().Model(e).
		Relation("Ganado").
		Relation("Concurso").
		Where("gec.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *Store) FindEntry(ctx context.Context, ganadoID, concursoID string) (*models.GanadoEnConcurso, error) {
	e := new(models.GanadoEnConcurso)
	err := s.db.NewSelect().Model(e).
		Where("gec.ganado_id = ?", ganadoID).
		Where("gec.concurso_id = ?", concursoID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *models.GanadoEnConcurso) error {
	_, err := s.db.NewInsert().Model(e).Exec(ctx)
	return translate(err)
}

func (s *Store) UpdateEntry(ctx context.Context, e *models.GanadoEnConcurso) error {
	_, err := s.db.NewUpdate().Model(e).
		Column("posicion", "updated_at").
		WherePK().
		Exec(ctx)
	return translate(err)
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	return affected(s.db.NewDelete().Model((*models.GanadoEnConcurso)(nil)).Where("id = ?", id).Exec(ctx))
}

// ---- images

func (s *Store) CreateImage(ctx context.Context, img *models.GanadoImage) error {
	_, err := s.db.NewInsert().Model(img).Exec(ctx)
	return translate(err)
}

func (s *Store) GetImage(ctx context.Context, id string) (*models.GanadoImage, error) {
	img := new(models.GanadoImage)
	if err := s.db.NewSelect().Model(img).Where("gi.id = ?", id).Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return img, nil
}

func (s *Store) DeleteImage(ctx context.Context, id string) error {
	return affected(s.db.NewDelete().Model((*models.GanadoImage)(nil)).Where("id = ?", id).Exec(ctx))
}

// ---- categorias

func (s *Store) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	cats := make([]models.Categoria, 0)
	if err := s.db.NewSelect().Model(&cats).Order("cat.codigo ASC").Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return cats, nil
}

func (s *Store) GetCategoria(ctx context.Context, id string) (*models.Categoria, error) {
	c := new(models.Categoria)
	if err := s.db.NewSelect().Model(c).Where("cat.id = ?", id).Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) CreateCategoria(ctx context.Context, c *models.Categoria) error {
	_, err := s.db.NewInsert().Model(c).Exec(ctx)
	return translate(err)
}

func (s *Store) UpdateCategoria(ctx context.Context, c *models.Categoria) error {
	_, err := s.db.NewUpdate().Model(c).ExcludeColumn("created_at").WherePK().Exec(ctx)
	return translate(err)
}

func (s *Store) DeleteCategoria(ctx context.Context, id string) error {
	return affected(s.db.NewDelete().Model((*models.Categoria)(nil)).Where("id = ?", id).Exec(ctx))
}

// ---- users

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := new(models.User)
	if err := s.db.NewSelect().Model(u).Where("u.username = ?", username).Scan(ctx); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		cur := new(models.User)
		err := translate(tx.NewSelect().Model(cur).Where("u.username = ?", u.Username).Scan(ctx))
		if errors.Is(err, store.ErrNotFound) {
			_, err = tx.NewInsert().Model(u).Exec(ctx)
			return translate(err)
		}
		if err != nil {
			return err
		}
		u.ID = cur.ID
		_, err = tx.NewUpdate().Model(u).
			Column("password", "nombre", "email", "role").
			WherePK().
			Exec(ctx)
		return translate(err)
	})
}
