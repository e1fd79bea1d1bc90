package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func seed(t *testing.T) (*Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateCompany(ctx, &models.Company{ID: "co1", Nombre: "Asoc", Slug: "asoc", CreatedAt: now}))
	require.NoError(t, s.CreateConcurso(ctx, &models.Concurso{ID: "c1", Nombre: "Feria", CompanyID: "co1", CreatedAt: now}))
	for _, g := range []models.Ganado{
		{ID: "g1", Nombre: "Lucero", Sexo: models.SexoMacho, Establo: strp("El Norte"), Raza: strp("Brahman"), CreatedAt: now},
		{ID: "g2", Nombre: "Estrella", Sexo: models.SexoHembra, Establo: strp("NORTEÑO"), Raza: strp("brahman"), CreatedAt: now.Add(time.Hour)},
		{ID: "g3", Nombre: "Luna", Sexo: models.SexoHembra, Establo: strp("El Norte"), CreatedAt: now.Add(2 * time.Hour)},
		{ID: "g4", Nombre: "Sol", Sexo: models.SexoMacho, Establo: strp(""), CreatedAt: now.Add(3 * time.Hour)},
	} {
		g := g
		require.NoError(t, s.CreateGanado(ctx, &g))
	}
	return s, ctx
}

func TestDistinctValues(t *testing.T) {
	s, ctx := seed(t)

	vals, err := s.DistinctValues(ctx, store.LookupEstablo, "nor")
	require.NoError(t, err)
	assert.Equal(t, []string{"El Norte", "NORTEÑO"}, vals)

	vals, err = s.DistinctValues(ctx, store.LookupEstablo, "")
	require.NoError(t, err)
	assert.NotContains(t, vals, "")

	vals, err = s.DistinctValues(ctx, store.LookupPropietario, "")
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestEntries_UniqueAndOrdered(t *testing.T) {
	s, ctx := seed(t)

	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e1", GanadoID: "g1", ConcursoID: "c1"}))
	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e2", GanadoID: "g2", ConcursoID: "c1", Posicion: intp(2)}))
	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e3", GanadoID: "g3", ConcursoID: "c1", Posicion: intp(1)}))

	err := s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e4", GanadoID: "g1", ConcursoID: "c1"})
	assert.ErrorIs(t, err, store.ErrConflict)

	err = s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e5", GanadoID: "nope", ConcursoID: "c1"})
	assert.ErrorIs(t, err, store.ErrReferenced)

	list, err := s.ListEntries(ctx, store.EntryFilter{ConcursoID: "c1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"e3", "e2", "e1"}, []string{list[0].ID, list[1].ID, list[2].ID})
	require.NotNil(t, list[0].Ganado)
	assert.Equal(t, "Luna", list[0].Ganado.Nombre)
}

func TestDeleteGanado_RemovesEntries(t *testing.T) {
	s, ctx := seed(t)
	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e1", GanadoID: "g1", ConcursoID: "c1"}))
	require.NoError(t, s.CreateImage(ctx, &models.GanadoImage{ID: "i1", GanadoID: "g1", URL: "u", ObjectKey: "k"}))

	require.NoError(t, s.DeleteGanado(ctx, "g1"))

	list, err := s.ListEntries(ctx, store.EntryFilter{GanadoID: "g1"})
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = s.GetImage(ctx, "i1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteGanado(ctx, "g1"), store.ErrNotFound)
}

func TestListGanado_ByConcurso(t *testing.T) {
	s, ctx := seed(t)
	require.NoError(t, s.CreateConcurso(ctx, &models.Concurso{ID: "c2", Nombre: "Expo", CompanyID: "co1"}))
	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e1", GanadoID: "g1", ConcursoID: "c1"}))
	require.NoError(t, s.CreateEntry(ctx, &models.GanadoEnConcurso{ID: "e2", GanadoID: "g1", ConcursoID: "c2"}))

	list, err := s.ListGanado(ctx, store.GanadoFilter{ConcursoID: "c2"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "g1", list[0].ID)
	require.Len(t, list[0].Entries, 1)
	assert.Equal(t, "c2", list[0].Entries[0].ConcursoID)

	all, err := s.ListGanado(ctx, store.GanadoFilter{})
	require.NoError(t, err)
	assert.Equal(t, "g4", all[0].ID, "newest first")
}

func TestCompany_ReferentialRules(t *testing.T) {
	s, ctx := seed(t)

	assert.ErrorIs(t, s.CreateCompany(ctx, &models.Company{ID: "co2", Slug: "asoc"}), store.ErrConflict)
	assert.ErrorIs(t, s.DeleteCompany(ctx, "co1"), store.ErrReferenced)
	assert.ErrorIs(t, s.CreateConcurso(ctx, &models.Concurso{ID: "c9", CompanyID: "missing"}), store.ErrReferenced)

	require.NoError(t, s.DeleteConcurso(ctx, "c1"))
	require.NoError(t, s.DeleteCompany(ctx, "co1"))
}

func TestCounters(t *testing.T) {
	s, ctx := seed(t)
	require.NoError(t, s.CreateConcurso(ctx, &models.Concurso{
		ID: "c2", Nombre: "Expo", CompanyID: "co1", FechaInicio: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}))
	g, err := s.GetGanado(ctx, "g1")
	require.NoError(t, err)
	g.Categoria = strp("A")
	require.NoError(t, s.UpdateGanado(ctx, g))

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Totals{Companies: 1, Concursos: 2, Ganado: 4}, totals)

	bySexo, err := s.CountGanadoBy(ctx, store.GroupSexo)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"MACHO": 2, "HEMBRA": 2}, bySexo)

	byCategoria, err := s.CountGanadoBy(ctx, store.GroupCategoria)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "": 3}, byCategoria)

	_, err = s.CountGanadoBy(ctx, store.GanadoGroup("raza"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	months, err := s.ConcursosByMonth(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, [12]int{4: 1}, months)
}
