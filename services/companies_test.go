package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/store"
)

func TestCompanies(t *testing.T) {
	f := newFixture(t, true, nil)

	_, err := f.svc.Companies.Create(f.ctx, admin, CompanyInput{Slug: "x"})
	assertKind(t, err, KindInvalid, "Nombre is required")
	_, err = f.svc.Companies.Create(f.ctx, admin, CompanyInput{Nombre: "x"})
	assertKind(t, err, KindInvalid, "Slug is required")

	id := f.company(t)
	_, err = f.svc.Companies.Create(f.ctx, admin, CompanyInput{Nombre: "Otra", Slug: "asociacion"})
	assertKind(t, err, KindInvalid, "Slug is already in use")

	c, err := f.svc.Companies.Update(f.ctx, admin, id, CompanyInput{Nombre: "Asociación Norte", Slug: "norte", IsPublished: true})
	require.NoError(t, err)
	assert.Equal(t, "norte", c.Slug)
	assert.True(t, c.IsPublished)

	_, err = f.svc.Companies.Get(f.ctx, "missing")
	assertKind(t, err, KindNotFound, "Company not found")

	con := f.concurso(t, id, "2024-03-01")
	got, err := f.svc.Companies.Get(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Concursos, 1)
	assert.Equal(t, con, got.Concursos[0].ID)

	_, err = f.svc.Companies.Delete(f.ctx, admin, id)
	assertKind(t, err, KindInvalid, "Company has concursos")

	_, err = f.svc.Concursos.Delete(f.ctx, admin, con)
	require.NoError(t, err)
	deleted, err := f.svc.Companies.Delete(f.ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted.ID)
}

func TestConcursos(t *testing.T) {
	f := newFixture(t, true, nil)
	co := f.company(t)

	t.Run("required fields", func(t *testing.T) {
		_, err := f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{FechaInicio: "2024-03-01", CompanyID: co})
		assertKind(t, err, KindInvalid, "Nombre is required")
		_, err = f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{Nombre: "Feria", CompanyID: co})
		assertKind(t, err, KindInvalid, "Fecha de inicio is required")
		_, err = f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{Nombre: "Feria", FechaInicio: "2024-03-01"})
		assertKind(t, err, KindInvalid, "Company ID is required")
		_, err = f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{Nombre: "Feria", FechaInicio: "mañana", CompanyID: co})
		assertKind(t, err, KindInvalid, "Fecha de inicio is invalid")
	})

	t.Run("company must exist", func(t *testing.T) {
		_, err := f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{Nombre: "Feria", FechaInicio: "2024-03-01", CompanyID: "missing"})
		assertKind(t, err, KindNotFound, "Company not found")
	})

	t.Run("create and update", func(t *testing.T) {
		fin := "2024-03-05"
		c, err := f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{
			Nombre: "Feria 2024", FechaInicio: "2024-03-01", FechaFin: &fin, CompanyID: co,
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.FechaInicio)
		require.NotNil(t, c.FechaFin)

		c, err = f.svc.Concursos.Update(f.ctx, admin, c.ID, ConcursoInput{
			Nombre: "Feria 2024", FechaInicio: "2024-03-02", CompanyID: co, IsPublished: true,
		})
		require.NoError(t, err)
		assert.Nil(t, c.FechaFin)
		assert.True(t, c.IsPublished)

		yes := true
		list, err := f.svc.Concursos.List(f.ctx, store.ConcursoFilter{IsPublished: &yes})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, c.ID, list[0].ID)
		require.NotNil(t, list[0].Company)
	})

	t.Run("delete removes entries", func(t *testing.T) {
		con := f.concurso(t, co, "2024-05-01")
		g := f.ganado(t, GanadoInput{Nombre: "Lucero", Sexo: "MACHO", ConcursoID: con})

		_, err := f.svc.Concursos.Delete(f.ctx, admin, con)
		require.NoError(t, err)

		entries, err := f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: g})
		require.NoError(t, err)
		assert.Empty(t, entries)

		_, err = f.svc.Concursos.Get(f.ctx, con)
		assertKind(t, err, KindNotFound, "Concurso not found")
	})
}
