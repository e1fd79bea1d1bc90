package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

func sp(s string) *string { return &s }

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"same instant", now, 0},
		{"partial day rounds up", now.Add(-time.Hour), 1},
		{"exact days", now.Add(-10 * 24 * time.Hour), 10},
		{"midnight birth", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 15},
		{"future birth uses distance", now.Add(36 * time.Hour), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysSince(tt.birth, now))
		})
	}
}

func TestGanado_Create(t *testing.T) {
	t.Run("required fields", func(t *testing.T) {
		f := newFixture(t, true, nil)
		_, err := f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Sexo: "MACHO"})
		assertKind(t, err, KindInvalid, "Nombre is required")

		_, err = f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "Lucero"})
		assertKind(t, err, KindInvalid, "Sexo is required")

		_, err = f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "Lucero", Sexo: "otro"})
		assertKind(t, err, KindInvalid, "Sexo must be MACHO or HEMBRA")

		_, err = f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "Lucero", Sexo: "MACHO", Puntaje: "alto"})
		assertKind(t, err, KindInvalid, "Puntaje must be a number")
	})

	t.Run("derives diasNacida and normalises fields", func(t *testing.T) {
		f := newFixture(t, true, nil)
		g, err := f.svc.Ganado.Create(f.ctx, admin, GanadoInput{
			Nombre:      " Lucero ",
			Sexo:        "hembra",
			FechaNac:    sp("2024-06-01"),
			Establo:     sp("  "),
			Raza:        sp("Brahman"),
			Puntaje:     "87.5",
			NumRegistro: "1234",
		})
		require.NoError(t, err)
		assert.Equal(t, "Lucero", g.Nombre)
		assert.Equal(t, models.SexoHembra, g.Sexo)
		require.NotNil(t, g.DiasNacida)
		assert.Equal(t, 15, *g.DiasNacida)
		assert.Nil(t, g.Establo)
		require.NotNil(t, g.Puntaje)
		assert.Equal(t, 87.5, *g.Puntaje)
		assert.Equal(t, "1234", *g.NumRegistro)
	})

	t.Run("concursoId assigns only for admins", func(t *testing.T) {
		f := newFixture(t, false, nil)
		con := f.concurso(t, f.company(t), "2024-03-01")

		g, err := f.svc.Ganado.Create(f.ctx, viewer, GanadoInput{Nombre: "A", Sexo: "MACHO", ConcursoID: con})
		require.NoError(t, err)
		entries, err := f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: g.ID})
		require.NoError(t, err)
		assert.Empty(t, entries)

		g, err = f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "B", Sexo: "MACHO", ConcursoID: con})
		require.NoError(t, err)
		entries, err = f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: g.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, con, entries[0].ConcursoID)
	})

	t.Run("none means no assignment", func(t *testing.T) {
		f := newFixture(t, true, nil)
		g, err := f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "A", Sexo: "MACHO", ConcursoID: "none"})
		require.NoError(t, err)
		entries, err := f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: g.ID})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unknown concurso is a 404 and saves nothing", func(t *testing.T) {
		f := newFixture(t, true, nil)
		_, err := f.svc.Ganado.Create(f.ctx, admin, GanadoInput{Nombre: "Lola", Sexo: "HEMBRA", ConcursoID: "missing"})
		assertKind(t, err, KindNotFound, "El concurso no existe")

		list, err := f.svc.Ganado.List(f.ctx, store.GanadoFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestGanado_UpdateUnknownConcurso(t *testing.T) {
	f := newFixture(t, true, nil)
	id := f.ganado(t, GanadoInput{Nombre: "Lola", Sexo: "HEMBRA", Raza: sp("Jersey")})

	_, err := f.svc.Ganado.Update(f.ctx, admin, id, GanadoInput{Nombre: "Lola II", Sexo: "HEMBRA", ConcursoID: "missing"})
	assertKind(t, err, KindNotFound, "El concurso no existe")

	got, err := f.svc.Ganado.Get(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lola", got.Nombre)
	require.NotNil(t, got.Raza)
	assert.Equal(t, "Jersey", *got.Raza)
	assert.Empty(t, got.Entries)
}

func TestGanado_Update(t *testing.T) {
	f := newFixture(t, false, nil)
	con := f.concurso(t, f.company(t), "2024-03-01")
	id := f.ganado(t, GanadoInput{Nombre: "Lucero", Sexo: "MACHO", FechaNac: sp("2024-06-01")})

	later := testNow.Add(5 * 24 * time.Hour)
	f.svc.Ganado.now = func() time.Time { return later }

	in := GanadoInput{Nombre: "Lucero II", Sexo: "MACHO", FechaNac: sp("2024-06-01"), ConcursoID: con}
	g, err := f.svc.Ganado.Update(f.ctx, viewer, id, in)
	require.NoError(t, err)
	assert.Equal(t, "Lucero II", g.Nombre)
	assert.Equal(t, 20, *g.DiasNacida)
	assert.Equal(t, later, g.UpdatedAt)

	// Repeating the assignment does not duplicate the entry.
	_, err = f.svc.Ganado.Update(f.ctx, viewer, id, in)
	require.NoError(t, err)
	entries, err := f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: id})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	got, err := f.svc.Ganado.Get(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testNow, got.CreatedAt)

	_, err = f.svc.Ganado.Update(f.ctx, viewer, "missing", in)
	assertKind(t, err, KindNotFound, "Ganado not found")

	in.FechaNac = nil
	g, err = f.svc.Ganado.Update(f.ctx, viewer, id, in)
	require.NoError(t, err)
	assert.Nil(t, g.DiasNacida)
}

func TestGanado_DeleteCascades(t *testing.T) {
	storage := newFakeStorage()
	f := newFixture(t, true, storage)
	co := f.company(t)
	c1 := f.concurso(t, co, "2024-03-01")
	c2 := f.concurso(t, co, "2024-04-01")
	id := f.ganado(t, GanadoInput{Nombre: "Lucero", Sexo: "MACHO", ConcursoID: c1})
	_, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: id, ConcursoID: c2})
	require.NoError(t, err)
	img, err := f.svc.Images.Add(f.ctx, admin, id, pngUpload())
	require.NoError(t, err)

	deleted, err := f.svc.Ganado.Delete(f.ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted.ID)

	entries, err := f.svc.Entries.List(f.ctx, store.EntryFilter{GanadoID: id})
	require.NoError(t, err)
	assert.Empty(t, entries)
	for _, c := range []string{c1, c2} {
		con, err := f.svc.Concursos.Get(f.ctx, c)
		require.NoError(t, err)
		assert.Empty(t, con.Entries)
	}
	assert.NotContains(t, storage.objects, img.ObjectKey)

	_, err = f.svc.Ganado.Get(f.ctx, id)
	assertKind(t, err, KindNotFound, "Ganado not found")
}

func TestGanado_ListFilters(t *testing.T) {
	f := newFixture(t, true, nil)
	con := f.concurso(t, f.company(t), "2024-03-01")
	f.ganado(t, GanadoInput{Nombre: "A", Sexo: "MACHO", IsPublished: true, Categoria: sp("A")})
	f.ganado(t, GanadoInput{Nombre: "B", Sexo: "HEMBRA", Categoria: sp("B"), ConcursoID: con})

	yes := true
	list, err := f.svc.Ganado.List(f.ctx, store.GanadoFilter{IsPublished: &yes})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Nombre)

	list, err = f.svc.Ganado.List(f.ctx, store.GanadoFilter{Sexo: models.SexoHembra})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Nombre)

	list, err = f.svc.Ganado.List(f.ctx, store.GanadoFilter{ConcursoID: con})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Nombre)

	list, err = f.svc.Ganado.List(f.ctx, store.GanadoFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
