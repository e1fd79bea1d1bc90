package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

func TestParsePosicion(t *testing.T) {
	one := 1
	tests := []struct {
		in      Flex
		want    *int
		wantErr bool
	}{
		{"", nil, false},
		{"1", &one, false},
		{"1.0", &one, false},
		{"1.5", nil, true},
		{"primero", nil, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := parsePosicion(tt.in)
			if tt.wantErr {
				assertKind(t, err, KindInvalid, "Posicion must be a whole number")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntries_Create(t *testing.T) {
	f := newFixture(t, true, nil)
	con := f.concurso(t, f.company(t), "2024-03-01")
	g := f.ganado(t, GanadoInput{Nombre: "Lucero", Sexo: "MACHO"})

	t.Run("required ids", func(t *testing.T) {
		_, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{ConcursoID: con})
		assertKind(t, err, KindInvalid, "Ganado ID is required")
		_, err = f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: g})
		assertKind(t, err, KindInvalid, "Concurso ID is required")
	})

	t.Run("missing references", func(t *testing.T) {
		_, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: "nope", ConcursoID: con})
		assertKind(t, err, KindNotFound, "El ganado no existe")
		_, err = f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: g, ConcursoID: "nope"})
		assertKind(t, err, KindNotFound, "El concurso no existe")
	})

	t.Run("second assignment is rejected", func(t *testing.T) {
		e, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: g, ConcursoID: con, Posicion: "2"})
		require.NoError(t, err)
		assert.Equal(t, 2, *e.Posicion)

		_, err = f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: g, ConcursoID: con})
		assertKind(t, err, KindInvalid, msgAlreadyAssigned)
	})
}

// conflictStore hides existing entries from FindEntry so the unique index
// is the only thing left to reject a duplicate.
type conflictStore struct {
	store.Store
}

func (conflictStore) FindEntry(context.Context, string, string) (*models.GanadoEnConcurso, error) {
	return nil, store.ErrNotFound
}

func TestEntries_StoreConflictIsAuthoritative(t *testing.T) {
	f := newFixture(t, true, nil)
	con := f.concurso(t, f.company(t), "2024-03-01")
	g := f.ganado(t, GanadoInput{Nombre: "Lucero", Sexo: "MACHO"})
	_, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: g, ConcursoID: con})
	require.NoError(t, err)

	entries := &Entries{base: f.svc.Entries.base, store: conflictStore{f.store}}
	_, err = entries.Create(f.ctx, admin, EntryInput{GanadoID: g, ConcursoID: con})
	assertKind(t, err, KindInvalid, msgAlreadyAssigned)
}

func TestEntries_OrderAndUpdate(t *testing.T) {
	f := newFixture(t, true, nil)
	con := f.concurso(t, f.company(t), "2024-03-01")
	a := f.ganado(t, GanadoInput{Nombre: "A", Sexo: "MACHO"})
	b := f.ganado(t, GanadoInput{Nombre: "B", Sexo: "MACHO"})
	c := f.ganado(t, GanadoInput{Nombre: "C", Sexo: "MACHO"})

	ea, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: a, ConcursoID: con})
	require.NoError(t, err)
	_, err = f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: b, ConcursoID: con, Posicion: "2"})
	require.NoError(t, err)
	ec, err := f.svc.Entries.Create(f.ctx, admin, EntryInput{GanadoID: c, ConcursoID: con, Posicion: "3"})
	require.NoError(t, err)

	names := func() []string {
		list, err := f.svc.Entries.List(f.ctx, store.EntryFilter{ConcursoID: con})
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.Ganado.Nombre)
		}
		return out
	}
	assert.Equal(t, []string{"B", "C", "A"}, names())

	_, err = f.svc.Entries.UpdatePosicion(f.ctx, admin, ea.ID, PosicionInput{Posicion: "1"})
	require.NoError(t, err)
	_, err = f.svc.Entries.UpdatePosicion(f.ctx, admin, ec.ID, PosicionInput{Posicion: ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names())

	_, err = f.svc.Entries.UpdatePosicion(f.ctx, admin, "missing", PosicionInput{})
	assertKind(t, err, KindNotFound, "Entry not found")

	deleted, err := f.svc.Entries.Delete(f.ctx, admin, ea.ID)
	require.NoError(t, err)
	assert.Equal(t, a, deleted.GanadoID)
	assert.Equal(t, []string{"B", "C"}, names())

	// The ganado survives its entry.
	_, err = f.svc.Ganado.Get(f.ctx, a)
	assert.NoError(t, err)
}
