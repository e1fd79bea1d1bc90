package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/media"
	"github.com/padraicbc/concursos/store/memory"
)

var (
	testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	admin   = &auth.Principal{ID: "u-admin", Name: "Ana", Role: auth.RoleAdmin}
	viewer  = &auth.Principal{ID: "u-user", Name: "Luis", Role: auth.RoleUser}
)

type fixture struct {
	svc   *Services
	store *memory.Store
	ctx   context.Context
}

func newFixture(t *testing.T, requireAdmin bool, storage media.Storage) *fixture {
	t.Helper()
	st := memory.New()
	seq := 0
	svc := New(st, storage, Options{
		RequireAdminWrites: requireAdmin,
		SessionKey:         []byte("test-secret"),
		Roles:              auth.NewRoles("dashboard_admin"),
		Now:                func() time.Time { return testNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%03d", seq)
		},
	})
	return &fixture{svc: svc, store: st, ctx: context.Background()}
}

func (f *fixture) company(t *testing.T) string {
	t.Helper()
	c, err := f.svc.Companies.Create(f.ctx, admin, CompanyInput{Nombre: "Asociación", Slug: "asociacion"})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) concurso(t *testing.T, companyID, fecha string) string {
	t.Helper()
	c, err := f.svc.Concursos.Create(f.ctx, admin, ConcursoInput{Nombre: "Feria", FechaInicio: fecha, CompanyID: companyID})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) ganado(t *testing.T, in GanadoInput) string {
	t.Helper()
	g, err := f.svc.Ganado.Create(f.ctx, admin, in)
	require.NoError(t, err)
	return g.ID
}

// assertKind checks err is a service error of kind with message.
func assertKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	var se *Error
	require.True(t, errors.As(err, &se), "want *Error, got %v", err)
	assert.Equal(t, kind, se.Kind)
	if msg != "" {
		assert.Equal(t, msg, se.Message)
	}
}

func TestPolicy(t *testing.T) {
	t.Run("anonymous writes are rejected", func(t *testing.T) {
		f := newFixture(t, true, nil)
		_, err := f.svc.Companies.Create(f.ctx, nil, CompanyInput{Nombre: "x", Slug: "x"})
		assertKind(t, err, KindUnauthenticated, "Unauthorized")
	})

	t.Run("non-admin writes are forbidden when required", func(t *testing.T) {
		f := newFixture(t, true, nil)
		_, err := f.svc.Companies.Create(f.ctx, viewer, CompanyInput{Nombre: "x", Slug: "x"})
		assertKind(t, err, KindForbidden, "")
	})

	t.Run("any session writes when not required", func(t *testing.T) {
		f := newFixture(t, false, nil)
		_, err := f.svc.Companies.Create(f.ctx, viewer, CompanyInput{Nombre: "x", Slug: "x"})
		assert.NoError(t, err)
	})

	t.Run("lookup creation only needs a session", func(t *testing.T) {
		f := newFixture(t, true, nil)
		opt, err := f.svc.Lookups.Create(f.ctx, viewer, NameInput{Nombre: " Brahman "})
		require.NoError(t, err)
		assert.Equal(t, Option{Value: "Brahman", Label: "Brahman"}, opt)

		_, err = f.svc.Lookups.Create(f.ctx, nil, NameInput{Nombre: "Brahman"})
		assertKind(t, err, KindUnauthenticated, "Unauthorized")

		_, err = f.svc.Lookups.Create(f.ctx, viewer, NameInput{})
		assertKind(t, err, KindInvalid, "Nombre is required")
	})
}

func TestFlex(t *testing.T) {
	tests := []struct {
		in   string
		want Flex
	}{
		{`{"v": null}`, ""},
		{`{"v": ""}`, ""},
		{`{"v": " 3 "}`, "3"},
		{`{"v": 3}`, "3"},
		{`{"v": 2.5}`, "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var out struct {
				V Flex `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.in), &out))
			assert.Equal(t, tt.want, out.V)
		})
	}

	var out struct {
		V Flex `json:"v"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"v": true}`), &out))
}

func TestParseDate(t *testing.T) {
	d, ok := parseDate("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate("2024-03-01T10:00:00-05:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC), d)

	_, ok = parseDate("01/03/2024")
	assert.False(t, ok)
}
