// Package store defines the data access contracts shared by the SQL and in-memory stores.
package store

import (
	"context"
	"errors"

	"github.com/padraicbc/concursos/models"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("conflict")
	// ErrReferenced is returned when a foreign key rejects a write or delete.
	ErrReferenced = errors.New("referenced")
)

// CompanyFilter narrows ListCompanies. Nil fields are ignored.
type CompanyFilter struct {
	IsFeatured  *bool
	IsPublished *bool
}

// ConcursoFilter narrows ListConcursos. Nil/empty fields are ignored.
type ConcursoFilter struct {
	IsFeatured  *bool
	IsPublished *bool
	CompanyID   string
}

// GanadoFilter narrows ListGanado. Nil/empty fields are ignored.
// ConcursoID keeps only ganado with an entry in that concurso and
// limits the loaded entries to it.
type GanadoFilter struct {
	IsFeatured  *bool
	IsPublished *bool
	Sexo        models.Sexo
	Categoria   string
	ConcursoID  string
}

// EntryFilter narrows ListEntries.
type EntryFilter struct {
	ConcursoID string
	GanadoID   string
}

// LookupColumn names a free-text ganado column offered as autocomplete.
type LookupColumn string

const (
	LookupRaza        LookupColumn = "raza"
	LookupPropietario LookupColumn = "propietario"
	LookupEstablo     LookupColumn = "establo"
)

// GanadoGroup names a ganado column the dashboard counts by.
type GanadoGroup string

const (
	GroupSexo      GanadoGroup = "sexo"
	GroupCategoria GanadoGroup = "categoria"
)

// Totals holds the row count of each top-level table.
type Totals struct {
	Companies int
	Concursos int
	Ganado    int
}

// Counters is implemented by stores that aggregate for the dashboard.
type Counters interface {
	Totals(ctx context.Context) (Totals, error)
	// CountGanadoBy counts ganado per value of col. NULL values count under "".
	CountGanadoBy(ctx context.Context, col GanadoGroup) (map[string]int, error)
	// ConcursosByMonth counts concursos starting in year; index 0 is January.
	ConcursosByMonth(ctx context.Context, year int) ([12]int, error)
}

// Companies is implemented by stores holding companies.
type Companies interface {
	ListCompanies(ctx context.Context, f CompanyFilter) ([]models.Company, error)
	// GetCompany loads the company with its concursos.
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	CreateCompany(ctx context.Context, c *models.Company) error
	UpdateCompany(ctx context.Context, c *models.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// Concursos is implemented by stores holding concursos.
type Concursos interface {
	// ListConcursos loads company and entries with their ganado, newest first.
	ListConcursos(ctx context.Context, f ConcursoFilter) ([]models.Concurso, error)
	GetConcurso(ctx context.Context, id string) (*models.Concurso, error)
	CreateConcurso(ctx context.Context, c *models.Concurso) error
	UpdateConcurso(ctx context.Context, c *models.Concurso) error
	// DeleteConcurso removes the concurso's entries, then the concurso.
	DeleteConcurso(ctx context.Context, id string) error
}

// Ganados is implemented by stores holding ganado.
type Ganados interface {
	// ListGanado loads entries with their concurso, newest first.
	ListGanado(ctx context.Context, f GanadoFilter) ([]models.Ganado, error)
	// GetGanado loads entries with their concurso and images.
	GetGanado(ctx context.Context, id string) (*models.Ganado, error)
	CreateGanado(ctx context.Context, g *models.Ganado) error
	UpdateGanado(ctx context.Context, g *models.Ganado) error
	// DeleteGanado removes entries and image rows first, then the ganado.
	DeleteGanado(ctx context.Context, id string) error
	// DistinctValues returns sorted distinct non-empty values of col containing
	// query case-insensitively.
	DistinctValues(ctx context.Context, col LookupColumn, query string) ([]string, error)
}

// Entries is implemented by stores holding ganado-en-concurso rows.
type Entries interface {
	// ListEntries loads ganado and concurso, ordered by posicion with nulls last.
	ListEntries(ctx context.Context, f EntryFilter) ([]models.GanadoEnConcurso, error)
	GetEntry(ctx context.Context, id string) (*models.GanadoEnConcurso, error)
	// FindEntry returns ErrNotFound when the pair is not assigned.
	FindEntry(ctx context.Context, ganadoID, concursoID string) (*models.GanadoEnConcurso, error)
	// CreateEntry returns ErrConflict when the pair already exists.
	CreateEntry(ctx context.Context, e *models.GanadoEnConcurso) error
	UpdateEntry(ctx context.Context, e *models.GanadoEnConcurso) error
	DeleteEntry(ctx context.Context, id string) error
}

// Images is implemented by stores holding ganado image rows.
type Images interface {
	CreateImage(ctx context.Context, img *models.GanadoImage) error
	GetImage(ctx context.Context, id string) (*models.GanadoImage, error)
	DeleteImage(ctx context.Context, id string) error
}

// Categorias is implemented by stores holding categorias.
type Categorias interface {
	ListCategorias(ctx context.Context) ([]models.Categoria, error)
	GetCategoria(ctx context.Context, id string) (*models.Categoria, error)
	CreateCategoria(ctx context.Context, c *models.Categoria) error
	UpdateCategoria(ctx context.Context, c *models.Categoria) error
	DeleteCategoria(ctx context.Context, id string) error
}

// Users is implemented by stores holding local identity users.
type Users interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// SaveUser inserts the user or replaces password, nombre, email and role
	// of the user with the same username.
	SaveUser(ctx context.Context, u *models.User) error
}

// Store is the full data access surface.
type Store interface {
	Companies
	Concursos
	Ganados
	Entries
	Images
	Categorias
	Users
	Counters
}
