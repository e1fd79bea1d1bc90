package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/media"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

type GanadoInput struct {
	Nombre       string  `json:"nombre"`
	FechaNac     *string `json:"fechaNac"`
	Categoria    *string `json:"categoria"`
	Subcategoria *string `json:"subcategoria"`
	Establo      *string `json:"establo"`
	Remate       bool    `json:"remate"`
	Propietario  *string `json:"propietario"`
	Descripcion  *string `json:"descripcion"`
	Raza         *string `json:"raza"`
	Sexo         string  `json:"sexo"`
	NumRegistro  Flex    `json:"numRegistro"`
	Puntaje      Flex    `json:"puntaje"`
	IsFeatured   bool    `json:"isFeatured"`
	IsPublished  bool    `json:"isPublished"`
	// ConcursoID optionally assigns the ganado; "none" means no assignment.
	ConcursoID string `json:"concursoId"`
}

// DaysSince is ceil(|now - birth| / 24h).
func DaysSince(birth, now time.Time) int {
	d := now.Sub(birth)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

func (in GanadoInput) build(g *models.Ganado, now time.Time) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return invalid("Nombre is required")
	}
	if strings.TrimSpace(in.Sexo) == "" {
		return invalid("Sexo is required")
	}
	sexo := models.Sexo(strings.ToUpper(strings.TrimSpace(in.Sexo)))
	if !sexo.Valid() {
		return invalid("Sexo must be MACHO or HEMBRA")
	}
	fechaNac, err := optionalDate(in.FechaNac, "Fecha de nacimiento")
	if err != nil {
		return err
	}
	var puntaje *float64
	if in.Puntaje != "" {
		v, err := strconv.ParseFloat(string(in.Puntaje), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("Puntaje must be a number")
		}
		puntaje = &v
	}

	g.Nombre = strings.TrimSpace(in.Nombre)
	g.Sexo = sexo
	g.FechaNac = fechaNac
	g.DiasNacida = nil
	if fechaNac != nil {
		days := DaysSince(*fechaNac, now)
		g.DiasNacida = &days
	}
	g.Categoria = clean(in.Categoria)
	g.Subcategoria = clean(in.Subcategoria)
	g.Establo = clean(in.Establo)
	g.Remate = in.Remate
	g.Propietario = clean(in.Propietario)
	g.Descripcion = clean(in.Descripcion)
	g.Raza = clean(in.Raza)
	numRegistro := string(in.NumRegistro)
	g.NumRegistro = clean(&numRegistro)
	g.Puntaje = puntaje
	g.IsFeatured = in.IsFeatured
	g.IsPublished = in.IsPublished
	return nil
}

type Ganado struct {
	base
	store   store.Store
	entries *Entries
	media   media.Storage
}

func (s *Ganado) List(ctx context.Context, f store.GanadoFilter) ([]models.Ganado, error) {
	return s.store.ListGanado(ctx, f)
}

// Get loads the ganado with its entries and images.
func (s *Ganado) Get(ctx context.Context, id string) (*models.Ganado, error) {
	g, err := s.store.GetGanado(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Ganado not found")
	}
	return g, err
}

// Create stores the ganado. A concursoId is only honoured for admins.
func (s *Ganado) Create(ctx context.Context, p *auth.Principal, in GanadoInput) (*models.Ganado, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	now := s.now()
	g := &models.Ganado{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
	if err := in.build(g, now); err != nil {
		return nil, err
	}
	concursoID := strings.TrimSpace(in.ConcursoID)
	assign := hasConcurso(concursoID) && auth.IsAdmin(p)
	if assign {
		if err := s.entries.concursoExists(ctx, concursoID); err != nil {
			return nil, err
		}
	}
	if err := s.store.CreateGanado(ctx, g); err != nil {
		return nil, fmt.Errorf("create ganado: %w", err)
	}

	if assign {
		if err := s.entries.ensure(ctx, g.ID, concursoID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Update replaces the editable fields, recomputes diasNacida and assigns
// concursoId when given.
func (s *Ganado) Update(ctx context.Context, p *auth.Principal, id string, in GanadoInput) (*models.Ganado, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := in.build(g, now); err != nil {
		return nil, err
	}
	g.UpdatedAt = now
	g.Entries, g.Images = nil, nil

	concursoID := strings.TrimSpace(in.ConcursoID)
	assign := hasConcurso(concursoID)
	if assign {
		if err := s.entries.concursoExists(ctx, concursoID); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateGanado(ctx, g); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Ganado not found")
		}
		return nil, fmt.Errorf("update ganado: %w", err)
	}

	if assign {
		if err := s.entries.ensure(ctx, g.ID, concursoID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Delete removes the ganado after its entries and image rows. Stored
// picture objects are removed afterwards on a best-effort basis.
func (s *Ganado) Delete(ctx context.Context, p *auth.Principal, id string) (*models.Ganado, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteGanado(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Ganado not found")
		}
		return nil, fmt.Errorf("delete ganado: %w", err)
	}

	for _, img := range g.Images {
		if err := s.media.Delete(ctx, img.ObjectKey); err != nil && !errors.Is(err, media.ErrDisabled) {
			s.log.Warn("delete ganado image object", zap.String("key", img.ObjectKey), zap.Error(err))
		}
	}
	g.Entries, g.Images = nil, nil
	return g, nil
}
