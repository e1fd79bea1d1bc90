package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

type ConcursoInput struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	FechaInicio string  `json:"fechaInicio"`
	FechaFin    *string `json:"fechaFin"`
	CompanyID   string  `json:"companyId"`
	IsFeatured  bool    `json:"isFeatured"`
	IsPublished bool    `json:"isPublished"`
}

func (in ConcursoInput) build(c *models.Concurso) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return invalid("Nombre is required")
	}
	if strings.TrimSpace(in.FechaInicio) == "" {
		return invalid("Fecha de inicio is required")
	}
	if strings.TrimSpace(in.CompanyID) == "" {
		return invalid("Company ID is required")
	}
	inicio, ok := parseDate(in.FechaInicio)
	if !ok {
		return invalid("Fecha de inicio is invalid")
	}
	fin, err := optionalDate(in.FechaFin, "Fecha de fin")
	if err != nil {
		return err
	}

	c.Nombre = strings.TrimSpace(in.Nombre)
	c.Descripcion = clean(in.Descripcion)
	c.FechaInicio = inicio
	c.FechaFin = fin
	c.CompanyID = strings.TrimSpace(in.CompanyID)
	c.IsFeatured = in.IsFeatured
	c.IsPublished = in.IsPublished
	return nil
}

type Concursos struct {
	base
	store store.Store
}

func (s *Concursos) List(ctx context.Context, f store.ConcursoFilter) ([]models.Concurso, error) {
	return s.store.ListConcursos(ctx, f)
}

// Get loads the concurso with its company and ranked entries.
func (s *Concursos) Get(ctx context.Context, id string) (*models.Concurso, error) {
	c, err := s.store.GetConcurso(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Concurso not found")
	}
	return c, err
}

func (s *Concursos) companyExists(ctx context.Context, id string) error {
	if _, err := s.store.GetCompany(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Company not found")
		}
		return fmt.Errorf("get company: %w", err)
	}
	return nil
}

func (s *Concursos) Create(ctx context.Context, p *auth.Principal, in ConcursoInput) (*models.Concurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	now := s.now()
	c := &models.Concurso{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
	if err := in.build(c); err != nil {
		return nil, err
	}
	if err := s.companyExists(ctx, c.CompanyID); err != nil {
		return nil, err
	}

	if err := s.store.CreateConcurso(ctx, c); err != nil {
		if errors.Is(err, store.ErrReferenced) {
			return nil, notFound("Company not found")
		}
		return nil, fmt.Errorf("create concurso: %w", err)
	}
	return c, nil
}

func (s *Concursos) Update(ctx context.Context, p *auth.Principal, id string, in ConcursoInput) (*models.Concurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.build(c); err != nil {
		return nil, err
	}
	if err := s.companyExists(ctx, c.CompanyID); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()
	c.Company, c.Entries = nil, nil

	if err := s.store.UpdateConcurso(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrReferenced):
			return nil, notFound("Company not found")
		case errors.Is(err, store.ErrNotFound):
			return nil, notFound("Concurso not found")
		}
		return nil, fmt.Errorf("update concurso: %w", err)
	}
	return c, nil
}

// Delete removes the concurso together with its entries.
func (s *Concursos) Delete(ctx context.Context, p *auth.Principal, id string) (*models.Concurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteConcurso(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Concurso not found")
		}
		return nil, fmt.Errorf("delete concurso: %w", err)
	}
	c.Company, c.Entries = nil, nil
	return c, nil
}
