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

type CompanyInput struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Slug        string  `json:"slug"`
	Logo        *string `json:"logo"`
	IsFeatured  bool    `json:"isFeatured"`
	IsPublished bool    `json:"isPublished"`
}

func (in CompanyInput) validate() error {
	if strings.TrimSpace(in.Nombre) == "" {
		return invalid("Nombre is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid("Slug is required")
	}
	return nil
}

func (in CompanyInput) apply(c *models.Company) {
	c.Nombre = strings.TrimSpace(in.Nombre)
	c.Descripcion = clean(in.Descripcion)
	c.Slug = strings.TrimSpace(in.Slug)
	c.Logo = clean(in.Logo)
	c.IsFeatured = in.IsFeatured
	c.IsPublished = in.IsPublished
}

type Companies struct {
	base
	store store.Companies
}

func (s *Companies) List(ctx context.Context, f store.CompanyFilter) ([]models.Company, error) {
	return s.store.ListCompanies(ctx, f)
}

// Get loads the company with its concursos.
func (s *Companies) Get(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.store.GetCompany(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Company not found")
	}
	return c, err
}

func (s *Companies) Create(ctx context.Context, p *auth.Principal, in CompanyInput) (*models.Company, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	c := &models.Company{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
	in.apply(c)
	if err := s.store.CreateCompany(ctx, c); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, invalid("Slug is already in use")
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

func (s *Companies) Update(ctx context.Context, p *auth.Principal, id string, in CompanyInput) (*models.Company, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(c)
	c.UpdatedAt = s.now()
	c.Concursos = nil
	if err := s.store.UpdateCompany(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, invalid("Slug is already in use")
		case errors.Is(err, store.ErrNotFound):
			return nil, notFound("Company not found")
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return c, nil
}

// Delete does not look for concursos itself; the store's foreign key
// rejects a company that still owns any.
func (s *Companies) Delete(ctx context.Context, p *auth.Principal, id string) (*models.Company, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteCompany(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrReferenced):
			return nil, invalid("Company has concursos")
		case errors.Is(err, store.ErrNotFound):
			return nil, notFound("Company not found")
		}
		return nil, fmt.Errorf("delete company: %w", err)
	}
	c.Concursos = nil
	return c, nil
}
