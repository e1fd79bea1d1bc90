package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

type CategoriaInput struct {
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

func (in CategoriaInput) apply(c *models.Categoria) error {
	if strings.TrimSpace(in.Codigo) == "" {
		return invalid("Codigo is required")
	}
	if strings.TrimSpace(in.Nombre) == "" {
		return invalid("Nombre is required")
	}
	c.Codigo = strings.ToUpper(strings.TrimSpace(in.Codigo))
	c.Nombre = strings.TrimSpace(in.Nombre)
	c.Descripcion = clean(in.Descripcion)
	return nil
}

// DefaultCategorias are the age classes by dentition used by every concurso.
var DefaultCategorias = []CategoriaInput{
	{Codigo: "A", Nombre: "Dientes de Leche", Descripcion: strPtr("Categoría para ganado joven")},
	{Codigo: "B", Nombre: "Dos Dientes", Descripcion: strPtr("Categoría para ganado de edad media")},
	{Codigo: "C", Nombre: "Cuatro Dientes", Descripcion: strPtr("Categoría para ganado adulto")},
	{Codigo: "D", Nombre: "Seis Dientes", Descripcion: strPtr("Categoría para ganado maduro")},
	{Codigo: "E", Nombre: "Boca Llena", Descripcion: strPtr("Categoría para ganado completamente desarrollado")},
}

func strPtr(s string) *string { return &s }

type Categorias struct {
	base
	store store.Categorias
}

func (s *Categorias) List(ctx context.Context) ([]models.Categoria, error) {
	return s.store.ListCategorias(ctx)
}

func (s *Categorias) Get(ctx context.Context, id string) (*models.Categoria, error) {
	c, err := s.store.GetCategoria(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Categoria not found")
	}
	return c, err
}

func (s *Categorias) Create(ctx context.Context, p *auth.Principal, in CategoriaInput) (*models.Categoria, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	now := s.now()
	c := &models.Categoria{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.store.CreateCategoria(ctx, c); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, invalid("Codigo is already in use")
		}
		return nil, fmt.Errorf("create categoria: %w", err)
	}
	return c, nil
}

func (s *Categorias) Update(ctx context.Context, p *auth.Principal, id string, in CategoriaInput) (*models.Categoria, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()
	if err := s.store.UpdateCategoria(ctx, c); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, invalid("Codigo is already in use")
		}
		return nil, fmt.Errorf("update categoria: %w", err)
	}
	return c, nil
}

func (s *Categorias) Delete(ctx context.Context, p *auth.Principal, id string) (*models.Categoria, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteCategoria(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Categoria not found")
		}
		return nil, fmt.Errorf("delete categoria: %w", err)
	}
	return c, nil
}

// Seed inserts the default categorias whose codigo is missing and reports
// how many were added. It bypasses the write policy; only the CLI calls it.
func (s *Categorias) Seed(ctx context.Context) (int, error) {
	existing, err := s.store.ListCategorias(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categorias: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.Codigo] = struct{}{}
	}

	added := 0
	for _, in := range DefaultCategorias {
		if _, ok := have[in.Codigo]; ok {
			s.log.Info("categoria already exists, skipping", zap.String("codigo", in.Codigo))
			continue
		}
		now := s.now()
		c := &models.Categoria{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
		if err := in.apply(c); err != nil {
			return added, err
		}
		if err := s.store.CreateCategoria(ctx, c); err != nil {
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			return added, fmt.Errorf("create categoria %s: %w", c.Codigo, err)
		}
		added++
	}
	return added, nil
}
