package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/store"
)

// Option is an autocomplete choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type NameInput struct {
	Nombre string `json:"nombre"`
}

// Lookups serves razas, propietarios and establos. They are not stored on
// their own; a value exists once some ganado uses it.
type Lookups struct {
	base
	store store.Ganados
}

func (s *Lookups) List(ctx context.Context, col store.LookupColumn, query string) ([]Option, error) {
	vals, err := s.store.DistinctValues(ctx, col, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	out := make([]Option, 0, len(vals))
	for _, v := range vals {
		out = append(out, Option{Value: v, Label: v})
	}
	return out, nil
}

// Create echoes the name back for the form; nothing is persisted.
func (s *Lookups) Create(_ context.Context, p *auth.Principal, in NameInput) (Option, error) {
	if err := s.policy.authenticated(p); err != nil {
		return Option{}, err
	}
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return Option{}, invalid("Nombre is required")
	}
	return Option{Value: nombre, Label: nombre}, nil
}
