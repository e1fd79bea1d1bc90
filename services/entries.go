package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/padraicbc/concursos/auth"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

const msgAlreadyAssigned = "El ganado ya está asignado a este concurso"

type EntryInput struct {
	GanadoID   string `json:"ganadoId"`
	ConcursoID string `json:"concursoId"`
	Posicion   Flex   `json:"posicion"`
}

type PosicionInput struct {
	Posicion Flex `json:"posicion"`
}

// parsePosicion maps "" and null to nil. Anything else must be a whole number.
func parsePosicion(f Flex) (*int, error) {
	if f == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return nil, invalid("Posicion must be a whole number")
	}
	n := int(v)
	return &n, nil
}

type Entries struct {
	base
	store store.Store
}

// List is ordered by posicion ascending with unranked entries last.
func (s *Entries) List(ctx context.Context, f store.EntryFilter) ([]models.GanadoEnConcurso, error) {
	return s.store.ListEntries(ctx, f)
}

func (s *Entries) Create(ctx context.Context, p *auth.Principal, in EntryInput) (*models.GanadoEnConcurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	ganadoID, concursoID := strings.TrimSpace(in.GanadoID), strings.TrimSpace(in.ConcursoID)
	if ganadoID == "" {
		return nil, invalid("Ganado ID is required")
	}
	if concursoID == "" {
		return nil, invalid("Concurso ID is required")
	}
	posicion, err := parsePosicion(in.Posicion)
	if err != nil {
		return nil, err
	}

	if err := s.exists(ctx, ganadoID, concursoID); err != nil {
		return nil, err
	}
	// Fast path for the friendly message; the unique index has the last word.
	if _, err := s.store.FindEntry(ctx, ganadoID, concursoID); err == nil {
		return nil, invalid(msgAlreadyAssigned)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find entry: %w", err)
	}

	now := s.now()
	e := &models.GanadoEnConcurso{
		ID:         s.newID(),
		GanadoID:   ganadoID,
		ConcursoID: concursoID,
		Posicion:   posicion,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateEntry(ctx, e); err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, invalid(msgAlreadyAssigned)
		case errors.Is(err, store.ErrReferenced):
			// Lost a race with a delete.
			if gone := s.exists(ctx, ganadoID, concursoID); gone != nil {
				return nil, gone
			}
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return e, nil
}

func (s *Entries) exists(ctx context.Context, ganadoID, concursoID string) error {
	if _, err := s.store.GetGanado(ctx, ganadoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("El ganado no existe")
		}
		return fmt.Errorf("get ganado: %w", err)
	}
	return s.concursoExists(ctx, concursoID)
}

func (s *Entries) concursoExists(ctx context.Context, concursoID string) error {
	if _, err := s.store.GetConcurso(ctx, concursoID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("El concurso no existe")
		}
		return fmt.Errorf("get concurso: %w", err)
	}
	return nil
}

// ensure assigns the pair unless it already is, used by ganado writes.
// Callers check the concurso with concursoExists before writing the ganado.
func (s *Entries) ensure(ctx context.Context, ganadoID, concursoID string) error {
	_, err := s.store.FindEntry(ctx, ganadoID, concursoID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("find entry: %w", err)
	}

	now := s.now()
	err = s.store.CreateEntry(ctx, &models.GanadoEnConcurso{
		ID:         s.newID(),
		GanadoID:   ganadoID,
		ConcursoID: concursoID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil && !errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// UpdatePosicion sets or clears the rank.
func (s *Entries) UpdatePosicion(ctx context.Context, p *auth.Principal, id string, in PosicionInput) (*models.GanadoEnConcurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	posicion, err := parsePosicion(in.Posicion)
	if err != nil {
		return nil, err
	}
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Entry not found")
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	e.Posicion = posicion
	e.UpdatedAt = s.now()
	e.Ganado, e.Concurso = nil, nil
	if err := s.store.UpdateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

func (s *Entries) Delete(ctx context.Context, p *auth.Principal, id string) (*models.GanadoEnConcurso, error) {
	if err := s.policy.write(p); err != nil {
		return nil, err
	}
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Entry not found")
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Entry not found")
		}
		return nil, fmt.Errorf("delete entry: %w", err)
	}
	e.Ganado, e.Concurso = nil, nil
	return e, nil
}
