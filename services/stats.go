package services

import (
	"context"
	"fmt"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

const sinCategoria = "Sin categoría"

var meses = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type MonthCount struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// Summary feeds the dashboard cards and charts.
type Summary struct {
	Year              int            `json:"year"`
	Companies         int            `json:"companies"`
	Concursos         int            `json:"concursos"`
	Ganado            int            `json:"ganado"`
	GanadoBySexo      map[string]int `json:"ganadoBySexo"`
	GanadoByCategoria map[string]int `json:"ganadoByCategoria"`
	ConcursosByMonth  []MonthCount   `json:"concursosByMonth"`
}

type Stats struct {
	base
	store store.Store
}

// Summary counts live records. year selects the concursos-by-month series;
// zero means the current year.
func (s *Stats) Summary(ctx context.Context, year int) (*Summary, error) {
	if year == 0 {
		year = s.now().Year()
	}

	totals, err := s.store.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("count totals: %w", err)
	}
	bySexo, err := s.store.CountGanadoBy(ctx, store.GroupSexo)
	if err != nil {
		return nil, fmt.Errorf("count ganado by sexo: %w", err)
	}
	byCategoria, err := s.store.CountGanadoBy(ctx, store.GroupCategoria)
	if err != nil {
		return nil, fmt.Errorf("count ganado by categoria: %w", err)
	}
	months, err := s.store.ConcursosByMonth(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("count concursos by month: %w", err)
	}

	sum := &Summary{
		Year:      year,
		Companies: totals.Companies,
		Concursos: totals.Concursos,
		Ganado:    totals.Ganado,
		GanadoBySexo: map[string]int{
			string(models.SexoMacho):  0,
			string(models.SexoHembra): 0,
		},
		GanadoByCategoria: make(map[string]int, len(byCategoria)),
		ConcursosByMonth:  make([]MonthCount, 12),
	}
	for sexo, n := range bySexo {
		sum.GanadoBySexo[sexo] += n
	}
	for cat, n := range byCategoria {
		if cat == "" {
			cat = sinCategoria
		}
		sum.GanadoByCategoria[cat] += n
	}
	for i, name := range meses {
		sum.ConcursosByMonth[i] = MonthCount{Month: i + 1, Name: name, Total: months[i]}
	}
	return sum, nil
}
