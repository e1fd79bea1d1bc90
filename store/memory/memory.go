// Package memory is an in-process store used in dev mode and tests.
// It enforces the same unique and foreign-key rules as the SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/store"
)

type Store struct {
	mu  sync.RWMutex
	seq int

	order      map[string]int
	companies  map[string]models.Company
	concursos  map[string]models.Concurso
	ganado     map[string]models.Ganado
	entries    map[string]models.GanadoEnConcurso
	images     map[string]models.GanadoImage
	categorias map[string]models.Categoria
	users      map[string]models.User
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		order:      make(map[string]int),
		companies:  make(map[string]models.Company),
		concursos:  make(map[string]models.Concurso),
		ganado:     make(map[string]models.Ganado),
		entries:    make(map[string]models.GanadoEnConcurso),
		images:     make(map[string]models.GanadoImage),
		categorias: make(map[string]models.Categoria),
		users:      make(map[string]models.User),
	}
}

// track records insertion order; it breaks created_at ties in listings.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *Store) newestFirst(ids []string, created func(string) int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := created(ids[i]), created(ids[j])
		if ci != cj {
			return ci > cj
		}
		return s.order[ids[i]] > s.order[ids[j]]
	})
}

func matchBool(want *bool, got bool) bool {
	return want == nil || *want == got
}

// ---- companies

func (s *Store) ListCompanies(ctx context.Context, f store.CompanyFilter) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.companies))
	for id, c := range s.companies {
		if matchBool(f.IsFeatured, c.IsFeatured) && matchBool(f.IsPublished, c.IsPublished) {
			ids = append(ids, id)
		}
	}
	s.newestFirst(ids, func(id string) int64 { return s.companies[id].CreatedAt.UnixNano() })

	out := make([]models.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.companies[id])
	}
	return out, nil
}

func (s *Store) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	ids := make([]string, 0)
	for cid, con := range s.concursos {
		if con.CompanyID == id {
			ids = append(ids, cid)
		}
	}
	s.newestFirst(ids, func(id string) int64 { return s.concursos[id].CreatedAt.UnixNano() })
	c.Concursos = make([]models.Concurso, 0, len(ids))
	for _, cid := range ids {
		c.Concursos = append(c.Concursos, s.concursos[cid])
	}
	return &c, nil
}

func (s *Store) slugTaken(slug, exceptID string) bool {
	for id, c := range s.companies {
		if id != exceptID && c.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) CreateCompany(ctx context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[c.ID]; ok || s.slugTaken(c.Slug, "") {
		return store.ErrConflict
	}
	row := *c
	row.Concursos = nil
	s.companies[c.ID] = row
	s.track(c.ID)
	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.companies[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.slugTaken(c.Slug, c.ID) {
		return store.ErrConflict
	}
	row := *c
	row.Concursos = nil
	row.CreatedAt = cur.CreatedAt
	s.companies[c.ID] = row
	return nil
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return store.ErrNotFound
	}
	for _, con := range s.concursos {
		if con.CompanyID == id {
			return store.ErrReferenced
		}
	}
	delete(s.companies, id)
	return nil
}

// ---- concursos

func (s *Store) hydrateConcurso(c models.Concurso) models.Concurso {
	if co, ok := s.companies[c.CompanyID]; ok {
		c.Company = &co
	}
	c.Entries = make([]models.GanadoEnConcurso, 0)
	for _, id := range s.sortedEntryIDs(func(e models.GanadoEnConcurso) bool { return e.ConcursoID == c.ID }) {
		e := s.entries[id]
		if g, ok := s.ganado[e.GanadoID]; ok {
			e.Ganado = &g
		}
		c.Entries = append(c.Entries, e)
	}
	return c
}

func (s *Store) ListConcursos(ctx context.Context, f store.ConcursoFilter) ([]models.Concurso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.concursos))
	for id, c := range s.concursos {
		if !matchBool(f.IsFeatured, c.IsFeatured) || !matchBool(f.IsPublished, c.IsPublished) {
			continue
		}
		if f.CompanyID != "" && c.CompanyID != f.CompanyID {
			continue
		}
		ids = append(ids, id)
	}
	s.newestFirst(ids, func(id string) int64 { return s.concursos[id].CreatedAt.UnixNano() })

	out := make([]models.Concurso, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.hydrateConcurso(s.concursos[id]))
	}
	return out, nil
}

func (s *Store) GetConcurso(ctx context.Context, id string) (*models.Concurso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.concursos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c = s.hydrateConcurso(c)
	return &c, nil
}

func (s *Store) CreateConcurso(ctx context.Context, c *models.Concurso) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.concursos[c.ID]; ok {
		return store.ErrConflict
	}
	if _, ok := s.companies[c.CompanyID]; !ok {
		return store.ErrReferenced
	}
	row := *c
	row.Company, row.Entries = nil, nil
	s.concursos[c.ID] = row
	s.track(c.ID)
	return nil
}

func (s *Store) UpdateConcurso(ctx context.Context, c *models.Concurso) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.concursos[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := s.companies[c.CompanyID]; !ok {
		return store.ErrReferenced
	}
	row := *c
	row.Company, row.Entries = nil, nil
	row.CreatedAt = cur.CreatedAt
	s.concursos[c.ID] = row
	return nil
}

func (s *Store) DeleteConcurso(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.concursos[id]; !ok {
		return store.ErrNotFound
	}
	for eid, e := range s.entries {
		if e.ConcursoID == id {
			delete(s.entries, eid)
		}
	}
	delete(s.concursos, id)
	return nil
}

// ---- ganado

func (s *Store) ListGanado(ctx context.Context, f store.GanadoFilter) ([]models.Ganado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.ganado))
	for id, g := range s.ganado {
		if !matchBool(f.IsFeatured, g.IsFeatured) || !matchBool(f.IsPublished, g.IsPublished) {
			continue
		}
		if f.Sexo != "" && g.Sexo != f.Sexo {
			continue
		}
		if f.Categoria != "" && (g.Categoria == nil || *g.Categoria != f.Categoria) {
			continue
		}
		ids = append(ids, id)
	}
	s.newestFirst(ids, func(id string) int64 { return s.ganado[id].CreatedAt.UnixNano() })

	out := make([]models.Ganado, 0, len(ids))
	for _, id := range ids {
		g := s.ganado[id]
		g.Entries = make([]models.GanadoEnConcurso, 0)
		for _, eid := range s.sortedEntryIDs(func(e models.GanadoEnConcurso) bool {
			return e.GanadoID == id && (f.ConcursoID == "" || e.ConcursoID == f.ConcursoID)
		}) {
			e := s.entries[eid]
			if c, ok := s.concursos[e.ConcursoID]; ok {
				e.Concurso = &c
			}
			g.Entries = append(g.Entries, e)
		}
		if f.ConcursoID != "" && len(g.Entries) == 0 {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) GetGanado(ctx context.Context, id string) (*models.Ganado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.ganado[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	g.Entries = make([]models.GanadoEnConcurso, 0)
	for _, eid := range s.sortedEntryIDs(func(e models.GanadoEnConcurso) bool { return e.GanadoID == id }) {
		e := s.entries[eid]
		if c, ok := s.concursos[e.ConcursoID]; ok {
			e.Concurso = &c
		}
		g.Entries = append(g.Entries, e)
	}

	imgIDs := make([]string, 0)
	for iid, img := range s.images {
		if img.GanadoID == id {
			imgIDs = append(imgIDs, iid)
		}
	}
	sort.Slice(imgIDs, func(i, j int) bool { return s.order[imgIDs[i]] < s.order[imgIDs[j]] })
	g.Images = make([]models.GanadoImage, 0, len(imgIDs))
	for _, iid := range imgIDs {
		g.Images = append(g.Images, s.images[iid])
	}
	return &g, nil
}

func (s *Store) CreateGanado(ctx context.Context, g *models.Ganado) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ganado[g.ID]; ok {
		return store.ErrConflict
	}
	row := *g
	row.Entries, row.Images = nil, nil
	s.ganado[g.ID] = row
	s.track(g.ID)
	return nil
}

func (s *Store) UpdateGanado(ctx context.Context, g *models.Ganado) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.ganado[g.ID]
	if !ok {
		return store.ErrNotFound
	}
	row := *g
	row.Entries, row.Images = nil, nil
	row.CreatedAt = cur.CreatedAt
	s.ganado[g.ID] = row
	return nil
}

func (s *Store) DeleteGanado(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ganado[id]; !ok {
		return store.ErrNotFound
	}
	for eid, e := range s.entries {
		if e.GanadoID == id {
			delete(s.entries, eid)
		}
	}
	for iid, img := range s.images {
		if img.GanadoID == id {
			delete(s.images, iid)
		}
	}
	delete(s.ganado, id)
	return nil
}

func (s *Store) DistinctValues(ctx context.Context, col store.LookupColumn, query string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range s.ganado {
		var v *string
		switch col {
		case store.LookupRaza:
			v = g.Raza
		case store.LookupPropietario:
			v = g.Propietario
		case store.LookupEstablo:
			v = g.Establo
		}
		if v == nil || *v == "" || !strings.Contains(strings.ToLower(*v), q) {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out, nil
}

// ---- counters

func (s *Store) Totals(ctx context.Context) (store.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.Totals{Companies: len(s.companies), Concursos: len(s.concursos), Ganado: len(s.ganado)}, nil
}

func (s *Store) CountGanadoBy(ctx context.Context, col store.GanadoGroup) (map[string]int, error) {
	if col != store.GroupSexo && col != store.GroupCategoria {
		return nil, store.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int)
	for _, g := range s.ganado {
		key := string(g.Sexo)
		if col == store.GroupCategoria {
			key = ""
			if g.Categoria != nil {
				key = *g.Categoria
			}
		}
		out[key]++
	}
	return out, nil
}

func (s *Store) ConcursosByMonth(ctx context.Context, year int) ([12]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var months [12]int
	for _, c := range s.concursos {
		if c.FechaInicio.Year() == year {
			months[c.FechaInicio.Month()-1]++
		}
	}
	return months, nil
}

// ---- entries

// sortedEntryIDs returns matching entry ids by posicion ascending, nulls last.
func (s *Store) sortedEntryIDs(keep func(models.GanadoEnConcurso) bool) []string {
	ids := make([]string, 0)
	for id, e := range s.entries {
		if keep(e) {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := s.entries[ids[i]].Posicion, s.entries[ids[j]].Posicion
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return s.order[ids[i]] < s.order[ids[j]]
	})
	return ids
}

func (s *Store) hydrateEntry(e models.GanadoEnConcurso) models.GanadoEnConcurso {
	if g, ok := s.ganado[e.GanadoID]; ok {
		e.Ganado = &g
	}
	if c, ok := s.concursos[e.ConcursoID]; ok {
		e.Concurso = &c
	}
	return e
}

func (s *Store) ListEntries(ctx context.Context, f store.EntryFilter) ([]models.GanadoEnConcurso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sortedEntryIDs(func(e models.GanadoEnConcurso) bool {
		return (f.ConcursoID == "" || e.ConcursoID == f.ConcursoID) &&
			(f.GanadoID == "" || e.GanadoID == f.GanadoID)
	})
	out := make([]models.GanadoEnConcurso, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.hydrateEntry(s.entries[id]))
	}
	return out, nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*models.GanadoEnConcurso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	e = s.hydrateEntry(e)
	return &e, nil
}

func (s *Store) FindEntry(ctx context.Context, ganadoID, concursoID string) (*models.GanadoEnConcurso, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.GanadoID == ganadoID && e.ConcursoID == concursoID {
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateEntry(ctx context.Context, e *models.GanadoEnConcurso) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ganado[e.GanadoID]; !ok {
		return store.ErrReferenced
	}
	if _, ok := s.concursos[e.ConcursoID]; !ok {
		return store.ErrReferenced
	}
	if _, ok := s.entries[e.ID]; ok {
		return store.ErrConflict
	}
	for _, cur := range s.entries {
		if cur.GanadoID == e.GanadoID && cur.ConcursoID == e.ConcursoID {
			return store.ErrConflict
		}
	}
	row := *e
	row.Ganado, row.Concurso = nil, nil
	s.entries[e.ID] = row
	s.track(e.ID)
	return nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *models.GanadoEnConcurso) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[e.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.Posicion = e.Posicion
	cur.UpdatedAt = e.UpdatedAt
	s.entries[e.ID] = cur
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// ---- images

func (s *Store) CreateImage(ctx context.Context, img *models.GanadoImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ganado[img.GanadoID]; !ok {
		return store.ErrReferenced
	}
	s.images[img.ID] = *img
	s.track(img.ID)
	return nil
}

func (s *Store) GetImage(ctx context.Context, id string) (*models.GanadoImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &img, nil
}

func (s *Store) DeleteImage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.images[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.images, id)
	return nil
}

// ---- categorias

func (s *Store) codigoTaken(codigo, exceptID string) bool {
	for id, c := range s.categorias {
		if id != exceptID && c.Codigo == codigo {
			return true
		}
	}
	return false
}

func (s *Store) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Categoria, 0, len(s.categorias))
	for _, c := range s.categorias {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (s *Store) GetCategoria(ctx context.Context, id string) (*models.Categoria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categorias[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategoria(ctx context.Context, c *models.Categoria) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categorias[c.ID]; ok || s.codigoTaken(c.Codigo, "") {
		return store.ErrConflict
	}
	s.categorias[c.ID] = *c
	s.track(c.ID)
	return nil
}

func (s *Store) UpdateCategoria(ctx context.Context, c *models.Categoria) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.categorias[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.codigoTaken(c.Codigo, c.ID) {
		return store.ErrConflict
	}
	row := *c
	row.CreatedAt = cur.CreatedAt
	s.categorias[c.ID] = row
	return nil
}

func (s *Store) DeleteCategoria(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categorias[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.categorias, id)
	return nil
}

// ---- users

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.users[u.Username]; ok {
		u.ID = cur.ID
	}
	s.users[u.Username] = *u
	return nil
}
